// Package viewer implements the interactive culling viewer loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/cullkit/internal/config"
	"github.com/Faultbox/cullkit/internal/engine/camera"
	"github.com/Faultbox/cullkit/internal/engine/debug"
	"github.com/Faultbox/cullkit/internal/engine/input"
	"github.com/Faultbox/cullkit/internal/engine/picking"
	"github.com/Faultbox/cullkit/internal/engine/renderer"
	"github.com/Faultbox/cullkit/internal/engine/scene"
	"github.com/Faultbox/cullkit/internal/engine/window"
	"github.com/Faultbox/cullkit/internal/logger"
	"github.com/Faultbox/cullkit/pkg/bvol"
	"github.com/Faultbox/cullkit/pkg/math"
)

var colorPicked = renderer.Color{R: 1, G: 1, B: 1, A: 1}

// Viewer is the main application instance.
type Viewer struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera

	root   *scene.Node
	picked *scene.Node

	width, height int

	// Freeze state: culling keeps using the captured view while the
	// camera flies free, so pruned subtrees become visible.
	frozen        bool
	frozenView    math.Mat4
	frozenFrustum *bvol.Frustum

	showBounds  bool
	showFrustum bool
	showStats   bool

	lastMouseX, lastMouseY int
	heldKeys               map[sdl.Scancode]bool
}

// New creates a viewer instance.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:         cfg,
		width:       cfg.Graphics.Width,
		height:      cfg.Graphics.Height,
		showBounds:  cfg.Debug.ShowBounds,
		showFrustum: cfg.Debug.ShowFrustum,
		showStats:   cfg.Debug.ShowCullStats,
		heldKeys:    make(map[sdl.Scancode]bool),
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "cullkit viewer",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context the window created
	v.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
		VSync:  cfg.Graphics.VSync,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New()

	aspect := float32(cfg.Graphics.Width) / float32(cfg.Graphics.Height)
	v.camera = camera.New(aspect)
	v.camera.FovY = cfg.Camera.FovDegrees * math32.Pi / 180
	v.camera.Near = cfg.Camera.Near
	v.camera.Far = cfg.Camera.Far

	v.root = GenerateWorld(cfg.Scene)
	leaves := 0
	v.root.Walk(func(n *scene.Node) {
		if n.IsLeaf() {
			leaves++
		}
	})
	logger.Info("world generated",
		zap.Int64("seed", cfg.Scene.Seed),
		zap.Int("leaves", leaves),
	)

	if cfg.Debug.FreezeCamera {
		v.freeze()
	}

	return v, nil
}

// Run starts the viewer loop.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	statsTimer := time.Now()

	var frameCap time.Duration
	if v.cfg.Graphics.FPSLimit > 0 {
		frameCap = time.Second / time.Duration(v.cfg.Graphics.FPSLimit)
	}

	logger.Info("starting viewer loop")

	for v.running {
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime).Seconds()
		lastTime = frameStart

		if v.input.Update() {
			break
		}
		v.handleEvents()
		v.update(dt)

		res := v.cull()
		v.render()
		v.window.SwapBuffers()

		frameCount++
		if time.Since(statsTimer) >= time.Second {
			if v.showStats {
				logger.Info("cull stats",
					zap.Int("fps", frameCount),
					zap.Int("visible", len(res.Visible)),
					zap.Int("tested", res.Tested),
					zap.Int("pruned", res.Culled),
				)
			}
			frameCount = 0
			statsTimer = time.Now()
		}

		if frameCap > 0 {
			if elapsed := time.Since(frameStart); elapsed < frameCap {
				time.Sleep(frameCap - elapsed)
			}
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) handleEvents() {
	for _, e := range v.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			v.width, v.height = e.Width, e.Height
			v.renderer.Resize(e.Width, e.Height)
			v.camera.Aspect = float32(e.Width) / float32(e.Height)

		case input.EventKeyDown:
			v.heldKeys[e.Key] = true
			switch e.Key {
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_B:
				v.showBounds = !v.showBounds
			case sdl.SCANCODE_F:
				if v.frozen {
					v.unfreeze()
				} else {
					v.freeze()
				}
			case sdl.SCANCODE_C:
				v.showStats = !v.showStats
			case sdl.SCANCODE_V:
				v.swapBoundKinds()
			}

		case input.EventKeyUp:
			delete(v.heldKeys, e.Key)

		case input.EventMouseDown:
			v.lastMouseX, v.lastMouseY = e.MouseX, e.MouseY
			if e.Button == sdl.BUTTON_RIGHT {
				v.pick(e.MouseX, e.MouseY)
			}

		case input.EventMouseMove:
			if v.input.IsButtonHeld(sdl.BUTTON_LEFT) {
				dx := float32(e.MouseX - v.lastMouseX)
				dy := float32(e.MouseY - v.lastMouseY)
				v.camera.HandleDrag(dx, dy)
			}
			v.lastMouseX, v.lastMouseY = e.MouseX, e.MouseY

		case input.EventMouseWheel:
			v.camera.HandleZoom(e.WheelY)
		}
	}
}

func (v *Viewer) update(dt float64) {
	var forward, right, up float32
	if v.heldKeys[sdl.SCANCODE_W] {
		forward++
	}
	if v.heldKeys[sdl.SCANCODE_S] {
		forward--
	}
	if v.heldKeys[sdl.SCANCODE_D] {
		right++
	}
	if v.heldKeys[sdl.SCANCODE_A] {
		right--
	}
	if v.heldKeys[sdl.SCANCODE_E] {
		up++
	}
	if v.heldKeys[sdl.SCANCODE_Q] {
		up--
	}
	if forward != 0 || right != 0 || up != 0 {
		// Scale to ~60fps steps so speed is frame rate independent
		step := float32(dt * 60)
		v.camera.HandleMovement(forward*step, right*step, up*step)
	}
}

// freeze captures the current view for culling so the camera can fly
// outside the frustum being tested.
func (v *Viewer) freeze() {
	v.frozen = true
	v.frozenView = v.camera.ViewMatrix()
	v.frozenFrustum = v.camera.Frustum()
	v.showFrustum = true
	logger.Info("culling frustum frozen")
}

func (v *Viewer) unfreeze() {
	v.frozen = false
	v.frozenFrustum = nil
	v.showFrustum = v.cfg.Debug.ShowFrustum
	logger.Info("culling frustum released")
}

// swapBoundKinds flips every leaf between sphere and box bounds, so the
// tightness trade-off can be compared live.
func (v *Viewer) swapBoundKinds() {
	v.root.Walk(func(n *scene.Node) {
		if !n.IsLeaf() {
			return
		}
		if n.BoundKind() == scene.SphereBound {
			n.SetBoundKind(scene.BoxBound)
		} else {
			n.SetBoundKind(scene.SphereBound)
		}
	})
	logger.Info("leaf bound kinds swapped")
}

func (v *Viewer) cull() *scene.CullResult {
	if v.frozen {
		return v.root.Cull(v.frozenFrustum, v.frozenView)
	}
	return v.root.Cull(v.camera.Frustum(), v.camera.ViewMatrix())
}

func (v *Viewer) render() {
	v.renderer.Begin()

	view := v.camera.ViewMatrix()
	proj := v.camera.ProjectionMatrix()
	viewProj := proj.Mul(view)

	if v.showBounds {
		worlds := v.root.WorldTransforms()
		v.root.Walk(func(n *scene.Node) {
			verts := debug.VolumeWireframeVertices(n.Bounds())
			if verts == nil {
				return
			}
			mvp := viewProj.Mul(worlds[n])
			v.renderer.DrawLines(verts, mvp, v.nodeColor(n))
		})
	}

	if v.showFrustum && v.frozen {
		// Frustum corners are in the frozen eye space; carry them back
		// to world space before applying the live camera.
		toWorld := v.frozenView.Inverse()
		verts := debug.FrustumWireframeVertices(v.frozenFrustum, toWorld)
		v.renderer.DrawLines(verts, viewProj, renderer.ColorFrustum)
	}

	v.renderer.End()
}

func (v *Viewer) nodeColor(n *scene.Node) renderer.Color {
	if n == v.picked {
		return colorPicked
	}
	switch n.CullState() {
	case bvol.Inside:
		return renderer.ColorVisible
	case bvol.Partial:
		return renderer.ColorPartial
	default:
		return renderer.ColorCulled
	}
}

// pick casts a ray through the clicked pixel and selects the nearest
// leaf whose bounding volume it hits.
func (v *Viewer) pick(mouseX, mouseY int) {
	view := v.camera.ViewMatrix()
	proj := v.camera.ProjectionMatrix()
	invViewProj := proj.Mul(view).Inverse()

	ray := picking.ScreenToRay(
		float32(mouseX), float32(mouseY),
		float32(v.width), float32(v.height),
		invViewProj,
	)

	worlds := v.root.WorldTransforms()

	var best *scene.Node
	bestT := float32(0)
	v.root.Walk(func(n *scene.Node) {
		if !n.IsLeaf() {
			return
		}
		vol := n.Bounds().Clone()
		vol.Transform(worlds[n])
		if t, hit := ray.IntersectVolume(vol); hit {
			if best == nil || t < bestT {
				best, bestT = n, t
			}
		}
	})

	v.picked = best
	if best != nil {
		logger.Info("picked",
			zap.String("node", best.Name()),
			zap.Float32("distance", bestT),
		)
	} else {
		logger.Debug("pick missed")
	}
}
