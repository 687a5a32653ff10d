package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/cullkit/pkg/math"
)

func TestViewMatrixCenterAhead(t *testing.T) {
	c := New(16.0 / 9.0)
	c.Center = math.Vec3{X: 3, Y: 1, Z: -2}

	// The orbit center lands on the view axis in front of the camera.
	view := c.ViewMatrix()
	eye := view.TransformVec3(c.Center)

	if math32.Abs(eye.X) > 0.001 || math32.Abs(eye.Y) > 0.001 {
		t.Errorf("center in eye space = %v, want on the -Z axis", eye)
	}
	if math32.Abs(-eye.Z-c.Distance) > 0.01 {
		t.Errorf("center depth = %v, want distance %v", -eye.Z, c.Distance)
	}
}

func TestFrustumMatchesProjection(t *testing.T) {
	c := New(1)
	f := c.Frustum()

	if f.ZNear != c.Near || f.ZFar != c.Far {
		t.Errorf("frustum near/far = %v/%v, want %v/%v", f.ZNear, f.ZFar, c.Near, c.Far)
	}
}

func TestHandleZoomClamps(t *testing.T) {
	c := New(1)

	for i := 0; i < 100; i++ {
		c.HandleZoom(10)
	}
	if c.Distance < c.MinDistance {
		t.Errorf("Distance = %v, want clamped at %v", c.Distance, c.MinDistance)
	}

	for i := 0; i < 100; i++ {
		c.HandleZoom(-10)
	}
	if c.Distance > c.MaxDistance {
		t.Errorf("Distance = %v, want clamped at %v", c.Distance, c.MaxDistance)
	}
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := New(1)
	c.HandleDrag(0, 10000)
	if c.RotationX > c.MaxPitch {
		t.Errorf("RotationX = %v, want clamped at %v", c.RotationX, c.MaxPitch)
	}
}
