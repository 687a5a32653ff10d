// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Scene    SceneConfig    `yaml:"scene"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// CameraConfig holds camera projection settings.
type CameraConfig struct {
	FovDegrees float32 `yaml:"fov_degrees"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

// SceneConfig controls the generated test scene.
type SceneConfig struct {
	Seed        int64   `yaml:"seed"`
	ObjectCount int     `yaml:"object_count"`
	WorldSize   float32 `yaml:"world_size"`
	GroupSize   int     `yaml:"group_size"`
}

// DebugConfig holds debug visualization settings.
type DebugConfig struct {
	ShowBounds    bool `yaml:"show_bounds"`
	ShowFrustum   bool `yaml:"show_frustum"`
	FreezeCamera  bool `yaml:"freeze_camera"`
	ShowCullStats bool `yaml:"show_cull_stats"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Camera: CameraConfig{
			FovDegrees: 60,
			Near:       0.5,
			Far:        500,
		},
		Scene: SceneConfig{
			Seed:        1,
			ObjectCount: 512,
			WorldSize:   200,
			GroupSize:   16,
		},
		Debug: DebugConfig{
			ShowBounds:    true,
			ShowFrustum:   false,
			FreezeCamera:  false,
			ShowCullStats: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
