// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Camera    CameraConfig    `yaml:"camera"`
	Highlight HighlightConfig `yaml:"highlight"`
	Viewer    ViewerConfig    `yaml:"viewer"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// CameraConfig holds the orbit camera's start pose and limits.
// Angles are degrees.
type CameraConfig struct {
	Distance        float32 `yaml:"distance"`
	Heading         float32 `yaml:"heading"`
	Pitch           float32 `yaml:"pitch"`
	MinDistance     float32 `yaml:"min_distance"`
	MaxDistance     float32 `yaml:"max_distance"`
	MinPitch        float32 `yaml:"min_pitch"`
	MaxPitch        float32 `yaml:"max_pitch"`
	DragSensitivity float32 `yaml:"drag_sensitivity"`
	ZoomSensitivity float32 `yaml:"zoom_sensitivity"`
	SmoothZoom      bool    `yaml:"smooth_zoom"`
}

// HighlightConfig holds surface highlight behavior.
type HighlightConfig struct {
	DurationMs int        `yaml:"duration_ms"`
	Color      [3]float32 `yaml:"color"`
	MeshColor  [3]float32 `yaml:"mesh_color"`
	ShowEdges  bool       `yaml:"show_edges"`
	ShowAxes   bool       `yaml:"show_axes"`
}

// ViewerConfig holds general viewer behavior.
type ViewerConfig struct {
	WatchFile bool `yaml:"watch_file"` // reload the model when the file changes
	FPS       int  `yaml:"fps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the viewer's default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      800,
			Height:     600,
			Fullscreen: false,
			VSync:      true,
		},
		Camera: CameraConfig{
			Distance:        5.0,
			Heading:         35.0,
			Pitch:           35.0,
			MinDistance:     1.0,
			MaxDistance:     5.0,
			MinPitch:        0.0,
			MaxPitch:        85.0,
			DragSensitivity: 0.5,
			ZoomSensitivity: 0.25,
			SmoothZoom:      true,
		},
		Highlight: HighlightConfig{
			DurationMs: 1000,
			Color:      [3]float32{1, 0, 0},
			MeshColor:  [3]float32{0, 0, 1},
			ShowEdges:  true,
			ShowAxes:   true,
		},
		Viewer: ViewerConfig{
			WatchFile: false,
			FPS:       60,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
