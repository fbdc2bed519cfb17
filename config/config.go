package config

import (
	"encoding/json"
	"os"
	"strings"
)

// Config holds runtime configuration for the editor and app behavior.
// Fields may be loaded from a JSON file and overridden by environment
// variables and command-line flags.
type Config struct {
	Debug     bool   `json:"debug"`
	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`

	// Pointer handling
	HandleThresholdPx float64 `json:"handle_threshold_px"`
	ClickSlopPx       float64 `json:"click_slop_px"`

	// Pacing
	RepaintIntervalMs int `json:"repaint_interval_ms"`
	ZoomDebounceMs    int `json:"zoom_debounce_ms"`
	FrameIntervalMs   int `json:"frame_interval_ms"`
	TickMs            int `json:"tick_ms"`

	// Viewport
	InitialScale    float64 `json:"initial_scale"`
	WheelDeltaMin   int     `json:"wheel_delta_min"`
	PreviewMaxPx    int     `json:"preview_max_px"`
	ScaledCacheSize int     `json:"scaled_cache_size"`

	RegionNamePrefix string `json:"region_name_prefix"`

	// Offset between the canvas window's reported origin and its drawing area.
	CanvasOffsetX int `json:"canvas_offset_x"`
	CanvasOffsetY int `json:"canvas_offset_y"`

	// Overlay colours (#rrggbb) and selected fill opacity
	StyleSelected  string  `json:"style_selected"`
	StyleBorder    string  `json:"style_border"`
	StyleCreate    string  `json:"style_create"`
	StyleFillAlpha float64 `json:"style_fill_alpha"`

	LastImagePath string `json:"last_image_path"`
	ExportDir     string `json:"export_dir"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:             false,
		LogLevel:          "info",
		LogFormat:         "json",
		HandleThresholdPx: 10,
		ClickSlopPx:       3,
		RepaintIntervalMs: 750,
		ZoomDebounceMs:    125,
		FrameIntervalMs:   16,
		TickMs:            16,
		InitialScale:      1.0,
		WheelDeltaMin:     100,
		PreviewMaxPx:      240,
		ScaledCacheSize:   6,
		RegionNamePrefix:  "Region",
		StyleSelected:     "#9ae9bd",
		StyleBorder:       "#c9c9c9",
		StyleCreate:       "#8abde6",
		StyleFillAlpha:    0.2,
		ExportDir:         "crops",
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	d := DefaultConfig()
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug", "info", "warn", "error":
		c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	default:
		c.LogLevel = d.LogLevel
	}
	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "json", "text":
		c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	default:
		c.LogFormat = d.LogFormat
	}
	if c.HandleThresholdPx <= 0 {
		c.HandleThresholdPx = d.HandleThresholdPx
	}
	if c.ClickSlopPx < 0 {
		c.ClickSlopPx = d.ClickSlopPx
	}
	if c.RepaintIntervalMs <= 0 {
		c.RepaintIntervalMs = d.RepaintIntervalMs
	}
	if c.ZoomDebounceMs <= 0 {
		c.ZoomDebounceMs = d.ZoomDebounceMs
	}
	if c.FrameIntervalMs <= 0 {
		c.FrameIntervalMs = d.FrameIntervalMs
	}
	if c.TickMs <= 0 {
		c.TickMs = d.TickMs
	}
	if c.InitialScale <= 0 {
		c.InitialScale = d.InitialScale
	}
	if c.WheelDeltaMin < 0 {
		c.WheelDeltaMin = d.WheelDeltaMin
	}
	if c.PreviewMaxPx < 16 {
		c.PreviewMaxPx = d.PreviewMaxPx
	}
	if c.ScaledCacheSize < 1 {
		c.ScaledCacheSize = d.ScaledCacheSize
	}
	if strings.TrimSpace(c.RegionNamePrefix) == "" {
		c.RegionNamePrefix = d.RegionNamePrefix
	}
	if c.StyleFillAlpha < 0 || c.StyleFillAlpha > 1 {
		c.StyleFillAlpha = d.StyleFillAlpha
	}
	if strings.TrimSpace(c.ExportDir) == "" {
		c.ExportDir = d.ExportDir
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
