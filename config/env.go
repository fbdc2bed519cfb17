package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "REGION_CROPPER_"

// EnvFileVar names the variable pointing at an optional .env file.
const EnvFileVar = EnvPrefix + "ENV"

// LoadWithEnv loads path and then applies overrides from the process
// environment and, if present, the .env file named by REGION_CROPPER_ENV
// (default ".env"). Process variables win over the file.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	envFile := os.Getenv(EnvFileVar)
	if envFile == "" {
		envFile = ".env"
	}
	vals := map[string]string{}
	if fileVals, ferr := godotenv.Read(envFile); ferr == nil {
		vals = fileVals
	} else if !os.IsNotExist(ferr) && os.Getenv(EnvFileVar) != "" {
		return cfg, fmt.Errorf("failed to read env file %s: %w", envFile, ferr)
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, EnvPrefix) {
			vals[k] = v
		}
	}
	if err := cfg.ApplyEnv(vals); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// ApplyEnv overrides fields from REGION_CROPPER_* keys in vals.
func (c *Config) ApplyEnv(vals map[string]string) error {
	get := func(name string) (string, bool) {
		v, ok := vals[EnvPrefix+name]
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}
	var errs []string
	setBool := func(name string, dst *bool) {
		if v, ok := get(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, name)
				return
			}
			*dst = b
		}
	}
	setInt := func(name string, dst *int) {
		if v, ok := get(name); ok {
			i, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, name)
				return
			}
			*dst = i
		}
	}
	setFloat := func(name string, dst *float64) {
		if v, ok := get(name); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, name)
				return
			}
			*dst = f
		}
	}
	setString := func(name string, dst *string) {
		if v, ok := get(name); ok {
			*dst = v
		}
	}
	setBool("DEBUG", &c.Debug)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("LOG_FORMAT", &c.LogFormat)
	setFloat("HANDLE_THRESHOLD_PX", &c.HandleThresholdPx)
	setFloat("CLICK_SLOP_PX", &c.ClickSlopPx)
	setInt("REPAINT_INTERVAL_MS", &c.RepaintIntervalMs)
	setInt("ZOOM_DEBOUNCE_MS", &c.ZoomDebounceMs)
	setInt("FRAME_INTERVAL_MS", &c.FrameIntervalMs)
	setInt("TICK_MS", &c.TickMs)
	setFloat("INITIAL_SCALE", &c.InitialScale)
	setInt("WHEEL_DELTA_MIN", &c.WheelDeltaMin)
	setInt("PREVIEW_MAX_PX", &c.PreviewMaxPx)
	setInt("SCALED_CACHE_SIZE", &c.ScaledCacheSize)
	setString("REGION_NAME_PREFIX", &c.RegionNamePrefix)
	setInt("CANVAS_OFFSET_X", &c.CanvasOffsetX)
	setInt("CANVAS_OFFSET_Y", &c.CanvasOffsetY)
	setString("STYLE_SELECTED", &c.StyleSelected)
	setString("STYLE_BORDER", &c.StyleBorder)
	setString("STYLE_CREATE", &c.StyleCreate)
	setFloat("STYLE_FILL_ALPHA", &c.StyleFillAlpha)
	setString("LAST_IMAGE_PATH", &c.LastImagePath)
	setString("EXPORT_DIR", &c.ExportDir)
	if len(errs) > 0 {
		return fmt.Errorf("invalid environment overrides: %s", strings.Join(errs, ", "))
	}
	return nil
}
