package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	cfg.HandleThresholdPx = 14
	cfg.LastImagePath = "/tmp/scan.tiff"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.HandleThresholdPx != 14 || got.LastImagePath != "/tmp/scan.tiff" {
		t.Fatalf("round trip mismatch %+v", got)
	}
}

func TestLoad_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if cfg.RepaintIntervalMs != 750 {
		t.Fatalf("expected defaults alongside error")
	}
}

func TestValidate_Clamps(t *testing.T) {
	cfg := &Config{LogLevel: "LOUD", StyleFillAlpha: 3, ClickSlopPx: -1}
	_ = cfg.Validate()
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Fatalf("unexpected log settings %q %q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.HandleThresholdPx != 10 || cfg.ClickSlopPx != 3 || cfg.StyleFillAlpha != 0.2 {
		t.Fatalf("unexpected clamp results %+v", cfg)
	}
	if cfg.RegionNamePrefix != "Region" || cfg.ScaledCacheSize != 6 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(map[string]string{
		EnvPrefix + "DEBUG":               "true",
		EnvPrefix + "HANDLE_THRESHOLD_PX": "12.5",
		EnvPrefix + "ZOOM_DEBOUNCE_MS":    "200",
		EnvPrefix + "REGION_NAME_PREFIX":  "Crop",
		"UNRELATED":                       "x",
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !cfg.Debug || cfg.HandleThresholdPx != 12.5 || cfg.ZoomDebounceMs != 200 || cfg.RegionNamePrefix != "Crop" {
		t.Fatalf("overrides not applied %+v", cfg)
	}
	if err := cfg.ApplyEnv(map[string]string{EnvPrefix + "TICK_MS": "fast"}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadWithEnv_File(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "test.env")
	if err := os.WriteFile(envPath, []byte("REGION_CROPPER_CLICK_SLOP_PX=5\nREGION_CROPPER_LOG_LEVEL=debug\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv(EnvFileVar, envPath)
	t.Setenv(EnvPrefix+"LOG_LEVEL", "warn")
	cfg, err := LoadWithEnv(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ClickSlopPx != 5 {
		t.Fatalf("env file value not applied: %v", cfg.ClickSlopPx)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("process env should win over file, got %q", cfg.LogLevel)
	}
}
