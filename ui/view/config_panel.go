package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/region-cropper-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel encapsulates the settings form. It owns its widgets and writes
// back into *config.Config on ApplyChanges. Pacing and style edits take effect
// through the onApply callback.
type ConfigPanel interface {
	Build(startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	ApplyChanges() // parses widget text into underlying config and persists
}

type configPanel struct {
	cfg      *config.Config
	cfgPath  string
	logger   *slog.Logger
	applyBtn *ButtonWidget
	widgets  map[string]*TextWidget // keyed by internal field id
	onApply  func(cfg *config.Config)
}

// NewConfigPanel creates the view bound to cfg.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger, onApply func(cfg *config.Config)) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, onApply: onApply, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Build(startRow int) (row int) {
	c := v.cfg
	row = startRow
	makeRow := func(id, label, value string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(16))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("handleThreshold", "Handle Threshold Px", fmt.Sprintf("%.1f", c.HandleThresholdPx))
	makeRow("clickSlop", "Click Slop Px", fmt.Sprintf("%.1f", c.ClickSlopPx))
	makeRow("repaintInterval", "Repaint Interval Ms", fmt.Sprintf("%d", c.RepaintIntervalMs))
	makeRow("zoomDebounce", "Zoom Debounce Ms", fmt.Sprintf("%d", c.ZoomDebounceMs))
	makeRow("wheelDeltaMin", "Wheel Delta Min", fmt.Sprintf("%d", c.WheelDeltaMin))
	makeRow("previewMax", "Preview Max Px", fmt.Sprintf("%d", c.PreviewMaxPx))
	makeRow("namePrefix", "Region Name Prefix", c.RegionNamePrefix)
	makeRow("exportDir", "Export Directory", c.ExportDir)
	makeRow("canvasOffsetX", "Canvas Offset X", fmt.Sprintf("%d", c.CanvasOffsetX))
	makeRow("canvasOffsetY", "Canvas Offset Y", fmt.Sprintf("%d", c.CanvasOffsetY))
	makeRow("styleSelected", "Selected Colour (#rrggbb)", c.StyleSelected)
	makeRow("styleBorder", "Border Colour (#rrggbb)", c.StyleBorder)
	makeRow("styleCreate", "Create Colour (#rrggbb)", c.StyleCreate)
	makeRow("fillAlpha", "Selected Fill Alpha (0-1)", fmt.Sprintf("%.2f", c.StyleFillAlpha))
	makeRow("debug", "Debug Samplers (true/false)", fmt.Sprintf("%t", c.Debug))
	v.applyBtn = Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *configPanel) text(w *TextWidget) string {
	if w == nil {
		return ""
	}
	parts := w.Get("1.0", END)
	return strings.Join(parts, "")
}

func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := *v.cfg // copy
	assignFloat := func(id string, dst *float64) {
		w := v.widgets[id]
		if w == nil {
			return
		}
		if f, ok := parseFloatField(strings.TrimSpace(v.text(w))); ok {
			*dst = f
		}
	}
	assignInt := func(id string, dst *int) {
		w := v.widgets[id]
		if w == nil {
			return
		}
		if i, ok := parseIntField(strings.TrimSpace(v.text(w))); ok {
			*dst = i
		}
	}
	assignBool := func(id string, dst *bool) {
		w := v.widgets[id]
		if w == nil {
			return
		}
		if b, ok := parseBoolLoose(strings.TrimSpace(v.text(w))); ok {
			*dst = b
		}
	}
	assignString := func(id string, dst *string) {
		if w := v.widgets[id]; w != nil {
			if val := strings.TrimSpace(v.text(w)); val != "" {
				*dst = val
			}
		}
	}
	assignFloat("handleThreshold", &cfg.HandleThresholdPx)
	assignFloat("clickSlop", &cfg.ClickSlopPx)
	assignInt("repaintInterval", &cfg.RepaintIntervalMs)
	assignInt("zoomDebounce", &cfg.ZoomDebounceMs)
	assignInt("wheelDeltaMin", &cfg.WheelDeltaMin)
	assignInt("previewMax", &cfg.PreviewMaxPx)
	assignString("namePrefix", &cfg.RegionNamePrefix)
	assignString("exportDir", &cfg.ExportDir)
	assignInt("canvasOffsetX", &cfg.CanvasOffsetX)
	assignInt("canvasOffsetY", &cfg.CanvasOffsetY)
	assignString("styleSelected", &cfg.StyleSelected)
	assignString("styleBorder", &cfg.StyleBorder)
	assignString("styleCreate", &cfg.StyleCreate)
	assignFloat("fillAlpha", &cfg.StyleFillAlpha)
	assignBool("debug", &cfg.Debug)
	if verr := cfg.Validate(); verr != nil {
		return
	}
	*v.cfg = cfg
	if v.onApply != nil {
		v.onApply(v.cfg)
	}
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else {
		if v.logger != nil {
			v.logger.Info("config saved", "path", v.cfgPath)
		}
	}
}

// parsing helpers (unexported)
func parseFloatField(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}
func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
