package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Status is a point-in-time view of the editor for the status bar.
type Status struct {
	Mode         string
	Scale        float64
	Regions      int
	Selected     string
	Rotation     int
	PreviewBytes int
	Source       string
	SourceW      int
	SourceH      int
	LoadedAt     time.Time
	LastError    string
}

// StatusModel accumulates status fields between ticks and reports whether
// anything changed since the last Take. The zero value is ready to use.
// No synchronization needed: updates occur on the UI thread tick.
type StatusModel struct {
	cur   Status
	dirty bool
}

func NewStatusModel() *StatusModel { return &StatusModel{dirty: true} }

// Set replaces the status, marking the model dirty if anything differs.
func (m *StatusModel) Set(s Status) {
	if m == nil {
		return
	}
	if s != m.cur {
		m.cur = s
		m.dirty = true
	}
}

// Current returns the latest status.
func (m *StatusModel) Current() Status {
	if m == nil {
		return Status{}
	}
	return m.cur
}

// Take returns the status and whether it changed since the previous Take.
func (m *StatusModel) Take() (Status, bool) {
	if m == nil {
		return Status{}, false
	}
	changed := m.dirty
	m.dirty = false
	return m.cur, changed
}

// Line renders the status as a single human readable line.
func (s Status) Line(now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Mode: %s | Zoom: %s%% | Regions: %d", s.Mode, humanize.Ftoa(s.Scale*100), s.Regions)
	if s.Selected != "" {
		fmt.Fprintf(&b, " | Selected: %s", s.Selected)
		if s.Rotation != 0 {
			fmt.Fprintf(&b, " (%d°)", s.Rotation*90)
		}
		if s.PreviewBytes > 0 {
			fmt.Fprintf(&b, " [%s]", humanize.Bytes(uint64(s.PreviewBytes)))
		}
	}
	if s.Source != "" {
		fmt.Fprintf(&b, " | %s %dx%d", s.Source, s.SourceW, s.SourceH)
		if !s.LoadedAt.IsZero() {
			fmt.Fprintf(&b, " loaded %s", humanize.RelTime(s.LoadedAt, now, "ago", "from now"))
		}
	}
	if s.LastError != "" {
		fmt.Fprintf(&b, " | Error: %s", s.LastError)
	}
	return b.String()
}
