package model

import (
	"strings"
	"testing"
	"time"
)

func TestStatusModel_TakeReportsChanges(t *testing.T) {
	m := NewStatusModel()
	if _, changed := m.Take(); !changed {
		t.Fatalf("fresh model should report a change so the view paints once")
	}
	if _, changed := m.Take(); changed {
		t.Fatalf("second take without updates should be clean")
	}
	m.Set(Status{Mode: "select", Scale: 1})
	if s, changed := m.Take(); !changed || s.Mode != "select" {
		t.Fatalf("expected change after Set")
	}
	m.Set(Status{Mode: "select", Scale: 1})
	if _, changed := m.Take(); changed {
		t.Fatalf("identical Set must not dirty the model")
	}
}

func TestStatusModel_NilSafe(t *testing.T) {
	var m *StatusModel
	m.Set(Status{Mode: "x"})
	if _, changed := m.Take(); changed {
		t.Fatalf("nil model never changes")
	}
}

func TestStatusLine(t *testing.T) {
	now := time.Unix(1000, 0)
	s := Status{
		Mode:         "create",
		Scale:        0.25,
		Regions:      3,
		Selected:     "Region 2",
		Rotation:     1,
		PreviewBytes: 2048,
		Source:       "scan.png",
		SourceW:      1000,
		SourceH:      800,
		LoadedAt:     now.Add(-2 * time.Minute),
	}
	line := s.Line(now)
	for _, want := range []string{"Mode: create", "Zoom: 25%", "Regions: 3", "Selected: Region 2", "(90°)", "2.0 kB", "scan.png 1000x800", "2 minutes ago"} {
		if !strings.Contains(line, want) {
			t.Fatalf("status line %q missing %q", line, want)
		}
	}
}
