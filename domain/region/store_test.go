package region

import (
	"log/slog"
	"testing"

	"github.com/soocke/region-cropper-go/domain/geometry"
	"github.com/soocke/region-cropper-go/ui/images"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

type recorder struct {
	changes    []Change
	selections [][2]*Region
}

func (r *recorder) attach(s *Store) {
	s.OnChange(func(c Change) { r.changes = append(r.changes, c) })
	s.OnSelection(func(prev, next *Region) { r.selections = append(r.selections, [2]*Region{prev, next}) })
}

func rect(x, y, w, h float64) geometry.Rectangle {
	return geometry.Rectangle{X: x, Y: y, Width: w, Height: h}
}

func TestStore_AddDoesNotSelect(t *testing.T) {
	s := NewStore("Region", discardLogger)
	rec := &recorder{}
	rec.attach(s)
	a := New(rect(0, 0, 10, 10))
	s.Add(a)
	if s.Len() != 1 || s.Selected() != nil {
		t.Fatalf("add must append without selecting")
	}
	if a.Name != "Region 1" {
		t.Fatalf("expected generated name, got %q", a.Name)
	}
	if len(rec.changes) != 1 || rec.changes[0].Kind != ChangeAdded {
		t.Fatalf("expected one added change, got %+v", rec.changes)
	}
	s.Add(a)
	if s.Len() != 1 {
		t.Fatalf("duplicate add should be ignored")
	}
}

func TestStore_AtMostOneSelected(t *testing.T) {
	s := NewStore("", discardLogger)
	a, b := New(rect(0, 0, 1, 1)), New(rect(2, 2, 1, 1))
	s.Add(a, b)
	s.Select(a)
	s.Select(b)
	if !s.IsSelected(b) || s.IsSelected(a) {
		t.Fatalf("selection should move to b")
	}
	count := 0
	for _, r := range s.Regions() {
		if s.IsSelected(r) {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one selected, got %d", count)
	}
}

func TestStore_SelectUnknownRejected(t *testing.T) {
	s := NewStore("", discardLogger)
	a := New(rect(0, 0, 1, 1))
	s.Add(a)
	s.Select(a)
	if s.Select(New(rect(5, 5, 1, 1))) {
		t.Fatalf("selecting a foreign region should fail")
	}
	if s.Selected() != a {
		t.Fatalf("selection should be unchanged")
	}
	if !s.Select(nil) || s.Selected() != nil {
		t.Fatalf("nil selection should clear")
	}
}

func TestStore_RemoveSelectedClearsSelection(t *testing.T) {
	s := NewStore("", discardLogger)
	rec := &recorder{}
	rec.attach(s)
	a, b := New(rect(0, 0, 1, 1)), New(rect(2, 2, 1, 1))
	s.Add(a, b)
	s.Select(b)
	if !s.Remove(b) {
		t.Fatalf("remove failed")
	}
	if s.Selected() != nil || s.Len() != 1 || s.At(0) != a {
		t.Fatalf("unexpected state after remove")
	}
	last := rec.selections[len(rec.selections)-1]
	if last[0] != b || last[1] != nil {
		t.Fatalf("expected selection b->nil, got %+v", last)
	}
	if s.Remove(b) {
		t.Fatalf("second remove should report false")
	}
}

func TestStore_RemoveUnselectedKeepsSelection(t *testing.T) {
	s := NewStore("", discardLogger)
	a, b := New(rect(0, 0, 1, 1)), New(rect(2, 2, 1, 1))
	s.Add(a, b)
	s.Select(a)
	s.Remove(b)
	if s.Selected() != a {
		t.Fatalf("selection should survive removal of another region")
	}
}

func TestStore_ClearResetsNames(t *testing.T) {
	s := NewStore("Crop", discardLogger)
	s.Add(New(rect(0, 0, 1, 1)), New(rect(0, 0, 1, 1)))
	s.Select(s.At(1))
	s.Clear()
	if s.Len() != 0 || s.Selected() != nil {
		t.Fatalf("clear should empty the store")
	}
	r := New(rect(0, 0, 1, 1))
	s.Add(r)
	if r.Name != "Crop 1" {
		t.Fatalf("expected name sequence to restart, got %q", r.Name)
	}
}

func TestStore_RenameAndUpdate(t *testing.T) {
	s := NewStore("", discardLogger)
	rec := &recorder{}
	rec.attach(s)
	a := New(rect(0, 0, 1, 1))
	s.Add(a)
	if s.Rename(a, "   ") {
		t.Fatalf("blank rename should be rejected")
	}
	if !s.Rename(a, "header") || a.Name != "header" {
		t.Fatalf("rename failed")
	}
	if rec.changes[len(rec.changes)-1].Kind != ChangeUpdated {
		t.Fatalf("rename should emit update")
	}
}

func TestRegion_SetRectangleDropsPreview(t *testing.T) {
	r := New(rect(0, 0, 5, 5))
	r.Preview = &images.Encoded{Format: images.FormatPNG, Data: []byte{1}}
	r.SetRectangle(rect(1, 1, 5, 5))
	if r.HasPreview() {
		t.Fatalf("preview should be invalidated")
	}
	for i := 0; i < 5; i++ {
		r.RotateClockwise()
	}
	if r.Rotation != 1 || r.Degrees() != 90 {
		t.Fatalf("rotation should wrap, got %d", r.Rotation)
	}
}
