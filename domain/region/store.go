package region

import (
	"fmt"
	"log/slog"
	"strings"
)

// ChangeKind tells listeners what happened to the region list.
type ChangeKind int

const (
	ChangeAdded ChangeKind = iota
	ChangeRemoved
	ChangeUpdated
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// Change describes one mutation of the store.
type Change struct {
	Kind    ChangeKind
	Regions []*Region
}

// ChangeListener observes region list mutations.
type ChangeListener func(Change)

// SelectionListener is called whenever the selected region changes.
type SelectionListener func(prev, next *Region)

// Store owns the ordered region list and the single current selection.
// Later entries are drawn on top of earlier ones. Store is not safe for
// concurrent use; all access happens on the UI tick.
type Store struct {
	regions  []*Region
	selected *Region
	prefix   string
	sequence int
	logger   *slog.Logger
	onChange []ChangeListener
	onSelect []SelectionListener
}

// NewStore creates an empty store. prefix is used for generated names.
func NewStore(prefix string, logger *slog.Logger) *Store {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "Region"
	}
	return &Store{prefix: prefix, logger: logger}
}

// OnChange registers a list mutation listener.
func (s *Store) OnChange(l ChangeListener) {
	if l != nil {
		s.onChange = append(s.onChange, l)
	}
}

// OnSelection registers a selection listener.
func (s *Store) OnSelection(l SelectionListener) {
	if l != nil {
		s.onSelect = append(s.onSelect, l)
	}
}

// NextName returns the next generated name and advances the sequence.
func (s *Store) NextName() string {
	s.sequence++
	return fmt.Sprintf("%s %d", s.prefix, s.sequence)
}

// Add appends regions in order. It does not change the selection.
func (s *Store) Add(rs ...*Region) {
	added := make([]*Region, 0, len(rs))
	for _, r := range rs {
		if r == nil || s.IndexOf(r) >= 0 {
			continue
		}
		if r.ID == "" {
			r.ID = NewID()
		}
		if strings.TrimSpace(r.Name) == "" {
			r.Name = s.NextName()
		}
		s.regions = append(s.regions, r)
		added = append(added, r)
	}
	if len(added) == 0 {
		return
	}
	if s.logger != nil {
		s.logger.Debug("regions added", "count", len(added), "total", len(s.regions))
	}
	s.emit(Change{Kind: ChangeAdded, Regions: added})
}

// Remove deletes r. If r was selected the selection becomes empty.
// It returns false when r is not in the store.
func (s *Store) Remove(r *Region) bool {
	idx := s.IndexOf(r)
	if idx < 0 {
		return false
	}
	s.regions = append(s.regions[:idx], s.regions[idx+1:]...)
	if s.selected == r {
		s.setSelected(nil)
	}
	if s.logger != nil {
		s.logger.Debug("region removed", "name", r.Name, "total", len(s.regions))
	}
	s.emit(Change{Kind: ChangeRemoved, Regions: []*Region{r}})
	return true
}

// Clear removes every region, drops the selection and restarts name generation.
func (s *Store) Clear() {
	removed := s.regions
	s.regions = nil
	s.sequence = 0
	s.setSelected(nil)
	if len(removed) > 0 {
		s.emit(Change{Kind: ChangeRemoved, Regions: removed})
	}
}

// Select makes r the current selection; nil clears it. Selecting a region
// that is not in the store is rejected and leaves the selection unchanged.
func (s *Store) Select(r *Region) bool {
	if r != nil && s.IndexOf(r) < 0 {
		return false
	}
	s.setSelected(r)
	return true
}

// Update notifies listeners that r changed in place (geometry, name, rotation).
func (s *Store) Update(r *Region) {
	if s.IndexOf(r) < 0 {
		return
	}
	s.emit(Change{Kind: ChangeUpdated, Regions: []*Region{r}})
}

// Rename sets a new display name. Blank names are ignored.
func (s *Store) Rename(r *Region, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || s.IndexOf(r) < 0 {
		return false
	}
	r.Name = name
	s.Update(r)
	return true
}

// Selected returns the selected region or nil.
func (s *Store) Selected() *Region { return s.selected }

// IsSelected reports whether r is the current selection.
func (s *Store) IsSelected(r *Region) bool { return r != nil && s.selected == r }

// Len returns the number of regions.
func (s *Store) Len() int { return len(s.regions) }

// At returns the region at index i in draw order.
func (s *Store) At(i int) *Region {
	if i < 0 || i >= len(s.regions) {
		return nil
	}
	return s.regions[i]
}

// Regions returns a copy of the region list in draw order.
func (s *Store) Regions() []*Region {
	out := make([]*Region, len(s.regions))
	copy(out, s.regions)
	return out
}

// IndexOf returns the position of r or -1.
func (s *Store) IndexOf(r *Region) int {
	if r == nil {
		return -1
	}
	for i, x := range s.regions {
		if x == r {
			return i
		}
	}
	return -1
}

func (s *Store) setSelected(r *Region) {
	prev := s.selected
	if prev == r {
		return
	}
	s.selected = r
	for _, l := range s.onSelect {
		l(prev, r)
	}
}

func (s *Store) emit(c Change) {
	for _, l := range s.onChange {
		l(c)
	}
}
