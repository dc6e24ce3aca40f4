package wardrobe

import (
	"fmt"
	"strings"

	"avatar-wardrobe/models"
)

// Part is a sub-region of a set. Colorable parts contribute a color layer.
type Part struct {
	ID         string
	Type       string
	Colorable  bool
	Index      int
	ColorIndex int
}

// Set is one concrete catalog item of a set type
type Set struct {
	ID            string
	Gender        models.Gender
	Club          int
	Colorable     int
	Preselectable bool
	Selectable    bool

	parts     map[string]Part
	partOrder []string
}

// NewSet creates a set without parts
func NewSet(id string, gender models.Gender, club, colorable int, preselectable, selectable bool) *Set {
	return &Set{
		ID:            id,
		Gender:        gender,
		Club:          club,
		Colorable:     colorable,
		Preselectable: preselectable,
		Selectable:    selectable,
		parts:         make(map[string]Part),
	}
}

// AddPart adds a part, replacing any part with the same type and id.
// Part ids repeat across part types of one set (bd-1, hd-1, lh-1, ...).
func (s *Set) AddPart(p Part) {
	key := p.Type + ":" + p.ID
	if _, exists := s.parts[key]; !exists {
		s.partOrder = append(s.partOrder, key)
	}
	s.parts[key] = p
}

// Parts returns the parts in source order
func (s *Set) Parts() []Part {
	out := make([]Part, 0, len(s.partOrder))
	for _, id := range s.partOrder {
		out = append(out, s.parts[id])
	}
	return out
}

// MaxColorLayers is the number of independent color layers the set supports:
// the highest color index among colorable parts, or the set's own colorable
// flag when no part is colorable.
func (s *Set) MaxColorLayers() int {
	layers := 0
	found := false
	for _, p := range s.parts {
		if !p.Colorable {
			continue
		}
		found = true
		layers = max(layers, p.ColorIndex)
	}
	if !found {
		return s.Colorable
	}
	return layers
}

// Preview returns the preview token shown for the set in option lists
func (s *Set) Preview() string {
	return s.ID
}

// CheckColorLayer validates a 0-based color layer index against the set
func (s *Set) CheckColorLayer(layer int) error {
	if layers := s.MaxColorLayers(); layer < 0 || layer >= layers {
		return fmt.Errorf("set %s has %d color layers, got layer %d: %w", s.ID, layers, layer, ErrLayerOutOfRange)
	}
	return nil
}

// CheckColorLayers validates that a dash-joined color has no more layers than
// the set supports. An empty color always passes.
func (s *Set) CheckColorLayers(color string) error {
	if color == "" {
		return nil
	}
	count := len(strings.Split(color, "-"))
	if layers := s.MaxColorLayers(); count > layers {
		return fmt.Errorf("set %s has %d color layers, got %d: %w", s.ID, layers, count, ErrLayerOutOfRange)
	}
	return nil
}
