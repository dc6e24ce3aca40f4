package wardrobe

import (
	"fmt"
	"log"
	"strings"

	"avatar-wardrobe/models"
)

// Option is the lightweight record shown for one set in a picker
type Option struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Preview string `json:"preview"`
}

// SetType is one body-layer type (hr, hd, ch, ...) owning all of its sets
type SetType struct {
	Type      string
	PaletteID string
	MandM0    bool
	MandM1    bool
	MandF0    bool
	MandF1    bool

	sets     map[string]*Set
	setOrder []string
	palette  *Palette
}

// NewSetType creates a set type with no sets and no bound palette
func NewSetType(typeCode, paletteID string, mandM0, mandM1, mandF0, mandF1 bool) *SetType {
	return &SetType{
		Type:      typeCode,
		PaletteID: paletteID,
		MandM0:    mandM0,
		MandM1:    mandM1,
		MandF0:    mandF0,
		MandF1:    mandF1,
		sets:      make(map[string]*Set),
	}
}

// AddSet adds a set, replacing any set with the same id
func (st *SetType) AddSet(s *Set) {
	if _, exists := st.sets[s.ID]; !exists {
		st.setOrder = append(st.setOrder, s.ID)
	}
	st.sets[s.ID] = s
}

// Set returns the set with the given id
func (st *SetType) Set(id string) (*Set, error) {
	s, ok := st.sets[id]
	if !ok {
		return nil, fmt.Errorf("set %s in %s: %w", id, st.Type, ErrUnknownSet)
	}
	return s, nil
}

// Sets returns the sets in source order
func (st *SetType) Sets() []*Set {
	out := make([]*Set, 0, len(st.setOrder))
	for _, id := range st.setOrder {
		out = append(out, st.sets[id])
	}
	return out
}

// BindPalette resolves PaletteID against the catalog palettes.
// The palette stays unbound when the id is missing.
func (st *SetType) BindPalette(palettes map[string]*Palette) error {
	if st.PaletteID == "" {
		return fmt.Errorf("set type %s: palette id not set up: %w", st.Type, ErrPaletteNotBound)
	}
	p, ok := palettes[st.PaletteID]
	if !ok {
		return fmt.Errorf("set type %s: palette %s not found: %w", st.Type, st.PaletteID, ErrPaletteNotBound)
	}
	st.palette = p
	return nil
}

// Palette returns the bound palette, nil when unbound
func (st *SetType) Palette() *Palette {
	return st.palette
}

// Palettes returns, for every set with at least one color layer, one palette
// per layer.
func (st *SetType) Palettes() (map[string][]*Palette, error) {
	if st.palette == nil {
		return nil, fmt.Errorf("set type %s: %w", st.Type, ErrPaletteNotBound)
	}

	out := make(map[string][]*Palette)
	for _, s := range st.Sets() {
		if s.MaxColorLayers() < 1 {
			continue
		}
		out[s.ID] = st.layers(s)
	}
	return out, nil
}

// SetPalettes returns one palette per color layer of a single set
func (st *SetType) SetPalettes(setID string) ([]*Palette, error) {
	if st.palette == nil {
		return nil, fmt.Errorf("set type %s: %w", st.Type, ErrPaletteNotBound)
	}
	s, err := st.Set(setID)
	if err != nil {
		return nil, err
	}
	return st.layers(s), nil
}

func (st *SetType) layers(s *Set) []*Palette {
	n := s.MaxColorLayers()
	out := make([]*Palette, 0, max(n, 0))
	for i := 0; i < n; i++ {
		out = append(out, st.palette)
	}
	return out
}

// CheckColor verifies that every layer of a color value ("66-82") belongs to
// the bound palette. Empty layers are allowed.
func (st *SetType) CheckColor(color string) error {
	if color == "" {
		return nil
	}
	if st.palette == nil {
		return fmt.Errorf("set type %s: %w", st.Type, ErrPaletteNotBound)
	}
	for _, id := range strings.Split(color, "-") {
		if id == "" {
			continue
		}
		if _, ok := st.palette.Color(id); !ok {
			return fmt.Errorf("color %s in palette %s: %w", id, st.palette.ID, ErrUnknownColor)
		}
	}
	return nil
}

// CreateOptions lists the sets visible to gender (M or F, case-insensitive)
func (st *SetType) CreateOptions(gender string) ([]Option, error) {
	target := models.Gender(strings.ToUpper(strings.TrimSpace(gender)))
	if target != models.GenderMale && target != models.GenderFemale {
		return nil, fmt.Errorf("unknown gender %q: %w", gender, ErrInvalidGender)
	}

	options := make([]Option, 0, len(st.setOrder))
	for _, s := range st.Sets() {
		if !s.Gender.Matches(target) {
			continue
		}
		options = append(options, Option{ID: s.ID, Name: s.ID, Preview: s.Preview()})
	}

	log.Printf("🔍 CreateOptions: type=%s gender=%s options=%d/%d", st.Type, target, len(options), len(st.setOrder))
	return options, nil
}
