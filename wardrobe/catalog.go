package wardrobe

import (
	"fmt"
	"log"
	"sort"

	"avatar-wardrobe/models"
)

// Catalog is the queryable avatar asset catalog for one gender.
// Build it with Init then InitPalettes; it is read-only afterwards.
type Catalog struct {
	gender   models.Gender
	source   *models.CatalogSource
	palettes map[string]*Palette
	setTypes map[string]*SetType
	icons    models.WardrobeIcons
}

// NewCatalog creates an empty catalog for gender over source
func NewCatalog(gender models.Gender, source *models.CatalogSource) *Catalog {
	return &Catalog{
		gender:   gender,
		source:   source,
		palettes: make(map[string]*Palette),
		setTypes: make(map[string]*SetType),
		icons:    models.WardrobeIcons{},
	}
}

// Build creates a catalog and runs both init phases. Integrity errors are
// logged and returned, but the catalog is returned with whatever was built.
func Build(gender models.Gender, source *models.CatalogSource) (*Catalog, error) {
	c := NewCatalog(gender, source)
	err := c.Init()
	if err != nil {
		log.Printf("❌ Catalog: parse phase failed for gender=%s: %v", gender, err)
	}
	c.InitPalettes()
	return c, err
}

// Init is the parse phase: palettes from the colors section, then set types
// from the sets section, keeping only sets of the catalog gender or unisex.
func (c *Catalog) Init() error {
	if c.source == nil || c.source.Sets == nil {
		return fmt.Errorf("failed to load figure data assets")
	}
	data := c.source.Sets
	if data.Colors == nil {
		return ErrMissingColors
	}

	for category, icon := range c.source.Icons {
		c.icons[category] = icon
	}

	for _, pd := range data.Colors.Palettes {
		p := NewPalette(pd.ID)
		for _, cd := range pd.Colors {
			p.AddColor(Color{
				ID:         cd.ID,
				Index:      cd.Index,
				Club:       cd.Club,
				Selectable: cd.Selectable,
				Hex:        cd.Hex,
			})
		}
		c.palettes[pd.ID] = p
	}

	if data.Sets == nil {
		return ErrMissingSets
	}

	for _, std := range data.Sets.SetTypes {
		st := NewSetType(std.Type, std.PaletteID, std.MandM0, std.MandM1, std.MandF0, std.MandF1)
		for _, sd := range std.Sets {
			if !sd.Gender.Matches(c.gender) {
				continue
			}
			s := NewSet(sd.ID, sd.Gender, sd.Club, sd.Colorable, sd.Preselectable, sd.Selectable)
			for _, pd := range sd.Parts {
				s.AddPart(Part{
					ID:         pd.ID,
					Type:       pd.Type,
					Colorable:  pd.Colorable,
					Index:      pd.Index,
					ColorIndex: pd.ColorIndex,
				})
			}
			st.AddSet(s)
		}
		c.setTypes[std.Type] = st
	}

	log.Printf("✓ Catalog: parsed %d palettes and %d set types (gender=%s)", len(c.palettes), len(c.setTypes), c.gender)
	return nil
}

// InitPalettes is the bind phase. It must run after Init; unresolved
// palettes are logged and left unbound.
func (c *Catalog) InitPalettes() {
	bound := 0
	for _, st := range c.setTypes {
		if err := st.BindPalette(c.palettes); err != nil {
			log.Printf("⚠️  Catalog: failed to fetch palette: %v", err)
			continue
		}
		bound++
	}
	log.Printf("✓ Catalog: bound palettes for %d/%d set types", bound, len(c.setTypes))
}

// Gender returns the gender the catalog was built for
func (c *Catalog) Gender() models.Gender {
	return c.gender
}

// SetType returns the set type for a type code
func (c *Catalog) SetType(typeCode string) (*SetType, error) {
	st, ok := c.setTypes[typeCode]
	if !ok {
		return nil, fmt.Errorf("set type %q: %w", typeCode, ErrUnknownSetType)
	}
	return st, nil
}

// SetTypes returns all set types ordered by type code
func (c *Catalog) SetTypes() []*SetType {
	out := make([]*SetType, 0, len(c.setTypes))
	for _, st := range c.setTypes {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// Palette returns a palette by id
func (c *Catalog) Palette(id string) (*Palette, bool) {
	p, ok := c.palettes[id]
	return p, ok
}

// Icons returns the category icon table
func (c *Catalog) Icons() models.WardrobeIcons {
	return c.icons
}
