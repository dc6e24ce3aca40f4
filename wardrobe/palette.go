package wardrobe

// Color is one selectable color of a palette
type Color struct {
	ID         string `json:"id"`
	Index      int    `json:"index"`
	Club       int    `json:"club"`
	Selectable bool   `json:"selectable"`
	Hex        string `json:"hex"`
}

// Palette is a named collection of colors, kept in source order
type Palette struct {
	ID     string
	colors map[string]Color
	order  []string
}

// NewPalette creates an empty palette
func NewPalette(id string) *Palette {
	return &Palette{ID: id, colors: make(map[string]Color)}
}

// AddColor adds a color, replacing any color with the same id
func (p *Palette) AddColor(c Color) {
	if _, exists := p.colors[c.ID]; !exists {
		p.order = append(p.order, c.ID)
	}
	p.colors[c.ID] = c
}

// Color returns the color with the given id
func (p *Palette) Color(id string) (Color, bool) {
	c, ok := p.colors[id]
	return c, ok
}

// Colors returns all colors in source order
func (p *Palette) Colors() []Color {
	out := make([]Color, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.colors[id])
	}
	return out
}

// Len returns the number of colors
func (p *Palette) Len() int {
	return len(p.order)
}
