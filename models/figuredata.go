package models

// FigureData is the catalog source after attribute conversion.
// Colors or Sets are nil when the section is missing from the document.
type FigureData struct {
	Colors *ColorsData
	Sets   *SetsData
}

// ColorsData holds every palette of the colors section
type ColorsData struct {
	Palettes []PaletteData
}

// PaletteData is one palette node with its colors
type PaletteData struct {
	ID     string
	Colors []ColorData
}

// ColorData is one selectable color
type ColorData struct {
	ID         string
	Index      int
	Club       int
	Selectable bool
	Hex        string
}

// SetsData holds every set-type of the sets section
type SetsData struct {
	SetTypes []SetTypeData
}

// SetTypeData is one body-layer type with its sets
type SetTypeData struct {
	Type      string
	PaletteID string
	MandM0    bool
	MandM1    bool
	MandF0    bool
	MandF1    bool
	Sets      []SetData
}

// SetData is one selectable item of a set-type
type SetData struct {
	ID            string
	Gender        Gender
	Club          int
	Colorable     int
	Preselectable bool
	Selectable    bool
	Parts         []PartData
}

// PartData is one sub-region of a set
type PartData struct {
	ID         string
	Type       string
	Colorable  bool
	Index      int
	ColorIndex int
}

// IconCategory is one wardrobe category icon with its sub-category icons
type IconCategory struct {
	Main string            `json:"main"`
	Subs map[string]string `json:"subs"`
}

// WardrobeIcons maps a category (body, hair, tops, bottoms) to its icons
type WardrobeIcons map[string]IconCategory

// CatalogSource is what the catalog is built from
type CatalogSource struct {
	Sets  *FigureData
	Icons WardrobeIcons
}
