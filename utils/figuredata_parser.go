package utils

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"avatar-wardrobe/models"
)

// xmlFigureData mirrors the figuredata document. Attribute names stay in
// this file; the catalog only sees models.FigureData.
type xmlFigureData struct {
	XMLName xml.Name   `xml:"figuredata"`
	Colors  *xmlColors `xml:"colors"`
	Sets    *xmlSets   `xml:"sets"`
}

type xmlColors struct {
	Palettes []xmlPalette `xml:"palette"`
}

type xmlPalette struct {
	ID     string     `xml:"id,attr"`
	Colors []xmlColor `xml:"color"`
}

type xmlColor struct {
	ID         string `xml:"id,attr"`
	Index      string `xml:"index,attr"`
	Club       string `xml:"club,attr"`
	Selectable string `xml:"selectable,attr"`
	Hex        string `xml:",chardata"`
}

type xmlSets struct {
	SetTypes []xmlSetType `xml:"settype"`
}

type xmlSetType struct {
	Type      string   `xml:"type,attr"`
	PaletteID string   `xml:"paletteid,attr"`
	MandM0    string   `xml:"mand_m_0,attr"`
	MandM1    string   `xml:"mand_m_1,attr"`
	MandF0    string   `xml:"mand_f_0,attr"`
	MandF1    string   `xml:"mand_f_1,attr"`
	Sets      []xmlSet `xml:"set"`
}

type xmlSet struct {
	ID            string `xml:"id,attr"`
	Gender        string `xml:"gender,attr"`
	Club          string `xml:"club,attr"`
	Colorable     string `xml:"colorable,attr"`
	Preselectable string `xml:"preselectable,attr"`
	Selectable    string `xml:"selectable,attr"`
	// A set with a single part and a set with many decode the same way
	Parts []xmlPart `xml:"part"`
}

type xmlPart struct {
	ID         string `xml:"id,attr"`
	Type       string `xml:"type,attr"`
	Colorable  string `xml:"colorable,attr"`
	Index      string `xml:"index,attr"`
	ColorIndex string `xml:"colorindex,attr"`
}

// parseIntAttr converts a numeric attribute. Empty values are 0; anything
// else that is not a number is logged and treated as 0.
func parseIntAttr(name, value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("⚠️  Invalid numeric attribute %s=%q, using 0", name, value)
		return 0
	}
	return n
}

// parseFlagAttr converts a 0/1 (or true/false) attribute
func parseFlagAttr(name, value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true":
		return true
	case "false":
		return false
	}
	return parseIntAttr(name, value) != 0
}

// ParseFigureData reads a figuredata XML document
func ParseFigureData(r io.Reader) (*models.FigureData, error) {
	var doc xmlFigureData
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse figure data: %w", err)
	}

	data := &models.FigureData{}

	if doc.Colors != nil {
		data.Colors = &models.ColorsData{}
		for _, p := range doc.Colors.Palettes {
			palette := models.PaletteData{ID: strings.TrimSpace(p.ID)}
			for _, c := range p.Colors {
				palette.Colors = append(palette.Colors, models.ColorData{
					ID:         strings.TrimSpace(c.ID),
					Index:      parseIntAttr("index", c.Index),
					Club:       parseIntAttr("club", c.Club),
					Selectable: parseFlagAttr("selectable", c.Selectable),
					Hex:        strings.TrimSpace(c.Hex),
				})
			}
			data.Colors.Palettes = append(data.Colors.Palettes, palette)
		}
	}

	if doc.Sets != nil {
		data.Sets = &models.SetsData{}
		for _, st := range doc.Sets.SetTypes {
			setType := models.SetTypeData{
				Type:      strings.TrimSpace(st.Type),
				PaletteID: strings.TrimSpace(st.PaletteID),
				MandM0:    parseFlagAttr("mand_m_0", st.MandM0),
				MandM1:    parseFlagAttr("mand_m_1", st.MandM1),
				MandF0:    parseFlagAttr("mand_f_0", st.MandF0),
				MandF1:    parseFlagAttr("mand_f_1", st.MandF1),
			}
			for _, s := range st.Sets {
				set := models.SetData{
					ID:            strings.TrimSpace(s.ID),
					Gender:        models.Gender(strings.ToUpper(strings.TrimSpace(s.Gender))),
					Club:          parseIntAttr("club", s.Club),
					Colorable:     parseIntAttr("colorable", s.Colorable),
					Preselectable: parseFlagAttr("preselectable", s.Preselectable),
					Selectable:    parseFlagAttr("selectable", s.Selectable),
				}
				for _, p := range s.Parts {
					set.Parts = append(set.Parts, models.PartData{
						ID:         strings.TrimSpace(p.ID),
						Type:       strings.TrimSpace(p.Type),
						Colorable:  parseFlagAttr("colorable", p.Colorable),
						Index:      parseIntAttr("index", p.Index),
						ColorIndex: parseIntAttr("colorindex", p.ColorIndex),
					})
				}
				setType.Sets = append(setType.Sets, set)
			}
			data.Sets.SetTypes = append(data.Sets.SetTypes, setType)
		}
	}

	log.Printf("✓ Figure data parsed: colors=%v sets=%v", data.Colors != nil, data.Sets != nil)
	return data, nil
}

// LoadCatalogSource parses raw figuredata bytes and attaches the icon table
func LoadCatalogSource(raw []byte) (*models.CatalogSource, error) {
	data, err := ParseFigureData(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	return &models.CatalogSource{Sets: data, Icons: WardrobeIcons()}, nil
}

// LoadCatalogSourceFile reads the figuredata document from disk
func LoadCatalogSourceFile(path string) (*models.CatalogSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read figure data %s: %w", path, err)
	}
	return LoadCatalogSource(raw)
}
