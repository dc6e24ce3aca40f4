package wardrobe

import (
	"testing"

	"avatar-wardrobe/models"

	"github.com/stretchr/testify/require"
)

func TestMaxColorLayers(t *testing.T) {
	tests := []struct {
		name      string
		colorable int
		parts     []Part
		expected  int
	}{
		{name: "no parts uses set flag", colorable: 1, expected: 1},
		{name: "no parts not colorable", colorable: 0, expected: 0},
		{
			name:      "highest color index wins",
			colorable: 1,
			parts: []Part{
				{ID: "3137", Type: "ch", Colorable: true, ColorIndex: 1},
				{ID: "3137", Type: "ls", Colorable: true, ColorIndex: 2},
				{ID: "3137", Type: "rs", Colorable: false, ColorIndex: 5},
			},
			expected: 2,
		},
		{
			name:      "only non colorable parts fall back to flag",
			colorable: 1,
			parts:     []Part{{ID: "1", Type: "hd", Colorable: false, ColorIndex: 3}},
			expected:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSet("1", models.GenderUnisex, 0, tt.colorable, false, true)
			for _, p := range tt.parts {
				s.AddPart(p)
			}
			require.Equal(t, tt.expected, s.MaxColorLayers())
		})
	}
}

func TestAddPartKeepsPartTypes(t *testing.T) {
	s := NewSet("180", models.GenderMale, 0, 1, true, true)
	s.AddPart(Part{ID: "1", Type: "bd", Colorable: true, ColorIndex: 1})
	s.AddPart(Part{ID: "1", Type: "hd", Colorable: true, ColorIndex: 1})
	s.AddPart(Part{ID: "1", Type: "hd", Colorable: true, ColorIndex: 2})

	parts := s.Parts()
	require.Len(t, parts, 2)
	require.Equal(t, "bd", parts[0].Type)
	require.Equal(t, 2, parts[1].ColorIndex)
	require.Equal(t, "180", s.Preview())
}

func TestCheckColorLayer(t *testing.T) {
	s := NewSet("3030", models.GenderUnisex, 0, 1, false, true)
	s.AddPart(Part{ID: "3030", Type: "ch", Colorable: true, ColorIndex: 1})
	s.AddPart(Part{ID: "3030", Type: "lc", Colorable: true, ColorIndex: 2})

	require.NoError(t, s.CheckColorLayer(0))
	require.NoError(t, s.CheckColorLayer(1))
	require.ErrorIs(t, s.CheckColorLayer(2), ErrLayerOutOfRange)
	require.ErrorIs(t, s.CheckColorLayer(-1), ErrLayerOutOfRange)

	plain := NewSet("1601", models.GenderUnisex, 0, 0, false, true)
	require.ErrorIs(t, plain.CheckColorLayer(0), ErrLayerOutOfRange)
}

func TestCheckColorLayers(t *testing.T) {
	s := NewSet("210", models.GenderMale, 0, 1, true, true)
	s.AddPart(Part{ID: "1", Type: "ch", Colorable: true, ColorIndex: 1})

	require.NoError(t, s.CheckColorLayers(""))
	require.NoError(t, s.CheckColorLayers("66"))
	require.ErrorIs(t, s.CheckColorLayers("66-82"), ErrLayerOutOfRange)
	require.ErrorIs(t, s.CheckColorLayers("66-82-62"), ErrLayerOutOfRange)

	plain := NewSet("1601", models.GenderUnisex, 0, 0, false, true)
	require.NoError(t, plain.CheckColorLayers(""))
	require.ErrorIs(t, plain.CheckColorLayers("82"), ErrLayerOutOfRange)
}

func TestPaletteOrder(t *testing.T) {
	p := NewPalette("3")
	p.AddColor(Color{ID: "82", Hex: "A"})
	p.AddColor(Color{ID: "62", Hex: "B"})
	p.AddColor(Color{ID: "82", Hex: "C"})

	colors := p.Colors()
	require.Len(t, colors, 2)
	require.Equal(t, "82", colors[0].ID)
	require.Equal(t, "C", colors[0].Hex)

	_, ok := p.Color("404")
	require.False(t, ok)
}
