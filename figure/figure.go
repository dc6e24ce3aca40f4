package figure

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
)

var (
	ErrEmptyFigureString = errors.New("invalid figure string provided")
	ErrUnknownTypeCode   = errors.New("unknown figure type code")
	ErrLayerOutOfRange   = errors.New("color layer out of range")
	ErrMultiLayerColor   = errors.New("color id must fill a single layer")
)

// TypeCodes lists the body-layer type codes in encode order.
// Stored figure strings depend on this order.
var TypeCodes = [...]string{
	"hr", "hd", "ch", "lg", "sh", "ha", "he", "ea", "fa", "ca", "wa", "cc", "cp",
}

// Part is the selection for one type code. An empty Set means nothing is
// equipped on that layer.
type Part struct {
	Set   string `json:"set"`
	Color string `json:"color"`
}

// Figure holds one Part per type code. It is a value type: every With*
// method returns a modified copy.
type Figure struct {
	parts [len(TypeCodes)]Part
}

func typeIndex(code string) (int, bool) {
	for i, c := range TypeCodes {
		if c == code {
			return i, true
		}
	}
	return 0, false
}

// IsTypeCode reports whether code is one of the fixed type codes
func IsTypeCode(code string) bool {
	_, ok := typeIndex(code)
	return ok
}

// Get returns the part for a type code
func (f Figure) Get(code string) (Part, bool) {
	i, ok := typeIndex(code)
	if !ok {
		return Part{}, false
	}
	return f.parts[i], true
}

// With returns a copy of f with the part for code replaced
func (f Figure) With(code string, p Part) (Figure, error) {
	i, ok := typeIndex(code)
	if !ok {
		return f, fmt.Errorf("%q: %w", code, ErrUnknownTypeCode)
	}
	f.parts[i] = p
	return f, nil
}

// String encodes the figure: dot-separated "type-set[-color]" segments in
// TypeCodes order, skipping empty sets.
func (f Figure) String() string {
	var b strings.Builder
	for i, code := range TypeCodes {
		p := f.parts[i]
		if p.Set == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(code)
		b.WriteByte('-')
		b.WriteString(p.Set)
		if p.Color != "" {
			b.WriteByte('-')
			b.WriteString(p.Color)
		}
	}
	return b.String()
}

// Decode parses a figure string into a fresh figure.
//
// Only the third dash token of a segment is kept as the color; further tokens
// are dropped, so multi-layer colors do not survive a round trip. Stored
// strings rely on this, do not change it without versioning the format.
func Decode(s string) (Figure, error) {
	var f Figure
	if s == "" {
		return f, ErrEmptyFigureString
	}

	for _, segment := range strings.Split(s, ".") {
		if segment == "" {
			continue
		}
		tokens := strings.Split(segment, "-")
		if len(tokens) < 2 {
			log.Printf("⚠️  Invalid figure part: %s", segment)
			continue
		}

		i, ok := typeIndex(tokens[0])
		if !ok {
			continue
		}
		p := Part{Set: tokens[1]}
		if len(tokens) > 2 {
			p.Color = tokens[2]
		}
		f.parts[i] = p
	}
	return f, nil
}

// SetColorLayer rewrites one layer of a dash-joined color list. Trailing
// empty layers are dropped and a single remaining layer has no dash.
// colorID must not contain a dash.
func SetColorLayer(color string, layer int, colorID string) (string, error) {
	if layer < 0 {
		return color, fmt.Errorf("layer %d: %w", layer, ErrLayerOutOfRange)
	}
	if strings.Contains(colorID, "-") {
		return color, fmt.Errorf("color id %q: %w", colorID, ErrMultiLayerColor)
	}

	var layers []string
	if color != "" {
		layers = strings.Split(color, "-")
	}
	for len(layers) <= layer {
		layers = append(layers, "")
	}
	layers[layer] = colorID

	for len(layers) > 0 && layers[len(layers)-1] == "" {
		layers = layers[:len(layers)-1]
	}
	if len(layers) == 1 {
		return layers[0], nil
	}
	return strings.Join(layers, "-"), nil
}

// MarshalJSON encodes the figure as an object keyed by type code
func (f Figure) MarshalJSON() ([]byte, error) {
	m := make(map[string]Part, len(TypeCodes))
	for i, code := range TypeCodes {
		m[code] = f.parts[i]
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes an object keyed by type code. Unknown codes are ignored.
func (f *Figure) UnmarshalJSON(data []byte) error {
	var m map[string]Part
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var out Figure
	for code, p := range m {
		if i, ok := typeIndex(code); ok {
			out.parts[i] = p
		}
	}
	*f = out
	return nil
}
