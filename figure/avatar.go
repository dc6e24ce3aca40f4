package figure

import (
	"encoding/json"
	"fmt"
	"log"

	"avatar-wardrobe/models"
)

// DefaultImagingURL is the public avatar imaging endpoint
const DefaultImagingURL = "https://www.habbo.com/habbo-imaging/avatarimage"

// Default body sets equipped on a fresh avatar
const (
	DefaultMaleHead   = "180"
	DefaultFemaleHead = "600"
)

// Imaging builds render requests for the external imaging endpoint
type Imaging struct {
	BaseURL string
}

// DefaultImaging targets DefaultImagingURL
var DefaultImaging = Imaging{BaseURL: DefaultImagingURL}

// FullBody returns the large full-body render URL
func (im Imaging) FullBody(a Avatar, headDirection, direction string) string {
	return fmt.Sprintf("%s?size=l&direction=%s&head_direction=%s%s", im.BaseURL, direction, headDirection, a.query())
}

// HeadOnly returns the head-only render URL
func (im Imaging) HeadOnly(a Avatar, headDirection, direction string) string {
	return fmt.Sprintf("%s?headonly=1&direction=%s&head_direction=%s%s", im.BaseURL, direction, headDirection, a.query())
}

// Avatar is a gender flag and a figure. Like Figure it is a value type.
type Avatar struct {
	gender models.Gender
	figure Figure
}

// NewAvatar returns the default avatar for gender: only the body is set
func NewAvatar(gender models.Gender) Avatar {
	head := DefaultMaleHead
	if gender == models.GenderFemale {
		head = DefaultFemaleHead
	}
	f, _ := Figure{}.With("hd", Part{Set: head})
	return Avatar{gender: gender, figure: f}
}

// NewAvatarWithFigure wraps an existing figure
func NewAvatarWithFigure(gender models.Gender, f Figure) Avatar {
	return Avatar{gender: gender, figure: f}
}

// FromFigureString builds an avatar of gender from a stored figure string.
// An empty string keeps the default figure.
func FromFigureString(s string, gender models.Gender) Avatar {
	return NewAvatar(gender).WithFigureString(s)
}

// Gender returns the avatar gender
func (a Avatar) Gender() models.Gender {
	return a.gender
}

// Figure returns the avatar figure
func (a Avatar) Figure() Figure {
	return a.figure
}

// String returns the figure string
func (a Avatar) String() string {
	return a.figure.String()
}

// WithGender returns a copy with another gender. Equipped sets are kept.
func (a Avatar) WithGender(gender models.Gender) Avatar {
	a.gender = gender
	return a
}

// WithFigure returns a copy with another figure
func (a Avatar) WithFigure(f Figure) Avatar {
	a.figure = f
	return a
}

// WithFigureString returns a copy whose figure is decoded from s. When s
// cannot be decoded at all the copy keeps the current figure.
func (a Avatar) WithFigureString(s string) Avatar {
	f, err := Decode(s)
	if err != nil {
		log.Printf("❌ Failed to restore figure from string: %v", err)
		return a
	}
	a.figure = f
	return a
}

// WithSet returns a copy with set and color equipped on code
func (a Avatar) WithSet(code, set, color string) (Avatar, error) {
	f, err := a.figure.With(code, Part{Set: set, Color: color})
	if err != nil {
		return a, err
	}
	a.figure = f
	return a, nil
}

// WithColorLayer returns a copy with one color layer of code replaced,
// keeping the colors already chosen for the other layers.
func (a Avatar) WithColorLayer(code string, layer int, colorID string) (Avatar, error) {
	p, ok := a.figure.Get(code)
	if !ok {
		return a, fmt.Errorf("%q: %w", code, ErrUnknownTypeCode)
	}
	color, err := SetColorLayer(p.Color, layer, colorID)
	if err != nil {
		return a, err
	}
	p.Color = color
	a.figure, _ = a.figure.With(code, p)
	return a, nil
}

// FullBodyImage returns the full-body render URL on DefaultImaging
func (a Avatar) FullBodyImage(headDirection, direction string) string {
	return DefaultImaging.FullBody(a, headDirection, direction)
}

// HeadOnlyImage returns the head-only render URL on DefaultImaging
func (a Avatar) HeadOnlyImage(headDirection, direction string) string {
	return DefaultImaging.HeadOnly(a, headDirection, direction)
}

func (a Avatar) query() string {
	q := "&gender=" + string(a.gender)
	if s := a.figure.String(); s != "" {
		q += "&figure=" + s
	}
	return q
}

type avatarJSON struct {
	Gender models.Gender `json:"gender"`
	Figure Figure        `json:"figure"`
}

// MarshalJSON encodes {gender, figure}
func (a Avatar) MarshalJSON() ([]byte, error) {
	return json.Marshal(avatarJSON{Gender: a.gender, Figure: a.figure})
}

// UnmarshalJSON decodes {gender, figure}
func (a *Avatar) UnmarshalJSON(data []byte) error {
	var v avatarJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	a.gender = v.Gender
	a.figure = v.Figure
	return nil
}
