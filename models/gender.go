package models

import (
	"fmt"
	"strings"
)

// Gender is the avatar gender flag. Sets additionally use GenderUnisex.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderUnisex Gender = "U"
)

// ParseGender parses an avatar gender (M or F), case-insensitive
func ParseGender(s string) (Gender, error) {
	switch Gender(strings.ToUpper(strings.TrimSpace(s))) {
	case GenderMale:
		return GenderMale, nil
	case GenderFemale:
		return GenderFemale, nil
	}
	return "", fmt.Errorf("unknown gender %q", s)
}

// Matches reports whether an item tagged with g is visible to target.
// Unisex items are visible under both genders.
func (g Gender) Matches(target Gender) bool {
	item := Gender(strings.ToUpper(string(g)))
	return item == GenderUnisex || item == Gender(strings.ToUpper(string(target)))
}
