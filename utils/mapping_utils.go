package utils

import (
	"strings"

	"avatar-wardrobe/figure"
	"avatar-wardrobe/models"
)

const iconBasePath = "/static/wardrobe/"

// MapTypeCodeToName maps a figure type code to its readable name
// Input is normalized to lowercase before mapping
func MapTypeCodeToName(code string) string {
	codeLower := strings.ToLower(strings.TrimSpace(code))

	typeMap := map[string]string{
		"hr": "hair",
		"hd": "body",
		"ch": "shirts",
		"lg": "pants",
		"sh": "shoes",
		"ha": "hats",
		"he": "hair accessories",
		"ea": "glasses",
		"fa": "face accessories",
		"ca": "top accessories",
		"wa": "belts",
		"cc": "jackets",
		"cp": "chest accessories",
	}

	if name, exists := typeMap[codeLower]; exists {
		return name
	}

	// If not found, return uppercase version of input
	return strings.ToUpper(codeLower)
}

// MapNameToTypeCode maps a readable layer name back to its type code
// Returns empty string when the name is unknown
func MapNameToTypeCode(name string) string {
	nameLower := strings.ToLower(strings.TrimSpace(name))
	for _, code := range figure.TypeCodes {
		if MapTypeCodeToName(code) == nameLower {
			return code
		}
	}
	return ""
}

func icon(name string) string {
	return iconBasePath + name + ".png"
}

// WardrobeIcons returns the icon table grouped by category
func WardrobeIcons() models.WardrobeIcons {
	return models.WardrobeIcons{
		"body": {
			Main: icon("body"),
			Subs: map[string]string{
				"male":   icon("male"),
				"female": icon("female"),
			},
		},
		"hair": {
			Main: icon("hair"),
			Subs: map[string]string{
				"hair":            icon("hair-sn"),
				"hats":            icon("hats"),
				"hairAccessories": icon("hair-accessories"),
				"glasses":         icon("glasses"),
				"moustaches":      icon("moustaches"),
			},
		},
		"tops": {
			Main: icon("tops"),
			Subs: map[string]string{
				"top":         icon("top"),
				"chest":       icon("chest"),
				"jackets":     icon("jackets"),
				"accessories": icon("accessories"),
			},
		},
		"bottoms": {
			Main: icon("bottoms"),
			Subs: map[string]string{
				"bottomsSn": icon("bottoms-sn"),
				"shoes":     icon("shoes"),
				"belts":     icon("belts"),
			},
		},
	}
}

// WardrobeIconNames lists the icon file names (without extension) that
// WardrobeIcons points to
func WardrobeIconNames() []string {
	var names []string
	for _, category := range WardrobeIcons() {
		names = append(names, strings.TrimSuffix(strings.TrimPrefix(category.Main, iconBasePath), ".png"))
		for _, sub := range category.Subs {
			names = append(names, strings.TrimSuffix(strings.TrimPrefix(sub, iconBasePath), ".png"))
		}
	}
	return names
}

// SubTab is one picker of the wardrobe editor, bound to a type code
type SubTab struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	TypeCode string        `json:"typeCode"`
	Icon     string        `json:"icon"`
	IsGender bool          `json:"isGender,omitempty"`
	Gender   models.Gender `json:"gender,omitempty"`
}

// MainTab groups sub tabs under a category icon
type MainTab struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Icon    string   `json:"icon"`
	SubTabs []SubTab `json:"subTabs"`
}

// WardrobeTabs returns the editor layout for gender. The body tab only
// offers the body picker of the requested gender.
func WardrobeTabs(icons models.WardrobeIcons, gender models.Gender) []MainTab {
	body := SubTab{ID: "male", Name: "Male", TypeCode: "hd", Icon: icons["body"].Subs["male"], IsGender: true, Gender: models.GenderMale}
	if gender == models.GenderFemale {
		body = SubTab{ID: "female", Name: "Female", TypeCode: "hd", Icon: icons["body"].Subs["female"], IsGender: true, Gender: models.GenderFemale}
	}

	hair := icons["hair"].Subs
	tops := icons["tops"].Subs
	bottoms := icons["bottoms"].Subs

	return []MainTab{
		{
			ID: "body", Name: "Body", Icon: icons["body"].Main,
			SubTabs: []SubTab{body},
		},
		{
			ID: "hair", Name: "Hair", Icon: icons["hair"].Main,
			SubTabs: []SubTab{
				{ID: "hair", Name: "Hair", TypeCode: "hr", Icon: hair["hair"]},
				{ID: "hats", Name: "Hats", TypeCode: "ha", Icon: hair["hats"]},
				{ID: "accessories", Name: "Hair Accessories", TypeCode: "he", Icon: hair["hairAccessories"]},
				{ID: "glasses", Name: "Glasses", TypeCode: "ea", Icon: hair["glasses"]},
				{ID: "face", Name: "Face Accessories", TypeCode: "fa", Icon: hair["moustaches"]},
			},
		},
		{
			ID: "clothing", Name: "Tops", Icon: icons["tops"].Main,
			SubTabs: []SubTab{
				{ID: "shirts", Name: "Shirts", TypeCode: "ch", Icon: tops["top"]},
				{ID: "chest", Name: "Chest Accessories", TypeCode: "cp", Icon: tops["chest"]},
				{ID: "topAccessories", Name: "Top Accessories", TypeCode: "ca", Icon: tops["accessories"]},
				{ID: "jackets", Name: "Jackets", TypeCode: "cc", Icon: tops["jackets"]},
			},
		},
		{
			ID: "bottoms", Name: "Bottoms", Icon: icons["bottoms"].Main,
			SubTabs: []SubTab{
				{ID: "pants", Name: "Pants", TypeCode: "lg", Icon: bottoms["bottomsSn"]},
				{ID: "shoes", Name: "Shoes", TypeCode: "sh", Icon: bottoms["shoes"]},
				{ID: "belts", Name: "Belts", TypeCode: "wa", Icon: bottoms["belts"]},
			},
		},
	}
}
