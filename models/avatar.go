package models

import "time"

// AvatarRecord represents a persisted avatar in the database
type AvatarRecord struct {
	UserID    string    `json:"userId"`
	Gender    Gender    `json:"gender"`
	Figure    string    `json:"figure"` // figure string, e.g. "hr-100-45.hd-180-1"
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateAvatarRequest represents the request body for creating an avatar
// Example: {"userId": "u-42", "gender": "F", "figure": "hd-600-1.hr-515-45"}
// figure is optional, the default avatar of the gender is used when empty
type CreateAvatarRequest struct {
	UserID string `json:"userId" validate:"required,max=64"`
	Gender string `json:"gender" validate:"required,oneof=M F m f"`
	Figure string `json:"figure,omitempty" validate:"max=1024"`
}

// SaveAvatarRequest represents the request body for replacing an avatar
// Example: {"gender": "M", "figure": "hd-180-1.ch-210-66"}
type SaveAvatarRequest struct {
	Gender string `json:"gender" validate:"required,oneof=M F m f"`
	Figure string `json:"figure" validate:"required,max=1024"`
}

// EquipSetRequest represents the request body for equipping a set
// Example: {"typeCode": "ch", "setId": "3030", "color": "66-82"}
// An empty setId clears the slot
type EquipSetRequest struct {
	TypeCode string `json:"typeCode" validate:"required,len=2"`
	SetID    string `json:"setId"`
	Color    string `json:"color,omitempty"`
}

// ColorLayerRequest represents the request body for recoloring one layer
// Example: {"typeCode": "ch", "layer": 1, "colorId": "82"}
// layer is 0-based and colorId fills that one layer
type ColorLayerRequest struct {
	TypeCode string `json:"typeCode" validate:"required,len=2"`
	Layer    int    `json:"layer" validate:"gte=0"`
	ColorID  string `json:"colorId" validate:"excludes=-"`
}

// ChangeGenderRequest represents the request body for switching gender
// Example: {"gender": "F"}
type ChangeGenderRequest struct {
	Gender string `json:"gender" validate:"required,oneof=M F m f"`
}

// AvatarResponse is the avatar as returned by the API
type AvatarResponse struct {
	UserID        string `json:"userId"`
	Gender        Gender `json:"gender"`
	Figure        string `json:"figure"`
	FullBodyImage string `json:"fullBodyImage"`
	HeadOnlyImage string `json:"headOnlyImage"`
}

// APIResponse is the envelope every JSON endpoint answers with
type APIResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
