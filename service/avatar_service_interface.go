package service

import (
	"context"

	"avatar-wardrobe/figure"
	"avatar-wardrobe/models"
)

// AvatarServiceInterface defines the contract for avatar operations
type AvatarServiceInterface interface {
	Get(ctx context.Context, userID string) (figure.Avatar, error)
	GetOrCreate(ctx context.Context, userID string, gender models.Gender) (figure.Avatar, error)
	Create(ctx context.Context, userID string, gender models.Gender, figureString string) (figure.Avatar, error)
	Save(ctx context.Context, userID string, avatar figure.Avatar) error
	EquipSet(ctx context.Context, userID, typeCode, setID, color string) (figure.Avatar, error)
	ColorLayer(ctx context.Context, userID, typeCode string, layer int, colorID string) (figure.Avatar, error)
	ResetGender(ctx context.Context, userID string, gender models.Gender) (figure.Avatar, error)
}
