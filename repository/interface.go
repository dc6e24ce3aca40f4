package repository

import (
	"context"

	"avatar-wardrobe/models"
)

// AvatarRepositoryInterface defines the contract for avatar repository operations.
// GetByUserID and Update return ErrAvatarNotFound for a missing row, Insert
// returns ErrAvatarDuplicate when the row already exists.
type AvatarRepositoryInterface interface {
	GetByUserID(ctx context.Context, userID string) (*models.AvatarRecord, error)
	Insert(ctx context.Context, record *models.AvatarRecord) error
	Update(ctx context.Context, record *models.AvatarRecord) error
}
