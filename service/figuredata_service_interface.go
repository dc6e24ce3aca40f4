package service

import (
	"context"
	"time"

	"avatar-wardrobe/models"
	"avatar-wardrobe/wardrobe"
)

// FigureDataServiceInterface defines the contract for catalog access
type FigureDataServiceInterface interface {
	Reload(ctx context.Context) error
	Catalog(gender models.Gender) (*wardrobe.Catalog, error)
	Icons() models.WardrobeIcons
	LoadedAt() time.Time
}
