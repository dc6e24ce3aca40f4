package service

import (
	"context"

	"avatar-wardrobe/models"
)

// WardrobeSheetServiceInterface defines the contract for wardrobe sheet rendering
type WardrobeSheetServiceInterface interface {
	BuildSheet(gender models.Gender, typeCode, view string) (*SheetData, error)
	RenderHTML(ctx context.Context, gender models.Gender, typeCode, view string) (string, error)
	GeneratePDF(ctx context.Context, gender models.Gender, typeCode, view string) ([]byte, error)
	GeneratePNG(ctx context.Context, gender models.Gender, typeCode, view string) ([]byte, error)
}
