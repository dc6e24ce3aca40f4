package service

import (
	"context"

	"avatar-wardrobe/figure"
)

// AvatarImageServiceInterface defines the contract for avatar render operations
type AvatarImageServiceInterface interface {
	RenderURL(avatar figure.Avatar, view string) string
	GetImage(ctx context.Context, avatar figure.Avatar, view, size string) ([]byte, error)
}
