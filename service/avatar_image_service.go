package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"avatar-wardrobe/figure"
)

const (
	// ViewFull is the full-body render
	ViewFull = "full"
	// ViewHead is the head-only render
	ViewHead = "head"

	defaultDirection = "2"
)

// AvatarImageService fetches renders from the imaging endpoint, optimizes and caches them.
// Implements AvatarImageServiceInterface
type AvatarImageService struct {
	imaging figure.Imaging
	client  *http.Client
	cache   *ImageCache
}

// Ensure AvatarImageService implements AvatarImageServiceInterface
var _ AvatarImageServiceInterface = (*AvatarImageService)(nil)

// NewAvatarImageService creates a new AvatarImageService.
// An empty baseURL targets the public imaging endpoint.
func NewAvatarImageService(baseURL string, cache *ImageCache) *AvatarImageService {
	if baseURL == "" {
		baseURL = figure.DefaultImagingURL
	}
	if cache == nil {
		cache = NewImageCache("")
	}
	return &AvatarImageService{
		imaging: figure.Imaging{BaseURL: baseURL},
		client:  &http.Client{Timeout: 15 * time.Second},
		cache:   cache,
	}
}

// RenderURL returns the imaging URL for a view of the avatar
func (s *AvatarImageService) RenderURL(avatar figure.Avatar, view string) string {
	if view == ViewHead {
		return s.imaging.HeadOnly(avatar, defaultDirection, defaultDirection)
	}
	return s.imaging.FullBody(avatar, defaultDirection, defaultDirection)
}

// fetchImage downloads a render
func (s *AvatarImageService) fetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image endpoint returned status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return imageData, nil
}

// GetImage returns the optimized JPEG render of avatar for view ("full" or
// "head") and size ("thumb" or "medium"). When the renderer cannot be reached
// a placeholder is returned and nothing is cached.
func (s *AvatarImageService) GetImage(ctx context.Context, avatar figure.Avatar, view, size string) ([]byte, error) {
	if view != ViewHead {
		view = ViewFull
	}

	cachePath := s.cache.Path(string(avatar.Gender()), avatar.String(), view, size)
	if s.cache.Exists(cachePath) {
		log.Printf("✓ Serving avatar image from cache: %s", cachePath)
		return s.cache.Read(cachePath)
	}

	renderURL := s.RenderURL(avatar, view)
	log.Printf("🔍 Fetching avatar render: %s", renderURL)

	raw, err := s.fetchImage(ctx, renderURL)
	if err != nil {
		log.Printf("⚠️  Render unavailable, serving placeholder: %v", err)
		return PlaceholderImage(view, size)
	}

	optimized, err := OptimizeImage(raw, size)
	if err != nil {
		log.Printf("⚠️  Render could not be optimized, serving placeholder: %v", err)
		return PlaceholderImage(view, size)
	}

	if err := s.cache.Save(cachePath, optimized); err != nil {
		log.Printf("⚠️  Failed to cache avatar image: %v", err)
	}
	return optimized, nil
}
