package service

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

const (
	defaultAvatarCacheDir = "cache/avatars"
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800
)

// imageProfile returns max dimension and JPEG quality for a size name.
// Unknown sizes fall back to medium.
func imageProfile(size string) (int, int) {
	switch size {
	case "thumb":
		return maxSizeThumb, qualityThumb
	case "medium":
		return maxSizeMedium, qualityMedium
	}
	log.Printf("⚠️  Unknown size '%s', defaulting to medium", size)
	return maxSizeMedium, qualityMedium
}

// ImageCache stores optimized renders on disk
type ImageCache struct {
	dir string
}

// NewImageCache creates a cache rooted at dir (cache/avatars when empty)
func NewImageCache(dir string) *ImageCache {
	if dir == "" {
		dir = defaultAvatarCacheDir
	}
	return &ImageCache{dir: dir}
}

// Path returns the cache file for a render. Renders are keyed by their
// content (gender, figure, view, size) so equal avatars share one file.
func (c *ImageCache) Path(gender, figureString, view, size string) string {
	sum := sha1.Sum([]byte(gender + "|" + figureString + "|" + view))
	return filepath.Join(c.dir, fmt.Sprintf("avatar_%s_%s.jpg", hex.EncodeToString(sum[:8]), size))
}

// Exists checks if a cached image exists
func (c *ImageCache) Exists(cachePath string) bool {
	_, err := os.Stat(cachePath)
	return err == nil
}

// Read reads an image from the cache
func (c *ImageCache) Read(cachePath string) ([]byte, error) {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read from cache: %w", err)
	}
	return data, nil
}

// Save writes an image to the cache, creating the directory when needed
func (c *ImageCache) Save(cachePath string, imageData []byte) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(cachePath, imageData, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Printf("✓ Image cached: %s", cachePath)
	return nil
}

// OptimizeImage decodes a render, scales it down to fit the size profile
// ("thumb" or "medium") and re-encodes it as JPEG.
// Avatar renders carry transparency, so they are flattened on white first.
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	maxDim, quality := imageProfile(size)
	bounds := img.Bounds()

	flat := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	flat = imaging.Overlay(flat, img, image.Pt(0, 0), 1.0)

	var resized image.Image = flat
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		resized = imaging.Fit(flat, maxDim, maxDim, imaging.Lanczos)
		log.Printf("🔄 Resizing image: %dx%d -> %dx%d", bounds.Dx(), bounds.Dy(), resized.Bounds().Dx(), resized.Bounds().Dy())
	}

	return encodeJPEG(resized, quality, size)
}

// PlaceholderImage draws a neutral silhouette used when the renderer
// cannot be reached
func PlaceholderImage(view, size string) ([]byte, error) {
	maxDim, quality := imageProfile(size)

	width, height := maxDim/2, maxDim
	if view == "head" {
		width, height = maxDim/2, maxDim/2
	}

	background := imaging.New(width, height, color.NRGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF})
	silhouette := color.NRGBA{R: 0xB0, G: 0xB0, B: 0xB0, A: 0xFF}

	head := imaging.New(width/3, width/3, silhouette)
	headPos := image.Pt((width-head.Bounds().Dx())/2, height/10)
	canvas := imaging.Paste(background, head, headPos)

	if view != "head" {
		body := imaging.New(width/2, height/2, silhouette)
		bodyPos := image.Pt((width-body.Bounds().Dx())/2, headPos.Y+head.Bounds().Dy()+height/20)
		canvas = imaging.Paste(canvas, body, bodyPos)
	}

	return encodeJPEG(canvas, quality, size)
}

func encodeJPEG(img image.Image, quality int, size string) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	log.Printf("✓ Image optimized: size=%s, quality=%d, output_size=%d bytes", size, quality, buf.Len())
	return buf.Bytes(), nil
}
