package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"avatar-wardrobe/utils"

	"github.com/disintegration/imaging"
)

const (
	defaultIconDir = "static/wardrobe"
	iconMaxSize    = 64
)

// IconSyncResult summarizes one icon sync run
type IconSyncResult struct {
	Total   int      `json:"total"`
	Synced  int      `json:"synced"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// IconSyncService downloads wardrobe tab icons from a Google Drive folder
// Implements IconSyncServiceInterface
type IconSyncService struct {
	driveService DriveServiceInterface
	iconDir      string
}

// Ensure IconSyncService implements IconSyncServiceInterface
var _ IconSyncServiceInterface = (*IconSyncService)(nil)

// NewIconSyncService creates a new IconSyncService writing into iconDir
// (static/wardrobe when empty)
func NewIconSyncService(driveService DriveServiceInterface, iconDir string) *IconSyncService {
	if iconDir == "" {
		iconDir = defaultIconDir
	}
	return &IconSyncService{
		driveService: driveService,
		iconDir:      iconDir,
	}
}

// iconName strips the extension and lowercases a Drive file name
func iconName(fileName string) string {
	return strings.ToLower(strings.TrimSuffix(fileName, filepath.Ext(fileName)))
}

// SyncIcons downloads every icon of the folder the wardrobe tabs reference,
// scales it to a thumbnail and saves it as PNG. Files unknown to the icon
// table are skipped, existing icons are only replaced when force is set.
func (s *IconSyncService) SyncIcons(ctx context.Context, folderID string, force bool) (*IconSyncResult, error) {
	log.Printf("📥 Starting icon sync for folder: %s", folderID)

	if err := os.MkdirAll(s.iconDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create icon directory: %w", err)
	}

	files, err := s.driveService.ListImageFiles(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list icons from Drive: %w", err)
	}

	wanted := make(map[string]bool)
	for _, name := range utils.WardrobeIconNames() {
		wanted[name] = true
	}

	result := &IconSyncResult{Total: len(files)}
	seen := make(map[string]bool)

	for _, file := range files {
		name := iconName(file.Name)
		if !wanted[name] {
			log.Printf("⏭️  Skipping %s (not a wardrobe icon)", file.Name)
			result.Skipped++
			continue
		}
		if seen[name] {
			log.Printf("⏭️  Skipping %s (duplicate icon name in this sync)", file.Name)
			result.Skipped++
			continue
		}
		seen[name] = true

		iconPath := filepath.Join(s.iconDir, name+".png")
		if _, err := os.Stat(iconPath); err == nil && !force {
			log.Printf("⏭️  Skipping %s (already exists on disk)", name)
			result.Skipped++
			continue
		}

		if err := s.syncIcon(ctx, file, iconPath); err != nil {
			errorMsg := fmt.Sprintf("Failed to sync icon %s (%s): %v", file.Name, file.ID, err)
			log.Printf("❌ %s", errorMsg)
			result.Errors = append(result.Errors, errorMsg)
			continue
		}
		result.Synced++
	}

	log.Printf("🎉 Icon sync completed: %d synced, %d skipped, %d failed out of %d files",
		result.Synced, result.Skipped, len(result.Errors), result.Total)
	return result, nil
}

func (s *IconSyncService) syncIcon(ctx context.Context, file DriveFile, iconPath string) error {
	data, err := s.driveService.DownloadFile(ctx, file.ID)
	if err != nil {
		return err
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode icon: %w", err)
	}
	thumb := imaging.Fit(img, iconMaxSize, iconMaxSize, imaging.Lanczos)

	if err := imaging.Save(thumb, iconPath); err != nil {
		return fmt.Errorf("failed to save icon: %w", err)
	}

	log.Printf("✓ Icon saved: %s", iconPath)
	return nil
}
