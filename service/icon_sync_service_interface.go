package service

import "context"

// IconSyncServiceInterface defines the contract for wardrobe icon sync operations
type IconSyncServiceInterface interface {
	SyncIcons(ctx context.Context, folderID string, force bool) (*IconSyncResult, error)
}
