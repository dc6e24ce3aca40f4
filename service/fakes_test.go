package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"avatar-wardrobe/models"
	"avatar-wardrobe/repository"

	"github.com/stretchr/testify/require"
)

var bundledFigureData = filepath.Join("..", "assets", "figuredata.xml")

// memoryAvatarRepository keeps avatar rows in a map
type memoryAvatarRepository struct {
	mu        sync.Mutex
	rows      map[string]models.AvatarRecord
	inserts   int
	updates   int
	insertErr error
	// staleReads makes the next reads miss, as if another request inserted concurrently
	staleReads int
}

var _ repository.AvatarRepositoryInterface = (*memoryAvatarRepository)(nil)

func newMemoryAvatarRepository() *memoryAvatarRepository {
	return &memoryAvatarRepository{rows: make(map[string]models.AvatarRecord)}
}

func (r *memoryAvatarRepository) GetByUserID(_ context.Context, userID string) (*models.AvatarRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[userID]
	if !ok || r.staleReads > 0 {
		if r.staleReads > 0 {
			r.staleReads--
		}
		return nil, fmt.Errorf("user %s: %w", userID, repository.ErrAvatarNotFound)
	}
	return &row, nil
}

func (r *memoryAvatarRepository) Insert(_ context.Context, record *models.AvatarRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	if _, ok := r.rows[record.UserID]; ok {
		return fmt.Errorf("user %s: %w", record.UserID, repository.ErrAvatarDuplicate)
	}
	now := time.Now()
	record.CreatedAt, record.UpdatedAt = now, now
	r.rows[record.UserID] = *record
	r.inserts++
	return nil
}

func (r *memoryAvatarRepository) Update(_ context.Context, record *models.AvatarRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[record.UserID]
	if !ok {
		return fmt.Errorf("user %s: %w", record.UserID, repository.ErrAvatarNotFound)
	}
	row.Gender = record.Gender
	row.Figure = record.Figure
	row.UpdatedAt = time.Now()
	r.rows[record.UserID] = row
	*record = row
	r.updates++
	return nil
}

// fakeDrive serves files from memory
type fakeDrive struct {
	files     map[string][]byte
	folder    []DriveFile
	downloads int
}

var _ DriveServiceInterface = (*fakeDrive)(nil)

func (d *fakeDrive) ListImageFiles(_ context.Context, folderID string) ([]DriveFile, error) {
	if folderID == "" {
		return nil, fmt.Errorf("failed to list files: empty folder id")
	}
	return d.folder, nil
}

func (d *fakeDrive) DownloadFile(_ context.Context, fileID string) ([]byte, error) {
	data, ok := d.files[fileID]
	if !ok {
		return nil, fmt.Errorf("failed to download file %s: not found", fileID)
	}
	d.downloads++
	return data, nil
}

func loadedFigureData(t *testing.T) *FigureDataService {
	t.Helper()
	s := NewFigureDataService(bundledFigureData, nil, "")
	require.NoError(t, s.Reload(context.Background()))
	return s
}

func readBundledFigureData(t *testing.T) []byte {
	t.Helper()
	raw, err := os.ReadFile(bundledFigureData)
	require.NoError(t, err)
	return raw
}
