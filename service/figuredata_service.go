package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"avatar-wardrobe/models"
	"avatar-wardrobe/utils"
	"avatar-wardrobe/wardrobe"
)

const defaultFigureDataPath = "assets/figuredata.xml"

// FigureDataService loads the figuredata source and keeps one catalog per gender.
// Implements FigureDataServiceInterface
type FigureDataService struct {
	path         string
	driveService DriveServiceInterface
	driveFileID  string

	mu       sync.RWMutex
	catalogs map[models.Gender]*wardrobe.Catalog
	icons    models.WardrobeIcons
	loadedAt time.Time
}

// Ensure FigureDataService implements FigureDataServiceInterface
var _ FigureDataServiceInterface = (*FigureDataService)(nil)

// NewFigureDataService creates a service reading the source from path.
// When driveService and driveFileID are both set the source is downloaded from Drive instead.
func NewFigureDataService(path string, driveService DriveServiceInterface, driveFileID string) *FigureDataService {
	if path == "" {
		path = defaultFigureDataPath
	}
	return &FigureDataService{
		path:         path,
		driveService: driveService,
		driveFileID:  driveFileID,
		catalogs:     make(map[models.Gender]*wardrobe.Catalog),
	}
}

// loadSource reads the catalog source from Drive or from disk
func (s *FigureDataService) loadSource(ctx context.Context) (*models.CatalogSource, error) {
	if s.driveService != nil && s.driveFileID != "" {
		log.Printf("🔄 Loading figure data from Drive file %s", s.driveFileID)
		raw, err := s.driveService.DownloadFile(ctx, s.driveFileID)
		if err != nil {
			return nil, fmt.Errorf("failed to download figure data: %w", err)
		}
		return utils.LoadCatalogSource(raw)
	}

	log.Printf("🔄 Loading figure data from %s", s.path)
	return utils.LoadCatalogSourceFile(s.path)
}

// Reload rebuilds both catalogs from the source and swaps them in.
// On any error the previous catalogs stay in place.
func (s *FigureDataService) Reload(ctx context.Context) error {
	source, err := s.loadSource(ctx)
	if err != nil {
		log.Printf("❌ Reload: %v", err)
		return err
	}

	catalogs := make(map[models.Gender]*wardrobe.Catalog, 2)
	for _, gender := range []models.Gender{models.GenderMale, models.GenderFemale} {
		catalog, err := wardrobe.Build(gender, source)
		if err != nil {
			return fmt.Errorf("failed to build %s catalog: %w", gender, err)
		}
		catalogs[gender] = catalog
	}

	s.mu.Lock()
	s.catalogs = catalogs
	s.icons = source.Icons
	s.loadedAt = time.Now()
	s.mu.Unlock()

	log.Printf("🎉 Figure data loaded: %d set types", len(catalogs[models.GenderMale].SetTypes()))
	return nil
}

// Catalog returns the catalog for gender (M or F)
func (s *FigureDataService) Catalog(gender models.Gender) (*wardrobe.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	catalog, ok := s.catalogs[gender]
	if !ok {
		if len(s.catalogs) == 0 {
			return nil, fmt.Errorf("figure data not loaded")
		}
		return nil, fmt.Errorf("gender %q: %w", gender, wardrobe.ErrInvalidGender)
	}
	return catalog, nil
}

// Icons returns the wardrobe icon table of the loaded source
func (s *FigureDataService) Icons() models.WardrobeIcons {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.icons == nil {
		return utils.WardrobeIcons()
	}
	return s.icons
}

// LoadedAt returns when the catalogs were last rebuilt
func (s *FigureDataService) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
