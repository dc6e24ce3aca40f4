package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"avatar-wardrobe/figure"
	"avatar-wardrobe/models"
	"avatar-wardrobe/repository"
)

var (
	// ErrAvatarExists is returned when creating an avatar for a user that already has one
	ErrAvatarExists = errors.New("avatar already exists")
	// ErrSlotEmpty is returned when recoloring a type code with no set equipped
	ErrSlotEmpty = errors.New("no set equipped for type code")
)

// AvatarService handles avatar business logic
// Implements AvatarServiceInterface
type AvatarService struct {
	repo       repository.AvatarRepositoryInterface
	figureData FigureDataServiceInterface
}

// Ensure AvatarService implements AvatarServiceInterface
var _ AvatarServiceInterface = (*AvatarService)(nil)

// NewAvatarService creates a new AvatarService
func NewAvatarService(repo repository.AvatarRepositoryInterface, figureData FigureDataServiceInterface) *AvatarService {
	return &AvatarService{
		repo:       repo,
		figureData: figureData,
	}
}

// Get returns the stored avatar of a user
func (s *AvatarService) Get(ctx context.Context, userID string) (figure.Avatar, error) {
	record, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return figure.Avatar{}, err
	}
	return figure.FromFigureString(record.Figure, record.Gender), nil
}

// GetOrCreate returns the stored avatar of a user, persisting the default
// avatar of gender when none exists. An empty gender means M.
func (s *AvatarService) GetOrCreate(ctx context.Context, userID string, gender models.Gender) (figure.Avatar, error) {
	avatar, err := s.Get(ctx, userID)
	if err == nil {
		return avatar, nil
	}
	if !errors.Is(err, repository.ErrAvatarNotFound) {
		return figure.Avatar{}, err
	}

	if gender == "" {
		gender = models.GenderMale
	}
	avatar = figure.NewAvatar(gender)
	log.Printf("🔄 GetOrCreate: no avatar for user_id=%s, creating default %s", userID, avatar)

	if err := s.repo.Insert(ctx, toRecord(userID, avatar)); err != nil {
		if errors.Is(err, repository.ErrAvatarDuplicate) {
			log.Printf("🔄 GetOrCreate: avatar for user_id=%s created concurrently, reloading", userID)
			return s.Get(ctx, userID)
		}
		return figure.Avatar{}, err
	}
	return avatar, nil
}

// Create persists a new avatar. An empty figure string gives the default
// avatar of the gender.
func (s *AvatarService) Create(ctx context.Context, userID string, gender models.Gender, figureString string) (figure.Avatar, error) {
	if _, err := s.repo.GetByUserID(ctx, userID); err == nil {
		return figure.Avatar{}, fmt.Errorf("user %s: %w", userID, ErrAvatarExists)
	} else if !errors.Is(err, repository.ErrAvatarNotFound) {
		return figure.Avatar{}, err
	}

	avatar := figure.FromFigureString(figureString, gender)
	if err := s.repo.Insert(ctx, toRecord(userID, avatar)); err != nil {
		if errors.Is(err, repository.ErrAvatarDuplicate) {
			return figure.Avatar{}, fmt.Errorf("user %s: %w", userID, ErrAvatarExists)
		}
		return figure.Avatar{}, err
	}
	return avatar, nil
}

// Save stores avatar for the user, inserting it when no row exists yet
func (s *AvatarService) Save(ctx context.Context, userID string, avatar figure.Avatar) error {
	record := toRecord(userID, avatar)
	err := s.repo.Update(ctx, record)
	if errors.Is(err, repository.ErrAvatarNotFound) {
		log.Printf("⚠️  Save: no avatar row for user_id=%s, inserting", userID)
		err = s.repo.Insert(ctx, record)
		if errors.Is(err, repository.ErrAvatarDuplicate) {
			return s.repo.Update(ctx, record)
		}
	}
	return err
}

// EquipSet puts a set (and its color) on one type code. The set must exist in
// the catalog of the avatar's gender; an empty setID clears the slot.
func (s *AvatarService) EquipSet(ctx context.Context, userID, typeCode, setID, color string) (figure.Avatar, error) {
	avatar, err := s.GetOrCreate(ctx, userID, "")
	if err != nil {
		return figure.Avatar{}, err
	}

	typeCode = strings.ToLower(strings.TrimSpace(typeCode))
	if setID == "" {
		color = ""
	} else {
		catalog, err := s.figureData.Catalog(avatar.Gender())
		if err != nil {
			return figure.Avatar{}, err
		}
		setType, err := catalog.SetType(typeCode)
		if err != nil {
			return figure.Avatar{}, err
		}
		set, err := setType.Set(setID)
		if err != nil {
			return figure.Avatar{}, err
		}
		if err := set.CheckColorLayers(color); err != nil {
			return figure.Avatar{}, err
		}
		if err := setType.CheckColor(color); err != nil {
			return figure.Avatar{}, err
		}
	}

	updated, err := avatar.WithSet(typeCode, setID, color)
	if err != nil {
		return figure.Avatar{}, err
	}
	if err := s.Save(ctx, userID, updated); err != nil {
		return figure.Avatar{}, err
	}

	log.Printf("✓ EquipSet: user_id=%s %s -> %s", userID, typeCode, updated)
	return updated, nil
}

// ColorLayer replaces one color layer (0-based) of the set equipped on a type code
func (s *AvatarService) ColorLayer(ctx context.Context, userID, typeCode string, layer int, colorID string) (figure.Avatar, error) {
	avatar, err := s.GetOrCreate(ctx, userID, "")
	if err != nil {
		return figure.Avatar{}, err
	}

	typeCode = strings.ToLower(strings.TrimSpace(typeCode))
	part, ok := avatar.Figure().Get(typeCode)
	if !ok {
		return figure.Avatar{}, fmt.Errorf("type code %q: %w", typeCode, figure.ErrUnknownTypeCode)
	}
	if part.Set == "" {
		return figure.Avatar{}, fmt.Errorf("type code %s: %w", typeCode, ErrSlotEmpty)
	}

	catalog, err := s.figureData.Catalog(avatar.Gender())
	if err != nil {
		return figure.Avatar{}, err
	}
	setType, err := catalog.SetType(typeCode)
	if err != nil {
		return figure.Avatar{}, err
	}
	set, err := setType.Set(part.Set)
	if err != nil {
		return figure.Avatar{}, err
	}
	if err := set.CheckColorLayer(layer); err != nil {
		return figure.Avatar{}, err
	}
	if err := setType.CheckColor(colorID); err != nil {
		return figure.Avatar{}, err
	}

	updated, err := avatar.WithColorLayer(typeCode, layer, colorID)
	if err != nil {
		return figure.Avatar{}, err
	}
	if err := s.Save(ctx, userID, updated); err != nil {
		return figure.Avatar{}, err
	}

	log.Printf("✓ ColorLayer: user_id=%s %s layer=%d -> %s", userID, typeCode, layer, updated)
	return updated, nil
}

// ResetGender replaces the avatar with the default avatar of gender
func (s *AvatarService) ResetGender(ctx context.Context, userID string, gender models.Gender) (figure.Avatar, error) {
	avatar := figure.NewAvatar(gender)
	if err := s.Save(ctx, userID, avatar); err != nil {
		return figure.Avatar{}, err
	}
	log.Printf("🔄 ResetGender: user_id=%s gender=%s", userID, gender)
	return avatar, nil
}

func toRecord(userID string, avatar figure.Avatar) *models.AvatarRecord {
	return &models.AvatarRecord{
		UserID: userID,
		Gender: avatar.Gender(),
		Figure: avatar.String(),
	}
}
