package service

import (
	"context"
	"errors"
	"testing"

	"avatar-wardrobe/figure"
	"avatar-wardrobe/models"
	"avatar-wardrobe/repository"
	"avatar-wardrobe/wardrobe"

	"github.com/stretchr/testify/require"
)

func newTestAvatarService(t *testing.T) (*AvatarService, *memoryAvatarRepository) {
	t.Helper()
	repo := newMemoryAvatarRepository()
	return NewAvatarService(repo, loadedFigureData(t)), repo
}

func TestGetOrCreate(t *testing.T) {
	ctx := context.Background()
	s, repo := newTestAvatarService(t)

	t.Run("missing avatar is created with the gender default", func(t *testing.T) {
		avatar, err := s.GetOrCreate(ctx, "ana", models.GenderFemale)
		require.NoError(t, err)
		require.Equal(t, "hd-600", avatar.String())
		require.Equal(t, models.GenderFemale, repo.rows["ana"].Gender)
	})

	t.Run("empty gender defaults to M", func(t *testing.T) {
		avatar, err := s.GetOrCreate(ctx, "bo", "")
		require.NoError(t, err)
		require.Equal(t, models.GenderMale, avatar.Gender())
		require.Equal(t, "hd-180", avatar.String())
	})

	t.Run("stored avatar is decoded", func(t *testing.T) {
		repo.rows["cy"] = models.AvatarRecord{UserID: "cy", Gender: models.GenderMale, Figure: "hr-100-45.hd-180-1"}
		inserts := repo.inserts

		avatar, err := s.GetOrCreate(ctx, "cy", models.GenderFemale)
		require.NoError(t, err)
		require.Equal(t, models.GenderMale, avatar.Gender())
		require.Equal(t, "hr-100-45.hd-180-1", avatar.String())
		require.Equal(t, inserts, repo.inserts)
	})

	t.Run("repository errors are returned", func(t *testing.T) {
		repo.insertErr = errors.New("connection refused")
		defer func() { repo.insertErr = nil }()

		_, err := s.GetOrCreate(ctx, "dee", models.GenderMale)
		require.Error(t, err)
	})
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestAvatarService(t)

	avatar, err := s.Create(ctx, "ana", models.GenderFemale, "hd-600-1.hr-515-45")
	require.NoError(t, err)
	require.Equal(t, "hr-515-45.hd-600-1", avatar.String())

	_, err = s.Create(ctx, "ana", models.GenderFemale, "")
	require.ErrorIs(t, err, ErrAvatarExists)

	avatar, err = s.Create(ctx, "bo", models.GenderMale, "")
	require.NoError(t, err)
	require.Equal(t, "hd-180", avatar.String())
}

func TestSaveInsertsWhenMissing(t *testing.T) {
	ctx := context.Background()
	s, repo := newTestAvatarService(t)

	avatar := figure.FromFigureString("hd-180-1.lg-270-82", models.GenderMale)
	require.NoError(t, s.Save(ctx, "ana", avatar))
	require.Equal(t, 1, repo.inserts)
	require.Equal(t, 0, repo.updates)

	require.NoError(t, s.Save(ctx, "ana", avatar.WithGender(models.GenderFemale)))
	require.Equal(t, 1, repo.updates)
	require.Equal(t, models.GenderFemale, repo.rows["ana"].Gender)
	require.Equal(t, "hd-180-1.lg-270-82", repo.rows["ana"].Figure)
}

func TestEquipSet(t *testing.T) {
	ctx := context.Background()
	s, repo := newTestAvatarService(t)

	avatar, err := s.EquipSet(ctx, "ana", "CH", "3030", "66-82")
	require.NoError(t, err)
	require.Equal(t, "hd-180.ch-3030-66-82", avatar.String())
	require.Equal(t, "hd-180.ch-3030-66-82", repo.rows["ana"].Figure)

	_, err = s.EquipSet(ctx, "ana", "ch", "660", "")
	require.ErrorIs(t, err, wardrobe.ErrUnknownSet)

	_, err = s.EquipSet(ctx, "ana", "ch", "3030", "9999")
	require.ErrorIs(t, err, wardrobe.ErrUnknownColor)

	_, err = s.EquipSet(ctx, "ana", "zz", "1", "")
	require.ErrorIs(t, err, wardrobe.ErrUnknownSetType)

	// 210 has a single color layer
	_, err = s.EquipSet(ctx, "ana", "ch", "210", "66-82-62")
	require.ErrorIs(t, err, wardrobe.ErrLayerOutOfRange)
	require.Equal(t, "hd-180.ch-3030-66-82", repo.rows["ana"].Figure)

	avatar, err = s.EquipSet(ctx, "ana", "ch", "", "66")
	require.NoError(t, err)
	require.Equal(t, "hd-180", avatar.String())
}

func TestColorLayer(t *testing.T) {
	ctx := context.Background()
	s, repo := newTestAvatarService(t)

	_, err := s.EquipSet(ctx, "ana", "ch", "3137", "62")
	require.NoError(t, err)

	avatar, err := s.ColorLayer(ctx, "ana", "ch", 1, "82")
	require.NoError(t, err)
	require.Equal(t, "hd-180.ch-3137-62-82", avatar.String())

	// 3137 has two color layers
	_, err = s.ColorLayer(ctx, "ana", "ch", 2, "82")
	require.ErrorIs(t, err, wardrobe.ErrLayerOutOfRange)

	_, err = s.ColorLayer(ctx, "ana", "ch", 0, "31")
	require.ErrorIs(t, err, wardrobe.ErrUnknownColor)

	_, err = s.ColorLayer(ctx, "ana", "lg", 0, "82")
	require.ErrorIs(t, err, ErrSlotEmpty)

	_, err = s.ColorLayer(ctx, "ana", "xx", 0, "82")
	require.ErrorIs(t, err, figure.ErrUnknownTypeCode)

	t.Run("color id spanning layers is rejected", func(t *testing.T) {
		_, err := s.EquipSet(ctx, "pat", "ch", "210", "66")
		require.NoError(t, err)

		_, err = s.ColorLayer(ctx, "pat", "ch", 0, "66-82-62")
		require.ErrorIs(t, err, figure.ErrMultiLayerColor)
		require.Equal(t, "hd-180.ch-210-66", repo.rows["pat"].Figure)
	})

	_, err = s.EquipSet(ctx, "ana", "he", "1601", "")
	require.NoError(t, err)
	_, err = s.ColorLayer(ctx, "ana", "he", 0, "82")
	require.ErrorIs(t, err, wardrobe.ErrLayerOutOfRange)
}

func TestResetGender(t *testing.T) {
	ctx := context.Background()
	s, repo := newTestAvatarService(t)

	_, err := s.EquipSet(ctx, "ana", "hr", "100", "45")
	require.NoError(t, err)

	avatar, err := s.ResetGender(ctx, "ana", models.GenderFemale)
	require.NoError(t, err)
	require.Equal(t, models.GenderFemale, avatar.Gender())
	require.Equal(t, "hd-600", avatar.String())
	require.Equal(t, "hd-600", repo.rows["ana"].Figure)
}

func TestConcurrentInsert(t *testing.T) {
	ctx := context.Background()

	t.Run("GetOrCreate reloads the row another request inserted", func(t *testing.T) {
		s, repo := newTestAvatarService(t)
		repo.rows["ana"] = models.AvatarRecord{UserID: "ana", Gender: models.GenderFemale, Figure: "hr-515-45.hd-600"}
		repo.staleReads = 1

		avatar, err := s.GetOrCreate(ctx, "ana", models.GenderMale)
		require.NoError(t, err)
		require.Equal(t, "hr-515-45.hd-600", avatar.String())
		require.Equal(t, models.GenderFemale, avatar.Gender())
		require.Equal(t, 0, repo.inserts)
	})

	t.Run("Create reports an existing avatar", func(t *testing.T) {
		s, repo := newTestAvatarService(t)
		repo.rows["bo"] = models.AvatarRecord{UserID: "bo", Gender: models.GenderMale, Figure: "hd-180"}
		repo.staleReads = 1

		_, err := s.Create(ctx, "bo", models.GenderMale, "hd-180-1")
		require.ErrorIs(t, err, ErrAvatarExists)
		require.Equal(t, "hd-180", repo.rows["bo"].Figure)
	})
}

func TestGetMissing(t *testing.T) {
	s, _ := newTestAvatarService(t)
	_, err := s.Get(context.Background(), "nobody")
	require.ErrorIs(t, err, repository.ErrAvatarNotFound)
}
