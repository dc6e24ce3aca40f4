package service

import (
	"context"
	"path/filepath"
	"testing"

	"avatar-wardrobe/models"
	"avatar-wardrobe/wardrobe"

	"github.com/stretchr/testify/require"
)

func TestFigureDataServiceReloadFromFile(t *testing.T) {
	s := NewFigureDataService(bundledFigureData, nil, "")

	_, err := s.Catalog(models.GenderMale)
	require.Error(t, err)
	require.True(t, s.LoadedAt().IsZero())

	require.NoError(t, s.Reload(context.Background()))
	require.False(t, s.LoadedAt().IsZero())

	male, err := s.Catalog(models.GenderMale)
	require.NoError(t, err)
	require.Len(t, male.SetTypes(), 13)

	hd, err := male.SetType("hd")
	require.NoError(t, err)
	options, err := hd.CreateOptions("M")
	require.NoError(t, err)
	require.Equal(t, []wardrobe.Option{{ID: "180", Name: "180", Preview: "180"}}, options)

	female, err := s.Catalog(models.GenderFemale)
	require.NoError(t, err)
	_, err = female.SetType("hd")
	require.NoError(t, err)

	_, err = s.Catalog(models.GenderUnisex)
	require.ErrorIs(t, err, wardrobe.ErrInvalidGender)

	require.Contains(t, s.Icons(), "hair")
}

func TestFigureDataServiceReloadFromDrive(t *testing.T) {
	drive := &fakeDrive{files: map[string][]byte{"figuredata-id": readBundledFigureData(t)}}
	s := NewFigureDataService("does-not-exist.xml", drive, "figuredata-id")

	require.NoError(t, s.Reload(context.Background()))
	require.Equal(t, 1, drive.downloads)

	catalog, err := s.Catalog(models.GenderFemale)
	require.NoError(t, err)
	ch, err := catalog.SetType("ch")
	require.NoError(t, err)
	_, err = ch.Set("660")
	require.NoError(t, err)
}

func TestFigureDataServiceFailedReloadKeepsCatalogs(t *testing.T) {
	s := loadedFigureData(t)
	before, err := s.Catalog(models.GenderMale)
	require.NoError(t, err)

	s.path = filepath.Join(t.TempDir(), "missing.xml")
	require.Error(t, s.Reload(context.Background()))

	after, err := s.Catalog(models.GenderMale)
	require.NoError(t, err)
	require.Same(t, before, after)
}

func TestFigureDataServiceDefaultPath(t *testing.T) {
	s := NewFigureDataService("", nil, "")
	require.Equal(t, defaultFigureDataPath, s.path)
	// icons are available before the first load
	require.Contains(t, s.Icons(), "body")
}
