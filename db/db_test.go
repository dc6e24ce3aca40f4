package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnectionString(t *testing.T) {
	t.Run("database url wins", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/wardrobe")
		t.Setenv("DB_HOST", "ignored")

		connStr, err := ConnectionString()
		require.NoError(t, err)
		require.Equal(t, "postgres://u:p@db:5432/wardrobe", connStr)
	})

	t.Run("individual variables with defaults", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_PORT", "")
		t.Setenv("DB_USER", "wardrobe")
		t.Setenv("DB_PASSWORD", "secret")
		t.Setenv("DB_NAME", "avatars")
		t.Setenv("DB_SSLMODE", "")

		connStr, err := ConnectionString()
		require.NoError(t, err)
		require.Equal(t, "host=localhost port=5432 user=wardrobe password=secret dbname=avatars sslmode=disable", connStr)
	})

	t.Run("missing variables", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("DB_HOST", "")
		t.Setenv("DB_USER", "")
		t.Setenv("DB_NAME", "")

		_, err := ConnectionString()
		require.Error(t, err)
	})
}

func TestEnsureSchemaWithoutConnection(t *testing.T) {
	DB = nil
	require.Error(t, EnsureSchema(context.Background()))
	require.NoError(t, CloseDB())
}
