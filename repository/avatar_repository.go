package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"avatar-wardrobe/db"
	"avatar-wardrobe/models"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a duplicate key
const uniqueViolation = "23505"

var (
	// ErrAvatarNotFound is returned when no avatar row exists for a user
	ErrAvatarNotFound = errors.New("avatar not found")
	// ErrAvatarDuplicate is returned when inserting a row for a user that already has one
	ErrAvatarDuplicate = errors.New("avatar row already exists")
)

// isUniqueViolation reports whether err is a duplicate key error from PostgreSQL
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// AvatarRepository handles database operations for avatars
// Implements AvatarRepositoryInterface
type AvatarRepository struct{}

// NewAvatarRepository creates a new AvatarRepository
func NewAvatarRepository() *AvatarRepository {
	return &AvatarRepository{}
}

// Ensure AvatarRepository implements AvatarRepositoryInterface
var _ AvatarRepositoryInterface = (*AvatarRepository)(nil)

// GetByUserID retrieves the avatar of a user
func (r *AvatarRepository) GetByUserID(ctx context.Context, userID string) (*models.AvatarRecord, error) {
	log.Printf("🔍 GetByUserID: Fetching avatar for user_id=%s", userID)

	query := `
		SELECT user_id, gender, figure, created_at, updated_at
		FROM avatars
		WHERE user_id = $1
	`

	var record models.AvatarRecord
	var gender string
	err := db.DB.QueryRowContext(ctx, query, userID).Scan(
		&record.UserID,
		&gender,
		&record.Figure,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrAvatarNotFound)
		}
		log.Printf("❌ GetByUserID: Error fetching avatar: %v", err)
		return nil, fmt.Errorf("failed to fetch avatar: %w", err)
	}
	record.Gender = models.Gender(gender)

	return &record, nil
}

// Insert stores a new avatar and fills the timestamps set by the database
func (r *AvatarRepository) Insert(ctx context.Context, record *models.AvatarRecord) error {
	log.Printf("💾 Insert: Creating avatar for user_id=%s gender=%s", record.UserID, record.Gender)

	query := `
		INSERT INTO avatars (user_id, gender, figure)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`

	err := db.DB.QueryRowContext(ctx, query, record.UserID, string(record.Gender), record.Figure).Scan(
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if isUniqueViolation(err) {
		log.Printf("⚠️  Insert: Avatar for user_id=%s already exists", record.UserID)
		return fmt.Errorf("user %s: %w", record.UserID, ErrAvatarDuplicate)
	}
	if err != nil {
		log.Printf("❌ Insert: Error inserting avatar: %v", err)
		return fmt.Errorf("failed to insert avatar: %w", err)
	}

	log.Printf("✓ Insert: Avatar created for user_id=%s", record.UserID)
	return nil
}

// Update replaces gender and figure of an existing avatar
func (r *AvatarRepository) Update(ctx context.Context, record *models.AvatarRecord) error {
	log.Printf("💾 Update: Saving avatar for user_id=%s figure=%s", record.UserID, record.Figure)

	query := `
		UPDATE avatars
		SET gender = $1, figure = $2, updated_at = NOW()
		WHERE user_id = $3
		RETURNING created_at, updated_at
	`

	err := db.DB.QueryRowContext(ctx, query, string(record.Gender), record.Figure, record.UserID).Scan(
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("user %s: %w", record.UserID, ErrAvatarNotFound)
		}
		log.Printf("❌ Update: Error updating avatar: %v", err)
		return fmt.Errorf("failed to update avatar: %w", err)
	}

	return nil
}
