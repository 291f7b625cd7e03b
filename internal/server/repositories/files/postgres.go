package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lockbox/internal/common"
	"github.com/dmitrijs2005/lockbox/internal/dbx"
	"github.com/dmitrijs2005/lockbox/internal/server/models"
)

// PostgresRepository implements file metadata storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the metadata row for a freshly sealed blob.
func (r *PostgresRepository) Create(ctx context.Context, file *models.File) error {
	query := `
		INSERT INTO files (id, user_id, folder_id, name, mime_type, size_bytes, storage_key, nonce, auth_tag, is_encrypted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db.ExecContext(ctx, query,
		file.ID, file.UserID, file.FolderID, file.Name, file.MimeType,
		file.Size, file.StorageKey, file.Nonce, file.AuthTag, file.IsEncrypted)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetByID returns the metadata row for id, scoped to its owner.
func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*models.File, error) {
	query := ` SELECT id, user_id, folder_id, name, mime_type, size_bytes, storage_key, nonce, auth_tag, is_encrypted, created_at, updated_at FROM files
		WHERE user_id=$1 AND id=$2
		`

	result := &models.File{}
	err := r.db.QueryRowContext(ctx, query, userID, id).Scan(
		&result.ID, &result.UserID, &result.FolderID, &result.Name, &result.MimeType,
		&result.Size, &result.StorageKey, &result.Nonce, &result.AuthTag, &result.IsEncrypted,
		&result.CreatedAt, &result.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select file: %w", err)
	}
	return result, nil
}

// Rename updates only the user-visible name; the stored blob, nonce and tag
// are never touched. Exactly one row must be affected.
func (r *PostgresRepository) Rename(ctx context.Context, userID, id, name string) error {
	query := `UPDATE files SET name=$3, updated_at=now() WHERE user_id=$1 AND id=$2`
	return r.execExpectingOneRow(ctx, query, userID, id, name)
}

// SetFolder moves the file into folderID (nil moves it to the root).
func (r *PostgresRepository) SetFolder(ctx context.Context, userID, id string, folderID *string) error {
	query := `UPDATE files SET folder_id=$3, updated_at=now() WHERE user_id=$1 AND id=$2`
	return r.execExpectingOneRow(ctx, query, userID, id, folderID)
}

// Delete removes the metadata row. The caller is responsible for removing
// the stored blob itself.
func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM files WHERE user_id=$1 AND id=$2`
	return r.execExpectingOneRow(ctx, query, userID, id)
}

// DetachFolder moves every file of the given folder back to the root.
// Used when the folder itself is being deleted.
func (r *PostgresRepository) DetachFolder(ctx context.Context, userID, folderID string) error {
	query := `UPDATE files SET folder_id=NULL, updated_at=now() WHERE user_id=$1 AND folder_id=$2`
	_, err := r.db.ExecContext(ctx, query, userID, folderID)
	if err != nil {
		return fmt.Errorf("failed to detach files: %w", err)
	}
	return nil
}

func (r *PostgresRepository) execExpectingOneRow(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
