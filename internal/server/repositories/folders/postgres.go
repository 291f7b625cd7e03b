package folders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lockbox/internal/common"
	"github.com/dmitrijs2005/lockbox/internal/dbx"
	"github.com/dmitrijs2005/lockbox/internal/server/models"
)

// PostgresRepository implements folder storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := `INSERT INTO folders (id, user_id, name) VALUES ($1, $2, $3);`
	_, err := r.db.ExecContext(ctx, query, folder.ID, folder.UserID, folder.Name)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetByID returns the folder, scoped to its owner. Used to verify ownership
// before attaching files.
func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*models.Folder, error) {
	query := `SELECT id, user_id, name, created_at FROM folders WHERE user_id=$1 AND id=$2`

	result := &models.Folder{}
	err := r.db.QueryRowContext(ctx, query, userID, id).Scan(
		&result.ID, &result.UserID, &result.Name, &result.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select folder: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM folders WHERE user_id=$1 AND id=$2`
	result, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
