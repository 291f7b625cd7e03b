package files

import (
	"context"

	"github.com/dmitrijs2005/lockbox/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, file *models.File) error
	GetByID(ctx context.Context, userID, id string) (*models.File, error)
	Rename(ctx context.Context, userID, id, name string) error
	SetFolder(ctx context.Context, userID, id string, folderID *string) error
	Delete(ctx context.Context, userID, id string) error
	DetachFolder(ctx context.Context, userID, folderID string) error
}
