package folders

import (
	"context"

	"github.com/dmitrijs2005/lockbox/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, folder *models.Folder) error
	GetByID(ctx context.Context, userID, id string) (*models.Folder, error)
	Delete(ctx context.Context, userID, id string) error
}
