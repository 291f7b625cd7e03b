package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/lockbox/internal/common"
	"github.com/dmitrijs2005/lockbox/internal/dbx"
	"github.com/dmitrijs2005/lockbox/internal/server/models"
	"github.com/dmitrijs2005/lockbox/internal/server/repositories/repomanager"
)

// FolderService manages the folder records files can be attached to.
type FolderService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewFolderService(db *sql.DB, repos repomanager.RepositoryManager) *FolderService {
	return &FolderService{db: db, repos: repos}
}

func (s *FolderService) Create(ctx context.Context, userID, name string) (*models.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.ErrorInvalidName
	}

	folder := &models.Folder{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   name,
	}

	if err := s.repos.Folders(s.db).Create(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// Delete removes the folder and detaches its files back to the root in one
// transaction. File records and their blobs are untouched.
func (s *FolderService) Delete(ctx context.Context, userID, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.Files(tx).DetachFolder(ctx, userID, id); err != nil {
			return err
		}
		return s.repos.Folders(tx).Delete(ctx, userID, id)
	})
}
