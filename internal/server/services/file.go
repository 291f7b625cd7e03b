// Package services implements the use cases behind the HTTP handlers:
// sealing uploads into blob storage, opening downloads, and the metadata
// operations around them.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/lockbox/internal/common"
	"github.com/dmitrijs2005/lockbox/internal/cryptox"
	"github.com/dmitrijs2005/lockbox/internal/dbx"
	"github.com/dmitrijs2005/lockbox/internal/logging"
	"github.com/dmitrijs2005/lockbox/internal/server/models"
	"github.com/dmitrijs2005/lockbox/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/lockbox/internal/server/storage"
)

// FileService seals uploaded content, stores ciphertext in the blob store
// and metadata (with nonce and tag) in the database, and reverses the
// transform on download.
type FileService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	blobs  storage.BlobStore
	codec  *cryptox.Codec
	logger logging.Logger
}

func NewFileService(db *sql.DB, repos repomanager.RepositoryManager, blobs storage.BlobStore, codec *cryptox.Codec, logger logging.Logger) *FileService {
	return &FileService{
		db:     db,
		repos:  repos,
		blobs:  blobs,
		codec:  codec,
		logger: logger.With("module", "file_service"),
	}
}

// randomStorageKey spreads objects by date and never derives the key from
// file identity or content.
func randomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("users/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

// Upload seals data and persists it: ciphertext to the blob store, the
// metadata row (including the hex nonce and tag) to the database. The three
// sealed parts are written in one logical step so they can only ever be
// read back together.
func (s *FileService) Upload(ctx context.Context, userID, name, mimeType string, folderID *string, data []byte) (*models.File, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.ErrorInvalidName
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	sealed, err := s.codec.Seal(data)
	if err != nil {
		return nil, fmt.Errorf("seal error: %w", err)
	}

	key := randomStorageKey()
	if err := s.blobs.Put(ctx, key, sealed.Ciphertext); err != nil {
		return nil, fmt.Errorf("blob store error: %w", err)
	}

	file := &models.File{
		ID:          uuid.NewString(),
		UserID:      userID,
		FolderID:    folderID,
		Name:        name,
		MimeType:    mimeType,
		Size:        int64(len(data)),
		StorageKey:  key,
		Nonce:       cryptox.EncodeToken(sealed.Nonce),
		AuthTag:     cryptox.EncodeToken(sealed.Tag),
		IsEncrypted: true,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if folderID != nil {
			if _, err := s.repos.Folders(tx).GetByID(ctx, userID, *folderID); err != nil {
				return err
			}
		}
		return s.repos.Files(tx).Create(ctx, file)
	})
	if err != nil {
		// Do not leave orphaned ciphertext behind a failed insert.
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			s.logger.Warn(ctx, "failed to clean up blob after insert error", "storage_key", key, "error", delErr.Error())
		}
		return nil, err
	}

	return file, nil
}

// Download loads the record scoped to its owner, fetches the stored bytes,
// and opens them when the record is encrypted. Legacy unencrypted records
// are returned as stored, without touching the codec. Any decryption
// failure is terminal for the request: stored bytes are never handed out
// when verification fails.
func (s *FileService) Download(ctx context.Context, userID, id string) (*models.File, []byte, error) {
	file, err := s.repos.Files(s.db).GetByID(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}

	raw, err := s.blobs.Get(ctx, file.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("blob store error: %w", err)
	}

	content, err := file.Content(raw)
	if err != nil {
		return nil, nil, err
	}

	var plaintext []byte
	switch c := content.(type) {
	case *models.EncryptedContent:
		plaintext, err = s.codec.Open(&c.Sealed)
		if err != nil {
			return nil, nil, err
		}
	case *models.PlainContent:
		plaintext = c.Bytes
	default:
		return nil, nil, common.ErrorInternal
	}

	return file, plaintext, nil
}

// Rename changes only the user-visible name. The stored blob and its
// tokens are immutable for the life of the record.
func (s *FileService) Rename(ctx context.Context, userID, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return common.ErrorInvalidName
	}
	return s.repos.Files(s.db).Rename(ctx, userID, id, name)
}

// Move attaches the file to folderID, or to the root when folderID is nil.
// Folder ownership is checked in the same transaction as the update.
func (s *FileService) Move(ctx context.Context, userID, id string, folderID *string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if folderID != nil {
			if _, err := s.repos.Folders(tx).GetByID(ctx, userID, *folderID); err != nil {
				return err
			}
		}
		return s.repos.Files(tx).SetFolder(ctx, userID, id, folderID)
	})
}

// Delete removes the metadata row and then the stored blob. A blob-store
// failure after the row is gone leaves an unreachable object; it is logged
// and not surfaced, since the record itself is already deleted.
func (s *FileService) Delete(ctx context.Context, userID, id string) error {
	file, err := s.repos.Files(s.db).GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.repos.Files(s.db).Delete(ctx, userID, id); err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, file.StorageKey); err != nil {
		s.logger.Warn(ctx, "failed to delete blob for removed file", "storage_key", file.StorageKey, "error", err.Error())
	}
	return nil
}
