// Package models defines server-side data models persisted in the database.
package models

import "time"

// File describes server-side metadata for one stored file. The (possibly
// encrypted) content itself lives in object storage under StorageKey; only
// the nonce and authentication tag travel with the record.
type File struct {
	// ID is the file's primary identifier (UUID).
	ID string
	// UserID is the owner of the file. Every read is scoped to it.
	UserID string
	// FolderID is the containing folder, nil for the root.
	FolderID *string

	// Name is the user-visible file name. Renames touch only this field.
	Name string
	// MimeType is the declared content type, replayed on download.
	MimeType string
	// Size is the plaintext length in bytes.
	Size int64

	// StorageKey is the object-storage key of the stored blob.
	StorageKey string
	// Nonce is the hex-encoded AEAD nonce, empty for legacy records.
	Nonce string
	// AuthTag is the hex-encoded authentication tag, empty for legacy records.
	AuthTag string
	// IsEncrypted discriminates sealed content from legacy plaintext blobs.
	IsEncrypted bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
