package models

import "github.com/dmitrijs2005/lockbox/internal/cryptox"

// Content is the tagged variant behind a stored blob: either sealed
// ciphertext with its tokens, or legacy plaintext stored before encryption
// was introduced. Consumers switch over the concrete type, so the "maybe
// decrypt" decision is an exhaustive match instead of null checks.
type Content interface {
	isContent()
}

// EncryptedContent carries a complete sealed blob ready for Codec.Open.
type EncryptedContent struct {
	Sealed cryptox.SealedBlob
}

// PlainContent carries legacy bytes that must be returned unchanged,
// bypassing the codec entirely.
type PlainContent struct {
	Bytes []byte
}

func (EncryptedContent) isContent() {}
func (PlainContent) isContent()     {}

// Content classifies the raw stored bytes for this record. For encrypted
// records the nonce and tag tokens are decoded and validated here: a record
// flagged encrypted but missing either token is malformed and is rejected
// before any decryption is attempted.
func (f *File) Content(raw []byte) (Content, error) {
	if !f.IsEncrypted {
		return &PlainContent{Bytes: raw}, nil
	}

	nonce, err := cryptox.DecodeToken(f.Nonce, cryptox.NonceSize)
	if err != nil {
		return nil, err
	}
	tag, err := cryptox.DecodeToken(f.AuthTag, cryptox.TagSize)
	if err != nil {
		return nil, err
	}

	return &EncryptedContent{Sealed: cryptox.SealedBlob{
		Ciphertext: raw,
		Nonce:      nonce,
		Tag:        tag,
	}}, nil
}
