package models

import "time"

// Image holds server-side metadata for an uploaded image. The bytes
// themselves live in object storage under StorageKey; Encrypted marks
// payloads that were AES-GCM encrypted before upload, with Nonce kept
// here for decryption on read.
type Image struct {
	ID          string
	ArticleID   string
	UserID      string
	Name        string
	ContentType string
	Size        int64
	StorageKey  string
	Encrypted   bool
	Nonce       []byte
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
