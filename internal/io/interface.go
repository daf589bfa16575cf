package io

import "mockblossom/external/blossom"

// BlossomIO is the blob store: content bytes keyed by sha256 hex, with a
// metadata document per blob.
type BlossomIO interface {
	WriteBlob(hash string, blob []byte) error
	GetBlob(hash string) ([]byte, error)
	BlobExists(hash string) (bool, int64)
	RemoveBlob(hash string) error

	WriteMeta(meta blossom.BlobMeta) error
	GetMeta(hash string) (blossom.BlobMeta, error)

	GetStoragePath() string
}
