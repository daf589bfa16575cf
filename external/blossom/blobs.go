package blossom

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
)

const DefaultContentType = "application/octet-stream"

// Blob is an uploaded payload together with the attributes the client
// declared for it.
type Blob struct {
	Data []byte
	Size uint64
	Type string
	Name string
}

// BlobMeta is the per-blob metadata document persisted next to the content.
type BlobMeta struct {
	Sha256   string `json:"sha256"`
	Type     string `json:"type"`
	Size     int64  `json:"size"`
	Uploaded int64  `json:"uploaded"`
	Pubkey   string `json:"pubkey"`
}

// BlobDescriptor is the BUD-02 wire representation of a stored blob.
type BlobDescriptor struct {
	Url      string `json:"url"`
	Sha256   string `json:"sha256"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
	Uploaded int64  `json:"uploaded"`
}

// UploadRecord is one line of the append-only upload log. Records are never
// mutated; a record only counts while its blob still exists on disk.
type UploadRecord struct {
	Sha256   string `json:"sha256"`
	Pubkey   string `json:"pubkey"`
	Type     string `json:"type"`
	Size     int64  `json:"size"`
	Uploaded int64  `json:"uploaded"`
}

// Sha256Hex returns the lowercase hex SHA-256 digest of data. The digest is
// the blob's identity everywhere in the protocol.
func Sha256Hex(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

var hashShape = regexp.MustCompile(`^[0-9a-f]{64}$`)

// ValidHash reports whether s has the shape of a content identifier.
func ValidHash(s string) bool {
	return hashShape.MatchString(s)
}
