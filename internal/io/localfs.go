package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mockblossom/external/blossom"
	"mockblossom/internal/utils"
)

const MetaDirName = ".meta"

// Errors from store operations
var (
	ErrInvalidHash  = errors.New("Invalid hash format")
	ErrBlobNotFound = errors.New("Blob not found")
)

// LocalFSHandler stores blob content directly under DataPath, named by
// content hash, with metadata JSON under DataPath/.meta. Writes are
// whole-file, so re-uploading identical bytes overwrites in place and two
// racing writers of the same hash produce byte-identical output.
type LocalFSHandler struct {
	DataPath string
}

func MakeFileSystemHandler(dataPath string) (LocalFSHandler, error) {
	var handler LocalFSHandler

	err := utils.MakeSureDirExists(dataPath)
	if err != nil {
		return handler, fmt.Errorf("utils.MakeSureDirExists(dataPath). %w", err)
	}

	err = utils.MakeSureDirExists(filepath.Join(dataPath, MetaDirName))
	if err != nil {
		return handler, fmt.Errorf("utils.MakeSureDirExists(metaPath). %w", err)
	}

	handler.DataPath = dataPath

	return handler, nil
}

func (l LocalFSHandler) blobPath(hash string) string {
	return filepath.Join(l.DataPath, hash)
}

func (l LocalFSHandler) metaPath(hash string) string {
	return filepath.Join(l.DataPath, MetaDirName, hash+".json")
}

func (l LocalFSHandler) WriteBlob(hash string, blob []byte) error {
	if !blossom.ValidHash(hash) {
		return ErrInvalidHash
	}
	err := os.WriteFile(l.blobPath(hash), blob, 0764)
	if err != nil {
		return fmt.Errorf(`os.WriteFile(l.blobPath(hash), blob, 0764). %w`, err)
	}
	return nil
}

func (l LocalFSHandler) GetBlob(hash string) ([]byte, error) {
	if !blossom.ValidHash(hash) {
		return nil, ErrInvalidHash
	}
	fileBytes, err := os.ReadFile(l.blobPath(hash))
	if os.IsNotExist(err) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf(`os.ReadFile(l.blobPath(hash)). %w`, err)
	}
	return fileBytes, nil
}

func (l LocalFSHandler) BlobExists(hash string) (bool, int64) {
	if !blossom.ValidHash(hash) {
		return false, 0
	}
	info, err := os.Stat(l.blobPath(hash))
	if err != nil {
		return false, 0
	}
	return true, info.Size()
}

// RemoveBlob deletes content and metadata. Missing metadata is tolerated;
// missing content is ErrBlobNotFound.
func (l LocalFSHandler) RemoveBlob(hash string) error {
	if !blossom.ValidHash(hash) {
		return ErrInvalidHash
	}
	err := os.Remove(l.blobPath(hash))
	if os.IsNotExist(err) {
		return ErrBlobNotFound
	}
	if err != nil {
		return fmt.Errorf(`os.Remove(l.blobPath(hash)). %w`, err)
	}

	err = os.Remove(l.metaPath(hash))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf(`os.Remove(l.metaPath(hash)). %w`, err)
	}
	return nil
}

func (l LocalFSHandler) WriteMeta(meta blossom.BlobMeta) error {
	if !blossom.ValidHash(meta.Sha256) {
		return ErrInvalidHash
	}
	jsonBytes, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf(`json.Marshal(meta). %w`, err)
	}
	err = os.WriteFile(l.metaPath(meta.Sha256), jsonBytes, 0764)
	if err != nil {
		return fmt.Errorf(`os.WriteFile(l.metaPath(meta.Sha256), jsonBytes, 0764). %w`, err)
	}
	return nil
}

func (l LocalFSHandler) GetMeta(hash string) (blossom.BlobMeta, error) {
	var meta blossom.BlobMeta
	if !blossom.ValidHash(hash) {
		return meta, ErrInvalidHash
	}
	jsonBytes, err := os.ReadFile(l.metaPath(hash))
	if os.IsNotExist(err) {
		return meta, ErrBlobNotFound
	}
	if err != nil {
		return meta, fmt.Errorf(`os.ReadFile(l.metaPath(hash)). %w`, err)
	}
	err = json.Unmarshal(jsonBytes, &meta)
	if err != nil {
		return meta, fmt.Errorf(`json.Unmarshal(jsonBytes, &meta). %w`, err)
	}
	return meta, nil
}

func (l LocalFSHandler) GetStoragePath() string {
	return l.DataPath
}
