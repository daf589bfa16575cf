package io

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mockblossom/external/blossom"
)

func TestBlobRoundTrip(t *testing.T) {
	handler, err := MakeFileSystemHandler(t.TempDir())
	if err != nil {
		t.Fatalf("MakeFileSystemHandler(t.TempDir()) %+v", err)
	}

	data := []byte("hello world!!")
	hash := blossom.Sha256Hex(data)

	err = handler.WriteBlob(hash, data)
	if err != nil {
		t.Fatalf("handler.WriteBlob(hash, data) %+v", err)
	}

	got, err := handler.GetBlob(hash)
	if err != nil {
		t.Fatalf("handler.GetBlob(hash) %+v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("round trip mismatch. got: %q", got)
	}

	exists, size := handler.BlobExists(hash)
	if !exists {
		t.Errorf("blob should exist after write")
	}
	if size != int64(len(data)) {
		t.Errorf("wrong size. got: %v want: %v", size, len(data))
	}
}

func TestMetaRoundTrip(t *testing.T) {
	handler, err := MakeFileSystemHandler(t.TempDir())
	if err != nil {
		t.Fatalf("MakeFileSystemHandler(t.TempDir()) %+v", err)
	}

	hash := blossom.Sha256Hex([]byte("meta test"))
	meta := blossom.BlobMeta{
		Sha256:   hash,
		Type:     "text/plain",
		Size:     9,
		Uploaded: 1700000000,
		Pubkey:   "test-pubkey",
	}

	err = handler.WriteMeta(meta)
	if err != nil {
		t.Fatalf("handler.WriteMeta(meta) %+v", err)
	}

	got, err := handler.GetMeta(hash)
	if err != nil {
		t.Fatalf("handler.GetMeta(hash) %+v", err)
	}
	if got != meta {
		t.Errorf("meta mismatch. got: %+v want: %+v", got, meta)
	}
}

func TestRemoveBlob(t *testing.T) {
	handler, err := MakeFileSystemHandler(t.TempDir())
	if err != nil {
		t.Fatalf("MakeFileSystemHandler(t.TempDir()) %+v", err)
	}

	data := []byte("to be removed")
	hash := blossom.Sha256Hex(data)

	if err := handler.WriteBlob(hash, data); err != nil {
		t.Fatalf("handler.WriteBlob(hash, data) %+v", err)
	}
	if err := handler.WriteMeta(blossom.BlobMeta{Sha256: hash, Type: "text/plain", Size: int64(len(data))}); err != nil {
		t.Fatalf("handler.WriteMeta() %+v", err)
	}

	if err := handler.RemoveBlob(hash); err != nil {
		t.Fatalf("handler.RemoveBlob(hash) %+v", err)
	}

	if exists, _ := handler.BlobExists(hash); exists {
		t.Errorf("blob should be gone after remove")
	}
	if _, err := handler.GetBlob(hash); !errors.Is(err, ErrBlobNotFound) {
		t.Errorf("expected ErrBlobNotFound, got: %+v", err)
	}
	if _, err := handler.GetMeta(hash); !errors.Is(err, ErrBlobNotFound) {
		t.Errorf("metadata should be gone after remove, got: %+v", err)
	}

	if err := handler.RemoveBlob(hash); !errors.Is(err, ErrBlobNotFound) {
		t.Errorf("second remove should be ErrBlobNotFound, got: %+v", err)
	}
}

func TestInvalidIdentifierNeverTouchesStorage(t *testing.T) {
	dir := t.TempDir()
	handler, err := MakeFileSystemHandler(dir)
	if err != nil {
		t.Fatalf("MakeFileSystemHandler(dir) %+v", err)
	}

	for _, bad := range []string{"", "short", "../../etc/passwd", "ZZ80c4c6720e0d5ce4789bf72df03a6e1b3ed80891f3adbe8833c760399b8e91"} {
		if err := handler.WriteBlob(bad, []byte("x")); !errors.Is(err, ErrInvalidHash) {
			t.Errorf("WriteBlob(%q) expected ErrInvalidHash, got: %+v", bad, err)
		}
		if _, err := handler.GetBlob(bad); !errors.Is(err, ErrInvalidHash) {
			t.Errorf("GetBlob(%q) expected ErrInvalidHash, got: %+v", bad, err)
		}
		if err := handler.RemoveBlob(bad); !errors.Is(err, ErrInvalidHash) {
			t.Errorf("RemoveBlob(%q) expected ErrInvalidHash, got: %+v", bad, err)
		}
		if exists, _ := handler.BlobExists(bad); exists {
			t.Errorf("BlobExists(%q) should be false", bad)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("os.ReadDir(dir) %+v", err)
	}
	for _, e := range entries {
		if e.Name() != MetaDirName {
			t.Errorf("unexpected entry created in data dir: %v", e.Name())
		}
	}
}

func TestIdempotentOverwrite(t *testing.T) {
	handler, err := MakeFileSystemHandler(t.TempDir())
	if err != nil {
		t.Fatalf("MakeFileSystemHandler(t.TempDir()) %+v", err)
	}

	data := []byte("same bytes twice")
	hash := blossom.Sha256Hex(data)

	if err := handler.WriteBlob(hash, data); err != nil {
		t.Fatalf("handler.WriteBlob() first %+v", err)
	}
	if err := handler.WriteBlob(hash, data); err != nil {
		t.Fatalf("handler.WriteBlob() second %+v", err)
	}

	got, err := handler.GetBlob(hash)
	if err != nil {
		t.Fatalf("handler.GetBlob(hash) %+v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("overwrite corrupted content. got: %q", got)
	}

	// Single content file, no duplicates.
	if _, err := os.Stat(filepath.Join(handler.GetStoragePath(), hash)); err != nil {
		t.Errorf("content file missing: %+v", err)
	}
}
