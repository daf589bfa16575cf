package database

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"mockblossom/external/blossom"
)

const UploadLogName = ".uploads.jsonl"

// UploadLog keeps the ownership index as newline-delimited JSON under the
// data directory. Appends are serialized by a single-writer mutex; the only
// mutation is append, so reads stay lock-free.
type UploadLog struct {
	Path string

	mu sync.Mutex
}

func MakeUploadLog(dataPath string) *UploadLog {
	return &UploadLog{
		Path: filepath.Join(dataPath, UploadLogName),
	}
}

func (u *UploadLog) RecordUpload(rec blossom.UploadRecord) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	jsonBytes, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf(`json.Marshal(rec). %w`, err)
	}

	f, err := os.OpenFile(u.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0764)
	if err != nil {
		return fmt.Errorf(`os.OpenFile(u.Path). %w`, err)
	}
	defer f.Close()

	_, err = f.Write(append(jsonBytes, '\n'))
	if err != nil {
		return fmt.Errorf(`f.Write(jsonBytes). %w`, err)
	}
	return nil
}

// ListByPubkey scans the full log and returns the records owned by pubkey in
// append order. Malformed lines are skipped. A missing log file means no
// uploads yet.
func (u *UploadLog) ListByPubkey(pubkey string) ([]blossom.UploadRecord, error) {
	f, err := os.Open(u.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(`os.Open(u.Path). %w`, err)
	}
	defer f.Close()

	var records []blossom.UploadRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec blossom.UploadRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			continue
		}
		if rec.Pubkey == pubkey {
			records = append(records, rec)
		}
	}
	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf(`scanner.Err(). %w`, err)
	}
	return records, nil
}
