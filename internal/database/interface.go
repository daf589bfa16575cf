package database

import "mockblossom/external/blossom"

// Database is the ownership index: an append-only record of uploads,
// queryable by owner pubkey. Deletion of a blob never removes its records;
// liveness is derived by the caller existence-checking each record.
type Database interface {
	RecordUpload(rec blossom.UploadRecord) error
	ListByPubkey(pubkey string) ([]blossom.UploadRecord, error)
}
