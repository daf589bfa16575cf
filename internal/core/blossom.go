package core

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"mockblossom/external/blossom"
	n "mockblossom/external/nostr"
	"mockblossom/internal/config"
	"mockblossom/internal/fault"
	"mockblossom/internal/io"
)

// FallbackPubkey owns uploads whose authorization carried no usable pubkey
// under the warn-only policy.
const FallbackPubkey = "test-pubkey"

func blobURL(host string, hash string) string {
	if host == "" {
		host = "localhost"
	}
	return "http://" + host + "/" + hash
}

// authorize runs the structural token check for action/targetHash. Under the
// warn-only policy any failure is logged and the request proceeds owned by
// the fixed placeholder; under enforce the caller gets ok=false after a 401
// has been written.
func (srv *BlossomServer) authorize(c *gin.Context, action string, targetHash string) (string, bool) {
	pubkey, err := n.Authorize(c.GetHeader("Authorization"), action, targetHash, time.Now().Unix())
	if err != nil {
		if srv.Cfg.AuthPolicy == config.AuthEnforce {
			c.JSON(401, n.ErrorMessage{Error: err.Error()})
			return "", false
		}
		// The recovered pubkey only names the caller in the warning;
		// a failed-auth request is never attributed to it.
		log.Printf("Auth validation warning for %s (pubkey %q): %+v", action, pubkey, err)
		return FallbackPubkey, true
	}
	return pubkey, true
}

// WriteBlob handles the body of a PUT /upload after fault-mode
// short-circuits: read, hash, authorize, persist content and metadata, append
// the upload record, answer 201 with the blob descriptor.
func WriteBlob(c *gin.Context, srv *BlossomServer) error {
	buf := new(bytes.Buffer)

	_, err := buf.ReadFrom(c.Request.Body)
	if err != nil {
		c.JSON(500, n.ErrorMessage{Error: "Failed to read request body"})
		return fmt.Errorf("buf.ReadFrom(c.Request.Body). %w", err)
	}

	if buf.Len() == 0 {
		c.JSON(400, n.ErrorMessage{Error: "No content provided"})
		return nil
	}

	if srv.Cfg.Mode == fault.SizeLimit && buf.Len() > fault.SizeLimitBytes {
		c.JSON(413, n.ErrorMessage{Error: "File too large (max 1KB in test mode)"})
		return nil
	}

	hashHex := blossom.Sha256Hex(buf.Bytes())

	pubkey, ok := srv.authorize(c, n.UPLOAD, hashHex)
	if !ok {
		return nil
	}

	contentType := c.ContentType()
	if contentType == "" {
		contentType = blossom.DefaultContentType
	}

	blob := blossom.Blob{
		Data: buf.Bytes(),
		Size: uint64(buf.Len()),
		Type: contentType,
		Name: hashHex,
	}

	uploaded := time.Now().Unix()

	srv.writeMu.Lock()
	defer srv.writeMu.Unlock()

	err = srv.IO.WriteBlob(hashHex, blob.Data)
	if err != nil {
		c.JSON(500, n.ErrorMessage{Error: err.Error()})
		return fmt.Errorf(`srv.IO.WriteBlob(hashHex, blob.Data). %w`, err)
	}

	meta := blossom.BlobMeta{
		Sha256:   hashHex,
		Type:     blob.Type,
		Size:     int64(blob.Size),
		Uploaded: uploaded,
		Pubkey:   pubkey,
	}
	err = srv.IO.WriteMeta(meta)
	if err != nil {
		c.JSON(500, n.ErrorMessage{Error: err.Error()})
		return fmt.Errorf(`srv.IO.WriteMeta(meta). %w`, err)
	}

	rec := blossom.UploadRecord{
		Sha256:   hashHex,
		Pubkey:   pubkey,
		Type:     meta.Type,
		Size:     meta.Size,
		Uploaded: uploaded,
	}
	err = srv.DB.RecordUpload(rec)
	if err != nil {
		// The blob write already succeeded; a log append failure is
		// reported but never rolls it back.
		log.Printf(`srv.DB.RecordUpload(rec). %+v`, err)
	}

	descriptor := blossom.BlobDescriptor{
		Url:      blobURL(c.Request.Host, hashHex),
		Sha256:   hashHex,
		Size:     meta.Size,
		Type:     meta.Type,
		Uploaded: uploaded,
	}

	c.JSON(201, descriptor)
	return nil
}

// ListBlobs returns descriptors for the pubkey's uploads whose blobs still
// exist on disk, in original append order.
func ListBlobs(srv *BlossomServer, host string, pubkey string) ([]blossom.BlobDescriptor, error) {
	records, err := srv.DB.ListByPubkey(pubkey)
	if err != nil {
		return nil, fmt.Errorf(`srv.DB.ListByPubkey(pubkey). %w`, err)
	}

	blobs := make([]blossom.BlobDescriptor, 0, len(records))
	for _, rec := range records {
		exists, _ := srv.IO.BlobExists(rec.Sha256)
		if !exists {
			continue
		}
		contentType := rec.Type
		if contentType == "" {
			contentType = blossom.DefaultContentType
		}
		blobs = append(blobs, blossom.BlobDescriptor{
			Url:      blobURL(host, rec.Sha256),
			Sha256:   rec.Sha256,
			Size:     rec.Size,
			Type:     contentType,
			Uploaded: rec.Uploaded,
		})
	}
	return blobs, nil
}

// DeleteBlob handles DELETE /{sha256} after fault-mode short-circuits.
func DeleteBlob(c *gin.Context, srv *BlossomServer, hash string) error {
	_, ok := srv.authorize(c, n.DELETE, hash)
	if !ok {
		return nil
	}

	srv.writeMu.Lock()
	defer srv.writeMu.Unlock()

	exists, _ := srv.IO.BlobExists(hash)
	if !exists {
		c.JSON(404, n.ErrorMessage{Error: "Blob not found"})
		return nil
	}

	err := srv.IO.RemoveBlob(hash)
	if errors.Is(err, io.ErrBlobNotFound) {
		c.JSON(404, n.ErrorMessage{Error: "Blob not found"})
		return nil
	}
	if err != nil {
		c.JSON(500, n.ErrorMessage{Error: "Failed to delete: " + err.Error()})
		return fmt.Errorf(`srv.IO.RemoveBlob(hash). %w`, err)
	}

	c.JSON(200, n.NotifMessage{Message: "Blob deleted"})
	return nil
}
