package routes

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"mockblossom/external/blossom"
	n "mockblossom/external/nostr"
	"mockblossom/internal/core"
	"mockblossom/internal/fault"
	"mockblossom/internal/io"
)

// CORSMiddleware emits permissive allow-all headers on every response.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, PUT, DELETE, HEAD, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		c.Next()
	}
}

// hashParam extracts the content identifier from the :sha path parameter,
// stripping any extension suffix ("<sha>.png" -> "<sha>").
func hashParam(c *gin.Context) string {
	sha := c.Param("sha")
	sha, _, _ = strings.Cut(sha, ".")
	return sha
}

func RootRoutes(r *gin.Engine, srv *core.BlossomServer) {
	r.GET("/list/:pubkey", func(c *gin.Context) {
		blobs, err := core.ListBlobs(srv, c.Request.Host, c.Param("pubkey"))
		if err != nil {
			log.Printf("core.ListBlobs(srv, host, pubkey). %+v", err)
			c.JSON(500, n.ErrorMessage{Error: err.Error()})
			return
		}
		c.JSON(200, blobs)
	})

	r.GET("/:sha", func(c *gin.Context) {
		sha := hashParam(c)
		if !blossom.ValidHash(sha) {
			c.JSON(400, n.ErrorMessage{Error: "Invalid hash format"})
			return
		}

		fileBytes, err := srv.IO.GetBlob(sha)
		if errors.Is(err, io.ErrBlobNotFound) {
			c.JSON(404, n.ErrorMessage{Error: "Blob not found"})
			return
		}
		if err != nil {
			log.Printf(`srv.IO.GetBlob(sha). %+v`, err)
			c.JSON(500, n.ErrorMessage{Error: err.Error()})
			return
		}

		contentType := blossom.DefaultContentType
		meta, err := srv.IO.GetMeta(sha)
		if err == nil && meta.Type != "" {
			contentType = meta.Type
		}

		c.Data(200, contentType, fileBytes)
	})

	r.HEAD("/:sha", func(c *gin.Context) {
		sha := hashParam(c)
		if !blossom.ValidHash(sha) {
			c.Status(400)
			return
		}

		exists, size := srv.IO.BlobExists(sha)
		if !exists {
			c.Status(404)
			return
		}

		contentType := blossom.DefaultContentType
		meta, err := srv.IO.GetMeta(sha)
		if err == nil && meta.Type != "" {
			contentType = meta.Type
		}

		c.Header("Content-Type", contentType)
		c.Header("Content-Length", strconv.FormatInt(size, 10))
		c.Status(200)
	})

	r.DELETE("/:sha", func(c *gin.Context) {
		if srv.Cfg.Mode == fault.AuthFail {
			c.JSON(401, n.ErrorMessage{Error: "Unauthorized (test mode)"})
			return
		}

		sha := hashParam(c)
		if !blossom.ValidHash(sha) {
			c.JSON(400, n.ErrorMessage{Error: "Invalid hash format"})
			return
		}

		err := core.DeleteBlob(c, srv, sha)
		if err != nil {
			log.Printf("core.DeleteBlob(c, srv, sha). %+v", err)
		}
	})

	r.OPTIONS("/*any", func(c *gin.Context) {
		c.Status(200)
	})
}
