package routes

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	n "mockblossom/external/nostr"
	"mockblossom/internal/core"
	"mockblossom/internal/fault"
)

func UploadRoutes(r *gin.Engine, srv *core.BlossomServer) {
	r.PUT("/upload", func(c *gin.Context) {
		// Fault-mode short-circuits come before any other validation.
		switch srv.Cfg.Mode {
		case fault.ServerError:
			c.JSON(500, n.ErrorMessage{Error: "Internal server error (test mode)"})
			return
		case fault.AuthFail:
			c.JSON(401, n.ErrorMessage{Error: "Unauthorized (test mode)"})
			return
		case fault.Slow:
			time.Sleep(fault.SlowDelay)
		}

		err := core.WriteBlob(c, srv)
		if err != nil {
			log.Printf("core.WriteBlob(c, srv). %+v", err)
		}
	})
}
