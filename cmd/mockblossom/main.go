package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"mockblossom/internal/config"
	"mockblossom/internal/core"
	"mockblossom/internal/database"
	"mockblossom/internal/io"
	"mockblossom/internal/routes"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Panicf(`config.FromEnv(). %+v`, err)
	}

	fileHandler, err := io.MakeFileSystemHandler(cfg.DataPath)
	if err != nil {
		log.Panicf(`io.MakeFileSystemHandler(cfg.DataPath). %+v`, err)
	}

	uploadLog := database.MakeUploadLog(cfg.DataPath)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.LogRequests {
		r.Use(gin.Logger())
	}
	r.Use(routes.CORSMiddleware())

	srv := &core.BlossomServer{
		Cfg: cfg,
		DB:  uploadLog,
		IO:  fileHandler,
	}

	routes.UploadRoutes(r, srv)
	routes.RootRoutes(r, srv)

	log.Printf("mockblossom started on port %d (mode: %s, data: %s)", cfg.Port, cfg.Mode, cfg.DataPath)
	r.Run(fmt.Sprintf("127.0.0.1:%d", cfg.Port))
}
