package core

import (
	"sync"

	"mockblossom/internal/config"
	"mockblossom/internal/database"
	"mockblossom/internal/io"
)

type BlossomServer struct {
	Cfg config.Config
	DB  database.Database
	IO  io.BlossomIO

	// writeMu serializes blob-write+log-append and delete pairs so
	// concurrent mutations of the shared directory cannot interleave.
	// Reads stay lock-free.
	writeMu sync.Mutex
}
