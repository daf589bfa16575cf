package utils

import (
	"fmt"
	"os"
)

// MakeSureDirExists creates dirPath (and parents) if it is not there yet.
func MakeSureDirExists(dirPath string) error {
	_, err := os.Stat(dirPath)

	if os.IsNotExist(err) {
		err = os.MkdirAll(dirPath, 0764)
		if err != nil {
			return fmt.Errorf("os.MkdirAll(dirPath, 0764) %w", err)
		}
	}

	return nil
}
