package main

import (
	"fmt"
	"os"

	"github.com/osse101/Huanyu_Go/internal/bootstrap"
	"github.com/osse101/Huanyu_Go/internal/config"
)

// initLogger installs the process logger and returns a func that closes the
// session log file, if one was opened
func initLogger(cfg *config.Config) (func(), error) {
	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return nil, err
	}
	return func() {
		if logFile == nil {
			return
		}
		if err := logFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}, nil
}
