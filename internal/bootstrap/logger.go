package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/osse101/Huanyu_Go/internal/config"
	"github.com/osse101/Huanyu_Go/internal/logger"
)

// SetupLogger installs the process logger. With cfg.LogDir set it also writes
// a timestamped session file there and prunes old sessions; the caller closes
// the returned file, which is nil when only stdout is used.
func SetupLogger(cfg *config.Config) (*os.File, error) {
	lc := logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, cfg.IsDevelopment())

	var logFile *os.File
	var w io.Writer = os.Stdout
	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateLogsDir, err)
		}
		cleanupLogs(cfg.LogDir)

		name := filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, time.Now().Format(LogFileTimestampFormat)))
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", LogMsgFailedOpenLogFile, err)
		}
		logFile = f
		w = io.MultiWriter(os.Stdout, f)
	}

	logger.InitLoggerWithWriter(lc, w)

	slog.Info(LogMsgLoggingInitialized, "level", lc.LogLevel(), "log_dir", cfg.LogDir)
	slog.Info(LogMsgStartingHuanyu,
		"environment", cfg.Environment,
		"store_driver", cfg.StoreDriver,
		"flow_isolation", cfg.FlowIsolation,
		"version", cfg.Version)

	return logFile, nil
}

// cleanupLogs keeps the newest LogFileRetentionCount session files. Names
// carry a sortable timestamp, so directory order is age order.
func cleanupLogs(logDir string) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var logFiles []os.DirEntry
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			logFiles = append(logFiles, entry)
		}
	}

	for i := 0; i < len(logFiles)-LogFileRetentionCount; i++ {
		if err := os.Remove(filepath.Join(logDir, logFiles[i].Name())); err != nil {
			fmt.Fprintf(os.Stderr, "%s %s: %v\n", LogMsgFailedDeleteOldLog, logFiles[i].Name(), err)
		}
	}
}
