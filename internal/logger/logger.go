package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Log is a no-op logger until Init is called.
var Log = zerolog.Nop()

var logFile *os.File

func Init(dir, level string) (string, error) {
	logPath := filepath.Join(os.TempDir(), "spotui.log")
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err == nil {
			logPath = filepath.Join(dir, "spotui.log")
		}
	}

	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return "", fmt.Errorf("could not open log file: %w", err)
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	logFile = file
	Log = zerolog.New(file).Level(lvl).With().Timestamp().Caller().Logger()
	Log.Info().Str("path", logPath).Msg("Logger initialized")
	return logPath, nil
}

func Close() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	Log = zerolog.Nop()
	return err
}
