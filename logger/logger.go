package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/okabrink/creator-scout/config"
)

const (
	rotateThreshold = 5 << 20 // bytes
	rotateBackups   = 5
	rotateInterval  = time.Hour
)

var Logger *log.Logger

// InitLogger opens <save_location>/.logs/creator-scout.log and points the
// shared Logger at it. Rotation runs on a background ticker for the life
// of the process.
func InitLogger(cfg *config.Config) error {
	logDir := filepath.Join(cfg.Options.SaveLocation, ".logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile := filepath.Join(logDir, "creator-scout.log")
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	Logger = log.New(file, "", log.Ldate|log.Ltime|log.Lshortfile)

	go func() {
		for {
			time.Sleep(rotateInterval)
			rotateIfNeeded(logFile)
		}
	}()

	return nil
}

func rotateIfNeeded(logFile string) {
	info, err := os.Stat(logFile)
	if err != nil {
		Logger.Printf("Error checking log file: %v", err)
		return
	}
	if info.Size() < rotateThreshold {
		return
	}

	Logger.Printf("Rotating log file")

	// Shift creator-scout.log.N up to .N+1, the oldest backup falls off.
	for i := rotateBackups - 1; i > 0; i-- {
		os.Rename(fmt.Sprintf("%s.%d", logFile, i), fmt.Sprintf("%s.%d", logFile, i+1))
	}
	os.Rename(logFile, logFile+".1")

	if current, ok := Logger.Writer().(*os.File); ok {
		current.Close()
	}

	fresh, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		Logger.Printf("Error creating new log file: %v", err)
		return
	}
	Logger.SetOutput(fresh)
}
