package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
)

// Init configures the shared logrus logger: severity-tagged lines written to
// stdout and appended to one file per calendar day under logDir. The level
// comes from LOG_LEVEL, defaulting to info.
func Init(logDir string) error {
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		return fmt.Errorf("Init: failed to create log directory: %w", err)
	}

	filename := filepath.Join(logDir, fmt.Sprintf("trading_bot_%s.log", time.Now().Format("20060102")))

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("Init: failed to open log file: %w", err)
	}

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := log.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.SetLevel(log.InfoLevel)
	} else {
		log.SetLevel(level)
	}

	log.SetOutput(io.MultiWriter(os.Stdout, file))

	log.Debugf("logging initialised, writing to %s", filename)

	return nil
}
