// Package engine wires configuration, logging and storage into ready
// to use handles: it decides where a named log lives, where its logger
// writes, and which options the store is opened with.
package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"go.pagelog/internal/config"
	"go.pagelog/internal/logger"
	"go.pagelog/internal/storage"
)

// Store is a record log opened through the engine. Closing it closes
// the log and its logger file.
type Store[T any] struct {
	*storage.Log[T]
	logFile *os.File
}

// Open opens the record log called name under the configured data
// directory, logging to <name>.log under the log directory. Existing
// data is preserved; a slotSize of zero adopts the size recorded in
// the header of an existing file, so creating a log that does not
// exist yet needs a nonzero slotSize.
func Open[T any](name string, slotSize int, codec storage.Codec[T], cfg *config.Config) (*Store[T], error) {
	log, logFile, err := newLogger(name, cfg)
	if err != nil {
		return nil, err
	}

	dataPath := filepath.Join(cfg.DataDir, name+".plog")
	opts := &storage.Options{Preserve: true, Strict: cfg.Strict, Logger: log}
	lg, err := storage.Open(dataPath, slotSize, codec, opts)
	if err != nil {
		logFile.Close()
		return nil, err
	}

	return &Store[T]{Log: lg, logFile: logFile}, nil
}

func (s *Store[T]) Close() error {
	err := s.Log.Close()
	if s.logFile != nil {
		if cerr := s.logFile.Close(); err == nil {
			err = cerr
		}
		s.logFile = nil
	}
	return err
}

func newLogger(name string, cfg *config.Config) (*logger.Logger, *os.File, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	logPath := filepath.Join(cfg.LogDir, name+".log")
	f, lErr := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o666)
	if lErr != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", lErr)
	}

	return logger.New(f, level), f, nil
}
