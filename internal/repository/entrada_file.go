package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/roteirods-byte/autotrader/internal/domain/models"
	applogger "github.com/roteirods-byte/autotrader/pkg/logger"
)

// EntradaFile reads the signal snapshot the Python worker writes to disk.
// The file is an external collaborator: it may be missing, truncated mid-write
// or in a superseded shape, and none of that may take the API down.
type EntradaFile struct {
	path   string
	logger *applogger.Logger
}

func NewEntradaFile(path string, l *applogger.Logger) *EntradaFile {
	return &EntradaFile{path: path, logger: l}
}

// Read returns the current snapshot. A missing or unreadable file degrades to
// an empty snapshot with the error returned for the caller to surface; a file
// in an unexpected shape degrades to an empty snapshot silently after a
// warning, matching the historical server behavior.
func (f *EntradaFile) Read() (*models.SignalSnapshot, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.EmptySnapshot(), nil
		}
		return models.EmptySnapshot(), fmt.Errorf("read entrada file: %w", err)
	}

	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return models.EmptySnapshot(), nil
	}

	// Guard against the file having been regenerated as a bare array.
	if trimmed[0] == '[' {
		if f.logger != nil {
			f.logger.Warn("entrada file is a bare array, expected object with swing/posicional",
				applogger.String("path", f.path))
		}
		return models.EmptySnapshot(), nil
	}

	var snap models.SignalSnapshot
	if err := json.Unmarshal(trimmed, &snap); err != nil {
		return models.EmptySnapshot(), fmt.Errorf("parse entrada file: %w", err)
	}
	snap.Normalize()
	return &snap, nil
}

// Exists reports whether the file is present on disk.
func (f *EntradaFile) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// Path returns the configured file path.
func (f *EntradaFile) Path() string { return f.path }
