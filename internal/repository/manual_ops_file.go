package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrCorruptOpsFile signals the on-disk operations file is not a JSON array.
// The caller maps it to a server error instead of silently clobbering data
// someone may still want to recover.
var ErrCorruptOpsFile = errors.New("manual operations file is not a JSON array")

// ManualOpsFile appends manually supplied exit operations to a server-side
// JSON array file consumed by the external automation.
type ManualOpsFile struct {
	path string
}

func NewManualOpsFile(path string) *ManualOpsFile {
	return &ManualOpsFile{path: path}
}

// Append adds one raw operation object to the array. A missing file starts a
// new array; any other shape fails with ErrCorruptOpsFile.
func (m *ManualOpsFile) Append(op json.RawMessage) error {
	ops, err := m.readAll()
	if err != nil {
		return err
	}

	ops = append(ops, op)

	b, err := json.MarshalIndent(ops, "", "  ")
	if err != nil {
		return fmt.Errorf("encode operations: %w", err)
	}

	if dir := filepath.Dir(m.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create operations dir: %w", err)
		}
	}

	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write operations: %w", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("commit operations: %w", err)
	}
	return nil
}

// Count returns the number of stored operations.
func (m *ManualOpsFile) Count() (int, error) {
	ops, err := m.readAll()
	if err != nil {
		return 0, err
	}
	return len(ops), nil
}

func (m *ManualOpsFile) readAll() ([]json.RawMessage, error) {
	b, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("read operations file: %w", err)
	}

	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return []json.RawMessage{}, nil
	}
	if trimmed[0] != '[' {
		return nil, ErrCorruptOpsFile
	}

	var ops []json.RawMessage
	if err := json.Unmarshal(trimmed, &ops); err != nil {
		return nil, ErrCorruptOpsFile
	}
	return ops, nil
}
