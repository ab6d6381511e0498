package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/ldcurate"
)

// WriteCheckpoint writes checkpoint.json into dir. The file is written to a
// temporary name first and renamed, so readers never see a partial file.
func WriteCheckpoint(dir string, checkpoint *ldcurate.Checkpoint) error {
	return writeJSONAtomic(filepath.Join(dir, CheckpointFile), checkpoint)
}

// ReadCheckpoint reads the checkpoint.json in dir.
func ReadCheckpoint(dir string) (*ldcurate.Checkpoint, error) {
	data, err := os.ReadFile(filepath.Join(dir, CheckpointFile))
	if os.IsNotExist(err) {
		return nil, ldcurate.Errorf(ldcurate.ENOTFOUND, "no checkpoint in %s", dir)
	} else if err != nil {
		return nil, err
	}

	var c ldcurate.Checkpoint
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, ldcurate.Errorf(ldcurate.EINVALID, "invalid checkpoint: %v", err)
	}
	return &c, nil
}

func writeJSONAtomic(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
