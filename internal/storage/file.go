package storage

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteJSONFile writes v as indented JSON to path. The file is written to a
// temporary sibling first and renamed into place, so readers never see a
// partial document.
func WriteJSONFile(path string, v interface{}) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write tmp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename tmp file: %w", err)
	}

	return nil
}
