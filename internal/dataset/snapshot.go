package dataset

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// ErrSnapshotNotFound is returned by Load when no snapshot file exists.
var ErrSnapshotNotFound = errors.New("dataset snapshot not found")

// SnapshotPath returns the file a named snapshot lives in.
func SnapshotPath(dir, name string) string {
	return filepath.Join(dir, fmt.Sprintf("%s.json", name))
}

// Load reads a dataset snapshot previously written by Save.
func Load(dir, name string) (*Dataset, error) {
	path := SnapshotPath(dir, name)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, path)
		}
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer file.Close()

	var ds Dataset
	if err := json.NewDecoder(bufio.NewReader(file)).Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}

	log.Info().
		Str("path", path).
		Int("orders", len(ds.Orders)).
		Int("inventory", len(ds.Inventory)).
		Msg("Loaded dataset snapshot")
	return &ds, nil
}

// Save writes the dataset to dir/name.json through a temp file and rename.
func Save(dir, name string, ds *Dataset) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	path := SnapshotPath(dir, name)
	tmpPath := path + ".tmp"

	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot file: %w", err)
	}

	writer := bufio.NewWriter(file)
	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ds); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := writer.Flush(); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to flush writer: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename snapshot file: %w", err)
	}

	log.Info().Str("path", path).Int("orders", len(ds.Orders)).Msg("Dataset snapshot saved")
	return nil
}
