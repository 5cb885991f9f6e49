package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/banco-dev/banco/internal/ledger"
)

// Load reads a ledger snapshot from path. A missing file yields an empty
// snapshot; any other failure is returned.
func Load(path string) (ledger.Snapshot, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ledger.Snapshot{}, nil
	}
	if err != nil {
		return ledger.Snapshot{}, fmt.Errorf("reading ledger: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return ledger.Snapshot{}, fmt.Errorf("parsing ledger %s: %w", path, err)
	}
	snap, err := unmarshalSnapshot(doc)
	if err != nil {
		return ledger.Snapshot{}, fmt.Errorf("decoding ledger %s: %w", path, err)
	}
	return snap, nil
}

// Save writes snap to path. The document is written to a temporary file in
// the same directory and renamed over path, so readers see either the old
// or the new snapshot.
func Save(path string, snap ledger.Snapshot) error {
	data, err := yaml.Marshal(marshalSnapshot(snap))
	if err != nil {
		return fmt.Errorf("marshaling ledger: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp ledger: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp ledger: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp ledger: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("chmod temp ledger: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing ledger: %w", err)
	}
	return nil
}

// LoadStore loads path and restores it into store, validating the snapshot.
func LoadStore(path string, store *ledger.Store) error {
	snap, err := Load(path)
	if err != nil {
		return err
	}
	if err := store.Restore(snap); err != nil {
		return fmt.Errorf("restoring %s: %w", path, err)
	}
	return nil
}

// SaveStore writes the store's current snapshot to path.
func SaveStore(path string, store *ledger.Store) error {
	return Save(path, store.Snapshot())
}
