package localstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/ift-institute/ift-site/internal/logging"
	"github.com/ift-institute/ift-site/pkg/interfaces"
)

// Snapshot persists the whole content map as one JSON blob, mirroring the
// single browser-storage slot the site fell back to. It is the write target
// whenever the remote store is unconfigured or a remote write fails.
type Snapshot struct {
	path   string
	logger interfaces.Logger
}

var _ interfaces.SnapshotStore = (*Snapshot)(nil)

// NewSnapshot constructs a snapshot store at path.
func NewSnapshot(path string, logger interfaces.Logger) *Snapshot {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Snapshot{path: path, logger: logger}
}

// Load reads the stored map. A missing file yields an empty map; a corrupt
// file is logged and also yields an empty map, so startup never fails on
// fallback state.
func (s *Snapshot) Load() (map[string]any, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, err
	}

	data := map[string]any{}
	if err := json.Unmarshal(raw, &data); err != nil {
		s.logger.Error("failed to parse content snapshot", "path", s.path, "error", err)
		return map[string]any{}, nil
	}
	return data, nil
}

// Save writes the full map atomically (temp file then rename) so a crashed
// write never truncates the previous snapshot.
func (s *Snapshot) Save(data map[string]any) error {
	if data == nil {
		data = map[string]any{}
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path)
}

// Path reports the backing file location.
func (s *Snapshot) Path() string {
	return s.path
}
