package shellmenu

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/VoxDroid/envpath/internal/config"
)

// metadata records what Install wrote so Uninstall removes exactly that.
type metadata struct {
	Executable  string    `json:"executable"`
	Keys        []string  `json:"keys"`
	InstalledAt time.Time `json:"installed_at"`
}

func metadataPath() (string, error) {
	d, err := config.EnsureDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "shellmenu_metadata.json"), nil
}

func saveMetadata(m metadata) error {
	p, err := metadataPath()
	if err != nil {
		return err
	}
	b, _ := json.MarshalIndent(m, "", "  ")
	return os.WriteFile(p, b, 0o600)
}

func loadMetadata() (*metadata, error) {
	p, err := metadataPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	var m metadata
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func removeMetadata() error {
	p, err := metadataPath()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
