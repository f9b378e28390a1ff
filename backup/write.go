package backup

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// write stores the document to a temporary file in the destination directory and renames it over
// the destination once it has been synced, so a failed write never leaves a truncated backup.
func write(path string, document *Document) error {
	b, err := json.Marshal(document)
	if err != nil {
		return err
	}

	dir, file := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, file+".*.tmp")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(b); err != nil {
		return err
	}

	if err := tmp.Sync(); err != nil {
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
