//go:build unix

package backup

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")

	release, err := lock(path)
	if err != nil {
		t.Fatalf("Unexpected error locking %v (%v)", path, err)
	}

	if _, err := lock(path); err == nil {
		t.Errorf("Expected error locking %v twice, got %v", path, err)
	}

	release()

	if _, err := os.Stat(path + ".lock"); !os.IsNotExist(err) {
		t.Errorf("Lock file not removed on release (%v)", err)
	}

	release, err = lock(path)
	if err != nil {
		t.Fatalf("Unexpected error relocking %v (%v)", path, err)
	}

	release()
}
