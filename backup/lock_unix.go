//go:build unix

package backup

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// lock takes an exclusive advisory lock on <path>.lock so that overlapping runs (e.g. from cron)
// cannot write the same backup file. The lock file is removed while the lock is still held, so a
// lock taken on a file that has since been unlinked or replaced is rejected.
func lock(path string) (func(), error) {
	lockfile := path + ".lock"

	f, err := os.OpenFile(lockfile, os.O_CREATE|os.O_RDWR, 0660)
	if err != nil {
		return nil, err
	}

	fd := int(f.Fd())

	if err := unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		return nil, fmt.Errorf("%v is locked by another process (%v)", path, err)
	}

	var locked, current unix.Stat_t

	if err := unix.Fstat(fd, &locked); err != nil {
		f.Close()
		return nil, err
	}

	if err := unix.Stat(lockfile, &current); err != nil || locked.Dev != current.Dev || locked.Ino != current.Ino {
		f.Close()
		return nil, fmt.Errorf("%v is locked by another process (stale lock file)", path)
	}

	release := func() {
		os.Remove(lockfile)
		unix.Flock(fd, unix.LOCK_UN)
		f.Close()
	}

	return release, nil
}
