package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// BackedUpFormat is the layout of the document 'backed_up' timestamp.
	BackedUpFormat = "Mon, 02 Jan 2006 15:04:05"

	filenameFormat = "2006-01-02-150405"
)

// Filename returns the default backup file name for a sheet e.g. Project_Plan.2024-01-15-103000.json
//
// Whitespace and path separators in the sheet name are replaced with '_' so that the file is always
// created in the backup directory.
func Filename(sheet string, timestamp time.Time) string {
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}

		return r
	}, strings.Join(strings.Fields(sheet), "_"))

	return fmt.Sprintf("%s.%s.json", name, timestamp.Format(filenameFormat))
}

// LogFilename returns the run log file for a backup file i.e. the backup file with a .log extension.
func LogFilename(path string) string {
	ext := filepath.Ext(path)
	if ext == ".log" {
		return path + ".log"
	}

	return strings.TrimSuffix(path, ext) + ".log"
}
