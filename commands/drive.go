package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// upload copies a backup file to a Google Drive folder and returns the Drive file ID.
func upload(ctx context.Context, credentials, workdir, folder, file string) (string, error) {
	client, err := authorize(credentials, DRIVE, workdir)
	if err != nil {
		return "", fmt.Errorf("authentication/authorization error (%v)", err)
	}

	gdrive, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return "", fmt.Errorf("unable to create new Drive client (%v)", err)
	}

	f, err := os.Open(file)
	if err != nil {
		return "", err
	}

	defer f.Close()

	metadata := drive.File{
		Name:     filepath.Base(file),
		MimeType: "application/json",
		Parents:  []string{folder},
	}

	created, err := gdrive.Files.Create(&metadata).
		Media(f).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}

	return created.Id, nil
}
