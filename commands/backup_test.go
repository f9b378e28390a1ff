package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/tidwall/gjson"

	"github.com/uhppoted/smartsheet-backup/backup"
	"github.com/uhppoted/smartsheet-backup/config"
)

func TestBackupMerge(t *testing.T) {
	cmd := Backup{
		sheet:       "Project Plan",
		dir:         "/tmp/backup",
		concurrency: 4,
		timeout:     optionalDuration{5 * time.Second, true},
		onError:     "collect-all",
	}

	expected := config.NewConfig()
	expected.API.Timeout = 5 * time.Second
	expected.Backup.Dir = "/tmp/backup"
	expected.Backup.Concurrency = 4
	expected.Backup.OnError = "collect-all"
	expected.Drive.Credentials = DEFAULT_CREDENTIALS
	expected.Drive.Workdir = DEFAULT_WORKDIR

	conf := config.NewConfig()
	if err := cmd.merge(conf); err != nil {
		t.Fatalf("Unexpected error merging command line options (%v)", err)
	}

	if !reflect.DeepEqual(conf, expected) {
		t.Errorf("Incorrect configuration\n   expected: %+v\n   got:      %+v\n", expected, conf)
	}
}

func TestBackupMergeWithConfiguredDirectory(t *testing.T) {
	cmd := Backup{
		sheet: "Project Plan",
	}

	conf := config.NewConfig()
	conf.Backup.Dir = "/var/backup/smartsheet"
	conf.Backup.Duplicates = "fail"

	if err := cmd.merge(conf); err != nil {
		t.Fatalf("Unexpected error merging command line options (%v)", err)
	}

	if conf.Backup.Dir != "/var/backup/smartsheet" {
		t.Errorf("Incorrect backup directory - expected:%v, got:%v", "/var/backup/smartsheet", conf.Backup.Dir)
	}

	if conf.Backup.Duplicates != "fail" {
		t.Errorf("Incorrect duplicates policy - expected:%v, got:%v", "fail", conf.Backup.Duplicates)
	}
}

func TestBackupMergeWithInvalidOptions(t *testing.T) {
	tests := []Backup{
		{sheet: "", dir: "/tmp/backup"},
		{sheet: "Project Plan", dir: " "},
		{sheet: "Project Plan", dir: "/tmp/backup", concurrency: -1},
		{sheet: "Project Plan", dir: "/tmp/backup", onError: "retry"},
		{sheet: "Project Plan", dir: "/tmp/backup", duplicates: "last"},
	}

	for _, cmd := range tests {
		if err := cmd.merge(config.NewConfig()); err == nil {
			t.Errorf("Expected error for invalid options %+v, got %v", cmd, err)
		}
	}
}

func TestBackupTimeoutFlag(t *testing.T) {
	tests := []struct {
		args     []string
		expected time.Duration
	}{
		{[]string{"--sheet-name", "Project Plan", "--backup-dir", "/tmp/backup"}, 30 * time.Second},
		{[]string{"--sheet-name", "Project Plan", "--backup-dir", "/tmp/backup", "--timeout", "5s"}, 5 * time.Second},
		{[]string{"--sheet-name", "Project Plan", "--backup-dir", "/tmp/backup", "--timeout", "0"}, 0},
	}

	for _, test := range tests {
		cmd := Backup{}
		if err := cmd.FlagSet().Parse(test.args); err != nil {
			t.Fatalf("Unexpected error parsing flags %v (%v)", test.args, err)
		}

		conf := config.NewConfig()
		conf.API.Timeout = 30 * time.Second

		if err := cmd.merge(conf); err != nil {
			t.Fatalf("Unexpected error merging command line options %v (%v)", test.args, err)
		}

		if conf.API.Timeout != test.expected {
			t.Errorf("Incorrect timeout for %v - expected:%v, got:%v", test.args, test.expected, conf.API.Timeout)
		}
	}
}

func TestBackupShortFlags(t *testing.T) {
	cmd := Backup{}

	if err := cmd.FlagSet().Parse([]string{"-s", "Project Plan", "-d", "/tmp/backup", "-f", "plan.json"}); err != nil {
		t.Fatalf("Unexpected error parsing flags (%v)", err)
	}

	if cmd.sheet != "Project Plan" || cmd.dir != "/tmp/backup" || cmd.file != "plan.json" {
		t.Errorf("Incorrect flags - got sheet:%v dir:%v file:%v", cmd.sheet, cmd.dir, cmd.file)
	}
}

func TestBackupExecute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, rq *http.Request) {
		if rq.Header.Get("Authorization") != "Bearer qwerty" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{ "errorCode": 1002, "message": "Your Access Token is invalid." }`))
			return
		}

		switch rq.URL.Path {
		case "/sheets":
			w.Write([]byte(`{ "data": [ { "id": 101, "name": "Budget" }, { "id": 102, "name": "Project Plan" } ] }`))

		case "/sheets/102":
			w.Write([]byte(`{
			  "id": 102,
			  "name": "Project Plan",
			  "columns": [ { "id": 11, "title": "A" }, { "id": 12, "title": "B" } ],
			  "rows": [ { "id": 21, "rowNumber": 1 }, { "id": 22, "rowNumber": 2 } ]
			}`))

		default:
			var row, column int64
			if _, err := fmt.Sscanf(rq.URL.Path, "/sheets/102/rows/%d/columns/%d/history", &row, &column); err != nil {
				http.NotFound(w, rq)
				return
			}

			fmt.Fprintf(w, `{ "data": [ { "columnId": %v, "value": "R%vC%v", "modifiedAt": "2024-01-15T10:30:00Z" } ] }`, column, row, column)
		}
	}))

	defer srv.Close()

	dir := t.TempDir()
	file := filepath.Join(dir, "smartsheet-backup.yaml")
	yaml := fmt.Sprintf("api:\n  url: %v\n  token-env: SMARTSHEET_BACKUP_TEST_TOKEN\nbackup:\n  concurrency: 2\n", srv.URL)

	if err := os.WriteFile(file, []byte(yaml), 0660); err != nil {
		t.Fatalf("Error writing configuration file (%v)", err)
	}

	t.Setenv("SMARTSHEET_BACKUP_TEST_TOKEN", "qwerty")

	cmd := Backup{
		sheet: "Project Plan",
		dir:   filepath.Join(dir, "backup"),
		file:  "plan.json",
	}

	if err := cmd.Execute(context.Background(), &Options{Config: file}); err != nil {
		t.Fatalf("Unexpected error executing backup (%v)", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "backup", "plan.json"))
	if err != nil {
		t.Fatalf("Error reading backup file (%v)", err)
	}

	if v := gjson.GetBytes(b, "smartsheet.columns.B.rows.1.content_and_history.data.0.value").String(); v != "R22C12" {
		t.Errorf("Incorrect cell history - expected:%v, got:%v", "R22C12", v)
	}

	cmd.sheet = "Unknown"

	var notFound *backup.NotFoundError
	if err := cmd.Execute(context.Background(), &Options{Config: file}); !errors.As(err, &notFound) {
		t.Errorf("Incorrect error for unknown sheet - expected:%T, got:%v", notFound, err)
	}
}

func TestBackupExecuteWithoutToken(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "smartsheet-backup.yaml")

	if err := os.WriteFile(file, []byte("api:\n  token-env: SMARTSHEET_BACKUP_TEST_TOKEN\n"), 0660); err != nil {
		t.Fatalf("Error writing configuration file (%v)", err)
	}

	t.Setenv("SMARTSHEET_BACKUP_TEST_TOKEN", "")

	cmd := Backup{
		sheet: "Project Plan",
		dir:   dir,
	}

	var authError *backup.AuthInitError
	if err := cmd.Execute(context.Background(), &Options{Config: file}); !errors.As(err, &authError) {
		t.Errorf("Incorrect error - expected:%T, got:%v", authError, err)
	}
}

func TestTokensFile(t *testing.T) {
	expected := filepath.Join("/var/smartsheet-backup", ".google", "credentials.drive")

	if file := tokensFile("/etc/smartsheet-backup/credentials.json", "/var/smartsheet-backup"); file != expected {
		t.Errorf("Incorrect tokens file - expected:%v, got:%v", expected, file)
	}
}
