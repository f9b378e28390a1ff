// Package backup implements the Smartsheet backup: resolve a sheet by name, fetch the sheet and the
// history of every cell and write the result as a single JSON document.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/uhppoted/smartsheet-backup/smartsheet"
)

// API is the subset of the Smartsheet API used by a backup.
type API interface {
	ListSheets(ctx context.Context) ([]smartsheet.SheetSummary, error)
	GetSheet(ctx context.Context, id int64, include ...string) (*smartsheet.Sheet, error)
	GetCellHistory(ctx context.Context, sheetID, rowID, columnID int64) (json.RawMessage, error)
}

// Strategy determines how cell history fetch failures are handled. Both strategies abort the
// backup without writing a file.
type Strategy string

const (
	FailFast   Strategy = "fail-fast"
	CollectAll Strategy = "collect-all"
)

// Duplicates determines how a sheet name shared by more than one sheet is resolved.
type Duplicates string

const (
	FirstMatch      Duplicates = "first"
	FailOnDuplicate Duplicates = "fail"
)

// Includes lists the optional sheet fields requested with the sheet.
var Includes = []string{"attachments", "discussions", "ownerInfo", "source", "rowWriterInfo"}

type Config struct {
	Concurrency int
	OnError     Strategy
	Duplicates  Duplicates
	Debug       bool
}

type Runner struct {
	api         API
	concurrency int
	onError     Strategy
	duplicates  Duplicates
	debug       bool
	stdout      io.Writer
	now         func() time.Time
}

type Result struct {
	Sheet    string
	File     string
	Log      string
	Cells    int
	Started  time.Time
	Duration time.Duration
}

// Initialize creates a Smartsheet client authenticated with the access token.
func Initialize(token string, options ...smartsheet.Option) (*smartsheet.Client, error) {
	client, err := smartsheet.NewClient(token, options...)
	if err != nil {
		return nil, &AuthInitError{Err: err}
	}

	return client, nil
}

func NewRunner(api API, config Config) *Runner {
	r := Runner{
		api:         api,
		concurrency: config.Concurrency,
		onError:     config.OnError,
		duplicates:  config.Duplicates,
		debug:       config.Debug,
		stdout:      os.Stdout,
		now:         time.Now,
	}

	if r.concurrency < 1 {
		r.concurrency = 1
	}

	if r.onError == "" {
		r.onError = FailFast
	}

	if r.duplicates == "" {
		r.duplicates = FirstMatch
	}

	return &r
}

// List returns every sheet visible to the access token.
func (r *Runner) List(ctx context.Context) ([]smartsheet.SheetSummary, error) {
	sheets, err := r.api.ListSheets(ctx)
	if err != nil {
		return nil, &FetchError{Op: "list sheets", Err: err}
	}

	return sheets, nil
}

// Resolve returns the ID of the sheet with exactly the given name. If more than one sheet has the
// name the first in API order wins, unless the runner was configured to fail on duplicates.
func (r *Runner) Resolve(ctx context.Context, name string) (int64, error) {
	sheets, err := r.List(ctx)
	if err != nil {
		return 0, err
	}

	matched := []int64{}
	for _, sheet := range sheets {
		if sheet.Name == name {
			matched = append(matched, sheet.ID)
		}
	}

	switch {
	case len(matched) == 0:
		return 0, &NotFoundError{Sheet: name}

	case len(matched) > 1 && r.duplicates == FailOnDuplicate:
		return 0, &AmbiguousNameError{Sheet: name, IDs: matched}

	default:
		return matched[0], nil
	}
}

// Run backs up the named sheet to directory/file. The file name defaults to the sheet name with
// a timestamp suffix. Any failure aborts the backup without writing the file.
func (r *Runner) Run(ctx context.Context, name, directory, file string) (*Result, error) {
	start := r.now()

	id, err := r.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}

	sheet, err := r.api.GetSheet(ctx, id, Includes...)
	if err != nil {
		return nil, &FetchError{Op: "get sheet", Sheet: name, Err: err}
	}

	if file == "" {
		file = Filename(sheet.Name, start)
	}

	path := filepath.Join(directory, file)
	logfile := LogFilename(path)

	if err := os.MkdirAll(filepath.Dir(path), 0770); err != nil {
		return nil, &WriteError{Path: path, Err: err}
	}

	unlock, err := lock(path)
	if err != nil {
		return nil, &WriteError{Path: path, Err: err}
	}

	defer unlock()

	log, closer, err := newLogger(logfile, r.debug)
	if err != nil {
		return nil, &WriteError{Path: logfile, Err: err}
	}

	defer closer()

	log.Infof("Loaded %v rows and %v columns from sheet: %v", len(sheet.Rows), len(sheet.Columns), sheet.Name)

	index := map[string]int64{}
	for _, column := range sheet.Columns {
		index[column.Title] = column.ID
	}

	log.Debugf("Column index: %v", index)

	histories, err := r.fetch(ctx, log, id, name, sheet)
	if err != nil {
		log.Errorf("Backup of sheet '%v' aborted (%v)", name, err)
		return nil, err
	}

	document := assemble(name, start, sheet, histories)

	if err := write(path, document); err != nil {
		log.Errorf("Error writing backup file %v (%v)", path, err)
		return nil, &WriteError{Path: path, Err: err}
	}

	finished := r.now()
	result := Result{
		Sheet:    sheet.Name,
		File:     path,
		Log:      logfile,
		Cells:    len(sheet.Rows) * len(sheet.Columns),
		Started:  start,
		Duration: finished.Sub(start),
	}

	log.Infof("Backed up sheet '%v' to %v (%v cells, %v)", result.Sheet, result.File, result.Cells, result.Duration)

	fmt.Fprintln(r.stdout, "COMPLETED SmartSheet Backup:")
	fmt.Fprintf(r.stdout, "SmartSheet:%v\n", result.Sheet)
	fmt.Fprintf(r.stdout, "Elapsed Time:%v\n", result.Duration)

	return &result, nil
}

// assemble builds the backup document from the cell histories, indexed [column][row].
func assemble(name string, timestamp time.Time, sheet *smartsheet.Sheet, histories [][]json.RawMessage) *Document {
	document := Document{
		BackedUp: timestamp.Format(BackedUpFormat),
		Smartsheet: Smartsheet{
			SheetName: name,
			Columns:   Columns{},
		},
	}

	for i, c := range sheet.Columns {
		column := Column{
			Title:    c.Title,
			ColumnID: c.ID,
			Rows:     []Row{},
		}

		for j, row := range sheet.Rows {
			column.Rows = append(column.Rows, Row{
				RowNumber:         row.RowNumber,
				RowID:             row.ID,
				ContentAndHistory: histories[i][j],
			})
		}

		document.Smartsheet.Columns.set(column)
	}

	return &document
}
