package commands

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/uhppoted/smartsheet-backup/backup"
	"github.com/uhppoted/smartsheet-backup/config"
)

var BackupCmd = Backup{
	sheet:       "",
	dir:         "",
	file:        "",
	concurrency: 0,
	timeout:     optionalDuration{},
	onError:     "",
	duplicates:  "",
	credentials: "",
	workdir:     "",
	folder:      "",
}

type Backup struct {
	sheet       string
	dir         string
	file        string
	concurrency int
	timeout     optionalDuration
	onError     string
	duplicates  string
	credentials string
	workdir     string
	folder      string
}

func (cmd *Backup) Name() string {
	return "backup"
}

func (cmd *Backup) Description() string {
	return "Backs up a Smartsheet sheet and the history of every cell to a JSON file"
}

func (cmd *Backup) Usage() string {
	return "--sheet-name <name> --backup-dir <directory> [--backup-file <file>]"
}

func (cmd *Backup) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] backup [options] --sheet-name <name> --backup-dir <directory>\n", APP)
	fmt.Println()
	fmt.Println("  Retrieves a Smartsheet sheet and the change history of every cell and stores it as a JSON file.")
	fmt.Println("  The Smartsheet access token is read from the SMARTSHEET_ACCESS_TOKEN environment variable.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    export SMARTSHEET_ACCESS_TOKEN="..."`)
	fmt.Println(`    smartsheet-backup backup --sheet-name "Project Plan" --backup-dir /var/backup/smartsheet`)
	fmt.Println()
	fmt.Println(`    smartsheet-backup --debug backup --sheet-name "Project Plan" \`)
	fmt.Println(`                                     --backup-dir /var/backup/smartsheet \`)
	fmt.Println(`                                     --backup-file project-plan.json \`)
	fmt.Println(`                                     --concurrency 8 --on-error collect-all`)
	fmt.Println()
}

func (cmd *Backup) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("backup", flag.ExitOnError)

	flagset.StringVar(&cmd.sheet, "sheet-name", cmd.sheet, "Name of the Smartsheet sheet")
	flagset.StringVar(&cmd.sheet, "s", cmd.sheet, "Name of the Smartsheet sheet")
	flagset.StringVar(&cmd.dir, "backup-dir", cmd.dir, "Directory for the backup file")
	flagset.StringVar(&cmd.dir, "d", cmd.dir, "Directory for the backup file")
	flagset.StringVar(&cmd.file, "backup-file", cmd.file, "Backup file name. Defaults to '<sheet name>.<yyyy-mm-dd-HHmmss>.json'")
	flagset.StringVar(&cmd.file, "f", cmd.file, "Backup file name")
	flagset.IntVar(&cmd.concurrency, "concurrency", cmd.concurrency, "Maximum number of cell history requests in flight. Defaults to 1")
	flagset.Var(&cmd.timeout, "timeout", "Timeout for each Smartsheet API request (0 disables the timeout). Defaults to 30s")
	flagset.StringVar(&cmd.onError, "on-error", cmd.onError, "Cell history error handling ('fail-fast' or 'collect-all'). Defaults to 'fail-fast'")
	flagset.StringVar(&cmd.duplicates, "duplicates", cmd.duplicates, "Resolution of duplicate sheet names ('first' or 'fail'). Defaults to 'first'")
	flagset.StringVar(&cmd.folder, "drive-folder", cmd.folder, "Google Drive folder ID for an off-site copy of the backup file")
	flagset.StringVar(&cmd.credentials, "credentials", cmd.credentials, "Path for the Google 'credentials.json' file")
	flagset.StringVar(&cmd.workdir, "workdir", cmd.workdir, "Directory for working files (Google Drive tokens)")

	return flagset
}

func (cmd *Backup) Execute(args ...any) error {
	ctx, options := parse(args...)

	conf, err := getConfig(options)
	if err != nil {
		return err
	}

	if err := cmd.merge(conf); err != nil {
		return err
	}

	client, err := getClient(conf)
	if err != nil {
		return err
	}

	debugf("Backup - sheet:%v  dir:%v  file:%v  concurrency:%v  on-error:%v  duplicates:%v",
		cmd.sheet, conf.Backup.Dir, cmd.file, conf.Backup.Concurrency, conf.Backup.OnError, conf.Backup.Duplicates)

	runner := backup.NewRunner(client, backup.Config{
		Concurrency: conf.Backup.Concurrency,
		OnError:     backup.Strategy(conf.Backup.OnError),
		Duplicates:  backup.Duplicates(conf.Backup.Duplicates),
		Debug:       options.Debug,
	})

	result, err := runner.Run(ctx, cmd.sheet, conf.Backup.Dir, cmd.file)
	if err != nil {
		return err
	}

	infof("Backed up sheet '%v' to %v", result.Sheet, result.File)

	if conf.Drive.Folder != "" {
		id, err := upload(ctx, conf.Drive.Credentials, conf.Drive.Workdir, conf.Drive.Folder, result.File)
		if err != nil {
			return &backup.WriteError{Path: result.File, Err: fmt.Errorf("Google Drive upload failed (%w)", err)}
		}

		infof("Uploaded %v to Google Drive (file ID %v)", result.File, id)
	}

	return nil
}

// merge overrides the configuration with the command line options and validates the result.
func (cmd *Backup) merge(conf *config.Config) error {
	if strings.TrimSpace(cmd.sheet) == "" {
		return fmt.Errorf("--sheet-name is a required option")
	}

	if strings.TrimSpace(cmd.dir) != "" {
		conf.Backup.Dir = cmd.dir
	}

	if strings.TrimSpace(conf.Backup.Dir) == "" {
		return fmt.Errorf("--backup-dir is a required option")
	}

	if cmd.concurrency != 0 {
		conf.Backup.Concurrency = cmd.concurrency
	}

	if cmd.timeout.set {
		conf.API.Timeout = cmd.timeout.value
	}

	if cmd.onError != "" {
		conf.Backup.OnError = cmd.onError
	}

	if cmd.duplicates != "" {
		conf.Backup.Duplicates = cmd.duplicates
	}

	if cmd.folder != "" {
		conf.Drive.Folder = cmd.folder
	}

	if cmd.credentials != "" {
		conf.Drive.Credentials = cmd.credentials
	}

	if cmd.workdir != "" {
		conf.Drive.Workdir = cmd.workdir
	}

	if conf.Drive.Credentials == "" {
		conf.Drive.Credentials = DEFAULT_CREDENTIALS
	}

	if conf.Drive.Workdir == "" {
		conf.Drive.Workdir = DEFAULT_WORKDIR
	}

	return conf.Validate()
}

// optionalDuration is a duration flag that distinguishes an explicit 0 from 'not set'.
type optionalDuration struct {
	value time.Duration
	set   bool
}

func (d *optionalDuration) String() string {
	if d == nil || !d.set {
		return ""
	}

	return d.value.String()
}

func (d *optionalDuration) Set(s string) error {
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}

	d.value = v
	d.set = true

	return nil
}
