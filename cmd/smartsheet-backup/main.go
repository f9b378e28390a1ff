package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/uhppoted/uhppoted-lib/command"

	"github.com/uhppoted/smartsheet-backup/backup"
	"github.com/uhppoted/smartsheet-backup/commands"
)

var cli = []uhppoted.Command{
	&commands.BackupCmd,
	&commands.ListCmd,
	&commands.AuthoriseCmd,
	&commands.VersionCmd,
}

var options = commands.Options{
	Config: commands.DEFAULT_CONFIG,
	Debug:  false,
}

var help = uhppoted.NewHelp(commands.APP, cli, nil)

func main() {
	flag.StringVar(&options.Config, "config", options.Config, "Configuration file path")
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.Parse()

	cmd, err := uhppoted.Parse(cli, nil, help)
	if err != nil {
		fmt.Printf("\nError parsing command line: %v\n\n", err)
		os.Exit(1)
	}

	if cmd == nil {
		help.Execute()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err = cmd.Execute(ctx, &options)
	cancel()

	if err != nil {
		var fetchError *backup.FetchError
		var notFound *backup.NotFoundError

		switch {
		case errors.As(err, &notFound):
			fmt.Fprintf(os.Stderr, "\nERROR: %v - check the sheet name with '%v list'\n\n", err, commands.APP)

		case errors.As(err, &fetchError) && fetchError.Column != "":
			fmt.Fprintf(os.Stderr, "\nERROR: %v - see the backup log file for details\n\n", err)

		default:
			fmt.Fprintf(os.Stderr, "\nERROR: %v\n\n", err)
		}

		os.Exit(1)
	}
}
