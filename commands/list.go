package commands

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/uhppoted/smartsheet-backup/backup"
)

var ListCmd = List{}

type List struct {
}

func (cmd *List) Name() string {
	return "list"
}

func (cmd *List) Description() string {
	return "Lists the sheets accessible with the Smartsheet access token"
}

func (cmd *List) Usage() string {
	return ""
}

func (cmd *List) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] list\n", APP)
	fmt.Println()
	fmt.Println("  Lists the ID and name of every sheet accessible with the SMARTSHEET_ACCESS_TOKEN access token")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    smartsheet-backup list`)
	fmt.Println()
}

func (cmd *List) FlagSet() *flag.FlagSet {
	return flag.NewFlagSet("list", flag.ExitOnError)
}

func (cmd *List) Execute(args ...any) error {
	ctx, options := parse(args...)

	conf, err := getConfig(options)
	if err != nil {
		return err
	}

	client, err := getClient(conf)
	if err != nil {
		return err
	}

	sheets, err := backup.NewRunner(client, backup.Config{}).List(ctx)
	if err != nil {
		return err
	}

	if len(sheets) == 0 {
		warnf("No sheets accessible with the %v access token", conf.API.TokenEnv)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	for _, sheet := range sheets {
		fmt.Fprintf(w, "%v\t%v\n", sheet.ID, sheet.Name)
	}

	return w.Flush()
}
