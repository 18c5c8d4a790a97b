package main

import (
	"context"
	"flag"
	"os"

	"github.com/dojoctl/dojoctl/pkg/defaults"
	"github.com/dojoctl/dojoctl/pkg/importer"
	"github.com/dojoctl/dojoctl/pkg/interactive"
	"github.com/dojoctl/dojoctl/pkg/scantypes"
	"github.com/dojoctl/dojoctl/pkg/ui"
)

// runInteractive walks an operator through product, engagement and mode
// selection, then imports or reimports the chosen file.
func runInteractive() {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	cf := addConnectionFlags(fs)
	fs.Parse(os.Args[2:])

	source, err := scantypes.ParseSource(cf.source)
	if err != nil {
		exitWithUsage(err.Error(), "dojoctl interactive -scan-types-source auto|server|file")
	}
	if !ui.StdinIsTerminal() {
		exitWithError(defaults.ExitUserError, "interactive mode needs a terminal on stdin; use `dojoctl direct` in pipelines")
	}

	ui.PrintMiniBanner()

	ctx := context.Background()
	client, settings, err := connect(ctx, cf)
	if err != nil {
		fail(err)
	}

	scanTypes := newResolver(client, settings).Resolve(ctx, source)
	if len(scanTypes) == 0 {
		ui.PrintWarning("No scan types discovered; offering the built-in list.")
		scanTypes = defaults.FallbackScanTypes
	}

	wizard := &interactive.Wizard{
		API:       client,
		Prompt:    interactive.NewPrompter(os.Stdin, os.Stderr),
		ScanTypes: scanTypes,
	}
	run, err := wizard.Run(ctx)
	if err != nil {
		fail(err)
	}

	if run.Reimported {
		ui.PrintSuccess("Reimport done.")
	} else {
		ui.PrintSuccess("Import done.")
	}
	ui.PrintSummary(ui.Summary{
		Title:   "Import Summary",
		Fields:  run.Result,
		ScanURL: importer.ScanURL(client.BaseURL(), run.Result),
	})
}
