package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dojoctl/dojoctl/pkg/config"
	"github.com/dojoctl/dojoctl/pkg/defaults"
	"github.com/dojoctl/dojoctl/pkg/dojo"
	"github.com/dojoctl/dojoctl/pkg/scantypes"
	"github.com/dojoctl/dojoctl/pkg/ui"
)

// runScanTypes prints the scan-type catalog the configured sources resolve
// to. Handy for checking what a -scan-type flag may say before wiring a
// pipeline.
func runScanTypes() {
	fs := flag.NewFlagSet("scan-types", flag.ExitOnError)
	cf := addConnectionFlags(fs)
	fs.Parse(os.Args[2:])

	source, err := scantypes.ParseSource(cf.source)
	if err != nil {
		exitWithUsage(err.Error(), "dojoctl scan-types -scan-types-source auto|server|file")
	}

	ctx := context.Background()

	// A server connection is optional here: without a base URL the file
	// and fallback layers still apply.
	var client *dojo.Client
	settings, err := config.Resolve(config.Settings{
		URL:      cf.url,
		Token:    cf.token,
		Username: cf.username,
		Password: cf.password,
		APISpec:  cf.apiSpec,
	}, cf.configPath)
	if err != nil {
		fail(err)
	}
	if settings.URL != "" {
		client, err = dojo.New(ctx, dojo.Config{
			BaseURL:  settings.URL,
			Token:    settings.Token,
			Username: settings.Username,
			Password: settings.Password,
		})
		if err != nil {
			fail(err)
		}
	}

	types := newResolver(client, settings).Resolve(ctx, source)
	origin := string(source)
	if len(types) == 0 {
		ui.PrintWarning("No scan types discovered; showing the built-in list.")
		types = defaults.FallbackScanTypes
		origin = "builtin"
	}

	ui.PrintSection(fmt.Sprintf("Scan Types (%d, source: %s)", len(types), origin))
	for _, t := range types {
		fmt.Println("  " + t)
	}
}
