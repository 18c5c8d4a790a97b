package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dojoctl/dojoctl/pkg/defaults"
	"github.com/dojoctl/dojoctl/pkg/importer"
	"github.com/dojoctl/dojoctl/pkg/scantypes"
	"github.com/dojoctl/dojoctl/pkg/ui"
)

// runDirect performs a flag-driven import or reimport without prompts,
// suited to CI pipelines.
func runDirect() {
	fs := flag.NewFlagSet("direct", flag.ExitOnError)
	cf := addConnectionFlags(fs)

	file := fs.String("file", "", "Path to the scan result file (required)")
	scanType := fs.String("scan-type", "", "Scanner type as expected by the server (required)")
	product := fs.String("product", "", "Product name (used with -engagement)")
	engagement := fs.String("engagement", "", "Engagement name (used with -product)")
	engagementID := fs.Int("engagement-id", 0, "Engagement ID (creates a new test)")
	testID := fs.Int("test-id", 0, "Reimport into this test ID")
	minSeverity := fs.String("min-severity", defaults.MinimumSeverity, "Severity floor for imported findings")
	active := fs.Bool("active", false, "Mark findings active; omit the flag to leave unconstrained")
	verified := fs.Bool("verified", false, "Mark findings verified; omit the flag to leave unconstrained")
	dedup := fs.Bool("dedup-on-engagement", false, "Deduplicate within the engagement; omit to leave unconstrained")
	autoCreate := fs.Bool("auto-create-context", false, "Let the server auto-create product/engagement from names")
	testTitle := fs.String("test-title", "", "Title for the created test")
	validateScanType := fs.Bool("validate-scan-type", true, "Validate -scan-type against the resolved schema")
	fs.Parse(os.Args[2:])

	// active/verified/dedup are tri-state: only flags the user actually
	// set make it into the upload.
	var activeSet, verifiedSet, dedupSet bool
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "active":
			activeSet = true
		case "verified":
			verifiedSet = true
		case "dedup-on-engagement":
			dedupSet = true
		}
	})

	source, err := scantypes.ParseSource(cf.source)
	if err != nil {
		exitWithUsage(err.Error(), "dojoctl direct -scan-types-source auto|server|file")
	}

	ui.PrintMiniBanner()
	ui.PrintConfigLine("File", *file)
	ui.PrintConfigLine("Scan Type", *scanType)
	if *testID != 0 {
		ui.PrintConfigLine("Mode", fmt.Sprintf("reimport into test %d", *testID))
	} else if *engagementID != 0 {
		ui.PrintConfigLine("Mode", fmt.Sprintf("import into engagement %d", *engagementID))
	} else {
		ui.PrintConfigLine("Mode", fmt.Sprintf("import into %s / %s", *product, *engagement))
	}

	req := importer.Request{
		TestID:            *testID,
		EngagementID:      *engagementID,
		ProductName:       *product,
		EngagementName:    *engagement,
		ScanType:          *scanType,
		FilePath:          *file,
		MinimumSeverity:   *minSeverity,
		Active:            triState(activeSet, *active),
		Verified:          triState(verifiedSet, *verified),
		DedupOnEngagement: triState(dedupSet, *dedup),
		AutoCreateContext: *autoCreate,
		TestTitle:         *testTitle,
	}
	// Reject broken requests before any network traffic.
	if err := req.Validate(); err != nil {
		fail(err)
	}

	ctx := context.Background()
	client, settings, err := connect(ctx, cf)
	if err != nil {
		fail(err)
	}

	if *validateScanType {
		allowed := newResolver(client, settings).Resolve(ctx, source)
		if len(allowed) == 0 {
			allowed = defaults.FallbackScanTypes
		}
		if err := importer.ValidateScanType(*scanType, allowed, string(source)); err != nil {
			fail(err)
		}
	}

	outcome, err := importer.Run(ctx, client, req)
	if err != nil {
		fail(err)
	}

	if outcome.Reimported {
		ui.PrintSuccess("Reimport done.")
	} else {
		ui.PrintSuccess("Import done.")
	}
	ui.PrintSummary(ui.Summary{
		Title:   "Import Summary",
		Fields:  outcome.Result,
		ScanURL: outcome.ScanURL,
	})
}

func triState(set, value bool) *bool {
	if !set {
		return nil
	}
	return &value
}
