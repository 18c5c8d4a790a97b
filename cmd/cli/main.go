// Command cli is the dojoctl binary: it imports and re-imports
// vulnerability scan result files into a DefectDojo-compatible server.
package main

import (
	"fmt"
	"os"

	"github.com/dojoctl/dojoctl/pkg/defaults"
	"github.com/dojoctl/dojoctl/pkg/ui"
)

func printUsage() {
	ui.PrintMiniBanner()

	fmt.Println(ui.SectionStyle.Render("USAGE"))
	fmt.Println()
	fmt.Printf("  %s\n", ui.ConfigValueStyle.Render("dojoctl <command> [flags]"))
	fmt.Println()

	fmt.Println(ui.SectionStyle.Render("COMMANDS"))
	fmt.Println()
	fmt.Printf("  %s  import or reimport a scan file without prompts (CI-friendly)\n", ui.ConfigValueStyle.Render("direct     "))
	fmt.Printf("  %s  wizard: pick or create product/engagement, then import\n", ui.ConfigValueStyle.Render("interactive"))
	fmt.Printf("  %s  print the scan-type catalog the server/schema resolves to\n", ui.ConfigValueStyle.Render("scan-types "))
	fmt.Printf("  %s  print version information\n", ui.ConfigValueStyle.Render("version    "))
	fmt.Println()

	fmt.Println(ui.SectionStyle.Render("QUICK EXAMPLES"))
	fmt.Println()
	fmt.Printf("  %s\n", ui.ConfigValueStyle.Render(`dojoctl direct -file report.json -scan-type "Trivy Scan" -engagement-id 12`))
	fmt.Printf("  %s\n", ui.ConfigValueStyle.Render(`dojoctl direct -file zap.xml -scan-type "ZAP Scan" -product Shop -engagement Q3 -auto-create-context`))
	fmt.Printf("  %s\n", ui.ConfigValueStyle.Render("dojoctl interactive -url https://dojo.example"))
	fmt.Println()

	fmt.Println(ui.SectionStyle.Render("ENVIRONMENT"))
	fmt.Println()
	fmt.Println("  DOJO_URL, DOJO_TOKEN, DOJO_USERNAME, DOJO_PASSWORD, DOJO_API_SPEC, DOJO_CONFIG")
	fmt.Println("  Each is a fallback used when the matching flag is omitted.")
	fmt.Println()

	fmt.Println(ui.HelpStyle.Render("  run `dojoctl <command> -h` for the full flag list of a command"))
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	switch os.Args[1] {
	case "direct", "import":
		runDirect()
	case "interactive", "wizard":
		runInteractive()
	case "scan-types", "scantypes":
		runScanTypes()
	case "-v", "--version", "version":
		fmt.Printf("dojoctl v%s (%s)\n", ui.Version, ui.Commit)
	case "-h", "--help", "help":
		printUsage()
	default:
		ui.PrintError(fmt.Sprintf("unknown command: %s", os.Args[1]))
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(defaults.ExitUserError)
	}
}
