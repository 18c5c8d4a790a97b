package interactive

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dojoctl/dojoctl/pkg/defaults"
	"github.com/dojoctl/dojoctl/pkg/dojo"
)

// Sentinel choices appended to selection lists.
const (
	createProductChoice    = "<Create new product>"
	createEngagementChoice = "<Create new engagement>"

	modeReimport = "Re-import into existing Test"
	modeImport   = "Import (create new Test)"
)

// ServerAPI is the slice of the dojo client the wizard drives.
type ServerAPI interface {
	ListProducts(ctx context.Context, nameQuery string) ([]dojo.Product, error)
	CreateProduct(ctx context.Context, name string) (dojo.Product, error)
	ListEngagements(ctx context.Context, productID int) ([]dojo.Engagement, error)
	CreateEngagement(ctx context.Context, productID int, name, startDate, endDate, engagementType string) (dojo.Engagement, error)
	ListTests(ctx context.Context, engagementID int) ([]dojo.Test, error)
	ImportScan(ctx context.Context, opts dojo.ImportOptions) (dojo.Result, error)
	ReimportScan(ctx context.Context, opts dojo.ReimportOptions) (dojo.Result, error)
}

// Wizard walks an operator through Product -> Engagement -> (Reimport | Import).
type Wizard struct {
	API       ServerAPI
	Prompt    *Prompter
	ScanTypes []string

	// Now supplies the current date for engagement defaults. Nil means
	// time.Now.
	Now func() time.Time
}

// RunResult is the finished wizard run.
type RunResult struct {
	Result     dojo.Result
	Reimported bool
}

// Run executes the wizard and returns the raw server result of the final
// import or reimport. Every resource creation along the way is committed
// server-side as soon as it happens; there is no transaction to unwind.
func (w *Wizard) Run(ctx context.Context) (RunResult, error) {
	product, err := w.pickProduct(ctx)
	if err != nil {
		return RunResult{}, err
	}
	engagement, err := w.pickEngagement(ctx, product)
	if err != nil {
		return RunResult{}, err
	}

	mode, err := w.Prompt.Select("Import mode", []string{modeReimport, modeImport})
	if err != nil {
		return RunResult{}, err
	}
	filePath, err := w.Prompt.Text("Path to scan file", "")
	if err != nil {
		return RunResult{}, err
	}
	scanType, err := w.askScanType()
	if err != nil {
		return RunResult{}, err
	}

	if mode == modeReimport {
		tests, err := w.API.ListTests(ctx, engagement.ID)
		if err != nil {
			return RunResult{}, err
		}
		if len(tests) == 0 {
			w.Prompt.Notice("No tests found in this engagement; switching to new import.")
		} else {
			testID, err := w.pickTest(tests)
			if err != nil {
				return RunResult{}, err
			}
			result, err := w.API.ReimportScan(ctx, dojo.ReimportOptions{
				TestID:   testID,
				ScanType: scanType,
				FilePath: filePath,
			})
			if err != nil {
				return RunResult{}, err
			}
			return RunResult{Result: result, Reimported: true}, nil
		}
	}

	result, err := w.API.ImportScan(ctx, dojo.ImportOptions{
		EngagementID: engagement.ID,
		ScanType:     scanType,
		FilePath:     filePath,
	})
	if err != nil {
		return RunResult{}, err
	}
	return RunResult{Result: result}, nil
}

// pickProduct searches, selects or creates the product.
func (w *Wizard) pickProduct(ctx context.Context) (dojo.Product, error) {
	query, err := w.Prompt.Text("Search product (or leave empty to list)", "")
	if err != nil {
		return dojo.Product{}, err
	}
	products, err := w.API.ListProducts(ctx, query)
	if err != nil {
		return dojo.Product{}, err
	}

	choices := make([]string, 0, len(products)+1)
	for _, p := range products {
		choices = append(choices, p.Name)
	}
	choices = append(choices, createProductChoice)

	choice, err := w.Prompt.Select("Pick a product or create a new one", choices)
	if err != nil {
		return dojo.Product{}, err
	}
	if choice == createProductChoice {
		name, err := w.Prompt.Text("New product name", "")
		if err != nil {
			return dojo.Product{}, err
		}
		return w.API.CreateProduct(ctx, name)
	}
	for _, p := range products {
		if p.Name == choice {
			return p, nil
		}
	}
	return dojo.Product{}, fmt.Errorf("interactive: no product named %q", choice)
}

// pickEngagement selects or creates an engagement under the product. A new
// engagement starts today, ends today unless overridden, and is typed CI/CD.
func (w *Wizard) pickEngagement(ctx context.Context, product dojo.Product) (dojo.Engagement, error) {
	engagements, err := w.API.ListEngagements(ctx, product.ID)
	if err != nil {
		return dojo.Engagement{}, err
	}

	choices := make([]string, 0, len(engagements)+1)
	for _, e := range engagements {
		choices = append(choices, e.Label())
	}
	choices = append(choices, createEngagementChoice)

	choice, err := w.Prompt.Select("Pick an engagement or create a new one", choices)
	if err != nil {
		return dojo.Engagement{}, err
	}
	if choice == createEngagementChoice {
		name, err := w.Prompt.Text("Engagement name", "")
		if err != nil {
			return dojo.Engagement{}, err
		}
		today := w.today().Format(defaults.DateFormat)
		end, err := w.Prompt.Text("End date (YYYY-MM-DD)", today)
		if err != nil {
			return dojo.Engagement{}, err
		}
		return w.API.CreateEngagement(ctx, product.ID, name, today, end, defaults.EngagementType)
	}
	for _, e := range engagements {
		if e.Label() == choice {
			return e, nil
		}
	}
	return dojo.Engagement{}, fmt.Errorf("interactive: no engagement labeled %q", choice)
}

// pickTest selects an existing test and parses its id out of the label.
func (w *Wizard) pickTest(tests []dojo.Test) (int, error) {
	choices := make([]string, 0, len(tests))
	for _, t := range tests {
		choices = append(choices, t.Label())
	}
	choice, err := w.Prompt.Select("Select a test", choices)
	if err != nil {
		return 0, err
	}
	idText, _, _ := strings.Cut(choice, ":")
	id, err := strconv.Atoi(strings.TrimSpace(idText))
	if err != nil {
		return 0, fmt.Errorf("interactive: unparsable test choice %q", choice)
	}
	return id, nil
}

// askScanType runs the autocomplete-with-fallback interaction over the
// resolved catalog.
func (w *Wizard) askScanType() (string, error) {
	return w.Prompt.AutoComplete("Scan type", w.ScanTypes)
}

func (w *Wizard) today() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}
