// Package importer sequences one import or reimport run: pre-flight
// validation, targeting resolution, upload, and result summarization.
package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dojoctl/dojoctl/pkg/defaults"
	"github.com/dojoctl/dojoctl/pkg/dojo"
)

// ErrValidation marks failures caught before any network call. The CLI maps
// it to the user-error exit code. Check with errors.Is.
var ErrValidation = errors.New("importer: invalid request")

// Request is one fully specified import or reimport.
//
// Targeting precedence: a test id means reimport; otherwise an engagement
// id means a fresh import under it; otherwise both product and engagement
// names are required.
type Request struct {
	TestID         int
	EngagementID   int
	ProductName    string
	EngagementName string

	ScanType        string
	FilePath        string
	MinimumSeverity string

	Active            *bool
	Verified          *bool
	DedupOnEngagement *bool

	AutoCreateContext bool
	TestTitle         string
}

// IsReimport reports whether the request targets an existing test.
// TestID takes precedence over every other targeting field.
func (r Request) IsReimport() bool {
	return r.TestID != 0
}

// Validate checks the request before any network traffic.
func (r Request) Validate() error {
	if r.FilePath == "" {
		return fmt.Errorf("%w: scan file path is required", ErrValidation)
	}
	if _, err := os.Stat(r.FilePath); err != nil {
		return fmt.Errorf("%w: scan file %s is not readable", ErrValidation, r.FilePath)
	}
	if r.ScanType == "" {
		return fmt.Errorf("%w: scan type is required", ErrValidation)
	}
	if !r.IsReimport() && r.EngagementID == 0 {
		if r.ProductName == "" || r.EngagementName == "" {
			return fmt.Errorf("%w: provide -engagement-id or both -product and -engagement", ErrValidation)
		}
	}
	return nil
}

// ValidateScanType rejects a scan type absent from the allowed catalog.
// An empty catalog disables the check rather than rejecting everything;
// discovery failure must never block an import.
func ValidateScanType(scanType string, allowed []string, source string) error {
	if len(allowed) == 0 {
		return nil
	}
	for _, a := range allowed {
		if a == scanType {
			return nil
		}
	}
	preview := allowed
	suffix := ""
	if len(preview) > defaults.AllowedPreview {
		preview = preview[:defaults.AllowedPreview]
		suffix = "..."
	}
	return fmt.Errorf("%w: invalid scan type %q; found %d values from %s, try one of: %s%s",
		ErrValidation, scanType, len(allowed), source, strings.Join(preview, ", "), suffix)
}

// API is the slice of the dojo client the orchestrator needs.
type API interface {
	ImportScan(ctx context.Context, opts dojo.ImportOptions) (dojo.Result, error)
	ReimportScan(ctx context.Context, opts dojo.ReimportOptions) (dojo.Result, error)
	BaseURL() string
}

// Outcome is a finished run: the raw server response plus what was done
// with it.
type Outcome struct {
	Result     dojo.Result
	Reimported bool
	// ScanURL is a browsable link to the resulting test, when the
	// response named one.
	ScanURL string
}

// Run validates the request, performs the upload, and composes the outcome.
// The upload is one atomic request; failures propagate without retry.
func Run(ctx context.Context, api API, req Request) (Outcome, error) {
	if err := req.Validate(); err != nil {
		return Outcome{}, err
	}

	var (
		result dojo.Result
		err    error
	)
	switch {
	case req.IsReimport():
		result, err = api.ReimportScan(ctx, dojo.ReimportOptions{
			TestID:          req.TestID,
			ScanType:        req.ScanType,
			FilePath:        req.FilePath,
			MinimumSeverity: req.MinimumSeverity,
			Active:          req.Active,
			Verified:        req.Verified,
		})
	case req.EngagementID != 0:
		result, err = api.ImportScan(ctx, dojo.ImportOptions{
			EngagementID:      req.EngagementID,
			ScanType:          req.ScanType,
			FilePath:          req.FilePath,
			MinimumSeverity:   req.MinimumSeverity,
			Active:            req.Active,
			Verified:          req.Verified,
			DedupOnEngagement: req.DedupOnEngagement,
			TestTitle:         req.TestTitle,
		})
	default:
		result, err = api.ImportScan(ctx, dojo.ImportOptions{
			ProductName:       req.ProductName,
			EngagementName:    req.EngagementName,
			AutoCreateContext: req.AutoCreateContext,
			ScanType:          req.ScanType,
			FilePath:          req.FilePath,
			MinimumSeverity:   req.MinimumSeverity,
			Active:            req.Active,
			Verified:          req.Verified,
			DedupOnEngagement: req.DedupOnEngagement,
			TestTitle:         req.TestTitle,
		})
	}
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Result:     result,
		Reimported: req.IsReimport(),
		ScanURL:    ScanURL(api.BaseURL(), result),
	}, nil
}

// ScanURL composes the browsable test URL from a result, or "" when the
// response carried no test identifier.
func ScanURL(baseURL string, result dojo.Result) string {
	id, ok := result.TestID()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s/test/%d", baseURL, id)
}
