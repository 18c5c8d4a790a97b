package dojo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dojoctl/dojoctl/pkg/defaults"
	"github.com/dojoctl/dojoctl/pkg/jsonutil"
)

// ImportOptions parameterizes a fresh import (new test). Exactly one of
// EngagementID or the ProductName+EngagementName pair targets the upload.
type ImportOptions struct {
	EngagementID   int
	ProductName    string
	EngagementName string

	ScanType        string
	FilePath        string
	MinimumSeverity string

	// AutoCreateContext asks the server to create missing product or
	// engagement records named by ProductName/EngagementName.
	AutoCreateContext bool

	// Tri-state flags: nil means "do not constrain".
	Active            *bool
	Verified          *bool
	DedupOnEngagement *bool

	TestTitle string
}

// ReimportOptions parameterizes a reimport into an existing test.
type ReimportOptions struct {
	TestID int

	ScanType        string
	FilePath        string
	MinimumSeverity string

	Active   *bool
	Verified *bool
}

// Result is the raw import/reimport response. The server's shape varies
// across versions, so it is kept as a generic document and passed to
// presentation unchanged.
type Result map[string]any

// TestID digs the created/updated test identifier out of the response.
// Known shapes: {"test": 42}, {"test": {"id": 42}}, {"id": 42}.
func (r Result) TestID() (int, bool) {
	switch test := r["test"].(type) {
	case float64:
		return int(test), true
	case map[string]any:
		if id, ok := test["id"].(float64); ok {
			return int(id), true
		}
	}
	if id, ok := r["id"].(float64); ok {
		return int(id), true
	}
	return 0, false
}

// ImportScan uploads a scan file, creating a new test. The upload is a
// single multipart request; a failure is not retried here.
func (c *Client) ImportScan(ctx context.Context, opts ImportOptions) (Result, error) {
	fields := map[string]string{
		"scan_type":        opts.ScanType,
		"minimum_severity": severityOrDefault(opts.MinimumSeverity),
	}
	if opts.EngagementID != 0 {
		fields["engagement"] = strconv.Itoa(opts.EngagementID)
	}
	if opts.ProductName != "" {
		fields["product_name"] = opts.ProductName
	}
	if opts.EngagementName != "" {
		fields["engagement_name"] = opts.EngagementName
	}
	if opts.AutoCreateContext {
		fields["auto_create_context"] = "true"
	}
	if opts.DedupOnEngagement != nil {
		fields["deduplication_on_engagement"] = strconv.FormatBool(*opts.DedupOnEngagement)
	}
	if opts.TestTitle != "" {
		fields["test_title"] = opts.TestTitle
	}
	setTriState(fields, "active", opts.Active)
	setTriState(fields, "verified", opts.Verified)

	return c.uploadScan(ctx, defaults.PathImportScan, fields, opts.FilePath)
}

// ReimportScan uploads a scan file into an existing test, merging results.
func (c *Client) ReimportScan(ctx context.Context, opts ReimportOptions) (Result, error) {
	fields := map[string]string{
		"scan_type":        opts.ScanType,
		"test":             strconv.Itoa(opts.TestID),
		"minimum_severity": severityOrDefault(opts.MinimumSeverity),
	}
	setTriState(fields, "active", opts.Active)
	setTriState(fields, "verified", opts.Verified)

	return c.uploadScan(ctx, defaults.PathReimportScan, fields, opts.FilePath)
}

// uploadScan posts a multipart form with metadata fields plus the scan file
// as an opaque binary attachment under the `file` part.
func (c *Client) uploadScan(ctx context.Context, path string, fields map[string]string, filePath string) (Result, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("dojo: opening scan file: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, err
		}
	}
	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("dojo: reading scan file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result Result
	if err := jsonutil.UnmarshalRead(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("dojo: decoding import response: %w", err)
	}
	return result, nil
}

func setTriState(fields map[string]string, name string, value *bool) {
	if value != nil {
		fields[name] = strconv.FormatBool(*value)
	}
}

func severityOrDefault(sev string) string {
	if sev == "" {
		return defaults.MinimumSeverity
	}
	return sev
}
