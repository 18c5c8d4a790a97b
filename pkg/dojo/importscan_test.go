package dojo

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScanFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// captureUpload parses the multipart form and records fields plus the file
// part.
type captureUpload struct {
	path     string
	fields   map[string]string
	fileName string
	fileBody string
}

func (c *captureUpload) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.path = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1 << 20))

		c.fields = map[string]string{}
		for name, values := range r.MultipartForm.Value {
			c.fields[name] = values[0]
		}
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		body, err := io.ReadAll(file)
		require.NoError(t, err)
		c.fileName = header.Filename
		c.fileBody = string(body)

		w.Write([]byte(`{"test":42,"scan_type":"ZAP Scan"}`))
	})
}

func TestImportScan(t *testing.T) {
	scanPath := writeScanFile(t, `{"findings":[]}`)
	active := true

	capture := &captureUpload{}
	client, _ := newTestClient(t, capture.handler(t), Config{Token: "t"})

	result, err := client.ImportScan(context.Background(), ImportOptions{
		EngagementID: 10,
		ScanType:     "ZAP Scan",
		FilePath:     scanPath,
		Active:       &active,
		TestTitle:    "weekly",
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/v2/import-scan/", capture.path)
	assert.Equal(t, "ZAP Scan", capture.fields["scan_type"])
	assert.Equal(t, "10", capture.fields["engagement"])
	assert.Equal(t, "Info", capture.fields["minimum_severity"])
	assert.Equal(t, "true", capture.fields["active"])
	assert.Equal(t, "weekly", capture.fields["test_title"])

	// Unset tri-states and unused targeting fields stay off the wire.
	assert.NotContains(t, capture.fields, "verified")
	assert.NotContains(t, capture.fields, "deduplication_on_engagement")
	assert.NotContains(t, capture.fields, "auto_create_context")
	assert.NotContains(t, capture.fields, "product_name")

	assert.Equal(t, "report.json", capture.fileName)
	assert.Equal(t, `{"findings":[]}`, capture.fileBody)

	id, ok := result.TestID()
	require.True(t, ok)
	assert.Equal(t, 42, id)
}

func TestImportScanAutoCreateContext(t *testing.T) {
	scanPath := writeScanFile(t, "data")
	dedup := false

	capture := &captureUpload{}
	client, _ := newTestClient(t, capture.handler(t), Config{Token: "t"})

	_, err := client.ImportScan(context.Background(), ImportOptions{
		ProductName:       "Shop",
		EngagementName:    "Q3",
		ScanType:          "Trivy Scan",
		FilePath:          scanPath,
		MinimumSeverity:   "High",
		AutoCreateContext: true,
		DedupOnEngagement: &dedup,
	})
	require.NoError(t, err)

	assert.Equal(t, "Shop", capture.fields["product_name"])
	assert.Equal(t, "Q3", capture.fields["engagement_name"])
	assert.Equal(t, "true", capture.fields["auto_create_context"])
	assert.Equal(t, "false", capture.fields["deduplication_on_engagement"])
	assert.Equal(t, "High", capture.fields["minimum_severity"])
	assert.NotContains(t, capture.fields, "engagement")
}

func TestReimportScan(t *testing.T) {
	scanPath := writeScanFile(t, "data")
	verified := false

	capture := &captureUpload{}
	client, _ := newTestClient(t, capture.handler(t), Config{Token: "t"})

	_, err := client.ReimportScan(context.Background(), ReimportOptions{
		TestID:   5,
		ScanType: "ZAP Scan",
		FilePath: scanPath,
		Verified: &verified,
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/v2/reimport-scan/", capture.path)
	assert.Equal(t, "5", capture.fields["test"])
	assert.Equal(t, "false", capture.fields["verified"])
	assert.NotContains(t, capture.fields, "active")
}

func TestImportScanMissingFile(t *testing.T) {
	client, _ := newTestClient(t, http.NotFoundHandler(), Config{Token: "t"})

	_, err := client.ImportScan(context.Background(), ImportOptions{
		EngagementID: 1,
		ScanType:     "ZAP Scan",
		FilePath:     filepath.Join(t.TempDir(), "absent.json"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening scan file")
}

func TestResultTestID(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   int
		ok     bool
	}{
		{"flat test id", Result{"test": float64(42)}, 42, true},
		{"nested test object", Result{"test": map[string]any{"id": float64(7)}}, 7, true},
		{"top-level id", Result{"id": float64(9)}, 9, true},
		{"nothing usable", Result{"message": "ok"}, 0, false},
		{"nested without id", Result{"test": map[string]any{"title": "x"}}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := tt.result.TestID()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, id)
		})
	}
}
