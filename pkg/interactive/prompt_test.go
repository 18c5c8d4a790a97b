package interactive

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrompter(script string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return NewPrompter(strings.NewReader(script), &out), &out
}

func TestTextDefault(t *testing.T) {
	p, _ := newTestPrompter("\n")
	got, err := p.Text("End date", "2026-08-23")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-23", got)
}

func TestTextOverride(t *testing.T) {
	p, _ := newTestPrompter("2026-09-01\n")
	got, err := p.Text("End date", "2026-08-23")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", got)
}

func TestSelectByNumber(t *testing.T) {
	p, _ := newTestPrompter("2\n")
	got, err := p.Select("Pick", []string{"alpha", "beta", "gamma"})
	require.NoError(t, err)
	assert.Equal(t, "beta", got)
}

func TestSelectByExactName(t *testing.T) {
	p, _ := newTestPrompter("gamma\n")
	got, err := p.Select("Pick", []string{"alpha", "beta", "gamma"})
	require.NoError(t, err)
	assert.Equal(t, "gamma", got)
}

func TestSelectReasksOnInvalid(t *testing.T) {
	p, out := newTestPrompter("nope\n99\n1\n")
	got, err := p.Select("Pick", []string{"alpha", "beta"})
	require.NoError(t, err)
	assert.Equal(t, "alpha", got)
	assert.Contains(t, out.String(), "pick a number or exact name")
}

func TestAutoCompleteExactMatch(t *testing.T) {
	p, out := newTestPrompter("ZAP Scan\n")
	got, err := p.AutoComplete("Scan type", []string{"ZAP Scan", "Trivy Scan"})
	require.NoError(t, err)
	assert.Equal(t, "ZAP Scan", got)
	// No secondary prompt and no auto-select notice.
	assert.NotContains(t, out.String(), "Auto-selected")
	assert.NotContains(t, out.String(), "refine")
}

func TestAutoCompleteUniqueSubstring(t *testing.T) {
	p, out := newTestPrompter("zap\n")
	got, err := p.AutoComplete("Scan type", []string{"ZAP Scan", "Trivy Scan"})
	require.NoError(t, err)
	assert.Equal(t, "ZAP Scan", got)
	assert.Contains(t, out.String(), "Auto-selected")
}

func TestAutoCompleteAmbiguousRepromptsSubset(t *testing.T) {
	p, out := newTestPrompter("s\n2\n")
	got, err := p.AutoComplete("Scan type", []string{"Snyk Scan", "SonarQube Scan", "ZAP Thing"})
	require.NoError(t, err)
	assert.Equal(t, "SonarQube Scan", got)

	// The refine prompt lists only the matching subset.
	refine := out.String()[strings.Index(out.String(), "refine"):]
	assert.Contains(t, refine, "Snyk Scan")
	assert.Contains(t, refine, "SonarQube Scan")
	assert.NotContains(t, refine, "ZAP Thing")
}

func TestAutoCompleteNoMatchRepromptsFullList(t *testing.T) {
	p, out := newTestPrompter("nessus\n1\n")
	got, err := p.AutoComplete("Scan type", []string{"ZAP Scan", "Trivy Scan"})
	require.NoError(t, err)
	assert.Equal(t, "ZAP Scan", got)
	assert.Contains(t, out.String(), "choose")
}

func TestAutoCompleteRepromptReturnsVerbatim(t *testing.T) {
	// The second prompt's raw value passes through without an exactness
	// re-check; the server is the safety net for unrecognized values.
	p, _ := newTestPrompter("nessus\nStill Not Listed\n")
	got, err := p.AutoComplete("Scan type", []string{"ZAP Scan", "Trivy Scan"})
	require.NoError(t, err)
	assert.Equal(t, "Still Not Listed", got)
}
