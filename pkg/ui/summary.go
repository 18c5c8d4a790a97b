package ui

import (
	"fmt"
	"sort"
	"strings"
)

// summaryOrder is the preferred display order for known result keys.
// Anything else the server returned is appended alphabetically.
var summaryOrder = []string{
	"test", "test_id", "engagement", "engagement_id",
	"product_id", "product_type_id", "scan_type", "statistics",
}

// Summary is the presentation form of an import/reimport server response.
type Summary struct {
	Title   string
	Fields  map[string]any
	ScanURL string
}

// PrintSummary renders the result summary as an aligned key/value table.
// The server response is presented as-is; no reshaping beyond ordering.
func PrintSummary(s Summary) {
	PrintSection(s.Title)
	fmt.Println()

	printed := make(map[string]bool)
	row := func(key string, value any) {
		fmt.Printf("  %s %s\n",
			ConfigLabelStyle.Render(key+":"),
			ConfigValueStyle.Render(compactValue(value)),
		)
		printed[key] = true
	}

	for _, key := range summaryOrder {
		if value, ok := s.Fields[key]; ok {
			row(key, value)
		}
	}

	rest := make([]string, 0, len(s.Fields))
	for key := range s.Fields {
		if !printed[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		row(key, s.Fields[key])
	}

	if s.ScanURL != "" {
		fmt.Printf("  %s %s\n",
			ConfigLabelStyle.Render("scan url:"),
			URLStyle.Render(s.ScanURL),
		)
	}
	fmt.Println()
}

// compactValue flattens nested response values onto one line.
func compactValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+compactValue(t[k]))
		}
		return "{" + strings.Join(parts, " ") + "}"
	default:
		return fmt.Sprintf("%v", v)
	}
}
