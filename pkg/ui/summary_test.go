package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompactValue(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"string", "ZAP Scan", "ZAP Scan"},
		{"integral float", float64(42), "42"},
		{"fractional float", 2.5, "2.5"},
		{"bool", true, "true"},
		{"nil", nil, "<nil>"},
		{
			"nested map sorted and flattened",
			map[string]any{"critical": float64(1), "high": float64(3)},
			"{critical=1 high=3}",
		},
		{
			"deeply nested",
			map[string]any{"after": map[string]any{"total": float64(7)}},
			"{after={total=7}}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compactValue(tt.input))
		})
	}
}
