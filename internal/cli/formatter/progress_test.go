package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		pct    float64
		filled int
		label  string
	}{
		{0, 0, "  0%"},
		{50, 5, " 50%"},
		{100, 10, "100%"},
		{140, 10, "100%"},
		{-5, 0, "  0%"},
	}
	for _, tt := range tests {
		got := stripANSI(RenderProgress(tt.pct, 10))
		assert.Equal(t, tt.filled, strings.Count(got, filledBlock), got)
		assert.True(t, strings.HasSuffix(got, tt.label), got)
	}
}

func TestRenderCompactBar(t *testing.T) {
	tests := []struct {
		name  string
		frac  float64
		width int
	}{
		{"0%", 0.0, 10},
		{"50%", 0.5, 10},
		{"over 100% clamps", 1.5, 10},
		{"tiny width clamps to 2", 0.5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderCompactBar(tt.frac, tt.width, true)
			assert.NotContains(t, got, "[")
			assert.NotContains(t, got, "%")
		})
	}
	assert.Equal(t, strings.Repeat(emptyBlock, 4), stripANSI(RenderCompactBar(0, 4, true)))
	assert.Equal(t, strings.Repeat(filledBlock, 4), stripANSI(RenderCompactBar(1, 4, false)))
}
