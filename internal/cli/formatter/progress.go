package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░]  45%. pct is a
// percentage in [0, 100]; values outside are clamped. The bar is green at
// two thirds and above, yellow from one third, red below.
func RenderProgress(pct float64, width int) string {
	frac := clampFrac(pct / 100)
	return fmt.Sprintf("[%s] %3.0f%%", bar(frac, width, false), frac*100)
}

// RenderCompactBar renders the bar alone. dim renders it without tone color.
func RenderCompactBar(frac float64, width int, dim bool) string {
	return bar(clampFrac(frac), width, dim)
}

func clampFrac(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func bar(frac float64, width int, dim bool) string {
	if width < 2 {
		width = 2
	}
	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	s := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	if dim {
		return StyleDim.Render(s)
	}
	style := StyleGreen
	if frac < 0.33 {
		style = StyleRed
	} else if frac < 0.66 {
		style = StyleYellow
	}
	return style.Render(s)
}
