package formatter

import (
	"fmt"
	"strings"
)

// RenderProgress draws a fixed-width completion bar, e.g. [████░░░░]  50%.
// The ratio picks the color: below one third red, below two thirds yellow,
// green from there up.
func RenderProgress(ratio float64, width int) string {
	switch {
	case ratio < 0:
		ratio = 0
	case ratio > 1:
		ratio = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(ratio * float64(width))
	var bar strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			bar.WriteRune('█')
		} else {
			bar.WriteRune('░')
		}
	}

	style := StyleRed
	switch {
	case ratio >= 0.66:
		style = StyleGreen
	case ratio >= 0.33:
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar.String()), ratio*100)
}
