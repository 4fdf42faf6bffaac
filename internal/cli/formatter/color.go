package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sprintsense/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// HealthPill returns a colored indicator for a validated work item.
func HealthPill(complete bool, warning string) string {
	switch {
	case complete && warning == "":
		return StyleGreen.Render("● OK")
	case complete:
		return StyleYellow.Render("◐ WARNING")
	default:
		return StyleRed.Render("○ INCOMPLETE")
	}
}

// PriorityPill returns a colored priority label such as "P2 High".
func PriorityPill(p int) string {
	label := fmt.Sprintf("P%d %s", p, domain.PriorityLabel(p))
	switch p {
	case domain.PriorityCritical:
		return StyleRed.Render(label)
	case domain.PriorityHigh:
		return StyleYellow.Render(label)
	case domain.PriorityMedium:
		return StyleBlue.Render(label)
	default:
		return StyleDim.Render(label)
	}
}

// TypeBadge returns a purple-styled work item type label.
func TypeBadge(t domain.WorkItemType) string {
	if t == "" {
		return StyleDim.Render("--")
	}
	return StylePurple.Render(string(t))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
