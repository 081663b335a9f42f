package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/summary"
)

// BoxWithTitle renders content in a rounded box with the title set into the
// top border.
func BoxWithTitle(title, content string, width int, theme Theme) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Title)
	border := lipgloss.NewStyle().Foreground(theme.Border)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderTop(false).
		BorderForeground(theme.Border).
		Width(width).
		Padding(0, 1)

	fill := max(width-lipgloss.Width(title)-1, 0)
	header := border.Render("╭─ ") + titleStyle.Render(title) + border.Render(" "+strings.Repeat("─", fill)+"╮")
	return header + "\n" + box.Render(content)
}

// SummaryPanel lists the scalar readouts with their units.
func SummaryPanel(s summary.Summary, theme Theme, width int) string {
	label := lipgloss.NewStyle().Foreground(theme.Muted)
	value := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	var b strings.Builder
	for i, e := range s.Entries() {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(label.Render(e.Label) + "\n")
		b.WriteString(value.Render(e.Value) + " " + label.Render(e.Unit))
	}
	return BoxWithTitle("SUMMARY", b.String(), width, theme)
}

// ChargePanel lists charge positions and values.
func ChargePanel(charges field.ChargeSet, theme Theme, width int) string {
	var b strings.Builder
	for i, c := range charges.Charges() {
		if i > 0 {
			b.WriteByte('\n')
		}
		style := lipgloss.NewStyle().Foreground(theme.ChargeColor(c.Value))
		b.WriteString(style.Render(fmt.Sprintf("q%d %s", i, summary.Scientific(c.Value))))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Muted).Render(
			fmt.Sprintf(" (%.1f, %.1f, %.1f)", c.Position.X, c.Position.Y, c.Position.Z)))
	}
	return BoxWithTitle("CHARGES", b.String(), width, theme)
}
