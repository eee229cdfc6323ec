package render

import (
	"strings"

	"CryptoBoard/internal/formatter"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#94a3b8"))
	nameStyle     = lipgloss.NewStyle().Bold(true).Width(12)
	capStyle      = lipgloss.NewStyle().Width(12).Align(lipgloss.Right)
	priceStyle    = lipgloss.NewStyle().Width(12).Align(lipgloss.Right)
	changeStyle   = lipgloss.NewStyle().Width(12).Align(lipgloss.Right)
	positiveStyle = changeStyle.Foreground(lipgloss.Color("#22c55e"))
	negativeStyle = changeStyle.Foreground(lipgloss.Color("#ef4444"))
	footerStyle   = lipgloss.NewStyle().Faint(true)
)

// Terminal renders a board for a text console.
func Terminal(b Board) string {
	lines := make([]string, 0, len(b.Rows)+2)
	lines = append(lines, headerStyle.Render(
		nameStyle.Render("COIN")+capStyle.Render("MARKET CAP")+priceStyle.Render("PRICE")+changeStyle.Render("24H"),
	))
	for _, row := range b.Rows {
		style := positiveStyle
		if row.ChangeClass == formatter.ClassNegative {
			style = negativeStyle
		}
		lines = append(lines,
			nameStyle.Render(row.Icon+" "+row.Name)+
				capStyle.Render(row.MarketCap)+
				priceStyle.Render(row.Price)+
				style.Render(row.Change),
		)
	}
	lines = append(lines, footerStyle.Render("Last updated: "+b.Timestamp))
	return strings.Join(lines, "\n")
}
