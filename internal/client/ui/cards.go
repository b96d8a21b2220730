package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Card is one KPI tile.
type Card struct {
	Label string
	Value string
}

// Cards lays tiles out side by side, wrapping every perRow tiles.
func Cards(styles Styles, perRow int, cards ...Card) string {
	if perRow <= 0 {
		perRow = len(cards)
	}
	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := min(start+perRow, len(cards))
		tiles := make([]string, 0, end-start)
		for _, c := range cards[start:end] {
			body := lipgloss.JoinVertical(lipgloss.Left,
				styles.CardLabel.Render(c.Label),
				styles.CardValue.Render(c.Value),
			)
			tiles = append(tiles, styles.Card.Render(body))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return strings.Join(rows, "\n")
}

// KeyValues renders aligned "key: value" lines in the given order.
func KeyValues(styles Styles, pairs ...[2]string) string {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}
	var sb strings.Builder
	for _, p := range pairs {
		key := styles.Muted.Width(width + 1).Render(p[0] + ":")
		sb.WriteString(key + " " + styles.Body.Render(p[1]) + "\n")
	}
	return sb.String()
}

// Bar draws a percentage as a fixed-width bar, clamped to 0..100.
func Bar(percent float64, width int) string {
	if width <= 0 {
		width = 20
	}
	percent = max(0, min(100, percent))
	filled := int(percent / 100 * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "] " + fmt.Sprintf("%.1f%%", percent)
}

// Number formats a float without a trailing ".0".
func Number(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

func Title(styles Styles, s string) string { return styles.Title.Render(s) }

func Error(styles Styles, s string) string { return styles.Error.Render("error: " + s) }

func Notice(styles Styles, s string) string { return styles.Success.Render(s) }
