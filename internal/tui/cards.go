package tui

import (
	"strings"

	"folio-cli/internal/render"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	minCardWidth = 30
	cardGap      = 1
	cardLines    = 5 // title, subtitle, two summary lines, pills
	cardHeight   = cardLines + 2
)

type cardStyles struct {
	normal   lipgloss.Style
	selected lipgloss.Style
	title    lipgloss.Style
	meta     lipgloss.Style
	badge    lipgloss.Style
	pill     lipgloss.Style
}

func newCardStyles() cardStyles {
	base := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Foreground(colorSurfaceFg)

	return cardStyles{
		normal:   base,
		selected: base.BorderForeground(colorAccent),
		title:    lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg),
		meta:     styleMuted(),
		badge:    lipgloss.NewStyle().Foreground(colorBadge),
		pill:     lipgloss.NewStyle().Foreground(colorAccent),
	}
}

// renderCard draws one card exactly width columns wide and cardHeight
// rows tall, so the grid can be hit-tested arithmetically.
func renderCard(st cardStyles, c render.Card, width int, selected bool) string {
	box := st.normal
	if selected {
		box = st.selected
	}
	inner := width - box.GetHorizontalFrameSize()
	if inner < 4 {
		inner = 4
	}

	title := plain(c.Title)
	badge := plain(c.Badge)
	titleW := inner
	if badge != "" {
		badge = truncateToWidth(badge, inner/3)
		titleW = inner - xansi.StringWidth(badge) - 1
	}
	top := st.title.Render(truncateToWidth(title, titleW))
	if badge != "" {
		gap := inner - lipgloss.Width(top) - xansi.StringWidth(badge)
		if gap < 1 {
			gap = 1
		}
		top += strings.Repeat(" ", gap) + st.badge.Render(badge)
	}

	summary := summaryLines(plain(c.Summary), inner, 2)

	pills := make([]string, 0, len(c.Pills))
	for _, p := range c.Pills {
		pills = append(pills, "#"+plain(p))
	}
	pillRow := st.pill.Render(truncateToWidth(strings.Join(pills, " "), inner))

	lines := []string{
		top,
		st.meta.Render(truncateToWidth(plain(c.Subtitle), inner)),
		summary[0],
		summary[1],
		pillRow,
	}
	return box.Width(width - box.GetHorizontalBorderSize()).
		Height(cardLines).
		MaxHeight(cardHeight).
		Render(strings.Join(lines, "\n"))
}

// summaryLines word-wraps s into exactly n lines; the last line is cut
// with an ellipsis when text remains.
func summaryLines(s string, width int, n int) []string {
	out := make([]string, n)
	if s == "" {
		return out
	}
	wrapped := strings.Split(xansi.Wordwrap(s, width, ""), "\n")
	for i := 0; i < n && i < len(wrapped); i++ {
		out[i] = truncateToWidth(wrapped[i], width)
	}
	if len(wrapped) > n {
		out[n-1] = truncateToWidth(out[n-1]+" "+strings.Join(wrapped[n:], " "), width)
	}
	return out
}

// plain makes project text safe for a terminal: escape sequences are
// stripped and whitespace, newlines included, collapses to single spaces.
func plain(s string) string {
	return strings.Join(strings.Fields(xansi.Strip(s)), " ")
}

func truncateToWidth(s string, w int) string {
	s = strings.TrimSpace(s)
	if w <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= w {
		return s
	}
	if w <= 1 {
		return "…"
	}
	return xansi.Truncate(s, w, "…")
}

// gridColumns is how many cards fit side by side in width columns.
func gridColumns(width int) int {
	cols := (width + cardGap) / (minCardWidth + cardGap)
	if cols < 1 {
		cols = 1
	}
	return cols
}

// cardWidth spreads width evenly over cols cards.
func cardWidth(width int, cols int) int {
	w := (width - (cols-1)*cardGap) / cols
	if w < minCardWidth {
		w = minCardWidth
	}
	return w
}
