package tui

import (
	"strconv"
	"strings"

	"folio-cli/internal/render"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m browserModel) View() string {
	if !m.loaded {
		return styleMuted().Render("Loading projects from " + plain(m.source) + "…")
	}
	if m.screen.detail != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modalView())
	}

	header := m.headerView()
	footer := m.footerView()
	avail := m.height - lineCount(header) - lineCount(footer)
	if avail < cardHeight {
		avail = cardHeight
	}
	body := lipgloss.NewStyle().Height(avail).MaxHeight(avail).Render(m.gridView())
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m browserModel) headerView() string {
	brand := m.title
	if strings.TrimSpace(m.owner) != "" {
		brand = m.owner
	}
	left := lipgloss.NewStyle().Bold(true).Render(plain(brand))
	right := styleMuted().Render("[m] " + m.navLabel())
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	lines := []string{left + strings.Repeat(" ", gap) + right}

	if m.screen.navOpen {
		lines = append(lines, styleMuted().Render(truncateToWidth("Projects · Data: "+plain(m.source), m.width)))
	}

	lines = append(lines, lipgloss.NewStyle().Bold(true).Render(plain(m.title)))

	if !m.screen.failed() {
		var search string
		switch {
		case m.searching:
			search = m.search.View()
		case m.search.Value() != "":
			search = "/ " + plain(m.search.Value())
		default:
			search = styleMuted().Render("/ Search projects")
		}
		tag := "All tags"
		if m.screen.tag != "" {
			tag = plain(m.screen.tag)
		}
		lines = append(lines, search+"   "+styleMuted().Render("Tag:")+" "+tag)
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func (m browserModel) navLabel() string {
	if m.screen.navLabel == "" {
		return "Open menu"
	}
	return m.screen.navLabel
}

func (m browserModel) footerView() string {
	year := ""
	if m.screen.year > 0 {
		year = strconv.Itoa(m.screen.year)
	}
	copyright := styleMuted().Render(strings.TrimSpace("© " + year + " " + plain(m.owner)))
	return copyright + "\n" + m.help.ShortHelpView(m.keys.gridHelp())
}

func (m browserModel) gridView() string {
	if m.screen.failed() {
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorError).
			Padding(0, 1)
		text := strings.SplitN(render.LoadErrorText(plain(m.source)), "\n", 2)
		body := lipgloss.NewStyle().Bold(true).Foreground(colorError).Render(text[0])
		if len(text) > 1 {
			body += "\n" + styleMuted().Render(text[1])
		}
		return box.Render(body)
	}

	cards := m.screen.cards
	if len(cards) == 0 {
		return styleMuted().Render("No projects match.")
	}

	cols := gridColumns(m.width)
	cw := cardWidth(m.width, cols)
	vis := m.visibleRows()
	gap := strings.Repeat(" ", cardGap)

	var rows []string
	for r := m.rowOffset; r < m.rowOffset+vis; r++ {
		start := r * cols
		if start >= len(cards) {
			break
		}
		end := min(start+cols, len(cards))
		row := make([]string, 0, 2*cols)
		for i := start; i < end; i++ {
			if i > start {
				row = append(row, gap)
			}
			row = append(row, renderCard(m.styles, cards[i], cw, i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}

func (m browserModel) visibleRows() int {
	avail := m.height - lineCount(m.headerView()) - lineCount(m.footerView())
	return max(1, avail/cardHeight)
}

func (m browserModel) modalWidth() int {
	w := min(m.width-4, 84)
	return max(w, 24)
}

func (m browserModel) maxDetailHeight() int {
	// Border, close row, blank, done row and help.
	return max(3, m.height-8)
}

func (m browserModel) modalView() string {
	mw := m.modalWidth()
	inner := mw - 4

	closeBtn := button("✕ Close", m.screen.closeFocused)
	doneBtn := button("Done", !m.screen.closeFocused)

	top := lipgloss.PlaceHorizontal(inner, lipgloss.Right, closeBtn)
	bottom := lipgloss.PlaceHorizontal(inner, lipgloss.Right, doneBtn)
	hints := m.help.ShortHelpView(m.keys.detailHelp())

	content := strings.Join([]string{top, m.detail.View(), "", bottom, truncateToWidth(hints, inner)}, "\n")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1).
		Width(mw - 2).
		Render(content)
}

// modalRect is where View places the modal, for mouse hit-testing.
func (m browserModel) modalRect() (x, y, w, h int) {
	s := m.modalView()
	w, h = lipgloss.Width(s), lipgloss.Height(s)
	return max(0, (m.width-w)/2), max(0, (m.height-h)/2), w, h
}

func button(label string, focused bool) string {
	st := lipgloss.NewStyle().Padding(0, 1).Background(colorControlBg).Foreground(colorSurfaceFg)
	if focused {
		st = st.Background(colorAccent).Foreground(colorAccentFg).Bold(true)
		label = "[" + label + "]"
	}
	return st.Render(label)
}

// detailBody renders the detail as Markdown. Every field is stripped of
// escape sequences first.
func detailBody(d render.Detail, width int) string {
	safe := render.Detail{
		ID:          d.ID,
		Title:       plain(d.Title),
		Subtitle:    plain(d.Subtitle),
		Tags:        plainAll(d.Tags),
		Description: xansi.Strip(d.Description),
		Tech:        plainAll(d.Tech),
		Repo:        plain(d.Repo),
		HasRepo:     d.HasRepo,
	}
	for _, f := range d.Files {
		safe.Files = append(safe.Files, render.FileLink{Href: plain(f.Href), Label: plain(f.Label)})
	}

	var md strings.Builder
	md.WriteString(render.Markdown(safe))
	if len(d.Gallery) > 0 {
		md.WriteString("### Gallery\n\n")
		for _, img := range d.Gallery {
			md.WriteString("- " + render.EscapeMarkdown(plain(img)) + "\n")
		}
	}
	return renderMarkdown(md.String(), width)
}

func plainAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, plain(s))
	}
	return out
}

func lineCount(s string) int {
	return strings.Count(s, "\n") + 1
}
