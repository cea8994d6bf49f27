package tui

import (
	"fmt"
	"github.com/MuhamedUsman/sharedrepos/internal/repolist"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/sahilm/fuzzy"
)

type filterState int

const (
	unfiltered filterState = iota
	filtering
	filterApplied
)

const (
	libraryGlyph   = "▣"
	encryptedGlyph = "▨"
	brokenGlyph    = "✗"
	// marks a name that links to the library page
	linkMark = " ↗"
)

// filter uses the sahilm/fuzzy to filter through the list.
func filter(term string, targets []string) []int {
	matches := fuzzy.Find(term, targets)
	result := make([]int, len(matches))
	for i, r := range matches {
		result[i] = r.Index
	}
	return result
}

// renderContent renders exactly one of: loading, error, empty tip or the table.
func renderContent(loading bool, errMsg string, rows int, spin, tbl string, w, h int) string {
	var c string
	switch {
	case loading:
		c = loadingStyle.Render(spin + " Loading...")
	case errMsg != "":
		c = errorStyle.Render(wordwrap.String(errMsg, max(1, w)))
	case rows == 0:
		c = emptyTipStyle.Render(repolist.NoLibraries)
	default:
		return tbl
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, c)
}

type contentModel struct {
	table       table.Model
	spinner     spinner.Model
	filter      textinput.Model
	filterState filterState
	rows        []repolist.Row
	// indices into rows when a filter is active
	filtered      []int
	width, height int
}

func newContentModel() contentModel {
	t := table.New(
		table.WithStyles(customTableStyles),
		table.WithColumns(tableColumns(0)),
		table.WithFocused(true),
	)
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(loadingStyle),
	)
	f := textinput.New()
	f.Prompt = "Filter: "
	f.PromptStyle = filterPromptStyle
	f.Placeholder = "library name"
	return contentModel{table: t, spinner: s, filter: f}
}

func (m contentModel) Update(msg tea.Msg) (contentModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.filterState == filtering {
			switch msg.String() {
			case "enter", "up", "down":
				m.filter.Blur()
				m.filterState = filterApplied
				m.table.Focus()
				return m, nil
			case "esc":
				m.resetFilter()
				return m, nil
			}
			prev := m.filter.Value()
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			if m.filter.Value() != prev {
				m.applyFilter()
			}
			return m, cmd
		}

		switch msg.String() {
		case "/":
			if len(m.rows) == 0 {
				return m, nil
			}
			m.filterState = filtering
			m.table.Blur()
			return m, m.filter.Focus()
		case "esc":
			if m.filterState != unfiltered {
				m.resetFilter()
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View is a pure function of the page state and the widgets,
// loading and errMsg come from page.State.
func (m contentModel) View(loading bool, errMsg string) string {
	return renderContent(loading, errMsg, len(m.rows), m.spinner.View(), m.table.View(), m.width, m.height)
}

func (m *contentModel) setRows(rows []repolist.Row) {
	m.rows = rows
	if m.filterState != unfiltered && m.filter.Value() != "" {
		m.applyFilter()
		return
	}
	m.populateTable()
}

// refreshRows swaps in rows built from the same items, filter & cursor stay put
func (m *contentModel) refreshRows(rows []repolist.Row) {
	if len(rows) != len(m.rows) {
		m.setRows(rows)
		return
	}
	m.rows = rows
	m.populateTable()
}

func (m *contentModel) setSize(w, h int) {
	m.width, m.height = w, h
	m.table.SetWidth(w)
	m.table.SetHeight(max(1, h))
	m.table.SetColumns(tableColumns(w))
}

func (m *contentModel) applyFilter() {
	names := make([]string, len(m.rows))
	for i, r := range m.rows {
		names[i] = r.Name.Text
	}
	m.filtered = filter(m.filter.Value(), names)
	m.table.SetCursor(0)
	m.populateTable()
}

func (m *contentModel) resetFilter() {
	m.filter.Reset()
	m.filter.Blur()
	m.filterState = unfiltered
	m.filtered = nil
	m.table.Focus()
	m.populateTable()
}

func (m contentModel) isFiltered() bool {
	return m.filterState != unfiltered && m.filter.Value() != ""
}

// visible returns the indices into rows shown by the table, in order
func (m contentModel) visible() []int {
	if m.isFiltered() {
		return m.filtered
	}
	idx := make([]int, len(m.rows))
	for i := range m.rows {
		idx[i] = i
	}
	return idx
}

func (m *contentModel) populateTable() {
	vis := m.visible()
	rows := make([]table.Row, len(vis))
	for i, idx := range vis {
		rows[i] = tableRow(m.rows[idx])
	}
	m.table.SetRows(rows)
	if len(rows) > 0 && m.table.Cursor() >= len(rows) {
		m.table.SetCursor(len(rows) - 1)
	}
}

// selected returns the row under the cursor
func (m contentModel) selected() (repolist.Row, bool) {
	vis := m.visible()
	c := m.table.Cursor()
	if c < 0 || c >= len(vis) {
		return repolist.Row{}, false
	}
	return m.rows[vis[c]], true
}

func (m contentModel) status(loading bool, errMsg string) string {
	switch {
	case loading:
		return "Fetching shared libraries, please wait..."
	case errMsg != "":
		return "Fetching shared libraries failed, press “r” to reload…"
	}
	status := fmt.Sprintf("%d Libraries", len(m.rows))
	if !m.isFiltered() {
		return status
	}
	matches := "Nothing matched"
	if len(m.filtered) > 0 {
		matches = fmt.Sprint(len(m.filtered), " Match/es")
	}
	status = fmt.Sprintf("%s • %s", matches, status)
	if m.filterState == filterApplied {
		status = fmt.Sprintf("“%s” %s", m.filter.Value(), status)
	}
	return status
}

func tableRow(r repolist.Row) table.Row {
	icon := libraryGlyph
	switch {
	case r.Broken:
		icon = brokenGlyph
	case r.Encrypted:
		icon = encryptedGlyph
	}
	name := r.Name.Text
	if r.Name.IsLink() {
		name += linkMark
	}
	return table.Row{icon, name, r.Owner.Text, r.Size, r.LastUpdate}
}

func tableColumns(w int) []table.Column {
	cols := make([]table.Column, len(repolist.Headers))
	// each cell carries a horizontal padding of 1 on both sides
	pad := customTableStyles.Cell.GetHorizontalPadding()
	for i, title := range repolist.Headers {
		cw := (w * repolist.ColumnWidths[i]) / 100
		cols[i] = table.Column{Title: title, Width: max(1, cw-pad)}
	}
	return cols
}
