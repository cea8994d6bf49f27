package tui

import (
	"github.com/MuhamedUsman/sharedrepos/internal/page"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type navModel struct {
	email, userName string
	siteRoot, base  string
	width           int
}

func newNavModel(email, siteRoot, base string) navModel {
	return navModel{email: email, siteRoot: siteRoot, base: base}
}

func (m navModel) View() string {
	prefix := gradientText("System Admin › Users › ", midHighlightColor, highlightColor)
	name := m.userName
	if name == "" {
		name = m.email
	}
	w := m.width - lipgloss.Width(prefix) - navTitleStyle.GetHorizontalFrameSize()
	name = runewidth.Truncate(name, max(0, w), "…")
	title := navTitleStyle.Render(prefix + lipgloss.NewStyle().Foreground(highlightColor).Bold(true).Render(name))

	tabs := make([]string, len(page.Tabs))
	for i, t := range page.Tabs {
		if i == page.CurrentTab {
			tabs[i] = navActiveTabStyle.Render(t.Title)
			continue
		}
		link := absoluteURL(m.base, page.TabURL(m.siteRoot, m.email, t))
		tabs[i] = hyperlink(navTabStyle.Render(t.Title), link)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, interleave(tabs, " ")...)
	return navContainerStyle.Width(m.width).Render(lipgloss.JoinVertical(lipgloss.Left, title, row))
}

func interleave(s []string, sep string) []string {
	out := make([]string, 0, len(s)*2)
	for i, v := range s {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, v)
	}
	return out
}
