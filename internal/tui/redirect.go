package tui

import (
	"fmt"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"time"
)

const redirectAfter = 5 * time.Second

// cursor indicates current active button
type redirectCursor int

const (
	stay redirectCursor = iota
	login
)

// redirectModel counts down before leaving for the login page,
// the admin may go right away or stay on the page.
type redirectModel struct {
	url    string
	timer  timer.Model
	cursor redirectCursor
	// active signals this model's view must be rendered & it owns the keys
	active bool
	width  int
}

func initialRedirectModel() redirectModel {
	return redirectModel{
		timer:  timer.NewWithInterval(redirectAfter, 100*time.Millisecond),
		cursor: login,
	}
}

func (m redirectModel) start(url string) (redirectModel, tea.Cmd) {
	m.url = url
	m.active = true
	m.cursor = login
	m.timer = timer.NewWithInterval(redirectAfter, 100*time.Millisecond)
	return m, m.timer.Init()
}

func (m redirectModel) Update(msg tea.Msg) (redirectModel, tea.Cmd) {
	if !m.active {
		return m, nil
	}
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if m.cursor == login {
				return m.finish()
			}
			return m.cancel()

		case "tab", "shift+tab":
			m.cursor = (m.cursor + 1) % 2

		case "left", "h":
			m.cursor = stay

		case "right", "l":
			m.cursor = login

		case "esc":
			return m.cancel()
		}

	case timer.TickMsg:
		if msg.ID == m.timer.ID() {
			var cmd tea.Cmd
			m.timer, cmd = m.timer.Update(msg)
			return m, cmd
		}

	case timer.TimeoutMsg:
		if msg.ID == m.timer.ID() {
			return m.finish()
		}
	}
	return m, nil
}

func (m redirectModel) View() string {
	c := redirectContainerStyle.Width(m.dialogWidth())
	inner := c.GetWidth() - c.GetHorizontalPadding()
	h := redirectHeaderStyle.Render("PERMISSION DENIED")
	b := redirectBodyStyle.Render(wordwrap.String(
		fmt.Sprintf("You will be taken to the login page in %.1fs, sign in and come back here.", m.timer.Timeout.Seconds()),
		max(1, inner),
	))

	stayStyle, loginStyle := redirectBtnStyle, redirectBtnStyle
	active := redirectBtnStyle.
		Background(highlightColor).
		Foreground(subduedHighlightColor).
		Faint(true)
	if m.cursor == login {
		loginStyle = active
	} else {
		stayStyle = active
	}
	btns := lipgloss.JoinHorizontal(lipgloss.Center, stayStyle.Render("STAY"), loginStyle.Render("LOGIN"))
	btns = lipgloss.PlaceHorizontal(max(0, inner), lipgloss.Right, btns)
	return c.Render(lipgloss.JoinVertical(lipgloss.Left, h, b, btns))
}

func (m redirectModel) finish() (redirectModel, tea.Cmd) {
	m.active = false
	return m, msgToCmd(redirectMsg(m.url))
}

func (m redirectModel) cancel() (redirectModel, tea.Cmd) {
	m.active = false
	return m, msgToCmd(redirectCanceledMsg{})
}

func (m redirectModel) dialogWidth() int {
	w := 50
	if m.width > 0 && m.width < w {
		w = m.width
	}
	return w
}
