package tui

import (
	"context"
	"github.com/MuhamedUsman/sharedrepos/internal/config"
	"github.com/MuhamedUsman/sharedrepos/internal/page"
	"github.com/MuhamedUsman/sharedrepos/internal/repolist"
	"github.com/MuhamedUsman/sharedrepos/internal/tui/overlay"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"log/slog"
	"strings"
	"time"
)

type MainModel struct {
	fetcher page.Fetcher
	email   string
	opts    repolist.Options
	// platform URL, relative site links are resolved against it
	base                 string
	loginURL, currentURL string
	state                page.State
	// bumped on every reload, results of older loads are dropped
	load         int
	nav          navModel
	content      contentModel
	redirect     redirectModel
	termW, termH int
	showHelp     bool
	redirectTo   string
	now          func() time.Time
}

func InitialMainModel(f page.Fetcher, email string, cfg config.Config) MainModel {
	base := cfg.Server.URL
	return MainModel{
		fetcher:    f,
		email:      email,
		opts:       repolist.OptionsFrom(cfg.Site),
		base:       base,
		loginURL:   absoluteURL(base, cfg.Site.LoginURL),
		currentURL: absoluteURL(base, page.Path(cfg.Site.SiteRoot, email)),
		state:      page.Initial(),
		nav:        newNavModel(email, cfg.Site.SiteRoot, base),
		content:    newContentModel(),
		redirect:   initialRedirectModel(),
		now:        time.Now,
	}
}

// Redirect returns the login URL the program exited for, "" when the admin just quit.
func (m MainModel) Redirect() string {
	return m.redirectTo
}

func (m MainModel) Init() tea.Cmd {
	return tea.Batch(m.content.spinner.Tick, m.fetchUserInfo(m.load), m.fetchSharedRepos(m.load), refreshTimes())
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.termW, m.termH = msg.Width, msg.Height
		m.updateDimensions()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.redirect.active {
			m.redirect, cmd = m.redirect.Update(msg)
			return m, cmd
		}
		if m.content.filterState != filtering {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "r":
				return m, m.reload()
			case "?":
				m.showHelp = !m.showHelp
				m.updateDimensions()
				return m, nil
			}
		}
		m.content, cmd = m.content.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		// stop ticking once the list resolved
		if !m.state.Loading {
			return m, nil
		}
		m.content, cmd = m.content.Update(msg)
		return m, cmd

	case timer.TickMsg, timer.TimeoutMsg:
		m.redirect, cmd = m.redirect.Update(msg)
		return m, cmd

	case userInfoMsg:
		if msg.load != m.load {
			return m, nil
		}
		m.state = m.state.WithUser(msg.user)
		m.nav.userName = m.state.User.Name

	case sharedReposMsg:
		if msg.load != m.load {
			return m, nil
		}
		m.state = m.state.Loaded(msg.repos)
		m.content.setRows(repolist.NewRows(msg.repos, m.opts, m.now()))

	case sharedReposFailedMsg:
		if msg.load != m.load {
			return m, nil
		}
		slog.Error("Fetching shared repos", "email", m.email, "err", msg.err)
		m.state = m.state.Failed(msg.err, m.currentURL, m.loginURL)
		m.content.setRows(nil)
		if m.state.Failure == page.PermissionDenied {
			m.redirect, cmd = m.redirect.start(m.state.Redirect)
			return m, cmd
		}

	case refreshTimesMsg:
		if !m.state.Loading && m.state.ErrMsg == "" {
			m.content.refreshRows(repolist.NewRows(m.state.Repos, m.opts, m.now()))
		}
		return m, refreshTimes()

	case redirectMsg:
		m.redirectTo = string(msg)
		return m, tea.Quit

	case redirectCanceledMsg:
		slog.Info("Login redirect canceled, staying on page", "email", m.email)
	}

	return m, nil
}

func (m MainModel) View() string {
	w := m.workableW()
	var status string
	if m.content.filterState == filtering {
		status = statusBarStyle.Render(m.content.filter.View())
	} else {
		s := m.content.status(m.state.Loading, m.state.ErrMsg)
		status = statusBarStyle.Render(runewidth.Truncate(s, w, "…"))
	}
	v := lipgloss.JoinVertical(lipgloss.Left,
		m.nav.View(),
		status,
		m.content.View(m.state.Loading, m.state.ErrMsg),
		detailStyle.Render(m.detail(w)),
		customHelp(m.showHelp).Width(w).Render(),
	)
	if m.redirect.active {
		v = overlay.Center(v, m.redirect.View())
	}
	if m.termW == 0 || m.termH == 0 {
		return v
	}
	return mainContainerStyle.
		Width(m.termW - mainContainerStyle.GetHorizontalBorderSize()).
		Height(m.termH - mainContainerStyle.GetVerticalBorderSize()).
		Render(v)
}

// detail shows where the selected row links to, as terminal hyperlinks
func (m MainModel) detail(w int) string {
	if m.state.Loading || m.state.ErrMsg != "" {
		return ""
	}
	r, ok := m.content.selected()
	if !ok {
		return ""
	}
	name := runewidth.Truncate(r.Name.Text, max(1, w/2-10), "…")
	owner := runewidth.Truncate(r.Owner.Text, max(1, w/2-10), "…")
	parts := []string{
		"Library: " + hyperlink(name, absoluteURL(m.base, r.Name.URL)),
		"Owner: " + hyperlink(owner, absoluteURL(m.base, r.Owner.URL)),
	}
	return strings.Join(parts, " • ")
}

func (m *MainModel) updateDimensions() {
	w := m.workableW()
	m.nav.width = w
	m.redirect.width = w
	helpH := lipgloss.Height(customHelp(m.showHelp).String())
	statusH := statusBarStyle.GetHeight() + statusBarStyle.GetVerticalFrameSize()
	detailH := detailStyle.GetHeight()
	navH := lipgloss.Height(m.nav.View())
	h := m.termH - mainContainerStyle.GetVerticalFrameSize() - (navH + statusH + detailH + helpH)
	m.content.setSize(w, max(1, h))
}

func (m MainModel) workableW() int {
	return max(0, m.termW-mainContainerStyle.GetHorizontalFrameSize())
}

// reload starts over as on mount, previous results still in flight are dropped
func (m *MainModel) reload() tea.Cmd {
	m.load++
	m.state = page.Initial()
	m.nav.userName = ""
	m.content.setRows(nil)
	return tea.Batch(m.content.spinner.Tick, m.fetchUserInfo(m.load), m.fetchSharedRepos(m.load))
}

func (m MainModel) fetchUserInfo(load int) tea.Cmd {
	return func() tea.Msg {
		u, err := m.fetcher.GetUser(context.Background(), m.email)
		if err != nil {
			// the navigation keeps showing the email
			slog.Warn("Fetching user info", "email", m.email, "err", err)
			return nil
		}
		return userInfoMsg{load: load, user: u}
	}
}

func (m MainModel) fetchSharedRepos(load int) tea.Cmd {
	return func() tea.Msg {
		repos, err := m.fetcher.ListShareInRepos(context.Background(), m.email)
		if err != nil {
			return sharedReposFailedMsg{load: load, err: err}
		}
		return sharedReposMsg{load: load, repos: repos}
	}
}
