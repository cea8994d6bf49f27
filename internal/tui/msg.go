package tui

import (
	"github.com/MuhamedUsman/sharedrepos/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"time"
)

// relative "last update" texts are rebuilt this often
const refreshTimesEvery = time.Minute

// every fetch result carries the load it belongs to,
// results of a load superseded by a reload are dropped
type userInfoMsg struct {
	load int
	user domain.UserInfo
}

type sharedReposMsg struct {
	load  int
	repos []domain.RepoShareItem
}

type sharedReposFailedMsg struct {
	load int
	// err to log & classify
	err error
}

// redirectMsg asks the program to exit and hand the login URL to the caller
type redirectMsg string

// redirectCanceledMsg keeps the admin on the page with the error shown
type redirectCanceledMsg struct{}

// refreshTimesMsg rebuilds the rows so "x minutes ago" does not go stale
type refreshTimesMsg struct{}

func refreshTimes() tea.Cmd {
	return tea.Tick(refreshTimesEvery, func(time.Time) tea.Msg {
		return refreshTimesMsg{}
	})
}

func msgToCmd[t tea.Msg](msg t) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}
