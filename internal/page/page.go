// Package page holds the state of the shared libraries page and how it is loaded.
package page

import (
	"context"
	"errors"
	"github.com/MuhamedUsman/sharedrepos/internal/client"
	"github.com/MuhamedUsman/sharedrepos/internal/domain"
	"github.com/MuhamedUsman/sharedrepos/internal/repolist"
	"golang.org/x/sync/errgroup"
	"log/slog"
)

type Failure int

const (
	NoFailure Failure = iota
	PermissionDenied
	ServerError
	NetworkError
)

const (
	MsgPermissionDenied = "Permission denied"
	MsgError            = "Error"
	MsgNetwork          = "Please check the network."
)

// Fetcher is the part of the admin API the page reads from.
type Fetcher interface {
	GetUser(ctx context.Context, email string) (domain.UserInfo, error)
	ListShareInRepos(ctx context.Context, email string) ([]domain.RepoShareItem, error)
}

// State is loading until the repo list resolves, then either
// carries an error message or the repos.
type State struct {
	Loading bool
	ErrMsg  string
	Failure Failure
	User    domain.UserInfo
	Repos   []domain.RepoShareItem
	// login URL to go to, set only on PermissionDenied
	Redirect string
}

func Initial() State {
	return State{Loading: true}
}

// WithUser touches only the user, so it can land before or after the repo list.
func (s State) WithUser(u domain.UserInfo) State {
	s.User = u
	return s
}

func (s State) Loaded(repos []domain.RepoShareItem) State {
	s.Loading = false
	s.ErrMsg = ""
	s.Failure = NoFailure
	s.Redirect = ""
	s.Repos = repos
	return s
}

// Failed records a failed repo list fetch, a permission failure also
// sets the login redirect that returns to currentURL.
func (s State) Failed(err error, currentURL, loginURL string) State {
	s.Loading = false
	s.Repos = nil
	s.Failure, s.ErrMsg = Classify(err)
	s.Redirect = ""
	if s.Failure == PermissionDenied {
		s.Redirect = LoginRedirect(loginURL, currentURL)
	}
	return s
}

// UserName is what the navigation shows, the email until the user info arrives.
func (s State) UserName(email string) string {
	if s.User.Name != "" {
		return s.User.Name
	}
	return email
}

// Classify maps a fetch error to its failure kind and the message shown to the admin.
func Classify(err error) (Failure, string) {
	switch {
	case err == nil:
		return NoFailure, ""
	case errors.Is(err, client.ErrNoResponse):
		return NetworkError, MsgNetwork
	case client.IsPermissionDenied(err):
		return PermissionDenied, MsgPermissionDenied
	default:
		return ServerError, MsgError
	}
}

func LoginRedirect(loginURL, currentURL string) string {
	return loginURL + "?next=" + repolist.EncodeURIComponent(currentURL)
}

// Tab is an entry of the user navigation, Path is relative to the user's page.
type Tab struct {
	Title string
	Path  string
}

var Tabs = []Tab{
	{"Profile", ""},
	{"Owned Libraries", "owned-libraries/"},
	{"Shared Libraries", "shared-libraries/"},
	{"Links", "shared-links/"},
	{"Groups", "groups/"},
}

// CurrentTab is the index of the shared libraries tab in Tabs
const CurrentTab = 2

func TabURL(siteRoot, email string, t Tab) string {
	return repolist.UserURL(siteRoot, email) + t.Path
}

// Path of the page for email relative to the site root.
func Path(siteRoot, email string) string {
	return TabURL(siteRoot, email, Tabs[CurrentTab])
}

// Load issues both reads at once. A failed user read only leaves the name empty,
// a failed repo list read decides the page's error.
func Load(ctx context.Context, f Fetcher, email, currentURL, loginURL string) State {
	var (
		g     errgroup.Group
		user  domain.UserInfo
		repos []domain.RepoShareItem
	)
	g.Go(func() error {
		u, err := f.GetUser(ctx, email)
		if err != nil {
			slog.Warn("Fetching user info", "email", email, "err", err)
			return nil
		}
		user = u
		return nil
	})
	g.Go(func() error {
		var err error
		repos, err = f.ListShareInRepos(ctx, email)
		return err
	})

	s := Initial()
	err := g.Wait()
	s = s.WithUser(user)
	if err != nil {
		slog.Error("Fetching shared repos", "email", email, "err", err)
		return s.Failed(err, currentURL, loginURL)
	}
	return s.Loaded(repos)
}
