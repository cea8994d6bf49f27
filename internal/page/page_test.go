package page

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/MuhamedUsman/sharedrepos/internal/client"
	"github.com/MuhamedUsman/sharedrepos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	user     domain.UserInfo
	userErr  error
	repos    []domain.RepoShareItem
	reposErr error
}

func (f fakeFetcher) GetUser(context.Context, string) (domain.UserInfo, error) {
	return f.user, f.userErr
}

func (f fakeFetcher) ListShareInRepos(context.Context, string) ([]domain.RepoShareItem, error) {
	return f.repos, f.reposErr
}

const (
	current = "https://cloud.example.com/sys/users/jane%40example.com/shared-libraries/"
	login   = "/accounts/login/"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		failure Failure
		msg     string
	}{
		{"nil", nil, NoFailure, ""},
		{"forbidden", &client.StatusError{Code: http.StatusForbidden}, PermissionDenied, MsgPermissionDenied},
		{"wrapped forbidden", fmt.Errorf("listing: %w", &client.StatusError{Code: http.StatusForbidden}), PermissionDenied, MsgPermissionDenied},
		{"server error", &client.StatusError{Code: http.StatusInternalServerError}, ServerError, MsgError},
		{"not found", &client.StatusError{Code: http.StatusNotFound}, ServerError, MsgError},
		{"no response", fmt.Errorf("%w: connection refused", client.ErrNoResponse), NetworkError, MsgNetwork},
		{"anything else", errors.New("parsing response JSON"), ServerError, MsgError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, msg := Classify(tt.err)
			assert.Equal(t, tt.failure, f)
			assert.Equal(t, tt.msg, msg)
		})
	}
}

func TestLoginRedirect(t *testing.T) {
	got := LoginRedirect(login, current)
	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, login, u.Path)
	assert.Equal(t, current, u.Query().Get("next"))
}

func TestPath(t *testing.T) {
	assert.Equal(t, "/sys/users/jane%40example.com/shared-libraries/", Path("/", "jane@example.com"))
}

func TestLoad(t *testing.T) {
	repos := []domain.RepoShareItem{{ID: "r1", Name: "Docs"}, {ID: "abc123"}}
	s := Load(t.Context(), fakeFetcher{
		user:  domain.UserInfo{Name: "Jane"},
		repos: repos,
	}, "jane@example.com", current, login)

	assert.False(t, s.Loading)
	assert.Empty(t, s.ErrMsg)
	assert.Equal(t, NoFailure, s.Failure)
	assert.Empty(t, s.Redirect)
	assert.Equal(t, repos, s.Repos)
	assert.Equal(t, "Jane", s.UserName("jane@example.com"))
}

func TestLoadUserFailureIsIgnored(t *testing.T) {
	s := Load(t.Context(), fakeFetcher{
		userErr: &client.StatusError{Code: http.StatusInternalServerError},
		repos:   []domain.RepoShareItem{},
	}, "jane@example.com", current, login)

	assert.False(t, s.Loading)
	assert.Empty(t, s.ErrMsg)
	assert.Empty(t, s.Repos)
	assert.Equal(t, "jane@example.com", s.UserName("jane@example.com"))
}

func TestLoadPermissionDenied(t *testing.T) {
	s := Load(t.Context(), fakeFetcher{
		user:     domain.UserInfo{Name: "Jane"},
		reposErr: fmt.Errorf("listing: %w", &client.StatusError{Code: http.StatusForbidden}),
	}, "jane@example.com", current, login)

	assert.False(t, s.Loading)
	assert.Equal(t, PermissionDenied, s.Failure)
	assert.Equal(t, MsgPermissionDenied, s.ErrMsg)
	require.NotEmpty(t, s.Redirect)
	u, err := url.Parse(s.Redirect)
	require.NoError(t, err)
	assert.Equal(t, current, u.Query().Get("next"))
	// user info is independent of the failure
	assert.Equal(t, "Jane", s.User.Name)
}

func TestLoadNetworkError(t *testing.T) {
	s := Load(t.Context(), fakeFetcher{
		reposErr: fmt.Errorf("%w: dial tcp: connection refused", client.ErrNoResponse),
	}, "jane@example.com", current, login)

	assert.Equal(t, NetworkError, s.Failure)
	assert.Equal(t, MsgNetwork, s.ErrMsg)
	assert.NotEqual(t, MsgError, s.ErrMsg)
	assert.Empty(t, s.Redirect)
}

func TestStateTransitions(t *testing.T) {
	s := Initial()
	assert.True(t, s.Loading)

	// user info may land after the list, it must not reset the list state
	s = s.Loaded([]domain.RepoShareItem{{ID: "r1", Name: "Docs"}})
	s = s.WithUser(domain.UserInfo{Name: "Jane"})
	assert.False(t, s.Loading)
	assert.Len(t, s.Repos, 1)
	assert.Equal(t, "Jane", s.User.Name)

	s = s.Failed(&client.StatusError{Code: http.StatusBadGateway}, current, login)
	assert.Equal(t, MsgError, s.ErrMsg)
	assert.Nil(t, s.Repos)

	// a reload that succeeds clears the error
	s = s.Loaded(nil)
	assert.Empty(t, s.ErrMsg)
	assert.Equal(t, NoFailure, s.Failure)
}

func TestTabURL(t *testing.T) {
	assert.Equal(t, "Shared Libraries", Tabs[CurrentTab].Title)
	assert.Equal(t, "/sys/users/jane%40example.com/", TabURL("/", "jane@example.com", Tabs[0]))
	assert.Equal(t, "/seafile/sys/users/jane%40example.com/groups/", TabURL("/seafile/", "jane@example.com", Tabs[4]))
}
