package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MuhamedUsman/sharedrepos/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return New(config.ServerConfig{URL: ts.URL, Token: "secret", TimeoutSeconds: 2})
}

func TestGetUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v2.1/admin/users/jane@example.com/", r.URL.Path)
		assert.Equal(t, "Token secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"email":"jane@example.com","name":"Jane","is_active":true,"quota_total":-2}`))
	})

	u, err := c.GetUser(t.Context(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Jane", u.Name)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.True(t, u.IsActive)
	assert.EqualValues(t, -2, u.QuotaTotal)
}

func TestListShareInRepos(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2.1/admin/users/jane@example.com/beshared-repos/", r.URL.Path)
		_, _ = w.Write([]byte(`{"repo_list":[
			{"id":"r1","name":"Docs","encrypted":false,"owner_email":"bob@example.com","owner_name":"Bob","size":2048,"last_modify":"2024-03-01T10:00:00+00:00"},
			{"id":"abc123","name":null,"encrypted":true,"owner_email":"7@seafile_group","owner_name":"Sales","size":0,"last_modify":"2024-03-02T10:00:00+00:00"}
		]}`))
	})

	repos, err := c.ListShareInRepos(t.Context(), "jane@example.com")
	require.NoError(t, err)
	require.Len(t, repos, 2)

	assert.Equal(t, "r1", repos[0].ID)
	assert.Equal(t, "Docs", repos[0].Name)
	assert.EqualValues(t, 2048, repos[0].Size)
	assert.True(t, repos[0].LastModify.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))

	// order is kept, null name decodes to a broken library
	assert.Equal(t, "abc123", repos[1].ID)
	assert.True(t, repos[1].IsBroken())
	assert.True(t, repos[1].Encrypted)
}

func TestListShareInReposBadLastModify(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"repo_list":[
			{"id":"r1","name":"Docs","owner_email":"bob@example.com","owner_name":"Bob","size":2048,"last_modify":"2024-03-01T10:00:00+00:00"},
			{"id":"abc123","name":null,"owner_email":"bob@example.com","owner_name":"Bob","size":0,"last_modify":""},
			{"id":"r3","name":"Photos","owner_email":"bob@example.com","owner_name":"Bob","size":0,"last_modify":"yesterday"},
			{"id":"r4","name":"Music","owner_email":"bob@example.com","owner_name":"Bob","size":0,"last_modify":null}
		]}`))
	})

	repos, err := c.ListShareInRepos(t.Context(), "jane@example.com")
	require.NoError(t, err)
	require.Len(t, repos, 4)
	assert.False(t, repos[0].LastModify.IsZero())
	for _, r := range repos[1:] {
		assert.True(t, r.LastModify.IsZero(), r.ID)
	}
	assert.True(t, repos[1].IsBroken())
	assert.Equal(t, "Photos", repos[2].Name)
}

func TestListShareInReposEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	repos, err := c.ListShareInRepos(t.Context(), "jane@example.com")
	require.NoError(t, err)
	assert.NotNil(t, repos)
	assert.Empty(t, repos)
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		denied   bool
		wantCode int
	}{
		{"forbidden", http.StatusForbidden, true, http.StatusForbidden},
		{"not found", http.StatusNotFound, false, http.StatusNotFound},
		{"server error", http.StatusInternalServerError, false, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error_msg":"nope"}`, tt.status)
			})
			_, err := c.ListShareInRepos(t.Context(), "jane@example.com")
			require.Error(t, err)

			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.wantCode, se.Code)
			assert.Contains(t, se.Body, "nope")
			assert.Equal(t, tt.denied, IsPermissionDenied(err))
			assert.NotErrorIs(t, err, ErrNoResponse)
		})
	}
}

func TestNoResponse(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close() // nothing listens there anymore

	c := New(config.ServerConfig{URL: url, TimeoutSeconds: 1})
	_, err := c.GetUser(context.Background(), "jane@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoResponse)

	var se *StatusError
	assert.False(t, errors.As(err, &se))
}

func TestMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"repo_list": [`))
	})
	_, err := c.ListShareInRepos(t.Context(), "jane@example.com")
	require.Error(t, err)
	assert.ErrorContains(t, err, "parsing response JSON")
	assert.NotErrorIs(t, err, ErrNoResponse)
}
