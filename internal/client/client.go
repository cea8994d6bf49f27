package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/MuhamedUsman/sharedrepos/internal/config"
	"github.com/MuhamedUsman/sharedrepos/internal/domain"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	adminUsers    = "/api/v2.1/admin/users/"
	beSharedRepos = "beshared-repos/"
	// cap on error bodies kept for logging
	maxErrBody = 512
)

// Client talks to the platform's system-admin API.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
}

func New(cfg config.ServerConfig) *Client {
	return &Client{
		http:    &http.Client{Timeout: time.Duration(cfg.Timeout()) * time.Second},
		baseURL: cfg.URL,
		token:   cfg.Token,
	}
}

// GetUser fetches the admin view of a single user.
func (c *Client) GetUser(ctx context.Context, email string) (domain.UserInfo, error) {
	var u domain.UserInfo
	if err := c.getJSON(ctx, userPath(email), &u); err != nil {
		return domain.UserInfo{}, fmt.Errorf("fetching user %q: %w", email, err)
	}
	return u, nil
}

// ListShareInRepos lists the libraries shared with the user, in the order the server returns them.
func (c *Client) ListShareInRepos(ctx context.Context, email string) ([]domain.RepoShareItem, error) {
	var r domain.SharedRepos
	if err := c.getJSON(ctx, userPath(email)+beSharedRepos, &r); err != nil {
		return nil, fmt.Errorf("listing repos shared with %q: %w", email, err)
	}
	if r.RepoList == nil {
		r.RepoList = []domain.RepoShareItem{}
	}
	return r.RepoList, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return fmt.Errorf("%w: request timed out", ErrNoResponse)
		}
		return fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
		return &StatusError{Code: resp.StatusCode, Body: string(b)}
	}

	if err = json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("parsing response JSON: %v", err)
	}
	return nil
}

func userPath(email string) string {
	return adminUsers + url.PathEscape(email) + "/"
}
