// Package github proxies a user's public repository listing, with a small
// Redis cache in front so profile pages don't burn API quota.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/devlink/devlink/internal/repo"
)

var ErrUserNotFound = errors.New("github user not found")

type Client struct {
	http     *http.Client
	cache    *repo.Redis
	token    string
	cacheTTL time.Duration
}

func NewClient(cache *repo.Redis, token string, cacheTTL time.Duration) *Client {
	return &Client{
		http:     &http.Client{Timeout: 5 * time.Second},
		cache:    cache,
		token:    token,
		cacheTTL: cacheTTL,
	}
}

// Repos returns the user's 5 most recent public repos as raw JSON, straight
// from the GitHub response body.
func (c *Client) Repos(ctx context.Context, username string) (json.RawMessage, error) {
	key := "gh:repos:" + username
	if c.cache != nil {
		if b, err := c.cache.C.Get(ctx, key).Bytes(); err == nil {
			return b, nil
		}
	}

	url := fmt.Sprintf("https://api.github.com/users/%s/repos?per_page=5&sort=created:asc", username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrUserNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		_ = c.cache.C.Set(ctx, key, body, c.cacheTTL).Err()
	}
	return body, nil
}
