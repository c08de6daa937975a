package standup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/tartampluch/go-teamroles/internal/config"
)

// Standup is the subset of a Geekbot standup the sync cares about.
type Standup struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Definition describes the standup we want to exist after a sync: who is
// asked, where the answers broadcast, and the question itself. Schedule
// fields are only sent on creation; Geekbot keeps manual edits otherwise.
type Definition struct {
	Name     string
	Day      string
	Channel  string
	UserIDs  []string
	Question string
}

// Client talks to the Geekbot REST API with a bearer token session.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient builds a Geekbot API client.
func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: config.HTTPTimeout},
		baseURL:    config.GeekbotAPIURL,
		token:      token,
	}
}

// Sync ensures the standup described by def exists: it is patched in place
// when a standup with the same name is found, created otherwise.
func (c *Client) Sync(ctx context.Context, def Definition) error {
	log := slog.With(
		config.LogKeyComponent, config.CompStandup,
		config.LogKeyStandup, def.Name,
	)

	existing, err := c.find(ctx, def.Name)
	if err != nil {
		return err
	}

	payload := map[string]any{
		"wait_time":            config.StandupWaitTime,
		"users":                def.UserIDs,
		"sync_channel_members": false,
		"personalized":         false,
		"questions":            []map[string]string{{"question": def.Question}},
	}

	if existing != nil {
		log.Info(config.MsgStandupExists)
		path := fmt.Sprintf("%s/%d", config.GeekbotStandupsPath, existing.ID)
		return c.do(ctx, http.MethodPatch, path, payload, nil)
	}

	// Schedule fields apply on creation only.
	payload["name"] = def.Name
	payload["channel"] = def.Channel
	payload["time"] = config.StandupTime
	payload["timezone"] = config.StandupTimezone
	payload["days"] = []string{def.Day}

	log.Info(config.MsgStandupCreate)
	if err := c.do(ctx, http.MethodPost, config.GeekbotStandupsPath, payload, nil); err != nil {
		return err
	}
	log.Info(config.MsgStandupWeekly)
	return nil
}

// find returns the standup with the given name, or nil when absent.
func (c *Client) find(ctx context.Context, name string) (*Standup, error) {
	var standups []Standup
	if err := c.do(ctx, http.MethodGet, config.GeekbotStandupsPath, nil, &standups); err != nil {
		return nil, err
	}
	for i := range standups {
		if standups[i].Name == name {
			return &standups[i], nil
		}
	}
	return nil, nil
}

// do performs one authenticated JSON round trip.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: %w", config.ErrGeekbotRequest, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrGeekbotRequest, err)
	}
	req.Header.Set(config.HeaderAuth, c.token)
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	if body != nil {
		req.Header.Set(config.HeaderContentType, config.MimeJSON)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrGeekbotRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: status %d", config.ErrGeekbotRequest, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: %w", config.ErrGeekbotRequest, err)
		}
	}
	return nil
}
