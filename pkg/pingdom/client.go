// Package pingdom fetches monitored endpoints and their outage summaries
// from a Pingdom-compatible monitoring API.
package pingdom

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/ukparliament/outage-importer/pkg/models"
)

const (
	defaultTimeout = 30 * time.Second

	// The API caps result sets, so the checks listing is paged.
	checksPageSize = 250

	// Client-side budget; Pingdom enforces per-token request limits.
	defaultRequestsPerSecond = 5
)

var (
	errMissingAPIURL     = errors.New("api url is required")
	errMissingToken      = errors.New("api token is required")
	errUnexpectedStatus  = errors.New("unexpected response status")
	errDecodingResponse  = errors.New("failed to decode response")
	errBuildingRequest   = errors.New("failed to build request")
	errPerformingRequest = errors.New("failed to perform request")
)

// Config holds the client settings.
type Config struct {
	APIURL            string
	Token             string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// Client talks to the monitoring API. It implements Source.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient validates the config and builds a client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIURL == "" {
		return nil, errMissingAPIURL
	}

	if cfg.Token == "" {
		return nil, errMissingToken
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	rps := cfg.RequestsPerSecond
	if rps == 0 {
		rps = defaultRequestsPerSecond
	}

	return &Client{
		baseURL: cfg.APIURL,
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}, nil
}

// Checks lists all monitored endpoints, following the paging cursor until
// a short page signals the end.
func (c *Client) Checks(ctx context.Context) ([]models.Endpoint, error) {
	var endpoints []models.Endpoint

	for offset := 0; ; offset += checksPageSize {
		query := url.Values{
			"limit":  {strconv.Itoa(checksPageSize)},
			"offset": {strconv.Itoa(offset)},
		}

		var page checksResponse
		if err := c.get(ctx, "/checks", query, &page); err != nil {
			return nil, err
		}

		for _, check := range page.Checks {
			endpoints = append(endpoints, models.Endpoint{
				ID:       check.ID,
				Name:     check.Name,
				Hostname: check.Hostname,
			})
		}

		if len(page.Checks) < checksPageSize {
			return endpoints, nil
		}
	}
}

// Outages fetches the status states for one endpoint within [from, to].
// States come back ordered by start time. Status values pass through
// unvalidated; the importer's event policy decides what a bad one costs.
func (c *Client) Outages(ctx context.Context, endpointID int, from, to time.Time) ([]models.Event, error) {
	query := url.Values{
		"from": {strconv.FormatInt(from.Unix(), 10)},
		"to":   {strconv.FormatInt(to.Unix(), 10)},
	}

	var resp outageSummaryResponse
	if err := c.get(ctx, "/summary.outage/"+strconv.Itoa(endpointID), query, &resp); err != nil {
		return nil, err
	}

	events := make([]models.Event, 0, len(resp.Summary.States))

	for _, state := range resp.Summary.States {
		events = append(events, models.Event{
			From:   time.Unix(state.TimeFrom, 0),
			To:     time.Unix(state.TimeTo, 0),
			Status: models.Status(state.Status),
		})
	}

	return events, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, v interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: %w", errBuildingRequest, err)
	}

	req.URL.RawQuery = query.Encode()
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", errPerformingRequest, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s %s", errUnexpectedStatus, resp.Status, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", errDecodingResponse, err)
	}

	return nil
}
