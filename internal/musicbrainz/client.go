package musicbrainz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"parentwork/internal/services"
)

// ErrService marks every failure talking to the MusicBrainz web service:
// transport errors, non-200 responses, invalid ids, and undecodable payloads.
var ErrService = errors.New("musicbrainz service error")

// WebURL is the public site used for edit links in diagnostics.
const WebURL = "https://musicbrainz.org"

const (
	includeWorkRels   = "work-rels"
	includeArtistRels = "artist-rels"
)

// Artist is the artist side of an artist relation.
type Artist struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	SortName       string `json:"sort-name"`
	Disambiguation string `json:"disambiguation,omitempty"`
}

// Relation is a typed edge from a work to another entity. Work relations
// populate Work; artist relations populate Artist.
type Relation struct {
	Type       string  `json:"type"`
	TypeID     string  `json:"type-id,omitempty"`
	Direction  string  `json:"direction"`
	TargetType string  `json:"target-type"`
	Work       *Work   `json:"work,omitempty"`
	Artist     *Artist `json:"artist,omitempty"`
}

// Work models the subset of the MusicBrainz work resource used here.
type Work struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Disambiguation string     `json:"disambiguation,omitempty"`
	Type           string     `json:"type,omitempty"`
	Relations      []Relation `json:"relations,omitempty"`
}

// WorkURL returns the public MusicBrainz page for a work.
func WorkURL(id string) string {
	return WebURL + "/work/" + id
}

// RecordingURL returns the public MusicBrainz page for a recording.
func RecordingURL(id string) string {
	return WebURL + "/recording/" + id
}

// Lookup defines the work lookups used by parent work resolution.
type Lookup interface {
	WorkWithWorkRelations(ctx context.Context, id string) (*Work, error)
	WorkWithArtistRelations(ctx context.Context, id string) (*Work, error)
}

// Client provides read access to the MusicBrainz web service.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
}

var _ Lookup = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRateLimit caps outgoing requests per second. A non-positive limit
// disables throttling.
func WithRateLimit(limit rate.Limit) Option {
	return func(c *Client) {
		if limit <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(limit, 1)
	}
}

// WithTimeout sets the per-request timeout. A client supplied through
// WithHTTPClient is copied, never modified.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// New creates a MusicBrainz client. MusicBrainz rejects anonymous clients, so
// a user agent is required.
func New(baseURL, userAgent string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("musicbrainz base url required")
	}
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return nil, errors.New("musicbrainz user agent required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(1), 1),
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.timeout > 0 && client.httpClient.Timeout != client.timeout {
		httpClient := *client.httpClient
		httpClient.Timeout = client.timeout
		client.httpClient = &httpClient
	}
	return client, nil
}

// WorkWithWorkRelations fetches a work including its work-to-work relations.
func (c *Client) WorkWithWorkRelations(ctx context.Context, id string) (*Work, error) {
	return c.getWork(ctx, id, includeWorkRels)
}

// WorkWithArtistRelations fetches a work including its artist relations.
func (c *Client) WorkWithArtistRelations(ctx context.Context, id string) (*Work, error) {
	return c.getWork(ctx, id, includeArtistRels)
}

func (c *Client) getWork(ctx context.Context, id, include string) (*Work, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: %w", ErrService,
			services.Wrap(services.ErrValidation, "musicbrainz", "work lookup", "work id must not be empty", nil))
	}
	endpoint, err := url.Parse(c.baseURL + "/work/" + url.PathEscape(id))
	if err != nil {
		return nil, fmt.Errorf("%w: parse musicbrainz url: %w", ErrService, err)
	}
	params := url.Values{}
	params.Set("inc", include)
	params.Set("fmt", "json")
	endpoint.RawQuery = params.Encode()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate limit wait: %w", ErrService, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrService, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		marker := services.ErrTransient
		if errors.Is(err, context.DeadlineExceeded) {
			marker = services.ErrTimeout
		}
		return nil, fmt.Errorf("%w: %w", ErrService,
			services.Wrap(marker, "musicbrainz", "work lookup", fmt.Sprintf("execute request (latency=%v)", latency), err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		marker := services.ErrTransient
		if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest {
			marker = services.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrService,
			services.Wrap(marker, "musicbrainz", "work lookup",
				fmt.Sprintf("work %s (inc=%s) returned %d (latency=%v)", id, include, resp.StatusCode, latency), nil))
	}

	var payload Work
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode work response: %w", ErrService, err)
	}
	if payload.ID == "" {
		payload.ID = id
	}
	return &payload, nil
}
