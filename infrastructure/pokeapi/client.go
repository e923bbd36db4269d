// Package pokeapi provides the HTTP client for the upstream Pokemon data
// provider. It normalizes the provider's nested payload into the flat
// domain record and maps transport failures onto the domain error taxonomy.
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/pokemcp/pokemcp/domain/pokemon"
)

// DefaultBaseURL is the public PokeAPI v2 root.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// DefaultTimeout bounds a single upstream call. There are no retries.
const DefaultTimeout = 10 * time.Second

// Client fetches Pokemon records from the upstream provider. One outbound
// call per Fetch invocation, no caching, no retries.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// Option is a functional option for Client.
type Option func(*Client)

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Client for the given provider base URL.
func NewClient(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// payload mirrors the subset of the provider response the record needs.
type payload struct {
	Name      string  `json:"name"`
	ID        int     `json:"id"`
	Height    float64 `json:"height"`
	Weight    float64 `json:"weight"`
	Abilities []struct {
		Ability struct {
			Name string `json:"name"`
		} `json:"ability"`
	} `json:"abilities"`
	Types []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int `json:"base_stat"`
		Stat     struct {
			Name string `json:"name"`
		} `json:"stat"`
	} `json:"stats"`
	Sprites struct {
		FrontDefault *string `json:"front_default"`
	} `json:"sprites"`
}

// Fetch retrieves and normalizes the record for a single Pokemon name.
// The name is trimmed and lowercased before building the request path; a
// blank name fails before any network call.
func (c *Client) Fetch(ctx context.Context, name string) (pokemon.Pokemon, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return pokemon.Pokemon{}, pokemon.ErrInvalidInput
	}

	url := c.baseURL + "/pokemon/" + strings.ToLower(trimmed)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return pokemon.Pokemon{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pokemon.Pokemon{}, c.mapTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return pokemon.Pokemon{}, pokemon.NewUpstreamError(resp.StatusCode, "read response body", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return pokemon.Pokemon{}, pokemon.NewNotFoundError(trimmed)
	case resp.StatusCode != http.StatusOK:
		return pokemon.Pokemon{}, pokemon.NewUpstreamError(resp.StatusCode, truncate(body, 200), nil)
	}

	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return pokemon.Pokemon{}, pokemon.NewUpstreamError(0, "decode response", err)
	}
	if p.Name == "" || p.ID <= 0 || len(p.Types) == 0 || len(p.Stats) == 0 {
		return pokemon.Pokemon{}, pokemon.NewUpstreamError(0, "unexpected upstream payload shape", nil)
	}

	record := normalize(p)
	c.logger.Debug("fetched pokemon", "name", record.Name(), "id", record.ID())
	return record, nil
}

// mapTransportError classifies a client error as timeout or unreachability.
func (c *Client) mapTransportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", pokemon.ErrTimeout, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", pokemon.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", pokemon.ErrUnavailable, err)
}

// normalize maps the provider payload onto the domain record.
func normalize(p payload) pokemon.Pokemon {
	abilities := make([]string, len(p.Abilities))
	for i, a := range p.Abilities {
		abilities[i] = titleCase(strings.ReplaceAll(a.Ability.Name, "-", " "))
	}

	types := make([]string, len(p.Types))
	for i, t := range p.Types {
		types[i] = capitalize(t.Type.Name)
	}

	stats := make(pokemon.Stats, len(p.Stats))
	for i, s := range p.Stats {
		name := titleCase(strings.ReplaceAll(s.Stat.Name, "-", " "))
		stats[i] = pokemon.NewStat(name, s.BaseStat)
	}

	sprite := ""
	if p.Sprites.FrontDefault != nil {
		sprite = *p.Sprites.FrontDefault
	}

	return pokemon.New(
		capitalize(p.Name),
		p.ID,
		p.Height/10,
		p.Weight/10,
		abilities,
		types,
		stats,
		sprite,
	)
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// titleCase capitalizes every space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// truncate shortens a body for inclusion in error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
