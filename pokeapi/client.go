package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"pokedex/models"
)

const (
	DefaultBaseURL = "https://pokeapi.co/api/v2"

	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "pokedex-backend/1.0"
	maxRetries       = 2
	initialBackoff   = 250 * time.Millisecond
	maxBackoff       = 2 * time.Second
)

// NotFoundError is returned when the catalog has no resource at URL.
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("catalog resource not found: %s", e.URL)
}

func (e *NotFoundError) Is(target error) bool {
	return target == models.ErrNotFound
}

// Client talks to the read-only PokeAPI catalog.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	userAgent   string
	timeout     time.Duration
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds every single catalog call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRateLimit caps outgoing requests per second. Zero or negative disables limiting.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.rateLimiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.rateLimiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		httpClient:  &http.Client{},
		rateLimiter: rate.NewLimiter(rate.Limit(20), 1),
		userAgent:   defaultUserAgent,
		timeout:     defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListPokemon returns one page of the catalog index.
func (c *Client) ListPokemon(ctx context.Context, limit, offset int) ([]NamedResource, error) {
	endpoint := fmt.Sprintf("/pokemon?limit=%d&offset=%d", limit, offset)

	var page Page
	if err := c.get(ctx, endpoint, &page); err != nil {
		return nil, fmt.Errorf("failed to list pokemon: %w", err)
	}
	return page.Results, nil
}

// GetPokemon fetches full detail by numeric id or lower-case name.
func (c *Client) GetPokemon(ctx context.Context, idOrName string) (*Pokemon, error) {
	var p Pokemon
	if err := c.get(ctx, "/pokemon/"+normalize(idOrName), &p); err != nil {
		return nil, fmt.Errorf("failed to get pokemon %s: %w", idOrName, err)
	}
	return &p, nil
}

func (c *Client) GetSpecies(ctx context.Context, idOrName string) (*Species, error) {
	var s Species
	if err := c.get(ctx, "/pokemon-species/"+normalize(idOrName), &s); err != nil {
		return nil, fmt.Errorf("failed to get species %s: %w", idOrName, err)
	}
	return &s, nil
}

func (c *Client) GetEvolutionChain(ctx context.Context, id int) (*EvolutionChain, error) {
	var chain EvolutionChain
	if err := c.get(ctx, "/evolution-chain/"+strconv.Itoa(id), &chain); err != nil {
		return nil, fmt.Errorf("failed to get evolution chain %d: %w", id, err)
	}
	return &chain, nil
}

// ListByType returns every pokemon that has typeName in any slot.
func (c *Client) ListByType(ctx context.Context, typeName string) ([]NamedResource, error) {
	var t Type
	if err := c.get(ctx, "/type/"+normalize(typeName), &t); err != nil {
		return nil, fmt.Errorf("failed to list pokemon of type %s: %w", typeName, err)
	}

	out := make([]NamedResource, 0, len(t.Pokemon))
	for _, slot := range t.Pokemon {
		out = append(out, slot.Pokemon)
	}
	return out, nil
}

func normalize(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// get performs a GET with rate limiting and a per-call timeout. Only 429 and
// 5xx responses are retried; a timed out call fails immediately. Everything
// except 404 is reported as ErrUpstreamUnavailable.
func (c *Client) get(ctx context.Context, endpoint string, result any) error {
	url := c.baseURL + endpoint
	backoff := initialBackoff
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", models.ErrUpstreamUnavailable, ctx.Err())
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, maxBackoff)
		}

		retry, err := c.do(ctx, url, result)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *Client) do(ctx context.Context, url string, result any) (bool, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return false, fmt.Errorf("%w: rate limiter: %v", models.ErrUpstreamUnavailable, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", models.ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return true, fmt.Errorf("%w: failed to read response body: %v", models.ErrUpstreamUnavailable, err)
		}
		if err := json.Unmarshal(body, result); err != nil {
			return false, fmt.Errorf("%w: failed to parse response: %v", models.ErrUpstreamUnavailable, err)
		}
		return false, nil

	case resp.StatusCode == http.StatusNotFound:
		return false, &NotFoundError{URL: url}

	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return true, fmt.Errorf("%w: status %d", models.ErrUpstreamUnavailable, resp.StatusCode)

	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return false, fmt.Errorf("%w: status %d: %s", models.ErrUpstreamUnavailable, resp.StatusCode, string(body))
	}
}
