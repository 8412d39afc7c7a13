package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/calmate/storefront/pkg/errors"
)

const (
	defaultBaseURL           = "https://nominatim.openstreetmap.org"
	defaultCountryCode       = "cl"
	defaultLimit             = 5
	maxLimit                 = 5
	errorBodyReadLimit int64 = 1024
)

// Client wraps the Nominatim search API used for address autocomplete.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	countryCode string
	userAgent   string
	limit       int
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured Nominatim base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithCountryCode restricts results to the given ISO country code.
func WithCountryCode(code string) Option {
	return func(c *Client) {
		trimmed := strings.ToLower(strings.TrimSpace(code))
		if trimmed != "" {
			c.countryCode = trimmed
		}
	}
}

// WithLimit bounds the number of suggestions per query.
func WithLimit(limit int) Option {
	return func(c *Client) {
		if limit > 0 {
			c.limit = limit
		}
	}
}

// NewClient builds a Nominatim client. The user agent identifies the
// storefront per the service's usage policy.
func NewClient(userAgent string, opts ...Option) (*Client, error) {
	trimmedAgent := strings.TrimSpace(userAgent)
	if trimmedAgent == "" {
		return nil, fmt.Errorf("geocode user agent is required")
	}

	client := &Client{
		userAgent:   trimmedAgent,
		baseURL:     defaultBaseURL,
		countryCode: defaultCountryCode,
		limit:       defaultLimit,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.limit > maxLimit {
		client.limit = maxLimit
	}

	return client, nil
}

// Suggestion is one normalized geocoder hit.
type Suggestion struct {
	DisplayName string `json:"display_name"`
	Road        string `json:"road,omitempty"`
	HouseNumber string `json:"house_number,omitempty"`
	Suburb      string `json:"suburb,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Postcode    string `json:"postcode,omitempty"`
}

// Street composes the address line for the suggestion: road plus house
// number, falling back to the first display-name segment.
func (s Suggestion) Street() string {
	road := strings.TrimSpace(s.Road)
	if road == "" {
		parts := strings.SplitN(s.DisplayName, ",", 2)
		road = strings.TrimSpace(parts[0])
	}
	if number := strings.TrimSpace(s.HouseNumber); number != "" {
		return road + " " + number
	}
	return road
}

// Locality returns the comuna-like component, preferring suburb over city.
func (s Suggestion) Locality() string {
	if suburb := strings.TrimSpace(s.Suburb); suburb != "" {
		return suburb
	}
	return strings.TrimSpace(s.City)
}

// Search queries address suggestions for a free-form query.
func (c *Client) Search(ctx context.Context, query string) ([]Suggestion, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "geocode client not configured")
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query is required")
	}

	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("q", trimmed)
	params.Set("countrycodes", c.countryCode)
	params.Set("addressdetails", "1")
	params.Set("limit", strconv.Itoa(c.limit))

	endpoint := strings.TrimRight(c.baseURL, "/") + "/search?" + params.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build search request")
	}
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute search request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "search request failed")
	}

	var apiResp []struct {
		DisplayName string `json:"display_name"`
		Address     struct {
			Road        string `json:"road"`
			HouseNumber string `json:"house_number"`
			Suburb      string `json:"suburb"`
			City        string `json:"city"`
			Town        string `json:"town"`
			State       string `json:"state"`
			Postcode    string `json:"postcode"`
		} `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode search response")
	}

	suggestions := make([]Suggestion, 0, len(apiResp))
	for _, item := range apiResp {
		if len(suggestions) == c.limit {
			break
		}
		city := item.Address.City
		if city == "" {
			city = item.Address.Town
		}
		suggestions = append(suggestions, Suggestion{
			DisplayName: item.DisplayName,
			Road:        item.Address.Road,
			HouseNumber: item.Address.HouseNumber,
			Suburb:      item.Address.Suburb,
			City:        city,
			State:       item.Address.State,
			Postcode:    item.Address.Postcode,
		})
	}

	return suggestions, nil
}
