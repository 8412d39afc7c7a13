package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/calmate/storefront/pkg/errors"
	"github.com/calmate/storefront/pkg/types"
)

const (
	createOrderPath          = "/rest/v1/rpc/create_order"
	errorBodyReadLimit int64 = 4096
	defaultTimeout           = 30 * time.Second
)

// Client calls the hosted order-creation RPC. The backing service runs the
// whole order transaction server-side; from here it is an opaque call with
// at-most-once semantics and no automatic retry.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
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

// WithTimeout bounds how long a single CreateOrder call may take.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient builds an order service client for the given project URL and key.
func NewClient(baseURL, apiKey string, opts ...Option) (*Client, error) {
	trimmedURL := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmedURL == "" {
		return nil, fmt.Errorf("order service base url is required")
	}
	trimmedKey := strings.TrimSpace(apiKey)
	if trimmedKey == "" {
		return nil, fmt.Errorf("order service api key is required")
	}

	client := &Client{
		baseURL:    trimmedURL,
		apiKey:     trimmedKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// LineItem is one order line frozen at submission time.
type LineItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"price"`
}

// CreateOrderRequest is the payload handed to the order RPC.
type CreateOrderRequest struct {
	UserID          string
	Total           int
	ShippingAddress types.ShippingAddress
	Items           []LineItem
}

type rpcBody struct {
	UserID          string                `json:"user_id_param"`
	Total           int                   `json:"total_param"`
	ShippingAddress types.ShippingAddress `json:"shipping_address_param"`
	Items           []LineItem            `json:"items"`
}

// CreateOrder invokes the order RPC with the caller's access token and
// returns the new order identifier. Business rejections surface as
// CodeRejected with the provider's message; transport problems surface as
// CodeDependency.
func (c *Client) CreateOrder(ctx context.Context, accessToken string, req CreateOrderRequest) (string, error) {
	if c == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "order service client not configured")
	}
	if strings.TrimSpace(req.UserID) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if len(req.Items) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}

	payload, err := json.Marshal(rpcBody{
		UserID:          req.UserID,
		Total:           req.Total,
		ShippingAddress: req.ShippingAddress,
		Items:           req.Items,
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal order payload")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+createOrderPath, bytes.NewReader(payload))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build order request")
	}

	token := strings.TrimSpace(accessToken)
	if token == "" {
		token = c.apiKey
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("apikey", c.apiKey)
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute order request")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read order response")
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d", resp.StatusCode), "order service unavailable")
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return "", pkgerrors.New(pkgerrors.CodeRejected, rejectionMessage(body))
	}

	orderID, err := decodeOrderID(body)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode order id")
	}
	return orderID, nil
}

// rejectionMessage extracts the provider's message from an error body,
// falling back to a generic one.
func rejectionMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && strings.TrimSpace(parsed.Message) != "" {
		return parsed.Message
	}
	return "order was rejected by the service"
}

// decodeOrderID accepts the scalar forms the RPC may return: a bare number,
// a JSON string, or an object with an id field.
func decodeOrderID(body []byte) (string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "", fmt.Errorf("empty order response")
	}

	var asString string
	if err := json.Unmarshal(trimmed, &asString); err == nil && asString != "" {
		return asString, nil
	}

	var asNumber json.Number
	if err := json.Unmarshal(trimmed, &asNumber); err == nil && asNumber.String() != "" {
		if _, convErr := strconv.ParseInt(asNumber.String(), 10, 64); convErr == nil {
			return asNumber.String(), nil
		}
	}

	var asObject struct {
		OrderID string `json:"order_id"`
		ID      string `json:"id"`
	}
	if err := json.Unmarshal(trimmed, &asObject); err == nil {
		if asObject.OrderID != "" {
			return asObject.OrderID, nil
		}
		if asObject.ID != "" {
			return asObject.ID, nil
		}
	}

	return "", fmt.Errorf("unrecognized order response %q", string(trimmed))
}
