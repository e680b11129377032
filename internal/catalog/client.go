package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the public catalog API the admin table was built against.
const DefaultBaseURL = "https://api.escuelajs.co/api/v1"

// DefaultTimeout bounds a single round trip when no timeout is configured.
const DefaultTimeout = 15 * time.Second

// Client talks to the remote catalog API.
// It is safe for concurrent use.
type Client struct {
	http *resty.Client
}

// Option configures a Client.
type Option func(*resty.Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) {
		if d > 0 {
			c.SetTimeout(d)
		}
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *resty.Client) {
		if ua != "" {
			c.SetHeader("User-Agent", ua)
		}
	}
}

// WithHTTPClient swaps the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *resty.Client) {
		if hc != nil && hc.Transport != nil {
			c.SetTransport(hc.Transport)
		}
	}
}

// NewClient creates a client for the API rooted at baseURL
// (for example "https://api.escuelajs.co/api/v1").
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(DefaultTimeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	for _, opt := range opts {
		opt(rc)
	}

	return &Client{http: rc}
}

// BaseURL returns the API root this client targets.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// ListAll fetches the full product collection.
func (c *Client) ListAll(ctx context.Context) ([]Product, error) {
	resp, err := c.request(ctx).Get("/products")
	if err != nil {
		return nil, &APIError{Op: "list", Kind: ErrNetwork, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, statusError("list", resp)
	}

	var products []Product
	if err := json.Unmarshal(resp.Body(), &products); err != nil {
		return nil, &APIError{Op: "list", Kind: ErrParse, Status: resp.StatusCode(), Err: err}
	}
	if products == nil {
		return nil, &APIError{Op: "list", Kind: ErrParse, Status: resp.StatusCode(), Message: "expected a JSON array of products"}
	}

	return products, nil
}

// Update replaces the product with the given id and returns the server's
// canonical representation of the updated record.
func (c *Client) Update(ctx context.Context, id int, input ProductInput) (Product, error) {
	resp, err := c.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(input).
		Put("/products/" + strconv.Itoa(id))
	if err != nil {
		return Product{}, &APIError{Op: "update", Kind: ErrNetwork, Err: err}
	}
	if !resp.IsSuccess() {
		return Product{}, statusError("update", resp)
	}
	return decodeProduct("update", resp)
}

// Create submits a new product and returns the record with its assigned id.
// The caller must ensure input.Images is non-empty; the API rejects empty
// image lists.
func (c *Client) Create(ctx context.Context, input ProductInput) (Product, error) {
	resp, err := c.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(input).
		Post("/products")
	if err != nil {
		return Product{}, &APIError{Op: "create", Kind: ErrNetwork, Err: err}
	}
	if !resp.IsSuccess() {
		return Product{}, statusError("create", resp)
	}
	return decodeProduct("create", resp)
}

// request starts a request bound to ctx, forwarding the request id when the
// call originates from an HTTP handler.
func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		req.SetHeader(middleware.RequestIDHeader, reqID)
	}
	return req
}

func statusError(op string, resp *resty.Response) error {
	return &APIError{
		Op:      op,
		Kind:    classifyStatus(resp.StatusCode()),
		Status:  resp.StatusCode(),
		Message: extractMessage(resp.Body()),
	}
}

func decodeProduct(op string, resp *resty.Response) (Product, error) {
	var p Product
	if err := json.Unmarshal(resp.Body(), &p); err != nil {
		return Product{}, &APIError{Op: op, Kind: ErrParse, Status: resp.StatusCode(), Err: err}
	}
	if p.ID == 0 {
		return Product{}, &APIError{Op: op, Kind: ErrParse, Status: resp.StatusCode(), Message: "response has no product id"}
	}
	return p, nil
}
