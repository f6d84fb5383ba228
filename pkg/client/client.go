// Package client is a small typed consumer of the RestoDeals API. It keeps
// credentials across runs, attaches the bearer token, and unwraps the
// response envelope so callers see data or a coded error, never both.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/restodeals/backend/internal/auth"
	"github.com/restodeals/backend/internal/cart"
	"github.com/restodeals/backend/internal/deals"
	"github.com/restodeals/backend/internal/orders"
	"github.com/restodeals/backend/pkg/types"
)

// APIError is the unwrapped error half of the response envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %s (%d): %s", e.Code, e.Status, e.Message)
}

type Client struct {
	baseURL *url.URL
	http    *http.Client
	creds   *CredentialStore
}

func New(baseURL string, creds *CredentialStore) (*Client, error) {
	if creds == nil {
		return nil, errors.New("client: credential store is required")
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	return &Client{
		baseURL: parsed,
		http:    &http.Client{Timeout: 15 * time.Second},
		creds:   creds,
	}, nil
}

// Login exchanges credentials for a session and stores the token.
func (c *Client) Login(ctx context.Context, email, password string) (*auth.SessionResponse, error) {
	var session auth.SessionResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", auth.LoginInput{Email: email, Password: password}, &session)
	if err != nil {
		return nil, err
	}
	if err := c.creds.Set(session.Token); err != nil {
		return nil, fmt.Errorf("store credentials: %w", err)
	}
	return &session, nil
}

// Register creates an account and stores the signed-in session's token.
func (c *Client) Register(ctx context.Context, input auth.RegisterInput) (*auth.SessionResponse, error) {
	var session auth.SessionResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", input, &session); err != nil {
		return nil, err
	}
	if err := c.creds.Set(session.Token); err != nil {
		return nil, fmt.Errorf("store credentials: %w", err)
	}
	return &session, nil
}

// Logout drops the stored credentials. Purely local: tokens are stateless.
func (c *Client) Logout() error {
	return c.creds.Clear()
}

func (c *Client) ListDeals(ctx context.Context, dealType string) (*deals.ListDealsResponse, error) {
	path := "/api/v1/deals"
	if dealType != "" {
		path += "?type=" + url.QueryEscape(dealType)
	}
	var resp deals.ListDealsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetCart(ctx context.Context) (*cart.CartResponse, error) {
	var resp cart.CartResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/cart", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AddToCart(ctx context.Context, dealID string) (*cart.CartResponse, error) {
	var resp cart.CartResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/cart/items", map[string]string{"dealId": dealID}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) PlaceOrder(ctx context.Context, paymentRef string) (*orders.OrderResponse, error) {
	var resp orders.OrderResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/orders", orders.PlaceOrderInput{PaymentRef: paymentRef}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// do runs one request and unwraps the envelope into out.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var probe struct {
		OK bool `json:"ok"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}

	if !probe.OK {
		var failure types.ErrorEnvelope
		if err := json.Unmarshal(raw, &failure); err != nil {
			return fmt.Errorf("decode error envelope: %w", err)
		}
		return &APIError{
			Status:  resp.StatusCode,
			Code:    failure.Error.Code,
			Message: failure.Error.Message,
		}
	}

	if out == nil {
		return nil
	}
	var success struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &success); err != nil {
		return fmt.Errorf("decode success envelope: %w", err)
	}
	return json.Unmarshal(success.Data, out)
}
