// Package paypal queries the PayPal Orders API to confirm upgrade payments.
package paypal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// Statuses that confirm a captured payment.
const (
	StatusCompleted = "COMPLETED"
	StatusApproved  = "APPROVED"
)

// Options controls how the PayPal client is configured.
type Options struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	HTTPClient   *http.Client
}

// Client verifies order status against the PayPal REST API.
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	client       *http.Client
}

func NewClient(opts Options) (*Client, error) {
	if opts.ClientID == "" || opts.ClientSecret == "" {
		return nil, errors.New("paypal credentials are required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api-m.sandbox.paypal.com"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		clientID:     opts.ClientID,
		clientSecret: opts.ClientSecret,
		baseURL:      baseURL,
		client:       client,
	}, nil
}

// OrderStatus fetches the current status string for the order.
func (c *Client) OrderStatus(ctx context.Context, orderID string) (string, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/checkout/orders/"+url.PathEscape(orderID), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch order: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var order struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return "", fmt.Errorf("decode order: %w", err)
	}
	if order.Status == "" {
		return "", fmt.Errorf("order %s has no status (http %d)", orderID, resp.StatusCode)
	}
	return order.Status, nil
}

// IsPaid reports whether the status confirms payment.
func IsPaid(status string) bool {
	return status == StatusCompleted || status == StatusApproved
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("paypal auth: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("paypal auth failed: http %d", resp.StatusCode)
	}

	var auth struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return "", fmt.Errorf("decode auth response: %w", err)
	}
	if auth.AccessToken == "" {
		return "", errors.New("paypal auth returned empty token")
	}
	return auth.AccessToken, nil
}
