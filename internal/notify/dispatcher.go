// Package notify sends best-effort email through the notification API.
// Dispatch failures are logged and swallowed; they never propagate into
// the order lifecycle.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Ashira-hub/online-ordering-system/internal/config"
)

const defaultBaseURL = "https://api.notificationapi.com"

// ErrNotConfigured means the notification credentials are absent; sends
// are skipped and the login-notify endpoint answers 503.
var ErrNotConfigured = errors.New("notification service not configured")

type Dispatcher interface {
	SendPaymentReceipt(ctx context.Context, toEmail string, receipt Receipt) error
	SendLoginAlert(ctx context.Context, toEmail string) error
	Configured() bool
}

// sendRequest is the provider's send contract.
type sendRequest struct {
	Type  string       `json:"type"`
	To    sendTo       `json:"to"`
	Email emailContent `json:"email"`
}

type sendTo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type emailContent struct {
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// APIClient talks to the notification API's REST sender endpoint with
// basic auth over the configured client credentials.
type APIClient struct {
	clientID string
	secret   string
	baseURL  string
	http     *http.Client
	logger   *zap.Logger
}

func NewAPIClient(cfg config.NotificationConfig, logger *zap.Logger) *APIClient {
	return &APIClient{
		clientID: cfg.ClientID,
		secret:   cfg.ClientSecret,
		baseURL:  defaultBaseURL,
		http:     &http.Client{Timeout: 15 * time.Second},
		logger:   logger,
	}
}

func (c *APIClient) Configured() bool {
	return c.clientID != "" && c.secret != ""
}

func (c *APIClient) SendPaymentReceipt(ctx context.Context, toEmail string, receipt Receipt) error {
	subject := fmt.Sprintf("Payment received: %s %s", receipt.Currency, receipt.Amount)
	html, err := receipt.HTML()
	if err != nil {
		return fmt.Errorf("render receipt: %w", err)
	}
	return c.send(ctx, toEmail, subject, html)
}

func (c *APIClient) SendLoginAlert(ctx context.Context, toEmail string) error {
	const subject = "Welcome back!"
	const html = "You have successfully logged in to Online Ordering. " +
		"If this wasn't you, please secure your account."
	return c.send(ctx, toEmail, subject, html)
}

func (c *APIClient) send(ctx context.Context, toEmail, subject, html string) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	if toEmail == "" {
		return errors.New("recipient email is empty")
	}

	payload, err := json.Marshal(sendRequest{
		Type:  "send",
		To:    sendTo{ID: toEmail, Email: toEmail},
		Email: emailContent{Subject: subject, HTML: html},
	})
	if err != nil {
		return fmt.Errorf("marshal send request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/sender", c.baseURL, c.clientID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build send request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.secret)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("notification API returned %d: %s", res.StatusCode, body)
	}
	return nil
}
