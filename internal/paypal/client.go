// Package paypal is the payment gateway client. It hides the provider's
// REST surface, including the capture request-shape quirk, behind three
// operations: token acquisition, order creation and capture.
package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Ashira-hub/online-ordering-system/internal/config"
	"github.com/Ashira-hub/online-ordering-system/internal/domain"
)

const (
	sandboxBaseURL = "https://api-m.sandbox.paypal.com"
	liveBaseURL    = "https://api-m.paypal.com"

	issueAlreadyCaptured = "ORDER_ALREADY_CAPTURED"
)

// ErrAuthFailed means the client-credentials exchange was rejected or
// unreachable. Callers treat it as a hard failure of the whole operation;
// there is no token retry.
var ErrAuthFailed = errors.New("paypal: failed to get access token")

// APIError is a non-2xx provider response, carrying the original status
// and raw body so they can be forwarded to the caller unchanged.
type APIError struct {
	Status int
	Body   []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("paypal: provider returned %d: %s", e.Status, e.Body)
}

// AlreadyCaptured reports whether the error body names the
// ORDER_ALREADY_CAPTURED issue. Clients reinterpret that condition as
// success: the capture went through on an earlier, lost response.
func (e *APIError) AlreadyCaptured() bool {
	var pe providerError
	if err := json.Unmarshal(e.Body, &pe); err != nil {
		return false
	}
	for _, d := range pe.Details {
		if d.Issue == issueAlreadyCaptured {
			return true
		}
	}
	return false
}

// IsAlreadyCaptured is a convenience errors.As wrapper around
// APIError.AlreadyCaptured.
func IsAlreadyCaptured(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.AlreadyCaptured()
}

// OrderSpec is the input to CreateOrder: a single purchase unit plus the
// application context for the approval redirect.
type OrderSpec struct {
	Currency           string
	Value              string
	Description        string
	ReturnURL          string
	CancelURL          string
	BrandName          string
	Locale             string
	ShippingPreference string
}

// CreatedOrder is the provider-issued order id and the approval redirect
// target extracted from the response link relations.
type CreatedOrder struct {
	OrderID    string
	ApproveURL string
}

// CaptureOutcome is a successful capture: the parsed result plus the raw
// provider body, which the HTTP surface forwards verbatim.
type CaptureOutcome struct {
	Result domain.CaptureResult
	Raw    json.RawMessage
}

type Client struct {
	clientID string
	secret   string
	baseURL  string
	http     *http.Client
	logger   *zap.Logger

	// De-dupes concurrent token fetches across in-flight captures.
	tokenGroup singleflight.Group
}

func NewClient(cfg config.PayPalConfig, logger *zap.Logger) *Client {
	baseURL := sandboxBaseURL
	if cfg.Mode == "live" {
		baseURL = liveBaseURL
	}
	return &Client{
		clientID: cfg.ClientID,
		secret:   cfg.ClientSecret,
		baseURL:  baseURL,
		http:     &http.Client{Timeout: 30 * time.Second},
		logger:   logger,
	}
}

// AcquireAccessToken exchanges the configured client credentials for a
// bearer token. One attempt per call; rejection surfaces as ErrAuthFailed.
func (c *Client) AcquireAccessToken(ctx context.Context) (string, error) {
	v, err, _ := c.tokenGroup.Do("token", func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.baseURL+"/v1/oauth2/token",
			strings.NewReader("grant_type=client_credentials"))
		if err != nil {
			return "", fmt.Errorf("build token request: %w", err)
		}
		req.SetBasicAuth(c.clientID, c.secret)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		res, err := c.http.Do(req)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrAuthFailed, err)
		}
		defer res.Body.Close()

		body, err := io.ReadAll(res.Body)
		if err != nil {
			return "", fmt.Errorf("read token response: %w", err)
		}
		if res.StatusCode < 200 || res.StatusCode >= 300 {
			return "", fmt.Errorf("%w: %d %s", ErrAuthFailed, res.StatusCode, body)
		}

		var tok tokenResponse
		if err := json.Unmarshal(body, &tok); err != nil {
			return "", fmt.Errorf("decode token response: %w", err)
		}
		if tok.AccessToken == "" {
			return "", ErrAuthFailed
		}
		return tok.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// CreateOrder submits an intent=CAPTURE order with a single purchase unit
// and returns the id plus the approval URL. Provider rejections come back
// as *APIError with the original status and body.
func (c *Client) CreateOrder(ctx context.Context, spec OrderSpec) (*CreatedOrder, error) {
	token, err := c.AcquireAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(orderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []purchaseUnit{
			{
				Description: spec.Description,
				Amount:      amount{CurrencyCode: spec.Currency, Value: spec.Value},
			},
		},
		ApplicationContext: applicationContext{
			ReturnURL:          spec.ReturnURL,
			CancelURL:          spec.CancelURL,
			UserAction:         "PAY_NOW",
			BrandName:          spec.BrandName,
			Locale:             spec.Locale,
			ShippingPreference: spec.ShippingPreference,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v2/checkout/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read order response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &APIError{Status: res.StatusCode, Body: body}
	}

	var order orderResponse
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}

	created := &CreatedOrder{OrderID: order.ID}
	for _, l := range order.Links {
		if l.Rel == "approve" || l.Rel == "payer-action" {
			created.ApproveURL = l.Href
			break
		}
	}
	return created, nil
}

// CaptureOrder finalizes an approved order. The provider is not stable
// about which request shape it accepts, so up to three shapes are tried,
// stopping at the first response that is not 415 Unsupported Media Type.
// Any other failure status is returned immediately as *APIError.
func (c *Client) CaptureOrder(ctx context.Context, orderID string) (*CaptureOutcome, error) {
	token, err := c.AcquireAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	res, attempt, err := c.doCapture(ctx, token, orderID)
	if err != nil {
		return nil, fmt.Errorf("capture order: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read capture response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &APIError{Status: res.StatusCode, Body: body}
	}

	// Logged so the retry ladder can be removed once the provider
	// behavior stabilizes.
	c.logger.Info("capture accepted",
		zap.String("order_id", orderID),
		zap.Int("attempt_shape", attempt))

	var capResp captureResponse
	if err := json.Unmarshal(body, &capResp); err != nil {
		return nil, fmt.Errorf("decode capture response: %w", err)
	}

	result := domain.CaptureResult{
		OrderID:       capResp.ID,
		TransactionID: capResp.ID,
		Payer: domain.Payer{
			Email:     capResp.Payer.EmailAddress,
			GivenName: capResp.Payer.Name.GivenName,
			Surname:   capResp.Payer.Name.Surname,
		},
	}
	if len(capResp.PurchaseUnits) > 0 {
		unit := capResp.PurchaseUnits[0]
		result.Description = unit.Description
		if len(unit.Payments.Captures) > 0 {
			first := unit.Payments.Captures[0]
			result.TransactionID = first.ID
			result.Amount = first.Amount.Value
			result.Currency = first.Amount.CurrencyCode
		}
	}

	return &CaptureOutcome{Result: result, Raw: body}, nil
}

// doCapture runs the bounded shape ladder:
//  1. empty JSON body, full JSON headers
//  2. no body, minimal headers
//  3. no body, full JSON headers
//
// Only a 415 advances to the next shape; the third response is returned
// as-is. Returns the accepted response and the 1-based shape index.
func (c *Client) doCapture(ctx context.Context, token, orderID string) (*http.Response, int, error) {
	url := fmt.Sprintf("%s/v2/checkout/orders/%s/capture", c.baseURL, orderID)

	shapes := []struct {
		body        io.Reader
		jsonHeaders bool
	}{
		{body: strings.NewReader("{}"), jsonHeaders: true},
		{body: nil, jsonHeaders: false},
		{body: nil, jsonHeaders: true},
	}

	var res *http.Response
	for i, shape := range shapes {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, shape.body)
		if err != nil {
			return nil, 0, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Prefer", "return=representation")
		if shape.jsonHeaders {
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Accept", "application/json")
		}

		res, err = c.http.Do(req)
		if err != nil {
			return nil, 0, err
		}
		if res.StatusCode != http.StatusUnsupportedMediaType {
			return res, i + 1, nil
		}
		if i < len(shapes)-1 {
			res.Body.Close()
			c.logger.Warn("capture shape rejected with 415, trying next",
				zap.String("order_id", orderID),
				zap.Int("attempt_shape", i+1))
		}
	}
	// All three shapes exhausted; surface the final 415 as-is.
	return res, len(shapes), nil
}
