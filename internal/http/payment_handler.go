package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Ashira-hub/online-ordering-system/internal/config"
	"github.com/Ashira-hub/online-ordering-system/internal/domain"
	"github.com/Ashira-hub/online-ordering-system/internal/paypal"
	"github.com/Ashira-hub/online-ordering-system/internal/service"
)

// OrderLifecycle is the slice of the order service the payment
// endpoints need.
type OrderLifecycle interface {
	PlaceOrder(ctx context.Context, req service.PlaceOrderRequest) (*paypal.CreatedOrder, error)
	ConfirmCapture(ctx context.Context, orderID string) (*paypal.CaptureOutcome, error)
}

type PaymentHandler struct {
	orders OrderLifecycle
	cfg    config.PayPalConfig
	logger *zap.Logger
}

func NewPaymentHandler(orders OrderLifecycle, cfg config.PayPalConfig, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		orders: orders,
		cfg:    cfg,
		logger: logger,
	}
}

type CreateOrderRequestDTO struct {
	Currency           string            `json:"currency"`
	Value              string            `json:"value"`
	Description        string            `json:"description"`
	ReturnURL          string            `json:"returnUrl"`
	CancelURL          string            `json:"cancelUrl"`
	Items              []domain.LineItem `json:"items"`
	BrandName          string            `json:"brandName"`
	Locale             string            `json:"locale"`
	ShippingPreference string            `json:"shippingPreference"`
}

type CreateOrderResponseDTO struct {
	ID         string `json:"id"`
	ApproveURL string `json:"approveUrl"`
}

type CaptureOrderRequestDTO struct {
	OrderID string `json:"orderId"`
}

func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Value == "" {
		respondError(w, http.StatusBadRequest, "value is required")
		return
	}
	if req.Currency == "" {
		req.Currency = "PHP"
	}
	if req.BrandName == "" {
		req.BrandName = h.cfg.BrandName
	}
	if req.Locale == "" {
		req.Locale = h.cfg.Locale
	}
	if req.ShippingPreference == "" {
		req.ShippingPreference = h.cfg.ShippingPreference
	}

	created, err := h.orders.PlaceOrder(r.Context(), service.PlaceOrderRequest{
		Currency:           req.Currency,
		Value:              req.Value,
		Description:        req.Description,
		ReturnURL:          req.ReturnURL,
		CancelURL:          req.CancelURL,
		BrandName:          req.BrandName,
		Locale:             req.Locale,
		ShippingPreference: req.ShippingPreference,
		Items:              req.Items,
	})
	if err != nil {
		h.logger.Error("create order failed", zap.Error(err))
		handlePaymentError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, CreateOrderResponseDTO{
		ID:         created.OrderID,
		ApproveURL: created.ApproveURL,
	})
}

func (h *PaymentHandler) CaptureOrder(w http.ResponseWriter, r *http.Request) {
	var req CaptureOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.OrderID == "" {
		respondError(w, http.StatusBadRequest, "orderId is required")
		return
	}

	outcome, err := h.orders.ConfirmCapture(r.Context(), req.OrderID)
	if err != nil {
		h.logger.Error("capture order failed",
			zap.String("order_id", req.OrderID), zap.Error(err))
		handlePaymentError(w, err)
		return
	}

	// The capture response is the provider's document, forwarded verbatim.
	respondRaw(w, http.StatusOK, outcome.Raw)
}

// handlePaymentError maps lifecycle errors to HTTP. Provider rejections
// keep the provider's status code; missing credentials are a server-side
// configuration error.
func handlePaymentError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrGatewayNotConfigured) {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var apiErr *paypal.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status < 400 {
			status = http.StatusBadGateway
		}
		respondJSON(w, status, ErrorResponse{
			Error:  string(apiErr.Body),
			Status: apiErr.Status,
		})
		return
	}

	respondError(w, http.StatusBadGateway, err.Error())
}
