// Package service orchestrates the order lifecycle:
// create -> (external approval redirect) -> capture -> notify.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Ashira-hub/online-ordering-system/internal/domain"
	"github.com/Ashira-hub/online-ordering-system/internal/events"
	"github.com/Ashira-hub/online-ordering-system/internal/notify"
	"github.com/Ashira-hub/online-ordering-system/internal/ordermeta"
	"github.com/Ashira-hub/online-ordering-system/internal/paypal"
)

// ErrGatewayNotConfigured is returned when payment credentials are
// absent. The process stays up; only create/capture degrade.
var ErrGatewayNotConfigured = errors.New(
	"server missing PayPal credentials, set PAYPAL_CLIENT_ID and PAYPAL_CLIENT_SECRET")

// PaymentGateway is the slice of the paypal client the lifecycle needs.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, spec paypal.OrderSpec) (*paypal.CreatedOrder, error)
	CaptureOrder(ctx context.Context, orderID string) (*paypal.CaptureOutcome, error)
}

// PlaceOrderRequest carries the cart snapshot for one checkout attempt.
type PlaceOrderRequest struct {
	Currency           string
	Value              string
	Description        string
	ReturnURL          string
	CancelURL          string
	BrandName          string
	Locale             string
	ShippingPreference string
	Items              []domain.LineItem
}

type OrderService struct {
	gateway          PaymentGateway
	meta             ordermeta.Store
	dispatcher       notify.Dispatcher
	producer         events.Producer
	defaultRecipient string
	logger           *zap.Logger

	dispatchTimeout time.Duration
}

// NewOrderService wires the lifecycle. A nil gateway marks the service
// unconfigured: PlaceOrder and ConfirmCapture fail with
// ErrGatewayNotConfigured without touching the provider.
func NewOrderService(
	gateway PaymentGateway,
	meta ordermeta.Store,
	dispatcher notify.Dispatcher,
	producer events.Producer,
	defaultRecipient string,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		gateway:          gateway,
		meta:             meta,
		dispatcher:       dispatcher,
		producer:         producer,
		defaultRecipient: defaultRecipient,
		logger:           logger,
		dispatchTimeout:  30 * time.Second,
	}
}

// PlaceOrder creates a provider order and stores the pending metadata
// keyed by the provider-issued order id. The metadata expires on its own
// after ordermeta.OrderMetaTTL; abandoned checkouts need no cleanup here.
func (s *OrderService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*paypal.CreatedOrder, error) {
	if s.gateway == nil {
		return nil, ErrGatewayNotConfigured
	}

	created, err := s.gateway.CreateOrder(ctx, paypal.OrderSpec{
		Currency:           req.Currency,
		Value:              req.Value,
		Description:        req.Description,
		ReturnURL:          req.ReturnURL,
		CancelURL:          req.CancelURL,
		BrandName:          req.BrandName,
		Locale:             req.Locale,
		ShippingPreference: req.ShippingPreference,
	})
	if err != nil {
		return nil, err
	}

	if created.OrderID != "" {
		pending := &domain.PendingOrder{
			OrderID:     created.OrderID,
			Items:       req.Items,
			Description: req.Description,
			Currency:    req.Currency,
			Amount:      req.Value,
			CreatedAt:   time.Now(),
		}
		// The receipt is best-effort; a metadata write failure must not
		// fail the order.
		if err := s.meta.Put(ctx, pending); err != nil {
			s.logger.Warn("failed to store pending order metadata",
				zap.String("order_id", created.OrderID), zap.Error(err))
		}
	}

	s.publish(events.OrderEvent{
		Type:        events.TypeOrderCreated,
		OrderID:     created.OrderID,
		Amount:      req.Value,
		Currency:    req.Currency,
		Description: req.Description,
		OccurredAt:  time.Now(),
	})

	return created, nil
}

// ConfirmCapture captures the order, enriches the result with the stored
// metadata (absent metadata degrades to an empty item list) and fans out
// the receipt notification without awaiting it. The raw capture outcome
// is returned regardless of notification fate.
func (s *OrderService) ConfirmCapture(ctx context.Context, orderID string) (*paypal.CaptureOutcome, error) {
	if s.gateway == nil {
		return nil, ErrGatewayNotConfigured
	}

	outcome, err := s.gateway.CaptureOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var items []domain.LineItem
	pending, metaErr := s.meta.Get(ctx, orderID)
	switch {
	case metaErr == nil:
		items = pending.Items
	case errors.Is(metaErr, ordermeta.ErrNotFound):
		// Expired or never stored; the receipt goes out without lines.
		s.logger.Info("no pending order metadata at capture time",
			zap.String("order_id", orderID))
	default:
		s.logger.Warn("failed to load pending order metadata",
			zap.String("order_id", orderID), zap.Error(metaErr))
	}

	result := outcome.Result
	description := result.Description
	if description == "" {
		description = "Online Order"
	}
	receipt := notify.Receipt{
		TransactionID: result.TransactionID,
		Amount:        result.Amount,
		Currency:      result.Currency,
		Description:   description,
		PayerName:     result.Payer.FullName(),
		PayerEmail:    result.Payer.Email,
		When:          time.Now(),
		Items:         items,
	}
	s.dispatchReceipt(receipt)

	if err := s.meta.Delete(ctx, orderID); err != nil {
		s.logger.Warn("failed to delete pending order metadata",
			zap.String("order_id", orderID), zap.Error(err))
	}

	s.publish(events.OrderEvent{
		Type:          events.TypeOrderCaptured,
		OrderID:       orderID,
		TransactionID: result.TransactionID,
		Amount:        result.Amount,
		Currency:      result.Currency,
		Description:   description,
		OccurredAt:    time.Now(),
	})

	return outcome, nil
}

// dispatchReceipt fans the receipt out to the payer and the configured
// default recipient. Fire-and-forget: spawned, not awaited, errors
// logged and discarded.
func (s *OrderService) dispatchReceipt(receipt notify.Receipt) {
	if s.dispatcher == nil || !s.dispatcher.Configured() {
		return
	}

	recipients := make([]string, 0, 2)
	if receipt.PayerEmail != "" {
		recipients = append(recipients, receipt.PayerEmail)
	}
	if s.defaultRecipient != "" && s.defaultRecipient != receipt.PayerEmail {
		recipients = append(recipients, s.defaultRecipient)
	}

	for _, to := range recipients {
		go func(to string) {
			ctx, cancel := context.WithTimeout(context.Background(), s.dispatchTimeout)
			defer cancel()
			if err := s.dispatcher.SendPaymentReceipt(ctx, to, receipt); err != nil {
				s.logger.Warn("payment receipt dispatch failed",
					zap.String("to", to),
					zap.String("transaction_id", receipt.TransactionID),
					zap.Error(err))
			}
		}(to)
	}
}

func (s *OrderService) publish(event events.OrderEvent) {
	if s.producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.producer.Publish(ctx, event); err != nil {
		s.logger.Warn("order event publish failed",
			zap.String("type", event.Type),
			zap.String("order_id", event.OrderID),
			zap.Error(err))
	}
}
