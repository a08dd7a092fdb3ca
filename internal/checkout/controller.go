// Package checkout drives the browser-side checkout flow: modal state,
// the approval redirect, and the post-return reconciliation with its
// duplicate-capture guard.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/Ashira-hub/online-ordering-system/internal/cart"
	"github.com/Ashira-hub/online-ordering-system/internal/config"
	"github.com/Ashira-hub/online-ordering-system/internal/domain"
	"github.com/Ashira-hub/online-ordering-system/internal/kv"
	"github.com/Ashira-hub/online-ordering-system/internal/paypal"
	"github.com/Ashira-hub/online-ordering-system/internal/service"
)

var (
	// ErrSignInRequired surfaces the sign-in prompt; the modal stays closed.
	ErrSignInRequired = errors.New("sign in to check out")
	ErrEmptyCart      = errors.New("cart is empty")
	// ErrRequestOutstanding blocks re-submission while a payment request
	// is in flight.
	ErrRequestOutstanding = errors.New("a payment request is already in progress")
)

// OrderAPI is the server-side lifecycle as seen from the client.
type OrderAPI interface {
	PlaceOrder(ctx context.Context, req service.PlaceOrderRequest) (*paypal.CreatedOrder, error)
	ConfirmCapture(ctx context.Context, orderID string) (*paypal.CaptureOutcome, error)
}

// Result is what the UI shows after a return navigation.
type Result struct {
	TransactionID string
	PayerName     string
	Amount        string
	Currency      string
	// AlreadyCaptured: the provider reported the order was captured
	// earlier; treated as success.
	AlreadyCaptured bool
	// AlreadyProcessed: the per-session guard was set, no capture call
	// was made. The caller just strips the query parameters.
	AlreadyProcessed bool
}

// Controller is one browser session's checkout state. The guard store is
// session-scoped so a duplicate return navigation (back/refresh) in the
// same tab cannot re-trigger capture.
type Controller struct {
	orders    OrderAPI
	carts     *cart.Service
	sessions  kv.Store
	paypalCfg config.PayPalConfig
	originURL string
	currency  string
	logger    *zap.Logger

	mu          sync.Mutex
	status      Status
	outstanding bool
}

func NewController(
	orders OrderAPI,
	carts *cart.Service,
	sessions kv.Store,
	paypalCfg config.PayPalConfig,
	originURL string,
	currency string,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		orders:    orders,
		carts:     carts,
		sessions:  sessions,
		paypalCfg: paypalCfg,
		originURL: originURL,
		currency:  currency,
		logger:    logger,
		status:    StatusIdle,
	}
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Controller) setStatus(to Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if canTransition(c.status, to) {
		c.status = to
	}
}

// OpenCheckout opens the payment modal. An unauthenticated identity gets
// the sign-in prompt instead; the modal does not open.
func (c *Controller) OpenCheckout(ctx context.Context, ownerID string, authenticated bool) error {
	userCart, err := c.carts.Get(ctx, ownerID)
	if err != nil {
		return err
	}
	if len(userCart.Items) == 0 {
		return ErrEmptyCart
	}
	if !authenticated {
		return ErrSignInRequired
	}
	c.setStatus(StatusModalOpen)
	return nil
}

// StartPayment builds the line-item manifest from the current cart,
// places the order and returns the approval URL. The caller performs a
// full-page navigation to it; this flow does not resume, it restarts on
// the return navigation.
func (c *Controller) StartPayment(ctx context.Context, ownerID string) (string, error) {
	c.mu.Lock()
	if c.outstanding {
		c.mu.Unlock()
		return "", ErrRequestOutstanding
	}
	c.outstanding = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.outstanding = false
		c.mu.Unlock()
	}()

	userCart, err := c.carts.Get(ctx, ownerID)
	if err != nil {
		return "", err
	}
	if len(userCart.Items) == 0 {
		return "", ErrEmptyCart
	}

	created, err := c.orders.PlaceOrder(ctx, service.PlaceOrderRequest{
		Currency:           c.currency,
		Value:              formatMoney(userCart.Subtotal()),
		Description:        "Online Order",
		ReturnURL:          c.originURL + "/?paypalReturn=1",
		CancelURL:          c.originURL + "/?paypalCancel=1",
		BrandName:          c.paypalCfg.BrandName,
		Locale:             c.paypalCfg.Locale,
		ShippingPreference: c.paypalCfg.ShippingPreference,
		Items:              c.lineItems(userCart),
	})
	if err != nil {
		return "", err
	}
	if created.ApproveURL == "" {
		return "", errors.New("failed to get approval link")
	}

	c.setStatus(StatusRedirecting)
	return created.ApproveURL, nil
}

// HandleReturn processes a return navigation carrying the provider's
// order token. Guarded: a second navigation with the same token makes no
// capture call. An "order already captured" rejection is reconciled as
// success, covering a capture whose earlier response was lost. Any other
// failure leaves the cart intact so the user can retry.
func (c *Controller) HandleReturn(ctx context.Context, ownerID, token string) (*Result, error) {
	if token == "" {
		return nil, errors.New("return navigation without order token")
	}

	if c.guardSet(ctx, token) {
		return &Result{AlreadyProcessed: true}, nil
	}

	outcome, err := c.orders.ConfirmCapture(ctx, token)
	if err != nil {
		if paypal.IsAlreadyCaptured(err) {
			c.markGuard(ctx, token)
			c.clearCart(ctx, ownerID)
			c.setStatus(StatusCaptured)
			return &Result{AlreadyCaptured: true}, nil
		}
		c.setStatus(StatusFailed)
		return nil, err
	}

	c.markGuard(ctx, token)
	c.clearCart(ctx, ownerID)
	c.setStatus(StatusCaptured)

	result := outcome.Result
	txn := result.TransactionID
	if txn == "" {
		txn = token
	}
	return &Result{
		TransactionID: txn,
		PayerName:     result.Payer.FullName(),
		Amount:        result.Amount,
		Currency:      result.Currency,
	}, nil
}

// HandleCancel is a cancel navigation: query parameters are stripped by
// the caller and the cart stays untouched.
func (c *Controller) HandleCancel() {
	c.setStatus(StatusIdle)
}

func (c *Controller) lineItems(userCart *domain.Cart) []domain.LineItem {
	items := make([]domain.LineItem, 0, len(userCart.Items))
	for _, item := range userCart.Items {
		items = append(items, domain.LineItem{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Store:     item.Product.Store,
			UnitPrice: formatMoney(item.Product.Price),
			Quantity:  item.Quantity,
			LineTotal: formatMoney(item.Product.Price * float64(item.Quantity)),
			Currency:  c.currency,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
	return items
}

func (c *Controller) guardSet(ctx context.Context, token string) bool {
	_, err := c.sessions.Get(ctx, guardKey(token))
	return err == nil
}

func (c *Controller) markGuard(ctx context.Context, token string) {
	if err := c.sessions.Set(ctx, guardKey(token), []byte("1")); err != nil {
		c.logger.Warn("failed to set capture guard",
			zap.String("token", token), zap.Error(err))
	}
}

func (c *Controller) clearCart(ctx context.Context, ownerID string) {
	if err := c.carts.Clear(ctx, ownerID); err != nil {
		c.logger.Warn("failed to clear cart after capture",
			zap.String("owner_id", ownerID), zap.Error(err))
	}
}

func guardKey(token string) string {
	return fmt.Sprintf("pp_done_%s", token)
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
