// Package cart manages per-identity cart state behind the kv
// persistence port.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Ashira-hub/online-ordering-system/internal/domain"
	"github.com/Ashira-hub/online-ordering-system/internal/kv"
)

type Service struct {
	store  kv.Store
	logger *zap.Logger
}

func NewService(store kv.Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Get loads the owner's cart; a missing key is an empty cart, not an error.
func (s *Service) Get(ctx context.Context, ownerID string) (*domain.Cart, error) {
	data, err := s.store.Get(ctx, cartKey(ownerID))
	if errors.Is(err, kv.ErrKeyNotFound) {
		return domain.NewCart(ownerID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var c domain.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	if c.Items == nil {
		c.Items = make(map[int64]domain.CartItem)
	}
	return &c, nil
}

// AddItem increments the line for the product, creating it at quantity 1.
func (s *Service) AddItem(ctx context.Context, ownerID string, product domain.Product) (*domain.Cart, error) {
	c, err := s.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	item, exists := c.Items[product.ID]
	if exists {
		item.Quantity++
	} else {
		item = domain.CartItem{Product: product, Quantity: 1, AddedAt: time.Now()}
	}
	c.Items[product.ID] = item

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetQuantity sets a line's quantity. Zero or negative removes the line,
// preserving the quantity >= 1 invariant.
func (s *Service) SetQuantity(ctx context.Context, ownerID string, productID int64, quantity int) (*domain.Cart, error) {
	c, err := s.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		delete(c.Items, productID)
	} else {
		item, exists := c.Items[productID]
		if !exists {
			return nil, fmt.Errorf("product %d not in cart", productID)
		}
		item.Quantity = quantity
		c.Items[productID] = item
	}

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem drops the line entirely.
func (s *Service) RemoveItem(ctx context.Context, ownerID string, productID int64) (*domain.Cart, error) {
	return s.SetQuantity(ctx, ownerID, productID, 0)
}

// Clear empties the cart after a successful capture.
func (s *Service) Clear(ctx context.Context, ownerID string) error {
	if err := s.store.Delete(ctx, cartKey(ownerID)); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (s *Service) save(ctx context.Context, c *domain.Cart) error {
	c.UpdatedAt = time.Now()
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.store.Set(ctx, cartKey(c.OwnerID), data); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func cartKey(ownerID string) string {
	return fmt.Sprintf("cart:%s", ownerID)
}
