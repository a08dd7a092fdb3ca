package domain

import "time"

type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Store       string  `json:"store,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url,omitempty"`
}

type CartItem struct {
	Product  Product   `json:"product"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
}

// Cart maps product id to its line. Quantity is always >= 1; setting a
// line to zero or below removes it.
type Cart struct {
	OwnerID   string             `json:"owner_id"`
	Items     map[int64]CartItem `json:"items"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func NewCart(ownerID string) *Cart {
	return &Cart{
		OwnerID: ownerID,
		Items:   make(map[int64]CartItem),
	}
}

// Subtotal sums price*qty over all lines.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, item := range c.Items {
		sum += item.Product.Price * float64(item.Quantity)
	}
	return sum
}

// Count is the total number of units across lines.
func (c *Cart) Count() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}
