package domain

import "time"

// LineItem is a snapshot of one cart line at order-creation time.
// Prices travel as formatted decimal strings because that is what the
// payment provider settles with; they are never re-derived after creation.
type LineItem struct {
	ProductID int64  `json:"id"`
	Name      string `json:"name"`
	Store     string `json:"store,omitempty"`
	UnitPrice string `json:"price"`
	Quantity  int    `json:"qty"`
	LineTotal string `json:"total"`
	Currency  string `json:"currency"`
}

// PendingOrder holds what was ordered between create and capture,
// keyed by the provider-issued order id. It exists only to enrich the
// post-capture receipt and expires after OrderMetaTTL.
type PendingOrder struct {
	OrderID     string     `json:"order_id"`
	Items       []LineItem `json:"items"`
	Description string     `json:"description"`
	Currency    string     `json:"currency"`
	Amount      string     `json:"amount"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Payer is the provider's view of who paid.
type Payer struct {
	Email     string `json:"email"`
	GivenName string `json:"given_name"`
	Surname   string `json:"surname"`
}

// FullName joins the name parts, skipping empty ones.
func (p Payer) FullName() string {
	switch {
	case p.GivenName != "" && p.Surname != "":
		return p.GivenName + " " + p.Surname
	case p.GivenName != "":
		return p.GivenName
	default:
		return p.Surname
	}
}

// CaptureResult is the settled payment as reported by the provider.
// Transient: used to build the receipt, never persisted.
type CaptureResult struct {
	OrderID       string `json:"order_id"`
	TransactionID string `json:"transaction_id"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Description   string `json:"description"`
	Payer         Payer  `json:"payer"`
}
