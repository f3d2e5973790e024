package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const OrderStatusCreated = "CREATED"

// Order is a buyer's request for a list of products. ProductIDs preserves
// order and may contain duplicates. TotalPrice stays nil until pricing
// succeeds. Status is free-form after creation; no transition legality is
// enforced.
type Order struct {
	ID         string           `json:"id"`
	UserID     string           `json:"user_id"`
	ProductIDs []string         `json:"product_ids"`
	TotalPrice *decimal.Decimal `json:"total_price,omitempty"`
	Status     string           `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// Rejection reasons, distinguishable so callers can report per-product
// failures to an end user.
const (
	ReasonBuyerNotFound     = "buyer-not-found"
	ReasonBuyerUnverifiable = "buyer-unverifiable"
	ReasonOutOfStock        = "out-of-stock"
	ReasonStockUnverifiable = "stock-unverifiable"
)

// RejectionReason names one offending part of a rejected order. ProductID
// is empty when the buyer itself was refused.
type RejectionReason struct {
	ProductID string `json:"product_id,omitempty"`
	Reason    string `json:"reason"`
}

// RejectionError is the terminal outcome of an inadmissible order. It is a
// business refusal, not a transport failure; no order is persisted.
type RejectionError struct {
	Reasons []RejectionReason
}

func (e *RejectionError) Error() string {
	parts := make([]string, 0, len(e.Reasons))
	for _, r := range e.Reasons {
		if r.ProductID == "" {
			parts = append(parts, r.Reason)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", r.ProductID, r.Reason))
	}
	return "order rejected: " + strings.Join(parts, ", ")
}
