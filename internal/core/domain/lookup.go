package domain

import "github.com/shopspring/decimal"

// LookupStatus classifies the result of a single remote lookup. Absence and
// unreachability are values, not errors, so the admission decision can
// reason over them uniformly.
type LookupStatus int

const (
	LookupFound LookupStatus = iota
	LookupNotFound
	LookupUnreachable
)

func (s LookupStatus) String() string {
	switch s {
	case LookupFound:
		return "found"
	case LookupNotFound:
		return "not-found"
	case LookupUnreachable:
		return "unreachable"
	}
	return "unknown"
}

// UserSummary is the slice of the remote user record the order workflow
// cares about.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProductSummary is the slice of the remote product record used for
// existence checks and pricing.
type ProductSummary struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// BuyerOutcome is the collected result of the buyer-validation lookup.
// Cause is set only for LookupUnreachable.
type BuyerOutcome struct {
	UserID string
	Status LookupStatus
	User   UserSummary
	Cause  error
}

// StockOutcome is the collected result of one line item's stock check.
type StockOutcome struct {
	ProductID string
	Status    LookupStatus
	InStock   bool
	Cause     error
}

// ProductOutcome is the collected result of a product lookup.
type ProductOutcome struct {
	ProductID string
	Status    LookupStatus
	Product   ProductSummary
	Cause     error
}
