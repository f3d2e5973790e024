package port

import (
	"context"

	"github.com/microshop-io/microshop/internal/core/domain"
)

// RemoteLookup performs single outbound calls against peer services. Every
// call is bounded by a per-call timeout and classified as found, not found
// or unreachable; implementations never retry. Retry policy belongs to the
// caller.
type RemoteLookup interface {
	LookupUser(ctx context.Context, id string) domain.BuyerOutcome
	CheckStock(ctx context.Context, productID string) domain.StockOutcome
	LookupProduct(ctx context.Context, id string) domain.ProductOutcome
}
