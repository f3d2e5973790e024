package service

import "github.com/microshop-io/microshop/internal/core/domain"

// Decision is the outcome of the order admission rules.
type Decision struct {
	Admissible bool
	Rejected   []domain.RejectionReason
}

// Decide applies the admission rules to a complete snapshot of lookup
// outcomes for one order.
//
// A buyer that is not positively found rejects the order outright and the
// stock outcomes are discarded. Otherwise every line item must be verified
// in stock: an out-of-stock item and an item whose check could not be
// completed both reject the order, with distinguishable reasons. Treating
// unverifiable stock as acceptance would silently admit unverified orders.
func Decide(buyer domain.BuyerOutcome, items []domain.StockOutcome) Decision {
	if buyer.Status != domain.LookupFound {
		reason := domain.ReasonBuyerNotFound
		if buyer.Status == domain.LookupUnreachable {
			reason = domain.ReasonBuyerUnverifiable
		}
		return Decision{Rejected: []domain.RejectionReason{{Reason: reason}}}
	}

	var rejected []domain.RejectionReason
	for _, item := range items {
		switch {
		case item.Status == domain.LookupUnreachable:
			rejected = append(rejected, domain.RejectionReason{
				ProductID: item.ProductID,
				Reason:    domain.ReasonStockUnverifiable,
			})
		case item.Status != domain.LookupFound || !item.InStock:
			// An unknown product has no stock to sell.
			rejected = append(rejected, domain.RejectionReason{
				ProductID: item.ProductID,
				Reason:    domain.ReasonOutOfStock,
			})
		}
	}
	if len(rejected) > 0 {
		return Decision{Rejected: rejected}
	}
	return Decision{Admissible: true}
}
