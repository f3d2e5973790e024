package service

import (
	"errors"
	"testing"

	"github.com/microshop-io/microshop/internal/core/domain"
)

func foundBuyer(id string) domain.BuyerOutcome {
	return domain.BuyerOutcome{UserID: id, Status: domain.LookupFound}
}

func stock(productID string, inStock bool) domain.StockOutcome {
	return domain.StockOutcome{ProductID: productID, Status: domain.LookupFound, InStock: inStock}
}

func TestDecide_AllInStock(t *testing.T) {
	d := Decide(foundBuyer("u1"), []domain.StockOutcome{stock("p1", true), stock("p2", true)})
	if !d.Admissible {
		t.Fatalf("expected admissible, got rejections %v", d.Rejected)
	}
	if len(d.Rejected) != 0 {
		t.Errorf("admissible decision must carry no rejections, got %v", d.Rejected)
	}
}

func TestDecide_BuyerNotFound(t *testing.T) {
	buyer := domain.BuyerOutcome{UserID: "u1", Status: domain.LookupNotFound}
	d := Decide(buyer, []domain.StockOutcome{stock("p1", true)})
	if d.Admissible {
		t.Fatal("expected rejection for missing buyer")
	}
	if len(d.Rejected) != 1 || d.Rejected[0].Reason != domain.ReasonBuyerNotFound {
		t.Errorf("expected single buyer-not-found reason, got %v", d.Rejected)
	}
	if d.Rejected[0].ProductID != "" {
		t.Errorf("buyer rejection must not name a product, got %q", d.Rejected[0].ProductID)
	}
}

func TestDecide_BuyerNotFoundDiscardsStockResults(t *testing.T) {
	buyer := domain.BuyerOutcome{UserID: "u1", Status: domain.LookupNotFound}
	items := []domain.StockOutcome{
		stock("p1", false),
		{ProductID: "p2", Status: domain.LookupUnreachable, Cause: errors.New("timeout")},
	}
	d := Decide(buyer, items)
	if len(d.Rejected) != 1 {
		t.Errorf("stock outcomes must be discarded when the buyer is rejected, got %v", d.Rejected)
	}
}

func TestDecide_BuyerUnreachable(t *testing.T) {
	buyer := domain.BuyerOutcome{UserID: "u1", Status: domain.LookupUnreachable, Cause: errors.New("timeout")}
	d := Decide(buyer, nil)
	if d.Admissible {
		t.Fatal("expected rejection for unverifiable buyer")
	}
	if d.Rejected[0].Reason != domain.ReasonBuyerUnverifiable {
		t.Errorf("expected buyer-unverifiable, got %s", d.Rejected[0].Reason)
	}
}

func TestDecide_SingleOutOfStockItemRejects(t *testing.T) {
	items := []domain.StockOutcome{stock("p1", true), stock("p2", false), stock("p3", true)}
	d := Decide(foundBuyer("u1"), items)
	if d.Admissible {
		t.Fatal("expected rejection")
	}
	if len(d.Rejected) != 1 || d.Rejected[0].ProductID != "p2" || d.Rejected[0].Reason != domain.ReasonOutOfStock {
		t.Errorf("expected p2 out-of-stock, got %v", d.Rejected)
	}
}

func TestDecide_UnreachableStockIsHardRejection(t *testing.T) {
	items := []domain.StockOutcome{
		stock("p1", true),
		{ProductID: "p2", Status: domain.LookupUnreachable, Cause: errors.New("connection refused")},
	}
	d := Decide(foundBuyer("u1"), items)
	if d.Admissible {
		t.Fatal("unverifiable stock must reject the order")
	}
	if d.Rejected[0].Reason != domain.ReasonStockUnverifiable {
		t.Errorf("expected stock-unverifiable, got %s", d.Rejected[0].Reason)
	}
}

func TestDecide_UnknownProductRejectsAsOutOfStock(t *testing.T) {
	items := []domain.StockOutcome{{ProductID: "p1", Status: domain.LookupNotFound}}
	d := Decide(foundBuyer("u1"), items)
	if d.Admissible {
		t.Fatal("expected rejection")
	}
	if d.Rejected[0].Reason != domain.ReasonOutOfStock {
		t.Errorf("expected out-of-stock for unknown product, got %s", d.Rejected[0].Reason)
	}
}

func TestDecide_CollectsEveryOffendingItem(t *testing.T) {
	items := []domain.StockOutcome{
		stock("p1", false),
		stock("p2", true),
		{ProductID: "p3", Status: domain.LookupUnreachable, Cause: errors.New("timeout")},
	}
	d := Decide(foundBuyer("u1"), items)
	if len(d.Rejected) != 2 {
		t.Fatalf("expected 2 rejections, got %v", d.Rejected)
	}
	reasons := map[string]string{}
	for _, r := range d.Rejected {
		reasons[r.ProductID] = r.Reason
	}
	if reasons["p1"] != domain.ReasonOutOfStock || reasons["p3"] != domain.ReasonStockUnverifiable {
		t.Errorf("unexpected reasons: %v", reasons)
	}
}
