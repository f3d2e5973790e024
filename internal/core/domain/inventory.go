package domain

// Inventory tracks on-hand stock for a single product. InStock is derived
// from Quantity and must never be set independently; SetQuantity is the only
// place the two are reconciled, shared by the create and update paths.
type Inventory struct {
	ID           string `json:"id"`
	ProductID    string `json:"product_id"`
	Quantity     int    `json:"quantity"`
	LocationCode string `json:"location_code"`
	InStock      bool   `json:"in_stock"`
}

func NewInventory(id, productID string, quantity int, locationCode string) *Inventory {
	inv := &Inventory{ID: id, ProductID: productID, LocationCode: locationCode}
	inv.SetQuantity(quantity)
	return inv
}

// SetQuantity updates the on-hand quantity and recomputes the derived
// in-stock flag.
func (i *Inventory) SetQuantity(quantity int) {
	i.Quantity = quantity
	i.InStock = quantity > 0
}
