// internal/domain/cart/entity.go
package cart

// LineItem represents one entry in a tenant's cart. Display fields, price
// and stock ceiling are snapshots taken when the product was first added;
// they are never re-fetched.
type LineItem struct {
	LineID       string `json:"line_id"`
	ProductID    string `json:"product_id"`
	DisplayName  string `json:"name"`
	Slug         string `json:"slug"`
	UnitPrice    int64  `json:"unit_price"` // minor units
	Quantity     int    `json:"quantity"`
	ImageURL     string `json:"image_url,omitempty"`
	StockCeiling int    `json:"stock_ceiling"`
}

// Snapshot is a consistent read of the cart: a cloned item list plus the
// derived aggregates, always computed fresh from the current list.
type Snapshot struct {
	Items     []LineItem `json:"items"`
	ItemCount int        `json:"item_count"`
	Subtotal  int64      `json:"subtotal"`
	IsOpen    bool       `json:"is_open"`
}

// AddItemRequest represents add to cart request. LineID is optional; the
// handler derives one from the product ID when absent. Quantity defaults
// to 1 when omitted.
type AddItemRequest struct {
	LineID       string `json:"line_id"`
	ProductID    string `json:"product_id" binding:"required"`
	DisplayName  string `json:"name" binding:"required"`
	Slug         string `json:"slug" binding:"required"`
	UnitPrice    int64  `json:"unit_price" binding:"min=0"`
	Quantity     int    `json:"quantity"`
	ImageURL     string `json:"image_url"`
	StockCeiling int    `json:"stock_ceiling"`
}

// UpdateQuantityRequest represents update cart item request. Zero and
// negative quantities remove the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// schemaVersion tags the persisted payload so future field changes have a
// migration path
const schemaVersion = 1

// persistedCart is the storage layout: a versioned envelope around the
// full line item list
type persistedCart struct {
	Version int        `json:"version"`
	Items   []LineItem `json:"items"`
}

// StorageKey returns the tenant-scoped storage key for a cart. Distinct
// tenants never collide.
func StorageKey(tenantSlug string) string {
	return "cart_" + tenantSlug
}
