package dto

type CartItemInput struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"product_name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"product_price"`
}

// AddToCartInput is a proposed batch. OwnerID is optional; when present it
// must match the acting session's principal.
type AddToCartInput struct {
	OwnerID string          `json:"owner_id,omitempty"`
	Items   []CartItemInput `json:"items"`
}
