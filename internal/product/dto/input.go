package dto

type CreateProductInput struct {
	ID              string  `json:"product_id"`
	Type            string  `json:"product_type"`
	Name            string  `json:"product_name"`
	Description     string  `json:"product_desc"`
	Keywords        string  `json:"product_keywords"`
	Price           float64 `json:"product_price"`
	Image           []byte  `json:"product_image,omitempty"`
	InitialQuantity int     `json:"product_quantity"`
}

// UpdateProductInput carries the retailer-editable fields. Price, description
// and quantity change together in one unit.
type UpdateProductInput struct {
	ID          string  `json:"product_id"`
	Price       float64 `json:"product_price"`
	Description string  `json:"product_desc"`
	Quantity    int     `json:"product_quantity"`
}
