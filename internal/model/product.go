package model

// Product is a row of online_retail.product_info. Image is an opaque blob;
// the core never interprets it.
type Product struct {
	ID          string  `db:"product_id" json:"product_id"`
	Type        string  `db:"product_type" json:"product_type"`
	Name        string  `db:"product_name" json:"product_name"`
	Description string  `db:"product_desc" json:"product_desc"`
	Keywords    string  `db:"product_keywords" json:"product_keywords"`
	Price       float64 `db:"product_price" json:"product_price"`
	Image       []byte  `db:"product_image" json:"product_image,omitempty"`
}

// InventoryRecord is a row of online_retail.inventory_info, always paired 1:1
// with a Product row. The pair is created, updated and deleted together.
type InventoryRecord struct {
	ProductID string `db:"product_id" json:"product_id"`
	Quantity  int    `db:"product_quantity" json:"product_quantity"`
}

// CatalogItem is a Product joined with its InventoryRecord, used by both the
// shopper browse view (quantity > 0 only) and the retailer catalog view.
type CatalogItem struct {
	Product
	Quantity int `db:"product_quantity" json:"product_quantity"`
}
