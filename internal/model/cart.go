package model

import "time"

// StagedCartLine is a row of online_retail.cart_staging: a candidate cart line
// tagged with the owner who proposed it. Rows never outlive one merge cycle.
type StagedCartLine struct {
	OwnerID   string  `db:"owner_id" json:"owner_id"`
	ProductID string  `db:"product_id" json:"product_id"`
	Name      string  `db:"product_name" json:"product_name"`
	Quantity  int     `db:"quantity" json:"quantity"`
	UnitPrice float64 `db:"product_price" json:"product_price"`
}

// CommittedCartLine is a row of the append-only online_retail.cart_committed
// ledger. Name and price are denormalized at write time; the same owner and
// product may appear on multiple historical lines.
type CommittedCartLine struct {
	OwnerID    string    `db:"owner_id" json:"owner_id"`
	ProductID  string    `db:"product_id" json:"product_id"`
	Name       string    `db:"product_name" json:"product_name"`
	Quantity   int       `db:"quantity" json:"quantity"`
	UnitPrice  float64   `db:"product_price" json:"product_price"`
	InsertedAt time.Time `db:"inserted_at" json:"inserted_at"`
}
