package entities

import "github.com/shopspring/decimal"

type Product struct {
	ProductID   string          `json:"product_id" db:"product_id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Stock       int             `json:"stock" db:"stock"`
}

// Reservation is what the inventory ledger hands back after an atomic
// check-and-decrement: the catalog data the order snapshot is built from.
type Reservation struct {
	ProductName string
	UnitPrice   decimal.Decimal
}
