package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase registro de compra a proveedor (tabla compras). Solo se inserta.
type Purchase struct {
	ID         int64
	RequestID  string
	ProductID  int64
	SupplierID int64
	Quantity   int64
	UnitPrice  decimal.Decimal
	Total      decimal.Decimal
	Date       time.Time
}
