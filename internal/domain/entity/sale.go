package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale registro de venta (tabla ventas). Solo se inserta.
// Total = Quantity × UnitPrice al momento de la venta.
type Sale struct {
	ID        int64
	RequestID string // clave de idempotencia
	ProductID int64
	Quantity  int64
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
	Date      time.Time
}
