package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// Stock solo cambia a través del libro de movimientos (ventas y compras).
type Product struct {
	ID        int64
	Name      string
	Price     decimal.Decimal // precio de venta unitario
	Stock     int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MoneyScale decimales con que se guardan precios y totales (NUMERIC(14,2)).
const MoneyScale = 2

// maxPrice primer valor que ya no cabe en NUMERIC(14,2).
var maxPrice = decimal.New(1, 12)

// ValidPrice indica si d es un importe almacenable sin redondeo: no negativo,
// a lo sumo MoneyScale decimales y por debajo de 10^12.
func ValidPrice(d decimal.Decimal) bool {
	return !d.IsNegative() && d.Equal(d.Round(MoneyScale)) && d.LessThan(maxPrice)
}
