package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CountDTO conteo de registros de una entidad para las tarjetas del dashboard.
type CountDTO struct {
	Label string `json:"label"`
	Table string `json:"table"`
	Value int64  `json:"value"`
}

// Tipos de actividad.
const (
	ActivitySale     = "venta"
	ActivityPurchase = "compra"
)

// ActivityDTO una línea de actividad reciente (venta o compra).
type ActivityDTO struct {
	Kind      string          `json:"kind"`
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
	Date      time.Time       `json:"date"`
	Line      string          `json:"line"`
}

// RecentActivityDTO respuesta de GET /api/dashboard/activity.
// Empty es verdadero cuando no hay ventas ni compras; Message trae el texto a mostrar.
type RecentActivityDTO struct {
	Items   []ActivityDTO `json:"items"`
	Empty   bool          `json:"empty"`
	Message string        `json:"message,omitempty"`
}
