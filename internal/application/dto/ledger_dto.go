package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordSaleRequest entrada de POST /api/sales.
// RequestID es opcional; si se repite, la venta no se aplica dos veces.
type RecordSaleRequest struct {
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	RequestID string `json:"request_id"`
}

// RecordPurchaseRequest entrada de POST /api/purchases.
type RecordPurchaseRequest struct {
	ProductID  int64            `json:"product_id"`
	SupplierID int64            `json:"supplier_id"`
	Quantity   int64            `json:"quantity"`
	UnitPrice  *decimal.Decimal `json:"unit_price"`
	RequestID  string           `json:"request_id"`
}

// SaleResponse venta registrada junto con el stock resultante.
type SaleResponse struct {
	ID        int64           `json:"id"`
	RequestID string          `json:"request_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
	Date      time.Time       `json:"date"`
	Message   string          `json:"message"`
}

// PurchaseResponse compra registrada.
type PurchaseResponse struct {
	ID         int64           `json:"id"`
	RequestID  string          `json:"request_id"`
	ProductID  int64           `json:"product_id"`
	SupplierID int64           `json:"supplier_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Total      decimal.Decimal `json:"total"`
	Date       time.Time       `json:"date"`
	Message    string          `json:"message"`
}

// TotalResponse acumulado de ventas o compras.
type TotalResponse struct {
	Total decimal.Decimal `json:"total"`
}
