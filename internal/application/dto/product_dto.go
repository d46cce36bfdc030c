package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Price y Stock son obligatorios.
type CreateProductRequest struct {
	Name  string           `json:"name"`
	Price *decimal.Decimal `json:"price"`
	Stock *int64           `json:"stock"`
}

// UpdateProductRequest parche de producto. Stock no es editable: cambia vía ventas y compras.
type UpdateProductRequest struct {
	Name  *string          `json:"name"`
	Price *decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int64           `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
