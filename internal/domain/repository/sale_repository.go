package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
)

// SaleRepository puerto de persistencia para ventas (solo inserción y lectura).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	GetByRequestID(ctx context.Context, requestID string) (*entity.Sale, error)
	// ListRecent devuelve las últimas limit ventas ordenadas por fecha descendente.
	ListRecent(ctx context.Context, limit int) ([]*entity.Sale, error)
	SumTotal(ctx context.Context) (decimal.Decimal, error)
}
