package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
)

// PurchaseRepository puerto de persistencia para compras (solo inserción y lectura).
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByRequestID(ctx context.Context, requestID string) (*entity.Purchase, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Purchase, error)
	SumTotal(ctx context.Context) (decimal.Decimal, error)
}
