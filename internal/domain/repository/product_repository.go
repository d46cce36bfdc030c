package repository

import (
	"context"

	"github.com/jhoicas/inventario-pos/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si no existe; Update y Delete devuelven domain.ErrNotFound.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock fija stock=newStock solo si el valor actual es expected; si no, domain.ErrConflict.
	UpdateStock(ctx context.Context, id, expected, newStock int64) error
	List(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id int64) error
}
