package inventory

import (
	"context"

	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ninguna escritura aplicada.
// Dentro de fn solo deben usarse los repositorios recibidos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		purchaseRepo repository.PurchaseRepository,
	) error) error
}
