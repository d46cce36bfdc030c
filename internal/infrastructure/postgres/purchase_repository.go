package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const purchaseColumns = `id, request_id, producto_id, proveedor_id, cantidad, precio_unitario, total, fecha`

// PurchaseRepo tabla compras.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create inserta la compra; request_id repetido → domain.ErrConflict (ver SaleRepo.Create).
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO compras (request_id, producto_id, proveedor_id, cantidad, precio_unitario, total)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, fecha`,
		p.RequestID, p.ProductID, p.SupplierID, p.Quantity, p.UnitPrice, p.Total,
	).Scan(&p.ID, &p.Date)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return persistErr("insert purchase", err)
	}
	return nil
}

func (r *PurchaseRepo) GetByRequestID(ctx context.Context, requestID string) (*entity.Purchase, error) {
	var p entity.Purchase
	err := r.q.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM compras WHERE request_id = $1`, requestID).
		Scan(&p.ID, &p.RequestID, &p.ProductID, &p.SupplierID, &p.Quantity, &p.UnitPrice, &p.Total, &p.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistErr("get purchase", err)
	}
	return &p, nil
}

func (r *PurchaseRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Purchase, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+purchaseColumns+` FROM compras ORDER BY fecha DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, persistErr("list purchases", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.RequestID, &p.ProductID, &p.SupplierID, &p.Quantity, &p.UnitPrice, &p.Total, &p.Date); err != nil {
			return nil, persistErr("scan purchase", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list purchases", err)
	}
	return list, nil
}

func (r *PurchaseRepo) SumTotal(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(total), 0) FROM compras`).Scan(&total); err != nil {
		return decimal.Zero, persistErr("sum purchases", err)
	}
	return total, nil
}
