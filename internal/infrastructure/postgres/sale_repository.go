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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, request_id, producto_id, cantidad, precio_unitario, total, fecha`

// SaleRepo tabla ventas. Solo inserción y lectura.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la venta. Un request_id repetido por otra tx concurrente se
// devuelve como domain.ErrConflict para que el caso de uso reintente y encuentre la fila.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO ventas (request_id, producto_id, cantidad, precio_unitario, total)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id, fecha`,
		s.RequestID, s.ProductID, s.Quantity, s.UnitPrice, s.Total,
	).Scan(&s.ID, &s.Date)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return persistErr("insert sale", err)
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	return r.get(ctx, `SELECT `+saleColumns+` FROM ventas WHERE id = $1`, id)
}

func (r *SaleRepo) GetByRequestID(ctx context.Context, requestID string) (*entity.Sale, error) {
	return r.get(ctx, `SELECT `+saleColumns+` FROM ventas WHERE request_id = $1`, requestID)
}

func (r *SaleRepo) get(ctx context.Context, query string, arg any) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, arg).
		Scan(&s.ID, &s.RequestID, &s.ProductID, &s.Quantity, &s.UnitPrice, &s.Total, &s.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistErr("get sale", err)
	}
	return &s, nil
}

// ListRecent últimas ventas, fecha descendente.
func (r *SaleRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+saleColumns+` FROM ventas ORDER BY fecha DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, persistErr("list sales", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.RequestID, &s.ProductID, &s.Quantity, &s.UnitPrice, &s.Total, &s.Date); err != nil {
			return nil, persistErr("scan sale", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list sales", err)
	}
	return list, nil
}

// SumTotal acumulado de todas las ventas.
func (r *SaleRepo) SumTotal(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(total), 0) FROM ventas`).Scan(&total); err != nil {
		return decimal.Zero, persistErr("sum sales", err)
	}
	return total, nil
}
