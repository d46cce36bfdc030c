package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo tabla proveedores.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de persistencia para proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO proveedores (nombre, telefono, email) VALUES ($1, $2, $3) RETURNING id`,
		s.Name, s.Phone, s.Email,
	).Scan(&s.ID)
	if err != nil {
		return persistErr("insert supplier", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(ctx, `SELECT id, nombre, telefono, email FROM proveedores WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Phone, &s.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistErr("get supplier", err)
	}
	return &s, nil
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE proveedores SET nombre = $2, telefono = $3, email = $4 WHERE id = $1`,
		s.ID, s.Name, s.Phone, s.Email,
	)
	if err != nil {
		return persistErr("update supplier", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SupplierRepo) List(ctx context.Context) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre, telefono, email FROM proveedores ORDER BY id`)
	if err != nil {
		return nil, persistErr("list suppliers", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Phone, &s.Email); err != nil {
			return nil, persistErr("scan supplier", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list suppliers", err)
	}
	return list, nil
}

func (r *SupplierRepo) Delete(ctx context.Context, id int64) error {
	return execDelete(ctx, r.q, "proveedores", id)
}
