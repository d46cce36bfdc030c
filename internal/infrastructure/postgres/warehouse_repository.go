package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre la tabla bodegas.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO bodegas (nombre, direccion) VALUES ($1, $2) RETURNING id`,
		w.Name, w.Address,
	).Scan(&w.ID)
	if err != nil {
		return persistErr("insert warehouse", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, `SELECT id, nombre, direccion FROM bodegas WHERE id = $1`, id).
		Scan(&w.ID, &w.Name, &w.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistErr("get warehouse", err)
	}
	return &w, nil
}

// Update actualiza una bodega existente.
func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	cmd, err := r.q.Exec(ctx, `UPDATE bodegas SET nombre = $2, direccion = $3 WHERE id = $1`, w.ID, w.Name, w.Address)
	if err != nil {
		return persistErr("update warehouse", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista bodegas por ID ascendente.
func (r *WarehouseRepo) List(ctx context.Context) ([]*entity.Warehouse, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre, direccion FROM bodegas ORDER BY id`)
	if err != nil {
		return nil, persistErr("list warehouses", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Address); err != nil {
			return nil, persistErr("scan warehouse", err)
		}
		list = append(list, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list warehouses", err)
	}
	return list, nil
}

func (r *WarehouseRepo) Delete(ctx context.Context, id int64) error {
	return execDelete(ctx, r.q, "bodegas", id)
}
