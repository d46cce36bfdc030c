package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

var _ repository.CountRepository = (*CountRepo)(nil)

var countableTables = map[string]bool{
	repository.TableProducts:    true,
	repository.TableBodegas:     true,
	repository.TableProveedores: true,
	repository.TableUsuarios:    true,
	repository.TableVentas:      true,
	repository.TableCompras:     true,
}

// CountRepo cuenta filas de las tablas del dashboard.
type CountRepo struct {
	q Querier
}

func NewCountRepository(q Querier) *CountRepo {
	return &CountRepo{q: q}
}

// Count devuelve el número exacto de filas. Solo admite tablas conocidas.
func (r *CountRepo) Count(ctx context.Context, table string) (int64, error) {
	if !countableTables[table] {
		return 0, fmt.Errorf("tabla desconocida: %s", table)
	}
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM `+pgx.Identifier{table}.Sanitize()).Scan(&n); err != nil {
		return 0, persistErr("count "+table, err)
	}
	return n, nil
}
