package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-pos/internal/domain"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, isUniqueViolation(errors.New("connection reset")))
}

func TestIsCheckViolation(t *testing.T) {
	assert.True(t, isCheckViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, isCheckViolation(errors.New("23514")))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isForeignKeyViolation(fmt.Errorf("delete: %w", &pgconn.PgError{Code: "23503"})))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isForeignKeyViolation(errors.New("23503")))
}

// execQuerier responde a Exec con un tag o error fijos.
type execQuerier struct {
	Querier
	tag pgconn.CommandTag
	err error
}

func (q execQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return q.tag, q.err
}

func TestExecDelete(t *testing.T) {
	ctx := context.Background()

	err := execDelete(ctx, execQuerier{err: &pgconn.PgError{Code: "23503"}}, "products", 1)
	assert.ErrorIs(t, err, domain.ErrInUse)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NotErrorIs(t, err, domain.ErrPersistence)

	err = execDelete(ctx, execQuerier{err: errors.New("connection reset")}, "proveedores", 1)
	assert.ErrorIs(t, err, domain.ErrPersistence)

	err = execDelete(ctx, execQuerier{tag: pgconn.NewCommandTag("DELETE 0")}, "bodegas", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, execDelete(ctx, execQuerier{tag: pgconn.NewCommandTag("DELETE 1")}, "usuarios", 1))
}

func TestPersistErr(t *testing.T) {
	cause := errors.New("connection refused")
	err := persistErr("insert sale", cause)

	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "insert sale: connection refused", err.Error())
}

func TestCountRepo_TablaNoPermitida(t *testing.T) {
	r := NewCountRepository(nil)
	_, err := r.Count(context.Background(), "products; DROP TABLE ventas")
	assert.Error(t, err)
}

func TestMigrationFilesEmbebidos(t *testing.T) {
	sql, err := migrationFiles.ReadFile("migrations/001_init.sql")
	assert.NoError(t, err)
	for _, table := range []string{"products", "bodegas", "proveedores", "usuarios", "ventas", "compras"} {
		assert.Contains(t, string(sql), "CREATE TABLE IF NOT EXISTS "+table+" ")
	}
}
