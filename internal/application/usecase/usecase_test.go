package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/application/usecase"
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
	"github.com/jhoicas/inventario-pos/internal/infrastructure/memory"
)

func ptr[T any](v T) *T { return &v }

func TestSupplierUseCase_CreateSinTelefono(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := usecase.NewSupplierUseCase(store.Suppliers())

	_, err := uc.Create(ctx, dto.CreateSupplierRequest{Name: "TecnoGlobal S.A.", Email: "ventas@tecnoglobal.com"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"phone"}, verr.Fields)

	n, err := store.Counter().Count(ctx, repository.TableProveedores)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSupplierUseCase_EmailInvalido(t *testing.T) {
	uc := usecase.NewSupplierUseCase(memory.NewStore().Suppliers())
	_, err := uc.Create(context.Background(), dto.CreateSupplierRequest{Name: "X", Phone: "123", Email: "no-es-email"})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"email"}, verr.Fields)
}

func TestProductUseCase_ListIdempotente(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewStore().Products())

	for _, name := range []string{"Aceite", "Filtro", "Bujía"} {
		_, err := uc.Create(ctx, dto.CreateProductRequest{Name: name, Price: ptr(decimal.NewFromInt(5)), Stock: ptr(int64(10))})
		require.NoError(t, err)
	}
	first, err := uc.List(ctx)
	require.NoError(t, err)
	second, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	require.Len(t, first, 3)
	assert.Equal(t, "Aceite", first[0].Name)
	assert.Equal(t, "Bujía", first[2].Name)
}

func TestProductUseCase_CreateCamposFaltantes(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewStore().Products())
	_, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "  ", Stock: ptr(int64(-1))})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"name", "price", "stock"}, verr.Fields)
}

func TestProductUseCase_PrecioFueraDeEscala(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewStore().Products())

	for _, raw := range []string{"4.555", "-1", "1000000000000"} {
		_, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Aceite", Price: ptr(decimal.RequireFromString(raw)), Stock: ptr(int64(1))})
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr), raw)
		assert.Equal(t, []string{"price"}, verr.Fields, raw)
	}

	created, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Aceite", Price: ptr(decimal.RequireFromString("4.50")), Stock: ptr(int64(1))})
	require.NoError(t, err)
	_, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{Price: ptr(decimal.RequireFromString("4.555"))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("4.50").Equal(got.Price))
}

func TestProductUseCase_ParcheVacioNoCambia(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewStore().Products())
	created, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Aceite", Price: ptr(decimal.RequireFromString("5.00")), Stock: ptr(int64(10))})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{})
	require.NoError(t, err)
	assert.Equal(t, created.Name, updated.Name)
	assert.True(t, created.Price.Equal(updated.Price))
	assert.Equal(t, int64(10), updated.Stock)
}

func TestProductUseCase_UpdateNoTocaStock(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewStore().Products())
	created, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Aceite", Price: ptr(decimal.NewFromInt(5)), Stock: ptr(int64(10))})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Name: ptr("Aceite 5W-30"), Price: ptr(decimal.NewFromInt(6))})
	require.NoError(t, err)
	assert.Equal(t, "Aceite 5W-30", updated.Name)
	assert.Equal(t, int64(10), updated.Stock)
}

func TestProductUseCase_UpdateYDeleteInexistente(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewStore().Products())

	_, err := uc.Update(ctx, 99, dto.UpdateProductRequest{Name: ptr("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, 99), domain.ErrNotFound)
	_, err = uc.GetByID(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWarehouseUseCase_CRUD(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewWarehouseUseCase(memory.NewStore().Warehouses())

	w, err := uc.Create(ctx, dto.CreateWarehouseRequest{Name: " Bodega Central ", Address: "Calle 1"})
	require.NoError(t, err)
	assert.Equal(t, "Bodega Central", w.Name)

	w, err = uc.Update(ctx, w.ID, dto.UpdateWarehouseRequest{Address: ptr("Calle 2")})
	require.NoError(t, err)
	assert.Equal(t, "Bodega Central", w.Name)
	assert.Equal(t, "Calle 2", w.Address)

	_, err = uc.Update(ctx, w.ID, dto.UpdateWarehouseRequest{Name: ptr("")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.Delete(ctx, w.ID))
	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUserUseCase_PasswordSeMantieneSiSeOmite(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := usecase.NewUserUseCase(store.Users()).WithHashCost(bcrypt.MinCost)

	created, err := uc.Create(ctx, dto.CreateUserRequest{Name: "Ana", Email: "ana@example.com", Password: "secreta"})
	require.NoError(t, err)
	assert.Equal(t, "empleado", created.Role)

	before, err := store.Users().GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(before.PasswordHash), []byte("secreta")))

	_, err = uc.Update(ctx, created.ID, dto.UpdateUserRequest{Name: ptr("Ana María"), Password: ptr("")})
	require.NoError(t, err)
	after, err := store.Users().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana María", after.Name)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)

	_, err = uc.Update(ctx, created.ID, dto.UpdateUserRequest{Password: ptr("nueva")})
	require.NoError(t, err)
	after, err = store.Users().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(after.PasswordHash), []byte("nueva")))
}

func TestUserUseCase_RolInvalido(t *testing.T) {
	uc := usecase.NewUserUseCase(memory.NewStore().Users()).WithHashCost(bcrypt.MinCost)
	_, err := uc.Create(context.Background(), dto.CreateUserRequest{Name: "Ana", Email: "ana@example.com", Role: "root"})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"password", "role"}, verr.Fields)
}

func TestUserUseCase_PasswordDemasiadoLarga(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := usecase.NewUserUseCase(store.Users()).WithHashCost(bcrypt.MinCost)

	_, err := uc.Create(ctx, dto.CreateUserRequest{Name: "Ana", Email: "ana@example.com", Password: strings.Repeat("a", 80)})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"password"}, verr.Fields)
	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// 72 bytes es el máximo que acepta bcrypt
	created, err := uc.Create(ctx, dto.CreateUserRequest{Name: "Ana", Email: "ana@example.com", Password: strings.Repeat("a", 72)})
	require.NoError(t, err)

	_, err = uc.Update(ctx, created.ID, dto.UpdateUserRequest{Password: ptr(strings.Repeat("b", 73))})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"password"}, verr.Fields)
	stored, err := store.Users().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(strings.Repeat("a", 72))))
}

func TestCategoryUseCase_NormalizaNombre(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCategoryUseCase(memory.NewStore().Categories())

	// "Categoría" con acento combinado (U+0301) queda en forma precompuesta.
	c, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Categori\u0301a"})
	require.NoError(t, err)
	assert.Equal(t, "Categor\u00eda", c.Name)

	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
