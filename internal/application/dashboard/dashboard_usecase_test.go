package dashboard_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-pos/internal/application/dashboard"
	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
	"github.com/jhoicas/inventario-pos/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-pos/pkg/logger"
)

var base = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// failingCounter falla solo para la tabla indicada.
type failingCounter struct {
	inner repository.CountRepository
	table string
}

func (f failingCounter) Count(ctx context.Context, table string) (int64, error) {
	if table == f.table {
		return 0, errors.New("relation does not exist")
	}
	return f.inner.Count(ctx, table)
}

type failingSales struct {
	repository.SaleRepository
}

func (failingSales) ListRecent(context.Context, int) ([]*entity.Sale, error) {
	return nil, errors.New("timeout")
}

func seed(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	for _, name := range []string{"Aceite", "Filtro"} {
		require.NoError(t, store.Products().Create(ctx, &entity.Product{Name: name, Price: decimal.NewFromInt(5), Stock: 10}))
	}
	require.NoError(t, store.Suppliers().Create(ctx, &entity.Supplier{Name: "TecnoGlobal", Phone: "1", Email: "a@b.co"}))
}

func TestLoadCounts_OrdenYValores(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	uc := dashboard.NewDashboardUseCase(store.Counter(), store.Sales(), store.Purchases(), nil)

	counts := uc.LoadCounts(context.Background())
	require.Len(t, counts, 6)
	labels := make([]string, 0, len(counts))
	for _, c := range counts {
		labels = append(labels, c.Label)
	}
	assert.Equal(t, []string{"Productos", "Bodegas", "Proveedores", "Usuarios", "Punto de Venta", "Compras"}, labels)
	assert.Equal(t, int64(2), counts[0].Value)
	assert.Equal(t, int64(0), counts[1].Value)
	assert.Equal(t, int64(1), counts[2].Value)
}

func TestLoadCounts_TablaFallidaEsCero(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})
	uc := dashboard.NewDashboardUseCase(failingCounter{store.Counter(), repository.TableProducts}, store.Sales(), store.Purchases(), log)

	counts := uc.LoadCounts(context.Background())
	assert.Equal(t, int64(0), counts[0].Value)
	assert.Equal(t, int64(1), counts[2].Value)
	assert.Contains(t, buf.String(), "relation does not exist")
	assert.Contains(t, buf.String(), `"tabla":"products"`)
}

func TestLoadRecentActivity_MezclaOrdenaYTrunca(t *testing.T) {
	// minutos desde base de cada movimiento
	tests := []struct {
		name      string
		sales     []int
		purchases []int
		wantLines []string
	}{
		{
			name:      "3 ventas y 2 compras caben completas",
			sales:     []int{0, 7, 3},
			purchases: []int{5, 1},
			wantLines: []string{
				"Venta: Producto ID 1 - Cantidad 2 - Total $10.00",
				"Compra: Producto ID 2 - Cantidad 10 - Total $45.50",
				"Venta: Producto ID 1 - Cantidad 3 - Total $15.00",
				"Compra: Producto ID 2 - Cantidad 10 - Total $45.50",
				"Venta: Producto ID 1 - Cantidad 1 - Total $5.00",
			},
		},
		{
			name:      "4 ventas y 4 compras se truncan a 5",
			sales:     []int{0, 2, 4, 6},
			purchases: []int{1, 3, 5, 7},
			wantLines: []string{
				"Compra: Producto ID 2 - Cantidad 10 - Total $45.50",
				"Venta: Producto ID 1 - Cantidad 4 - Total $20.00",
				"Compra: Producto ID 2 - Cantidad 10 - Total $45.50",
				"Venta: Producto ID 1 - Cantidad 3 - Total $15.00",
				"Compra: Producto ID 2 - Cantidad 10 - Total $45.50",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := memory.NewStore()
			sales, purchases := store.Sales(), store.Purchases()
			for i, m := range tt.sales {
				q := int64(i + 1)
				require.NoError(t, sales.Create(ctx, &entity.Sale{ProductID: 1, Quantity: q, Total: decimal.NewFromInt(5 * q), Date: base.Add(time.Duration(m) * time.Minute)}))
			}
			for _, m := range tt.purchases {
				require.NoError(t, purchases.Create(ctx, &entity.Purchase{ProductID: 2, SupplierID: 1, Quantity: 10, Total: decimal.RequireFromString("45.5"), Date: base.Add(time.Duration(m) * time.Minute)}))
			}
			uc := dashboard.NewDashboardUseCase(store.Counter(), sales, purchases, nil)

			res := uc.LoadRecentActivity(ctx, 5)
			assert.False(t, res.Empty)
			lines := make([]string, 0, len(res.Items))
			for i, it := range res.Items {
				lines = append(lines, it.Line)
				if i > 0 {
					assert.False(t, it.Date.After(res.Items[i-1].Date))
				}
			}
			assert.Equal(t, tt.wantLines, lines)
		})
	}
}

func TestLoadRecentActivity_EmpateVentaPrimero(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Purchases().Create(ctx, &entity.Purchase{ProductID: 1, Quantity: 2, Total: decimal.NewFromInt(8), Date: base}))
	require.NoError(t, store.Sales().Create(ctx, &entity.Sale{ProductID: 1, Quantity: 3, Total: decimal.NewFromInt(15), Date: base}))
	uc := dashboard.NewDashboardUseCase(store.Counter(), store.Sales(), store.Purchases(), nil)

	res := uc.LoadRecentActivity(ctx, 0)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Venta: Producto ID 1 - Cantidad 3 - Total $15.00", res.Items[0].Line)
	assert.Equal(t, dto.ActivityPurchase, res.Items[1].Kind)
}

func TestLoadRecentActivity_Vacia(t *testing.T) {
	store := memory.NewStore()
	uc := dashboard.NewDashboardUseCase(store.Counter(), store.Sales(), store.Purchases(), nil)

	res := uc.LoadRecentActivity(context.Background(), 5)
	assert.True(t, res.Empty)
	assert.Equal(t, dashboard.EmptyActivityMessage, res.Message)
	assert.Empty(t, res.Items)
}

func TestLoadRecentActivity_FuenteFallidaSeIgnora(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Purchases().Create(ctx, &entity.Purchase{ProductID: 1, Quantity: 2, Total: decimal.NewFromInt(8), Date: base}))
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "warn", Output: &buf})
	uc := dashboard.NewDashboardUseCase(store.Counter(), failingSales{store.Sales()}, store.Purchases(), log)

	res := uc.LoadRecentActivity(ctx, 5)
	require.Len(t, res.Items, 1)
	assert.Equal(t, dto.ActivityPurchase, res.Items[0].Kind)
	assert.Contains(t, buf.String(), "timeout")
}
