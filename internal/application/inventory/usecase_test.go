package inventory_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-pos/internal/application/inventory"
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
	"github.com/jhoicas/inventario-pos/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store    *memory.Store
	uc       *inventory.StockLedgerUseCase
	product  *entity.Product
	supplier *entity.Supplier
}

func newFixture(t *testing.T, stock int64, price string, wrap func(inventory.TxRunner) inventory.TxRunner, retries int) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	p := &entity.Product{Name: "Aceite para motor 5W-30", Price: decimal.RequireFromString(price), Stock: stock}
	require.NoError(t, store.Products().Create(ctx, p))
	sp := &entity.Supplier{Name: "TecnoGlobal S.A.", Phone: "+503 2233-4455", Email: "ventas@tecnoglobal.com"}
	require.NoError(t, store.Suppliers().Create(ctx, sp))

	var runner inventory.TxRunner = memory.NewTxRunner(store)
	if wrap != nil {
		runner = wrap(runner)
	}
	uc := inventory.NewStockLedgerUseCase(runner,
		store.Products(), store.Suppliers(), store.Sales(), store.Purchases(),
		inventory.Options{MaxRetries: retries},
	)
	return &fixture{store: store, uc: uc, product: p, supplier: sp}
}

func (f *fixture) stock(t *testing.T) int64 {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), f.product.ID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func (f *fixture) count(t *testing.T, table string) int64 {
	t.Helper()
	n, err := f.store.Counter().Count(context.Background(), table)
	require.NoError(t, err)
	return n
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// wrapRunner sustituye el repositorio de productos que recibe la transacción.
type wrapRunner struct {
	inner inventory.TxRunner
	wrap  func(repository.ProductRepository) repository.ProductRepository
}

func (w wrapRunner) Run(ctx context.Context, fn func(repository.ProductRepository, repository.SaleRepository, repository.PurchaseRepository) error) error {
	return w.inner.Run(ctx, func(p repository.ProductRepository, s repository.SaleRepository, pu repository.PurchaseRepository) error {
		return fn(w.wrap(p), s, pu)
	})
}

type failingStock struct {
	repository.ProductRepository
}

func (failingStock) UpdateStock(context.Context, int64, int64, int64) error {
	return &domain.PersistenceError{Op: "update stock", Err: errors.New("conexión perdida")}
}

// conflictOnce devuelve ErrConflict en la primera actualización de stock.
type conflictOnce struct {
	repository.ProductRepository
	hits *atomic.Int32
}

func (c conflictOnce) UpdateStock(ctx context.Context, id, expected, newStock int64) error {
	if c.hits.Add(1) == 1 {
		return domain.ErrConflict
	}
	return c.ProductRepository.UpdateStock(ctx, id, expected, newStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordSale_DescuentaStockYCalculaTotal(t *testing.T) {
	f := newFixture(t, 10, "5.00", nil, 3)

	sale, err := f.uc.RecordSale(context.Background(), inventory.SaleInput{ProductID: f.product.ID, Quantity: 3})
	require.NoError(t, err)

	assert.EqualValues(t, 7, f.stock(t))
	assert.True(t, decimal.RequireFromString("15.00").Equal(sale.Total), "total = 3 × 5.00")
	assert.True(t, decimal.RequireFromString("5.00").Equal(sale.UnitPrice))
	assert.NotEmpty(t, sale.RequestID)
	assert.EqualValues(t, 1, f.count(t, repository.TableVentas))
}

func TestRecordSale_StockInsuficiente(t *testing.T) {
	f := newFixture(t, 2, "5.00", nil, 3)

	_, err := f.uc.RecordSale(context.Background(), inventory.SaleInput{ProductID: f.product.ID, Quantity: 5})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.EqualValues(t, 2, f.stock(t), "el stock no cambia")
	assert.Zero(t, f.count(t, repository.TableVentas), "no se registra la venta")
}

func TestRecordSale_VendeTodoElStock(t *testing.T) {
	f := newFixture(t, 4, "1.25", nil, 3)

	_, err := f.uc.RecordSale(context.Background(), inventory.SaleInput{ProductID: f.product.ID, Quantity: 4})
	require.NoError(t, err)
	assert.Zero(t, f.stock(t))
}

func TestRecordSale_EntradaInvalida(t *testing.T) {
	f := newFixture(t, 10, "5.00", nil, 3)

	_, err := f.uc.RecordSale(context.Background(), inventory.SaleInput{ProductID: 0, Quantity: -1})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"product_id", "quantity"}, vErr.Fields)
	assert.EqualValues(t, 10, f.stock(t))
}

func TestRecordSale_ProductoInexistente(t *testing.T) {
	f := newFixture(t, 10, "5.00", nil, 3)

	_, err := f.uc.RecordSale(context.Background(), inventory.SaleInput{ProductID: 999, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordSale_FalloAlActualizarStockRevierteLaVenta(t *testing.T) {
	f := newFixture(t, 10, "5.00", func(r inventory.TxRunner) inventory.TxRunner {
		return wrapRunner{inner: r, wrap: func(p repository.ProductRepository) repository.ProductRepository {
			return failingStock{p}
		}}
	}, 3)

	_, err := f.uc.RecordSale(context.Background(), inventory.SaleInput{ProductID: f.product.ID, Quantity: 3})
	require.ErrorIs(t, err, domain.ErrPersistence)

	assert.EqualValues(t, 10, f.stock(t))
	assert.Zero(t, f.count(t, repository.TableVentas), "la venta no debe quedar sin su descuento de stock")
}

func TestRecordSale_IdempotentePorRequestID(t *testing.T) {
	f := newFixture(t, 10, "5.00", nil, 3)
	ctx := context.Background()
	in := inventory.SaleInput{ProductID: f.product.ID, Quantity: 2, RequestID: "pos-42"}

	first, err := f.uc.RecordSale(ctx, in)
	require.NoError(t, err)
	second, err := f.uc.RecordSale(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.EqualValues(t, 8, f.stock(t), "el stock se descuenta una sola vez")
	assert.EqualValues(t, 1, f.count(t, repository.TableVentas))

	_, err = f.uc.RecordSale(ctx, inventory.SaleInput{ProductID: f.product.ID, Quantity: 5, RequestID: "pos-42"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRecordSale_ConcurrenciaNoSobrevende(t *testing.T) {
	f := newFixture(t, 10, "2.00", nil, 3)
	ctx := context.Background()

	var wg sync.WaitGroup
	var ok, insufficient atomic.Int32
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.RecordSale(ctx, inventory.SaleInput{ProductID: f.product.ID, Quantity: 1})
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, domain.ErrInsufficientStock):
				insufficient.Add(1)
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 10, ok.Load())
	assert.EqualValues(t, 15, insufficient.Load())
	assert.Zero(t, f.stock(t))
	assert.EqualValues(t, 10, f.count(t, repository.TableVentas))
}

func TestRecordSale_ReintentaAnteConflicto(t *testing.T) {
	var hits atomic.Int32
	wrap := func(r inventory.TxRunner) inventory.TxRunner {
		return wrapRunner{inner: r, wrap: func(p repository.ProductRepository) repository.ProductRepository {
			return conflictOnce{ProductRepository: p, hits: &hits}
		}}
	}

	f := newFixture(t, 10, "5.00", wrap, 1)
	_, err := f.uc.RecordSale(context.Background(), inventory.SaleInput{ProductID: f.product.ID, Quantity: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 9, f.stock(t))
	assert.EqualValues(t, 1, f.count(t, repository.TableVentas), "el intento fallido no deja registro")
}

func TestRecordSale_SinReintentosDevuelveConflicto(t *testing.T) {
	var hits atomic.Int32
	wrap := func(r inventory.TxRunner) inventory.TxRunner {
		return wrapRunner{inner: r, wrap: func(p repository.ProductRepository) repository.ProductRepository {
			return conflictOnce{ProductRepository: p, hits: &hits}
		}}
	}

	f := newFixture(t, 10, "5.00", wrap, 0)
	_, err := f.uc.RecordSale(context.Background(), inventory.SaleInput{ProductID: f.product.ID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualValues(t, 10, f.stock(t))
}

// ──────────────────────────────────────────────────────────────────────────────
// Compras
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordPurchase_SumaStockYCalculaTotal(t *testing.T) {
	f := newFixture(t, 7, "5.00", nil, 3)

	purchase, err := f.uc.RecordPurchase(context.Background(), inventory.PurchaseInput{
		ProductID: f.product.ID, SupplierID: f.supplier.ID, Quantity: 20, UnitPrice: price("4.50"),
	})
	require.NoError(t, err)

	assert.EqualValues(t, 27, f.stock(t))
	assert.True(t, decimal.RequireFromString("90.00").Equal(purchase.Total))
	assert.Equal(t, f.supplier.ID, purchase.SupplierID)
}

func TestRecordPurchase_CamposFaltantes(t *testing.T) {
	f := newFixture(t, 7, "5.00", nil, 3)

	_, err := f.uc.RecordPurchase(context.Background(), inventory.PurchaseInput{
		ProductID: f.product.ID, Quantity: 0, UnitPrice: price("0"),
	})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"supplier_id", "quantity", "unit_price"}, vErr.Fields)
	assert.EqualValues(t, 7, f.stock(t))
}

func TestRecordPurchase_PrecioConMasDeDosDecimales(t *testing.T) {
	f := newFixture(t, 7, "5.00", nil, 3)

	_, err := f.uc.RecordPurchase(context.Background(), inventory.PurchaseInput{
		ProductID: f.product.ID, SupplierID: f.supplier.ID, Quantity: 20, UnitPrice: price("4.555"),
	})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"unit_price"}, vErr.Fields)
	assert.EqualValues(t, 7, f.stock(t))
	assert.Zero(t, f.count(t, repository.TableCompras))

	// el mismo importe con dos decimales se acepta y el reintento no choca
	in := inventory.PurchaseInput{
		ProductID: f.product.ID, SupplierID: f.supplier.ID, Quantity: 20, UnitPrice: price("4.56"), RequestID: "compra-1",
	}
	first, err := f.uc.RecordPurchase(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("91.20").Equal(first.Total))
	again, err := f.uc.RecordPurchase(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.EqualValues(t, 27, f.stock(t))
}

func TestRecordPurchase_ProveedorInexistente(t *testing.T) {
	f := newFixture(t, 7, "5.00", nil, 3)

	_, err := f.uc.RecordPurchase(context.Background(), inventory.PurchaseInput{
		ProductID: f.product.ID, SupplierID: 404, Quantity: 1, UnitPrice: price("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, f.count(t, repository.TableCompras))
}

func TestRecordPurchase_FalloDePersistenciaNoDejaCompra(t *testing.T) {
	f := newFixture(t, 7, "5.00", func(r inventory.TxRunner) inventory.TxRunner {
		return wrapRunner{inner: r, wrap: func(p repository.ProductRepository) repository.ProductRepository {
			return failingStock{p}
		}}
	}, 3)

	_, err := f.uc.RecordPurchase(context.Background(), inventory.PurchaseInput{
		ProductID: f.product.ID, SupplierID: f.supplier.ID, Quantity: 3, UnitPrice: price("2"),
	})
	require.ErrorIs(t, err, domain.ErrPersistence)
	assert.EqualValues(t, 7, f.stock(t))
	assert.Zero(t, f.count(t, repository.TableCompras))
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales y consulta
// ──────────────────────────────────────────────────────────────────────────────

func TestTotales(t *testing.T) {
	f := newFixture(t, 10, "2.50", nil, 3)
	ctx := context.Background()

	_, err := f.uc.RecordSale(ctx, inventory.SaleInput{ProductID: f.product.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = f.uc.RecordSale(ctx, inventory.SaleInput{ProductID: f.product.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = f.uc.RecordPurchase(ctx, inventory.PurchaseInput{
		ProductID: f.product.ID, SupplierID: f.supplier.ID, Quantity: 4, UnitPrice: price("1.10"),
	})
	require.NoError(t, err)

	sold, err := f.uc.TotalSold(ctx)
	require.NoError(t, err)
	assert.Equal(t, "7.50", sold.StringFixed(2))

	bought, err := f.uc.TotalPurchased(ctx)
	require.NoError(t, err)
	assert.Equal(t, "4.40", bought.StringFixed(2))
}

func TestGetSale(t *testing.T) {
	f := newFixture(t, 10, "3.00", nil, 3)
	ctx := context.Background()

	sale, err := f.uc.RecordSale(ctx, inventory.SaleInput{ProductID: f.product.ID, Quantity: 1})
	require.NoError(t, err)

	got, product, err := f.uc.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.ID, got.ID)
	assert.Equal(t, f.product.Name, product.Name)

	_, _, err = f.uc.GetSale(ctx, 12345)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
