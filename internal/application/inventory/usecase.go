package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
	"github.com/jhoicas/inventario-pos/pkg/logger"
)

// StockLedgerUseCase registra ventas y compras junto con el cambio de stock del producto.
// Registro y stock se escriben en la misma transacción: ambos se aplican o ninguno.
// La fila del producto se bloquea (SELECT FOR UPDATE) y el stock se actualiza con
// compare-and-set; ante conflicto se reintenta releyendo la fila.
type StockLedgerUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	maxRetries   int
	log          *logger.Logger
	now          func() time.Time
}

// Options parámetros opcionales del caso de uso.
type Options struct {
	MaxRetries int
	Logger     *logger.Logger
	Now        func() time.Time
}

// NewStockLedgerUseCase construye el caso de uso.
func NewStockLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	opts Options,
) *StockLedgerUseCase {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	return &StockLedgerUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		saleRepo:     saleRepo,
		purchaseRepo: purchaseRepo,
		maxRetries:   opts.MaxRetries,
		log:          opts.Logger.Component("inventory"),
		now:          opts.Now,
	}
}

// SaleInput entrada para RecordSale.
type SaleInput struct {
	ProductID int64
	Quantity  int64
	RequestID string // vacío = se genera uno nuevo
}

// PurchaseInput entrada para RecordPurchase.
type PurchaseInput struct {
	ProductID  int64
	SupplierID int64
	Quantity   int64
	UnitPrice  *decimal.Decimal
	RequestID  string
}

// RecordSale descuenta Quantity del stock y registra la venta con Total = Quantity × Price.
// Errores: ValidationError, ErrNotFound, ErrInsufficientStock, ErrDuplicate (RequestID reusado
// con otros datos) o un error de persistencia. Repetir un RequestID devuelve la venta original.
func (uc *StockLedgerUseCase) RecordSale(ctx context.Context, in SaleInput) (*entity.Sale, error) {
	var missing []string
	if in.ProductID <= 0 {
		missing = append(missing, "product_id")
	}
	if in.Quantity <= 0 {
		missing = append(missing, "quantity")
	}
	if err := domain.NewValidationError(missing...); err != nil {
		return nil, err
	}
	requestID := in.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	var sale *entity.Sale
	err := uc.withRetry(ctx, func() error {
		return uc.txRunner.Run(ctx, func(
			productRepo repository.ProductRepository,
			saleRepo repository.SaleRepository,
			_ repository.PurchaseRepository,
		) error {
			prev, err := saleRepo.GetByRequestID(ctx, requestID)
			if err != nil {
				return err
			}
			if prev != nil {
				if prev.ProductID != in.ProductID || prev.Quantity != in.Quantity {
					return domain.ErrDuplicate
				}
				sale = prev
				return nil
			}

			product, err := productRepo.GetForUpdate(ctx, in.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if in.Quantity > product.Stock {
				return domain.ErrInsufficientStock
			}

			s := &entity.Sale{
				RequestID: requestID,
				ProductID: product.ID,
				Quantity:  in.Quantity,
				UnitPrice: product.Price,
				Total:     product.Price.Mul(decimal.NewFromInt(in.Quantity)),
				Date:      uc.now(),
			}
			// Registro primero, stock después; la tx los confirma juntos.
			if err := saleRepo.Create(ctx, s); err != nil {
				return err
			}
			if err := productRepo.UpdateStock(ctx, product.ID, product.Stock, product.Stock-in.Quantity); err != nil {
				return err
			}
			sale = s
			return nil
		})
	})
	if err != nil {
		uc.logFailure(err, "venta", in.ProductID, in.Quantity)
		return nil, err
	}
	uc.log.Info().
		Int64("venta_id", sale.ID).
		Int64("product_id", sale.ProductID).
		Int64("cantidad", sale.Quantity).
		Str("total", sale.Total.StringFixed(2)).
		Msg("venta registrada")
	return sale, nil
}

// RecordPurchase suma Quantity al stock y registra la compra con Total = Quantity × UnitPrice.
// No hay tope de stock.
func (uc *StockLedgerUseCase) RecordPurchase(ctx context.Context, in PurchaseInput) (*entity.Purchase, error) {
	var missing []string
	if in.ProductID <= 0 {
		missing = append(missing, "product_id")
	}
	if in.SupplierID <= 0 {
		missing = append(missing, "supplier_id")
	}
	if in.Quantity <= 0 {
		missing = append(missing, "quantity")
	}
	if in.UnitPrice == nil || !in.UnitPrice.IsPositive() || !entity.ValidPrice(*in.UnitPrice) {
		missing = append(missing, "unit_price")
	}
	if err := domain.NewValidationError(missing...); err != nil {
		return nil, err
	}

	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	requestID := in.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}
	unitPrice := *in.UnitPrice

	var purchase *entity.Purchase
	err = uc.withRetry(ctx, func() error {
		return uc.txRunner.Run(ctx, func(
			productRepo repository.ProductRepository,
			_ repository.SaleRepository,
			purchaseRepo repository.PurchaseRepository,
		) error {
			prev, err := purchaseRepo.GetByRequestID(ctx, requestID)
			if err != nil {
				return err
			}
			if prev != nil {
				if prev.ProductID != in.ProductID || prev.SupplierID != in.SupplierID ||
					prev.Quantity != in.Quantity || !prev.UnitPrice.Equal(unitPrice) {
					return domain.ErrDuplicate
				}
				purchase = prev
				return nil
			}

			product, err := productRepo.GetForUpdate(ctx, in.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}

			p := &entity.Purchase{
				RequestID:  requestID,
				ProductID:  product.ID,
				SupplierID: supplier.ID,
				Quantity:   in.Quantity,
				UnitPrice:  unitPrice,
				Total:      unitPrice.Mul(decimal.NewFromInt(in.Quantity)),
				Date:       uc.now(),
			}
			if err := purchaseRepo.Create(ctx, p); err != nil {
				return err
			}
			if err := productRepo.UpdateStock(ctx, product.ID, product.Stock, product.Stock+in.Quantity); err != nil {
				return err
			}
			purchase = p
			return nil
		})
	})
	if err != nil {
		uc.logFailure(err, "compra", in.ProductID, in.Quantity)
		return nil, err
	}
	uc.log.Info().
		Int64("compra_id", purchase.ID).
		Int64("product_id", purchase.ProductID).
		Int64("proveedor_id", purchase.SupplierID).
		Int64("cantidad", purchase.Quantity).
		Str("total", purchase.Total.StringFixed(2)).
		Msg("compra registrada")
	return purchase, nil
}

// GetSale obtiene una venta y su producto (para el comprobante).
func (uc *StockLedgerUseCase) GetSale(ctx context.Context, id int64) (*entity.Sale, *entity.Product, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if sale == nil {
		return nil, nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(ctx, sale.ProductID)
	if err != nil {
		return nil, nil, err
	}
	return sale, product, nil
}

// TotalSold suma de totales de todas las ventas.
func (uc *StockLedgerUseCase) TotalSold(ctx context.Context) (decimal.Decimal, error) {
	return uc.saleRepo.SumTotal(ctx)
}

// TotalPurchased suma de totales de todas las compras.
func (uc *StockLedgerUseCase) TotalPurchased(ctx context.Context) (decimal.Decimal, error) {
	return uc.purchaseRepo.SumTotal(ctx)
}

// withRetry repite fn mientras el compare-and-set de stock falle por conflicto.
func (uc *StockLedgerUseCase) withRetry(ctx context.Context, fn func() error) error {
	for attempt := 0; ; attempt++ {
		err := fn()
		if !errors.Is(err, domain.ErrConflict) || attempt >= uc.maxRetries {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		uc.log.Debug().Int("intento", attempt+1).Msg("conflicto de stock, reintentando")
	}
}

func (uc *StockLedgerUseCase) logFailure(err error, kind string, productID, quantity int64) {
	ev := uc.log.Warn()
	if errors.Is(err, domain.ErrPersistence) {
		ev = uc.log.Error()
	}
	ev.Err(err).
		Str("tipo", kind).
		Int64("product_id", productID).
		Int64("cantidad", quantity).
		Msg("movimiento rechazado")
}
