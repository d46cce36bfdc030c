package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-pos/internal/domain/entity"
)

// ReceiptData datos que el generador necesita para el comprobante de una venta.
// Product puede ser nil si el producto se eliminó después de la venta.
type ReceiptData struct {
	StoreName string
	Sale      *entity.Sale
	Product   *entity.Product
}

// ReceiptGenerator puerto de salida hacia el motor de PDF.
type ReceiptGenerator interface {
	GenerateSaleReceipt(ctx context.Context, data ReceiptData) ([]byte, error)
}

// ReceiptUseCase genera el comprobante PDF de una venta registrada.
type ReceiptUseCase struct {
	ledger    *StockLedgerUseCase
	generator ReceiptGenerator
	storeName string
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(ledger *StockLedgerUseCase, generator ReceiptGenerator, storeName string) *ReceiptUseCase {
	return &ReceiptUseCase{ledger: ledger, generator: generator, storeName: storeName}
}

// SaleReceipt devuelve el PDF y un nombre de archivo sugerido.
// domain.ErrNotFound si la venta no existe.
func (uc *ReceiptUseCase) SaleReceipt(ctx context.Context, saleID int64) ([]byte, string, error) {
	sale, product, err := uc.ledger.GetSale(ctx, saleID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateSaleReceipt(ctx, ReceiptData{
		StoreName: uc.storeName,
		Sale:      sale,
		Product:   product,
	})
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generar PDF: %w", err)
	}
	return pdf, fmt.Sprintf("venta-%d.pdf", sale.ID), nil
}
