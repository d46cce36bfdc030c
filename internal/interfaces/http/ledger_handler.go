package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/application/inventory"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
)

// LedgerHandler punto de venta y compras: las operaciones que mueven stock.
type LedgerHandler struct {
	uc      *inventory.StockLedgerUseCase
	receipt *inventory.ReceiptUseCase
}

// NewLedgerHandler construye el handler. receipt puede ser nil (sin comprobantes PDF).
func NewLedgerHandler(uc *inventory.StockLedgerUseCase, receipt *inventory.ReceiptUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc, receipt: receipt}
}

// RecordSale godoc
// @Summary      Registrar venta
// @Description  Descuenta stock y registra la venta en una sola transacción.
// @Description  request_id opcional hace la operación idempotente.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "product_id, quantity, request_id"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *LedgerHandler) RecordSale(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	sale, err := h.uc.RecordSale(c.Context(), inventory.SaleInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		RequestID: in.RequestID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(sale))
}

// RecordPurchase godoc
// @Summary      Registrar compra
// @Description  Suma stock y registra la compra al proveedor en una sola transacción.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordPurchaseRequest  true  "product_id, supplier_id, quantity, unit_price, request_id"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *LedgerHandler) RecordPurchase(c *fiber.Ctx) error {
	var in dto.RecordPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	p, err := h.uc.RecordPurchase(c.Context(), inventory.PurchaseInput{
		ProductID:  in.ProductID,
		SupplierID: in.SupplierID,
		Quantity:   in.Quantity,
		UnitPrice:  in.UnitPrice,
		RequestID:  in.RequestID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPurchaseResponse(p))
}

// TotalSold godoc
// @Summary      Total vendido
// @Tags         sales
// @Produce      json
// @Success      200  {object}  dto.TotalResponse
// @Router       /api/sales/total [get]
func (h *LedgerHandler) TotalSold(c *fiber.Ctx) error {
	total, err := h.uc.TotalSold(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.TotalResponse{Total: total.Round(2)})
}

// TotalPurchased godoc
// @Summary      Total comprado
// @Tags         purchases
// @Produce      json
// @Success      200  {object}  dto.TotalResponse
// @Router       /api/purchases/total [get]
func (h *LedgerHandler) TotalPurchased(c *fiber.Ctx) error {
	total, err := h.uc.TotalPurchased(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.TotalResponse{Total: total.Round(2)})
}

// SaleReceipt godoc
// @Summary      Comprobante PDF de una venta
// @Tags         sales
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *LedgerHandler) SaleReceipt(c *fiber.Ctx) error {
	if h.receipt == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_IMPLEMENTED", Message: "comprobantes no disponibles"})
	}
	id, ok, err := parseID(c)
	if !ok {
		return err
	}
	pdf, filename, err := h.receipt.SaleReceipt(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(pdf)
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:        s.ID,
		RequestID: s.RequestID,
		ProductID: s.ProductID,
		Quantity:  s.Quantity,
		UnitPrice: s.UnitPrice,
		Total:     s.Total,
		Date:      s.Date,
		Message:   fmt.Sprintf("Venta de %d unidades registrada por $%s.", s.Quantity, s.Total.StringFixed(2)),
	}
}

func toPurchaseResponse(p *entity.Purchase) dto.PurchaseResponse {
	return dto.PurchaseResponse{
		ID:         p.ID,
		RequestID:  p.RequestID,
		ProductID:  p.ProductID,
		SupplierID: p.SupplierID,
		Quantity:   p.Quantity,
		UnitPrice:  p.UnitPrice,
		Total:      p.Total,
		Date:       p.Date,
		Message:    "Compra registrada y stock actualizado.",
	}
}
