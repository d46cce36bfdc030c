package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-pos/internal/application/dashboard"
	"github.com/jhoicas/inventario-pos/internal/application/inventory"
	"github.com/jhoicas/inventario-pos/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	SupplierUC    *usecase.SupplierUseCase
	UserUC        *usecase.UserUseCase
	CategoryUC    *usecase.CategoryUseCase
	Ledger        *inventory.StockLedgerUseCase
	Receipt       *inventory.ReceiptUseCase
	DashboardUC   *dashboard.DashboardUseCase
	ActivityLimit int
}

type crudHandler interface {
	Create(c *fiber.Ctx) error
	List(c *fiber.Ctx) error
	GetByID(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

func registerCRUD(r fiber.Router, h crudHandler) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/:id", h.GetByID)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	registerCRUD(api.Group("/products"), NewProductHandler(deps.ProductUC))
	registerCRUD(api.Group("/warehouses"), NewWarehouseHandler(deps.WarehouseUC))
	registerCRUD(api.Group("/suppliers"), NewSupplierHandler(deps.SupplierUC))
	registerCRUD(api.Group("/users"), NewUserHandler(deps.UserUC))
	registerCRUD(api.Group("/categories"), NewCategoryHandler(deps.CategoryUC))

	// Punto de venta y compras
	ledger := NewLedgerHandler(deps.Ledger, deps.Receipt)
	sales := api.Group("/sales")
	sales.Post("/", ledger.RecordSale)
	sales.Get("/total", ledger.TotalSold)
	sales.Get("/:id/receipt", ledger.SaleReceipt)
	purchases := api.Group("/purchases")
	purchases.Post("/", ledger.RecordPurchase)
	purchases.Get("/total", ledger.TotalPurchased)

	dash := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ActivityLimit)
	dash.Get("/counts", dashboardHandler.Counts)
	dash.Get("/activity", dashboardHandler.Activity)
}
