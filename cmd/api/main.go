package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/inventario-pos/internal/application/dashboard"
	"github.com/jhoicas/inventario-pos/internal/application/inventory"
	"github.com/jhoicas/inventario-pos/internal/application/usecase"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
	"github.com/jhoicas/inventario-pos/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/inventario-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-pos/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventario-pos/internal/interfaces/http"
	"github.com/jhoicas/inventario-pos/pkg/config"
	"github.com/jhoicas/inventario-pos/pkg/logger"
)

// repos agrupa los adaptadores de persistencia elegidos por STORAGE_DRIVER.
type repos struct {
	products   repository.ProductRepository
	warehouses repository.WarehouseRepository
	suppliers  repository.SupplierRepository
	users      repository.UserRepository
	sales      repository.SaleRepository
	purchases  repository.PurchaseRepository
	counter    repository.CountRepository
	txRunner   inventory.TxRunner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	var r repos
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := memory.NewStore()
		r = repos{
			products: store.Products(), warehouses: store.Warehouses(), suppliers: store.Suppliers(),
			users: store.Users(), sales: store.Sales(), purchases: store.Purchases(),
			counter: store.Counter(), txRunner: memory.NewTxRunner(store),
		}
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			applied, err := postgres.Migrate(ctx, pool)
			if err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Strs("scripts", applied).Msg("migraciones aplicadas")
		}
		r = repos{
			products:   postgres.NewProductRepository(pool),
			warehouses: postgres.NewWarehouseRepository(pool),
			suppliers:  postgres.NewSupplierRepository(pool),
			users:      postgres.NewUserRepository(pool),
			sales:      postgres.NewSaleRepository(pool),
			purchases:  postgres.NewPurchaseRepository(pool),
			counter:    postgres.NewCountRepository(pool),
			txRunner:   postgres.NewTxRunner(pool),
		}
	}

	// Las categorías viven siempre en memoria del proceso.
	categoryStore := memory.NewStore()
	for _, name := range []string{"Categoría ejemplo 1", "Categoría ejemplo 2"} {
		if err := categoryStore.Categories().Create(ctx, &entity.Category{Name: name}); err != nil {
			log.Fatal().Err(err).Msg("sembrar categorías")
		}
	}

	ledgerUC := inventory.NewStockLedgerUseCase(r.txRunner,
		r.products, r.suppliers, r.sales, r.purchases,
		inventory.Options{MaxRetries: cfg.Ledger.MaxRetries, Logger: log},
	)
	receiptUC := inventory.NewReceiptUseCase(ledgerUC, infrapdf.NewReceiptGenerator(), cfg.App.Name)

	app := httpRouter.NewApp(httpRouter.ServerConfig{
		AppName:     cfg.App.Name,
		SwaggerFile: "./docs/swagger.json",
		Logger:      log,
	}, httpRouter.RouterDeps{
		ProductUC:     usecase.NewProductUseCase(r.products),
		WarehouseUC:   usecase.NewWarehouseUseCase(r.warehouses),
		SupplierUC:    usecase.NewSupplierUseCase(r.suppliers),
		UserUC:        usecase.NewUserUseCase(r.users),
		CategoryUC:    usecase.NewCategoryUseCase(categoryStore.Categories()),
		Ledger:        ledgerUC,
		Receipt:       receiptUC,
		DashboardUC:   dashboard.NewDashboardUseCase(r.counter, r.sales, r.purchases, log),
		ActivityLimit: cfg.Dashboard.ActivityLimit,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
