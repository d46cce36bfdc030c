// migrate aplica el esquema SQL embebido (internal/infrastructure/postgres/migrations)
// sobre la base configurada por DATABASE_URL o DB_*.
//
// Uso: go run ./cmd/migrate
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/inventario-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-pos/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conectar a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Migración fallida: %v\n", err)
		os.Exit(1)
	}
	for _, name := range applied {
		fmt.Println("aplicado:", name)
	}
	fmt.Printf("Migración completa: %d scripts\n", len(applied))
}
