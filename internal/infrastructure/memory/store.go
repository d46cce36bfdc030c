// Package memory implementa los puertos de persistencia en memoria del proceso.
// Se usa para categorías, para STORAGE_DRIVER=memory y en tests.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

type tables struct {
	products   map[int64]entity.Product
	warehouses map[int64]entity.Warehouse
	suppliers  map[int64]entity.Supplier
	users      map[int64]entity.User
	categories map[int64]entity.Category
	sales      map[int64]entity.Sale
	purchases  map[int64]entity.Purchase
	seq        map[string]int64
}

func newTables() *tables {
	return &tables{
		products:   make(map[int64]entity.Product),
		warehouses: make(map[int64]entity.Warehouse),
		suppliers:  make(map[int64]entity.Supplier),
		users:      make(map[int64]entity.User),
		categories: make(map[int64]entity.Category),
		sales:      make(map[int64]entity.Sale),
		purchases:  make(map[int64]entity.Purchase),
		seq:        make(map[string]int64),
	}
}

func (t *tables) clone() *tables {
	return &tables{
		products:   maps.Clone(t.products),
		warehouses: maps.Clone(t.warehouses),
		suppliers:  maps.Clone(t.suppliers),
		users:      maps.Clone(t.users),
		categories: maps.Clone(t.categories),
		sales:      maps.Clone(t.sales),
		purchases:  maps.Clone(t.purchases),
		seq:        maps.Clone(t.seq),
	}
}

// nextID asigna IDs crecientes por tabla; nunca se reutilizan.
func (t *tables) nextID(table string) int64 {
	t.seq[table]++
	return t.seq[table]
}

// Store contenedor de tablas en memoria. Cada instancia es independiente.
type Store struct {
	mu  sync.Mutex
	t   *tables
	now func() time.Time
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{t: newTables(), now: time.Now}
}

// SetClock reemplaza el reloj usado para fechas asignadas por el almacén.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// do ejecuta fn sobre las tablas; si tx no es nil ya estamos dentro de Run y el lock está tomado.
func (s *Store) do(tx *tables, fn func(t *tables) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.t)
}

// Repositorios fuera de transacción.

func (s *Store) Products() *ProductRepo     { return &ProductRepo{s: s} }
func (s *Store) Warehouses() *WarehouseRepo { return &WarehouseRepo{s: s} }
func (s *Store) Suppliers() *SupplierRepo   { return &SupplierRepo{s: s} }
func (s *Store) Users() *UserRepo           { return &UserRepo{s: s} }
func (s *Store) Categories() *CategoryRepo  { return &CategoryRepo{s: s} }
func (s *Store) Sales() *SaleRepo           { return &SaleRepo{s: s} }
func (s *Store) Purchases() *PurchaseRepo   { return &PurchaseRepo{s: s} }
func (s *Store) Counter() *CountRepo        { return &CountRepo{s: s} }

// TxRunner ejecuta callbacks de forma atómica sobre el Store.
// Las transacciones se serializan y trabajan sobre una copia que solo se publica si fn no falla.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repos atados a la copia de trabajo; Commit si fn devuelve nil.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := r.s.t.clone()
	err := fn(
		&ProductRepo{s: r.s, tx: work},
		&SaleRepo{s: r.s, tx: work},
		&PurchaseRepo{s: r.s, tx: work},
	)
	if err != nil {
		return err
	}
	r.s.t = work
	return nil
}

// CountRepo implementa repository.CountRepository.
type CountRepo struct {
	s *Store
}

// Count devuelve el número de filas de la tabla.
func (r *CountRepo) Count(_ context.Context, table string) (int64, error) {
	var n int
	err := r.s.do(nil, func(t *tables) error {
		switch table {
		case repository.TableProducts:
			n = len(t.products)
		case repository.TableBodegas:
			n = len(t.warehouses)
		case repository.TableProveedores:
			n = len(t.suppliers)
		case repository.TableUsuarios:
			n = len(t.users)
		case repository.TableVentas:
			n = len(t.sales)
		case repository.TableCompras:
			n = len(t.purchases)
		default:
			return fmt.Errorf("tabla desconocida: %s", table)
		}
		return nil
	})
	return int64(n), err
}

// sortedValues devuelve copias ordenadas por ID ascendente (orden de inserción).
func sortedValues[T any](m map[int64]T) []*T {
	ids := slices.Sorted(maps.Keys(m))
	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		v := m[id]
		out = append(out, &v)
	}
	return out
}
