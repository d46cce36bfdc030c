package memory

import (
	"context"

	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

var (
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.SupplierRepository  = (*SupplierRepo)(nil)
	_ repository.UserRepository      = (*UserRepo)(nil)
	_ repository.CategoryRepository  = (*CategoryRepo)(nil)
)

// ProductRepo productos en memoria.
type ProductRepo struct {
	s  *Store
	tx *tables
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.s.do(r.tx, func(t *tables) error {
		p.ID = t.nextID(repository.TableProducts)
		now := r.s.now()
		p.CreatedAt, p.UpdatedAt = now, now
		t.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.do(r.tx, func(t *tables) error {
		if p, ok := t.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: la transacción en memoria ya es exclusiva.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.s.do(r.tx, func(t *tables) error {
		cur, ok := t.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Name = p.Name
		cur.Price = p.Price
		cur.UpdatedAt = r.s.now()
		t.products[p.ID] = cur
		p.Stock, p.CreatedAt, p.UpdatedAt = cur.Stock, cur.CreatedAt, cur.UpdatedAt
		return nil
	})
}

func (r *ProductRepo) UpdateStock(_ context.Context, id, expected, newStock int64) error {
	return r.s.do(r.tx, func(t *tables) error {
		cur, ok := t.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		if cur.Stock != expected {
			return domain.ErrConflict
		}
		cur.Stock = newStock
		cur.UpdatedAt = r.s.now()
		t.products[id] = cur
		return nil
	})
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.s.do(r.tx, func(t *tables) error {
		out = sortedValues(t.products)
		return nil
	})
	return out, err
}

func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	return r.s.do(r.tx, func(t *tables) error {
		if _, ok := t.products[id]; !ok {
			return domain.ErrNotFound
		}
		for _, sale := range t.sales {
			if sale.ProductID == id {
				return domain.ErrInUse
			}
		}
		for _, pu := range t.purchases {
			if pu.ProductID == id {
				return domain.ErrInUse
			}
		}
		delete(t.products, id)
		return nil
	})
}

// WarehouseRepo bodegas en memoria.
type WarehouseRepo struct {
	s *Store
}

func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	return r.s.do(nil, func(t *tables) error {
		w.ID = t.nextID(repository.TableBodegas)
		t.warehouses[w.ID] = *w
		return nil
	})
}

func (r *WarehouseRepo) GetByID(_ context.Context, id int64) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.s.do(nil, func(t *tables) error {
		if w, ok := t.warehouses[id]; ok {
			out = &w
		}
		return nil
	})
	return out, err
}

func (r *WarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	return r.s.do(nil, func(t *tables) error {
		if _, ok := t.warehouses[w.ID]; !ok {
			return domain.ErrNotFound
		}
		t.warehouses[w.ID] = *w
		return nil
	})
}

func (r *WarehouseRepo) List(_ context.Context) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	err := r.s.do(nil, func(t *tables) error {
		out = sortedValues(t.warehouses)
		return nil
	})
	return out, err
}

func (r *WarehouseRepo) Delete(_ context.Context, id int64) error {
	return r.s.do(nil, func(t *tables) error {
		if _, ok := t.warehouses[id]; !ok {
			return domain.ErrNotFound
		}
		delete(t.warehouses, id)
		return nil
	})
}

// SupplierRepo proveedores en memoria.
type SupplierRepo struct {
	s *Store
}

func (r *SupplierRepo) Create(_ context.Context, sp *entity.Supplier) error {
	return r.s.do(nil, func(t *tables) error {
		sp.ID = t.nextID(repository.TableProveedores)
		t.suppliers[sp.ID] = *sp
		return nil
	})
}

func (r *SupplierRepo) GetByID(_ context.Context, id int64) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.s.do(nil, func(t *tables) error {
		if sp, ok := t.suppliers[id]; ok {
			out = &sp
		}
		return nil
	})
	return out, err
}

func (r *SupplierRepo) Update(_ context.Context, sp *entity.Supplier) error {
	return r.s.do(nil, func(t *tables) error {
		if _, ok := t.suppliers[sp.ID]; !ok {
			return domain.ErrNotFound
		}
		t.suppliers[sp.ID] = *sp
		return nil
	})
}

func (r *SupplierRepo) List(_ context.Context) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	err := r.s.do(nil, func(t *tables) error {
		out = sortedValues(t.suppliers)
		return nil
	})
	return out, err
}

func (r *SupplierRepo) Delete(_ context.Context, id int64) error {
	return r.s.do(nil, func(t *tables) error {
		if _, ok := t.suppliers[id]; !ok {
			return domain.ErrNotFound
		}
		for _, pu := range t.purchases {
			if pu.SupplierID == id {
				return domain.ErrInUse
			}
		}
		delete(t.suppliers, id)
		return nil
	})
}

// UserRepo usuarios en memoria.
type UserRepo struct {
	s *Store
}

// Create inserta el usuario. Email repetido → domain.ErrDuplicate, igual que el UNIQUE de usuarios.email.
func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.s.do(nil, func(t *tables) error {
		if emailTaken(t, u.Email, 0) {
			return domain.ErrDuplicate
		}
		u.ID = t.nextID(repository.TableUsuarios)
		u.CreatedAt = r.s.now()
		t.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	err := r.s.do(nil, func(t *tables) error {
		if u, ok := t.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	return r.s.do(nil, func(t *tables) error {
		cur, ok := t.users[u.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if emailTaken(t, u.Email, u.ID) {
			return domain.ErrDuplicate
		}
		u.CreatedAt = cur.CreatedAt
		t.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	err := r.s.do(nil, func(t *tables) error {
		out = sortedValues(t.users)
		return nil
	})
	return out, err
}

func (r *UserRepo) Delete(_ context.Context, id int64) error {
	return r.s.do(nil, func(t *tables) error {
		if _, ok := t.users[id]; !ok {
			return domain.ErrNotFound
		}
		delete(t.users, id)
		return nil
	})
}

// emailTaken indica si otro usuario (distinto de self) ya usa el email.
func emailTaken(t *tables, email string, self int64) bool {
	for id, u := range t.users {
		if id != self && u.Email == email {
			return true
		}
	}
	return false
}

// CategoryRepo categorías en memoria.
type CategoryRepo struct {
	s *Store
}

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.s.do(nil, func(t *tables) error {
		c.ID = t.nextID("categorias")
		t.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	var out *entity.Category
	err := r.s.do(nil, func(t *tables) error {
		if c, ok := t.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	return r.s.do(nil, func(t *tables) error {
		if _, ok := t.categories[c.ID]; !ok {
			return domain.ErrNotFound
		}
		t.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.s.do(nil, func(t *tables) error {
		out = sortedValues(t.categories)
		return nil
	})
	return out, err
}

func (r *CategoryRepo) Delete(_ context.Context, id int64) error {
	return r.s.do(nil, func(t *tables) error {
		if _, ok := t.categories[id]; !ok {
			return domain.ErrNotFound
		}
		delete(t.categories, id)
		return nil
	})
}
