package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

var (
	_ repository.SaleRepository     = (*SaleRepo)(nil)
	_ repository.PurchaseRepository = (*PurchaseRepo)(nil)
)

// SaleRepo ventas en memoria.
type SaleRepo struct {
	s  *Store
	tx *tables
}

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	return r.s.do(r.tx, func(t *tables) error {
		sale.ID = t.nextID(repository.TableVentas)
		if sale.Date.IsZero() {
			sale.Date = r.s.now()
		}
		t.sales[sale.ID] = *sale
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.s.do(r.tx, func(t *tables) error {
		if v, ok := t.sales[id]; ok {
			out = &v
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) GetByRequestID(_ context.Context, requestID string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.s.do(r.tx, func(t *tables) error {
		for _, v := range t.sales {
			if v.RequestID == requestID {
				out = &v
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) ListRecent(_ context.Context, limit int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.s.do(r.tx, func(t *tables) error {
		out = sortedValues(t.sales)
		slices.SortStableFunc(out, func(a, b *entity.Sale) int {
			return cmp.Or(b.Date.Compare(a.Date), cmp.Compare(b.ID, a.ID))
		})
		if limit > 0 && len(out) > limit {
			out = out[:limit]
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) SumTotal(_ context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	err := r.s.do(r.tx, func(t *tables) error {
		for _, v := range t.sales {
			sum = sum.Add(v.Total)
		}
		return nil
	})
	return sum, err
}

// PurchaseRepo compras en memoria.
type PurchaseRepo struct {
	s  *Store
	tx *tables
}

func (r *PurchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	return r.s.do(r.tx, func(t *tables) error {
		p.ID = t.nextID(repository.TableCompras)
		if p.Date.IsZero() {
			p.Date = r.s.now()
		}
		t.purchases[p.ID] = *p
		return nil
	})
}

func (r *PurchaseRepo) GetByRequestID(_ context.Context, requestID string) (*entity.Purchase, error) {
	var out *entity.Purchase
	err := r.s.do(r.tx, func(t *tables) error {
		for _, v := range t.purchases {
			if v.RequestID == requestID {
				out = &v
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *PurchaseRepo) ListRecent(_ context.Context, limit int) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	err := r.s.do(r.tx, func(t *tables) error {
		out = sortedValues(t.purchases)
		slices.SortStableFunc(out, func(a, b *entity.Purchase) int {
			return cmp.Or(b.Date.Compare(a.Date), cmp.Compare(b.ID, a.ID))
		})
		if limit > 0 && len(out) > limit {
			out = out[:limit]
		}
		return nil
	})
	return out, err
}

func (r *PurchaseRepo) SumTotal(_ context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	err := r.s.do(r.tx, func(t *tables) error {
		for _, v := range t.purchases {
			sum = sum.Add(v.Total)
		}
		return nil
	})
	return sum, err
}
