// Package dashboard contiene los casos de uso del panel principal: tarjetas con
// el número de registros por entidad y la actividad reciente de ventas y compras.
package dashboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
	"github.com/jhoicas/inventario-pos/pkg/logger"
)

// DefaultActivityLimit número de líneas de actividad si no se indica otro.
const DefaultActivityLimit = 5

// EmptyActivityMessage texto cuando no hay ventas ni compras.
const EmptyActivityMessage = "No hay actividad reciente."

// Card etiqueta visible y tabla que cuenta.
type Card struct {
	Label string
	Table string
}

// Cards tarjetas del dashboard en orden de presentación.
var Cards = []Card{
	{Label: "Productos", Table: repository.TableProducts},
	{Label: "Bodegas", Table: repository.TableBodegas},
	{Label: "Proveedores", Table: repository.TableProveedores},
	{Label: "Usuarios", Table: repository.TableUsuarios},
	{Label: "Punto de Venta", Table: repository.TableVentas},
	{Label: "Compras", Table: repository.TableCompras},
}

// DashboardUseCase arma los datos del dashboard. Nunca falla como un todo:
// una consulta que falla se registra y se muestra como 0 o sin actividad.
type DashboardUseCase struct {
	counter      repository.CountRepository
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	log          *logger.Logger
}

// NewDashboardUseCase construye el caso de uso. log nil equivale a un logger mudo.
func NewDashboardUseCase(
	counter repository.CountRepository,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	log *logger.Logger,
) *DashboardUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{
		counter:      counter,
		saleRepo:     saleRepo,
		purchaseRepo: purchaseRepo,
		log:          log.Component("dashboard"),
	}
}

// LoadCounts cuenta cada tabla en paralelo y devuelve las tarjetas en orden fijo.
func (uc *DashboardUseCase) LoadCounts(ctx context.Context) []dto.CountDTO {
	type countResult struct {
		idx int
		n   int64
		err error
	}

	ch := make(chan countResult, len(Cards))
	for i, card := range Cards {
		go func() {
			n, err := uc.counter.Count(ctx, card.Table)
			ch <- countResult{idx: i, n: n, err: err}
		}()
	}

	out := make([]dto.CountDTO, len(Cards))
	for i, card := range Cards {
		out[i] = dto.CountDTO{Label: card.Label, Table: card.Table}
	}
	for range Cards {
		r := <-ch
		if r.err != nil {
			uc.log.Warn().Err(r.err).Str("tabla", Cards[r.idx].Table).Msg("no se pudo contar registros")
			continue
		}
		out[r.idx].Value = r.n
	}
	return out
}

// LoadRecentActivity combina las últimas ventas y compras, más reciente primero.
// Con fecha igual, la venta va antes que la compra y luego el ID mayor.
func (uc *DashboardUseCase) LoadRecentActivity(ctx context.Context, limit int) *dto.RecentActivityDTO {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}

	type salesResult struct {
		sales []*entity.Sale
		err   error
	}
	type purchasesResult struct {
		purchases []*entity.Purchase
		err       error
	}
	salesCh := make(chan salesResult, 1)
	purchasesCh := make(chan purchasesResult, 1)

	go func() {
		s, err := uc.saleRepo.ListRecent(ctx, limit)
		salesCh <- salesResult{s, err}
	}()
	go func() {
		p, err := uc.purchaseRepo.ListRecent(ctx, limit)
		purchasesCh <- purchasesResult{p, err}
	}()

	sales := <-salesCh
	purchases := <-purchasesCh

	type entry struct {
		dto.ActivityDTO
		id int64
	}
	var entries []entry
	if sales.err != nil {
		uc.log.Warn().Err(sales.err).Msg("no se pudieron leer ventas recientes")
	} else {
		for _, s := range sales.sales {
			entries = append(entries, entry{id: s.ID, ActivityDTO: dto.ActivityDTO{
				Kind: dto.ActivitySale, ProductID: s.ProductID, Quantity: s.Quantity, Total: s.Total, Date: s.Date,
			}})
		}
	}
	if purchases.err != nil {
		uc.log.Warn().Err(purchases.err).Msg("no se pudieron leer compras recientes")
	} else {
		for _, p := range purchases.purchases {
			entries = append(entries, entry{id: p.ID, ActivityDTO: dto.ActivityDTO{
				Kind: dto.ActivityPurchase, ProductID: p.ProductID, Quantity: p.Quantity, Total: p.Total, Date: p.Date,
			}})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if a.Kind != b.Kind {
			return a.Kind == dto.ActivitySale
		}
		return a.id > b.id
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}

	res := &dto.RecentActivityDTO{Items: make([]dto.ActivityDTO, 0, len(entries))}
	for _, e := range entries {
		e.Line = activityLine(e.ActivityDTO)
		res.Items = append(res.Items, e.ActivityDTO)
	}
	if len(res.Items) == 0 {
		res.Empty = true
		res.Message = EmptyActivityMessage
	}
	return res
}

// activityLine ej: "Venta: Producto ID 1 - Cantidad 3 - Total $15.00".
func activityLine(a dto.ActivityDTO) string {
	prefix := "Venta"
	if a.Kind == dto.ActivityPurchase {
		prefix = "Compra"
	}
	return fmt.Sprintf("%s: Producto ID %d - Cantidad %d - Total $%s", prefix, a.ProductID, a.Quantity, a.Total.StringFixed(2))
}
