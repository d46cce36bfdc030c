package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-pos/internal/application/dashboard"
)

// DashboardHandler maneja los endpoints del panel principal.
type DashboardHandler struct {
	uc           *dashboard.DashboardUseCase
	defaultLimit int
}

// NewDashboardHandler construye el handler. defaultLimit aplica cuando no llega ?limit.
func NewDashboardHandler(uc *dashboard.DashboardUseCase, defaultLimit int) *DashboardHandler {
	if defaultLimit <= 0 {
		defaultLimit = dashboard.DefaultActivityLimit
	}
	return &DashboardHandler{uc: uc, defaultLimit: defaultLimit}
}

// Counts godoc
// @Summary      Conteo de registros por entidad
// @Description  Una consulta que falla se muestra como 0.
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}  dto.CountDTO
// @Router       /api/dashboard/counts [get]
func (h *DashboardHandler) Counts(c *fiber.Ctx) error {
	return c.JSON(h.uc.LoadCounts(c.Context()))
}

// Activity godoc
// @Summary      Actividad reciente (ventas y compras)
// @Tags         dashboard
// @Produce      json
// @Param        limit  query  int  false  "Máximo de líneas"  default(5)
// @Success      200  {object}  dto.RecentActivityDTO
// @Router       /api/dashboard/activity [get]
func (h *DashboardHandler) Activity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", h.defaultLimit)
	if limit <= 0 {
		limit = h.defaultLimit
	}
	if limit > 100 {
		limit = 100
	}
	return c.JSON(h.uc.LoadRecentActivity(c.Context(), limit))
}
