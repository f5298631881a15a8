package reports

import (
	"stockroom-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles reporting handlers.
type Handlers struct {
	Service *Service
}

// History GET /api/v1/sales/history?limit=n
func (h *Handlers) History(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)

	h.Service.State.Mu.Lock()
	defer h.Service.State.Mu.Unlock()

	entries := h.Service.Recent(limit)
	return response.Success(c, "Activity history", entries, fiber.Map{
		"count":    len(entries),
		"retained": h.Service.State.History.Len(),
	})
}

// Analytics GET /api/v1/sales/analytics
func (h *Handlers) Analytics(c *fiber.Ctx) error {
	h.Service.State.Mu.Lock()
	defer h.Service.State.Mu.Unlock()

	return response.Success(c, "Inventory analytics", h.Service.Analytics(), nil)
}

// Export GET /api/v1/export (admin)
func (h *Handlers) Export(c *fiber.Ctx) error {
	h.Service.State.Mu.Lock()
	defer h.Service.State.Mu.Unlock()

	return response.Success(c, "Full snapshot", h.Service.Export(), nil)
}
