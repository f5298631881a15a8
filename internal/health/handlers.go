package health

import (
	"time"

	"stockroom-backend/internal/middleware"
	"stockroom-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const serviceName = "stockroom-api"

// Handlers serves the health endpoints. AdminKey guards the stats reset;
// empty disables it.
type Handlers struct {
	Rdb      *redis.Client
	DB       DBPinger
	AdminKey string
}

// Live GET /health
func (h *Handlers) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "service": serviceName})
}

// JSON GET /health/json
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := CollectHealth(c.Context(), h.Rdb, h.DB)
	return c.JSON(fiber.Map{
		"service":      serviceName,
		"status":       result.Status,
		"runtime":      result.Runtime,
		"traffic":      result.Traffic,
		"dependencies": result.Dependencies,
	})
}

// Reset GET /health/reset?key=...
// Clears the traffic counters and restarts the uptime clock.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	if h.AdminKey == "" || c.Query("key") != h.AdminKey {
		return response.Error(c, "Unauthorized", fiber.StatusForbidden, nil)
	}
	if h.Rdb == nil {
		return response.Error(c, "Redis is not configured", fiber.StatusServiceUnavailable, nil)
	}

	ctx := c.Context()
	h.Rdb.Del(ctx,
		middleware.KeyReqTotal,
		middleware.KeyReqErrors,
		middleware.KeyResTime,
		middleware.KeyResCount,
	)
	h.Rdb.Set(ctx, middleware.KeyStartTime, time.Now().UnixMilli(), 0)

	return response.Success(c, "Stats reset successfully", nil, nil)
}
