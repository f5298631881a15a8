package ingest

import (
	"stockroom-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles webhook ingestion handlers.
type Handlers struct {
	Service *Service
}

type saleWebhook struct {
	Content string `json:"content"`
}

// Sale POST /api/v1/webhooks/sale
// Accepts either {"content": "..."} or a raw text body; the delivery id comes
// from the X-Delivery-Id header when the sender provides one.
func (h *Handlers) Sale(c *fiber.Ctx) error {
	body := ""
	var req saleWebhook
	if err := c.BodyParser(&req); err == nil && req.Content != "" {
		body = req.Content
	} else {
		body = string(c.Body())
	}
	if body == "" {
		return response.Error(c, "Empty notification body", fiber.StatusBadRequest, nil)
	}

	h.Service.Settlement.State.Mu.Lock()
	defer h.Service.Settlement.State.Mu.Unlock()

	res, err := h.Service.Ingest(c.Context(), c.Get("X-Delivery-Id"), body)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Sale ingested", res, response.PersistMeta(res.Settlement.Persisted))
}
