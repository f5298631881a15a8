package baskets

import (
	"stockroom-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles basket handlers.
type Handlers struct {
	Service *Service
}

type saveRequest struct {
	Owner string         `json:"owner"`
	Name  string         `json:"name"`
	Items map[string]int `json:"items"`
}

// Save POST /api/v1/baskets/save
func (h *Handlers) Save(c *fiber.Ctx) error {
	var req saveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if req.Name == "" {
		return response.Error(c, "Basket name is required", fiber.StatusBadRequest, nil)
	}

	h.Service.State.Mu.Lock()
	defer h.Service.State.Mu.Unlock()

	res, err := h.Service.Save(c.Context(), req.Owner, req.Name, req.Items)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.SuccessCreated(c, "Basket saved", res, response.PersistMeta(res.Persisted))
}

type applyRequest struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// Apply POST /api/v1/baskets/apply
func (h *Handlers) Apply(c *fiber.Ctx) error {
	var req applyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	h.Service.State.Mu.Lock()
	defer h.Service.State.Mu.Unlock()

	res, err := h.Service.Apply(c.Context(), req.Owner, req.Name)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Basket applied", res, response.PersistMeta(res.Persisted))
}

// Delete DELETE /api/v1/baskets/:owner/:name
func (h *Handlers) Delete(c *fiber.Ctx) error {
	owner := c.Params("owner")
	name := c.Params("name")

	h.Service.State.Mu.Lock()
	defer h.Service.State.Mu.Unlock()

	persisted, err := h.Service.Delete(c.Context(), owner, name)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Basket deleted", fiber.Map{"owner": owner, "name": name}, response.PersistMeta(persisted))
}

// List GET /api/v1/baskets/list/:owner
func (h *Handlers) List(c *fiber.Ctx) error {
	owner := c.Params("owner")
	if owner == "" {
		return response.Error(c, "Owner is required", fiber.StatusBadRequest, nil)
	}

	h.Service.State.Mu.Lock()
	defer h.Service.State.Mu.Unlock()

	return response.Success(c, "Baskets", h.Service.List(owner), nil)
}
