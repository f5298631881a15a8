package stock

import (
	"stockroom-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles stock handlers. Each handler holds the aggregate mutex for
// the duration of the call; the services themselves do no locking.
type Handlers struct {
	Service *Service
}

type addRequest struct {
	Item        string `json:"item"`
	Quantity    int    `json:"quantity"`
	Contributor string `json:"contributor"`
	Price       *int   `json:"price"`
}

// Add POST /api/v1/stock/add
func (h *Handlers) Add(c *fiber.Ctx) error {
	var req addRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	h.Service.State.Mu.Lock()
	defer h.Service.State.Mu.Unlock()

	res, err := h.Service.Add(c.Context(), AddInput{
		Item:        req.Item,
		Quantity:    req.Quantity,
		Contributor: req.Contributor,
		Price:       req.Price,
	})
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.SuccessCreated(c, "Stock added", res, response.PersistMeta(res.Persisted))
}

type removeRequest struct {
	Item        string `json:"item"`
	Quantity    int    `json:"quantity"`
	Contributor string `json:"contributor"`
}

// Remove POST /api/v1/stock/remove
func (h *Handlers) Remove(c *fiber.Ctx) error {
	var req removeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	h.Service.State.Mu.Lock()
	defer h.Service.State.Mu.Unlock()

	res, err := h.Service.Remove(c.Context(), req.Item, req.Quantity, req.Contributor)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Stock removed", res, response.PersistMeta(res.Persisted))
}

type setRequest struct {
	Item        string `json:"item"`
	Quantity    int    `json:"quantity"`
	Contributor string `json:"contributor"`
	Price       *int   `json:"price"`
}

// Set POST /api/v1/stock/set (admin)
func (h *Handlers) Set(c *fiber.Ctx) error {
	var req setRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	h.Service.State.Mu.Lock()
	defer h.Service.State.Mu.Unlock()

	res, err := h.Service.Set(c.Context(), SetInput{
		Item:        req.Item,
		Quantity:    req.Quantity,
		Contributor: req.Contributor,
		Price:       req.Price,
	})
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Stock set", res, response.PersistMeta(res.Persisted))
}

type clearRequest struct {
	Item        string `json:"item"`
	Contributor string `json:"contributor"`
	Actor       string `json:"actor"`
}

// Clear POST /api/v1/stock/clear (admin)
func (h *Handlers) Clear(c *fiber.Ctx) error {
	var req clearRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	h.Service.State.Mu.Lock()
	defer h.Service.State.Mu.Unlock()

	res, err := h.Service.Clear(c.Context(), req.Item, req.Contributor, req.Actor)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Stock cleared", res, response.PersistMeta(res.Persisted))
}

// CatalogItems GET /api/v1/catalog/items
func (h *Handlers) CatalogItems(c *fiber.Ctx) error {
	h.Service.State.Mu.Lock()
	defer h.Service.State.Mu.Unlock()

	return response.Success(c, "Catalog", h.Service.State.Catalog.Items(), nil)
}

type priceChangeRequest struct {
	Item           string `json:"item"`
	Price          int    `json:"price"`
	UpdateExisting bool   `json:"update_existing"`
}

// ChangePrice PATCH /api/v1/catalog/price (admin)
func (h *Handlers) ChangePrice(c *fiber.Ctx) error {
	var req priceChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	h.Service.State.Mu.Lock()
	defer h.Service.State.Mu.Unlock()

	res, err := h.Service.ChangePrice(c.Context(), req.Item, req.Price, req.UpdateExisting)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Price changed", res, response.PersistMeta(res.Persisted))
}

// View GET /api/v1/stock/view
func (h *Handlers) View(c *fiber.Ctx) error {
	h.Service.State.Mu.Lock()
	defer h.Service.State.Mu.Unlock()

	return response.Success(c, "Current stock", h.Service.View(), nil)
}

// Contributor GET /api/v1/stock/contributor/:who
func (h *Handlers) Contributor(c *fiber.Ctx) error {
	who := c.Params("who")
	if who == "" {
		return response.Error(c, "Contributor is required", fiber.StatusBadRequest, nil)
	}

	h.Service.State.Mu.Lock()
	defer h.Service.State.Mu.Unlock()

	return response.Success(c, "Contributor summary", h.Service.Contributor(who), nil)
}
