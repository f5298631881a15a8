package settlement

import (
	"strconv"
	"strings"

	"stockroom-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles settlement and earnings handlers.
type Handlers struct {
	Service *Service
}

type settleRequest struct {
	Item      string `json:"item"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unit_price"`
}

// Settle POST /api/v1/sales/settle (admin; the manual-sale path)
func (h *Handlers) Settle(c *fiber.Ctx) error {
	var req settleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	h.Service.State.Mu.Lock()
	defer h.Service.State.Mu.Unlock()

	res, err := h.Service.Settle(c.Context(), SettleInput{
		Item:      req.Item,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Sale settled", res, response.PersistMeta(res.Persisted))
}

// Balance GET /api/v1/earnings/:who
func (h *Handlers) Balance(c *fiber.Ctx) error {
	who := c.Params("who")
	if who == "" {
		return response.Error(c, "Contributor is required", fiber.StatusBadRequest, nil)
	}

	h.Service.State.Mu.Lock()
	defer h.Service.State.Mu.Unlock()

	return response.Success(c, "Earnings balance", fiber.Map{
		"contributor": who,
		"balance":     h.Service.Balance(who),
	}, nil)
}

type payoutRequest struct {
	Contributor string `json:"contributor"`
	Amount      string `json:"amount"` // positive integer (commas allowed) or "all"
}

// Payout POST /api/v1/earnings/payout
func (h *Handlers) Payout(c *fiber.Ctx) error {
	var req payoutRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	all := strings.EqualFold(strings.TrimSpace(req.Amount), "all")
	amount := 0
	if !all {
		cleaned := strings.NewReplacer(",", "", " ", "").Replace(req.Amount)
		n, err := strconv.Atoi(cleaned)
		if err != nil {
			return response.Error(c, "Amount must be a positive number or 'all'", fiber.StatusBadRequest, nil)
		}
		amount = n
	}

	h.Service.State.Mu.Lock()
	defer h.Service.State.Mu.Unlock()

	res, err := h.Service.Payout(c.Context(), req.Contributor, amount, all)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Payout processed", res, response.PersistMeta(res.Persisted))
}
