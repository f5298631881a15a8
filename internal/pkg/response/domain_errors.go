package response

import (
	"errors"

	"stockroom-backend/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// DomainError maps the ledger error taxonomy onto HTTP codes. Validation
// errors are caller errors (400), stock/balance shortfalls are conflicts
// (409), and a parse failure on ingestion is 422 so senders can tell it apart
// from a settlement failure.
func DomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidItem),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidContributor),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrEmptyBasket):
		return Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrDuplicateDelivery):
		return Error(c, err.Error(), fiber.StatusConflict, nil)
	case errors.Is(err, domain.ErrBasketNotFound):
		return Error(c, err.Error(), fiber.StatusNotFound, nil)
	case errors.Is(err, domain.ErrParseFailure):
		return Error(c, err.Error(), fiber.StatusUnprocessableEntity, nil)
	default:
		return Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
}
