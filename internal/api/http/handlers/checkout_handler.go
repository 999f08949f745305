package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cuencos-cuarzo/boletos/internal/api/dto"
	"github.com/cuencos-cuarzo/boletos/internal/domain"
	"github.com/cuencos-cuarzo/boletos/internal/observability"
	"github.com/cuencos-cuarzo/boletos/internal/service"
	apperrors "github.com/cuencos-cuarzo/boletos/pkg/util"
)

// CheckoutHandler opens payment sessions.
type CheckoutHandler struct {
	service *service.CheckoutService
}

// NewCheckoutHandler constructs handler.
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: checkoutService}
}

// CreateCheckoutSession POST /create-checkout-session.
func (h *CheckoutHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	var req dto.CreateCheckoutSessionRequest
	if err := c.BodyParser(&req); err != nil {
		// unparseable bodies carry no fields
		req = dto.CreateCheckoutSessionRequest{}
	}

	res, err := h.service.CreateCheckoutSession(c.UserContext(), domain.PurchaseIntent{Name: req.Name, Email: req.Email})
	if err != nil {
		observability.MarkError(c, apperrors.CodeOf(err))
		if apperrors.IsClientError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msgMissingBuyerFields})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: msgCheckoutFailed})
	}
	return c.JSON(dto.CreateCheckoutSessionResponse{URL: res.RedirectURL})
}
