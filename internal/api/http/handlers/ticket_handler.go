package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cuencos-cuarzo/boletos/internal/observability"
	"github.com/cuencos-cuarzo/boletos/internal/service"
	apperrors "github.com/cuencos-cuarzo/boletos/pkg/util"
)

// TicketHandler issues tickets for paid sessions.
type TicketHandler struct {
	service *service.TicketService
}

// NewTicketHandler constructs handler.
func NewTicketHandler(ticketService *service.TicketService) *TicketHandler {
	return &TicketHandler{service: ticketService}
}

// SendTicket GET /enviar-boleto?session_id=.
// Every downstream failure gets the same message.
func (h *TicketHandler) SendTicket(c *fiber.Ctx) error {
	c.Type("txt", "utf-8")

	_, err := h.service.IssueTicket(c.UserContext(), c.Query("session_id"))
	if err != nil {
		if apperrors.IsClientError(err) {
			observability.MarkError(c, apperrors.CodeInvalidInput)
			return c.Status(fiber.StatusBadRequest).SendString(msgMissingSessionID)
		}
		observability.MarkError(c, apperrors.CodeIssuanceFailed)
		return c.Status(fiber.StatusInternalServerError).SendString(msgTicketFailed)
	}
	return c.SendString(msgTicketSent)
}
