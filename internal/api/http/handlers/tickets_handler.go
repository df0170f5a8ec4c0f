package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aidesk/ticket-backend/internal/api/dto"
	"github.com/aidesk/ticket-backend/internal/auth"
	"github.com/aidesk/ticket-backend/internal/domain"
	"github.com/aidesk/ticket-backend/internal/repository"
	"github.com/aidesk/ticket-backend/internal/service"
	apperrors "github.com/aidesk/ticket-backend/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	tickets *service.TicketService
	audit   *service.AuditService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService, auditService *service.AuditService) *TicketsHandler {
	return &TicketsHandler{tickets: ticketService, audit: auditService}
}

// Submit handles POST /tickets. Authentication is optional; anonymous
// submissions are stored without a creator.
func (h *TicketsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("request body cannot be empty", nil)
	}
	if req.Email == "" || req.Message == "" {
		return apperrors.NewValidationError("email and message required", nil)
	}

	var creatorID *string
	if identity, ok := auth.IdentityFromContext(c); ok {
		creatorID = &identity.UserID
	}

	ticket, err := h.tickets.Submit(c.Context(), req.Message, creatorID)
	if err != nil && !apperrors.IsQueueUnavailable(err) {
		return err
	}

	// Queue failure is reported, not fatal: the ticket exists either way.
	return c.JSON(fiber.Map{"data": dto.SubmitTicketResponse{
		TicketID: ticket.ID,
		Status:   ticket.Status,
		Queued:   err == nil,
	}})
}

// List handles GET /tickets with optional status and assignee filters.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no token provided")
	}

	filter := service.TicketListFilter{}
	if status := c.Query("status"); status != "" {
		ticketStatus := domain.TicketStatus(status)
		filter.Status = &ticketStatus
	}
	if assignee := c.Query("assignee"); assignee != "" {
		filter.Assignee = &assignee
	}

	tickets, err := h.tickets.List(c.Context(), identity.Role, identity.UserID, filter)
	if err != nil {
		return err
	}

	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Update handles PATCH /tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no token provided")
	}

	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid JSON", nil)
	}

	patch := repository.TicketPatch{
		Description: req.Description,
		Status:      req.Status,
		AssignedTo:  req.AssignedTo,
		Category:    req.Category,
		Summary:     req.Summary,
	}

	ticket, err := h.tickets.Update(c.Context(), identity.Role, identity.UserID, c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// Logs handles GET /tickets/:id/logs.
func (h *TicketsHandler) Logs(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no token provided")
	}

	entries, err := h.audit.List(c.Context(), identity.Role, c.Params("id"))
	if err != nil {
		return err
	}

	items := make([]dto.AuditLogResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.AuditLogResponse{
			ID:            entry.ID,
			TicketID:      entry.TicketID,
			Action:        entry.Action,
			ChangedBy:     entry.ChangedBy,
			ChangedByName: entry.ChangedByName,
			Timestamp:     entry.Timestamp,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:            ticket.ID,
		Description:   ticket.Description,
		Status:        ticket.Status,
		CreatedBy:     ticket.CreatedBy,
		AssignedTo:    ticket.AssignedTo,
		Category:      ticket.Category,
		Summary:       ticket.Summary,
		CreatedByName: ticket.CreatedByName,
		AssigneeName:  ticket.AssigneeName,
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
	}
}
