package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Rdevang/Smart-Split-sub004/internal/domain"
	"github.com/Rdevang/Smart-Split-sub004/internal/middleware"
	"github.com/Rdevang/Smart-Split-sub004/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// SettlementHandler handles settlement HTTP requests
type SettlementHandler struct {
	settlementService *service.SettlementService
}

// NewSettlementHandler creates a new SettlementHandler
func NewSettlementHandler(settlementService *service.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementService: settlementService}
}

// RecordSettlementRequest represents the JSON request for recording a settlement
type RecordSettlementRequest struct {
	FromMember        uuid.UUID       `json:"fromMember"`
	ToMember          uuid.UUID       `json:"toMember"`
	Amount            decimal.Decimal `json:"amount"`
	FromIsPlaceholder bool            `json:"fromIsPlaceholder"`
	ToIsPlaceholder   bool            `json:"toIsPlaceholder"`
	IdempotencyKey    string          `json:"idempotencyKey,omitempty"`
}

// SettlementJSON represents a settlement record in responses
type SettlementJSON struct {
	ID          uuid.UUID       `json:"id"`
	GroupID     uuid.UUID       `json:"groupId"`
	Amount      string          `json:"amount"`
	Status      string          `json:"status"`
	Payer       domain.PartyRef `json:"payer"`
	Payee       domain.PartyRef `json:"payee"`
	RequestedBy uuid.UUID       `json:"requestedBy"`
	SettledAt   *string         `json:"settledAt,omitempty"`
	CreatedAt   string          `json:"createdAt"`
}

// SettlementResponse represents the JSON response for a recorded settlement
type SettlementResponse struct {
	Success    bool           `json:"success"`
	Pending    bool           `json:"pending"`
	Message    string         `json:"message,omitempty"`
	Settlement SettlementJSON `json:"settlement"`
}

// Record records a real-world payment claim against the group ledger.
func (h *SettlementHandler) Record(c echo.Context) error {
	groupID, err := uuid.Parse(c.Param("groupId"))
	if err != nil {
		return NewValidationError(c, "Invalid group ID")
	}

	var req RecordSettlementRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body")
	}

	input := domain.SettlementInput{
		GroupID:        groupID,
		Payer:          domain.PartyRef{ID: req.FromMember, IsPlaceholder: req.FromIsPlaceholder},
		Payee:          domain.PartyRef{ID: req.ToMember, IsPlaceholder: req.ToIsPlaceholder},
		Amount:         domain.CentsFromDecimal(req.Amount),
		ActorID:        middleware.GetActorID(c),
		ClientIP:       c.RealIP(),
		IdempotencyKey: req.IdempotencyKey,
	}

	result, err := h.settlementService.RecordSettlement(c.Request().Context(), input)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, SettlementResponse{
		Success:    true,
		Pending:    result.Pending,
		Message:    result.Message,
		Settlement: toSettlementJSON(result.Record),
	})
}

// Approve confirms receipt of a pending settlement.
func (h *SettlementHandler) Approve(c echo.Context) error {
	return h.decide(c, h.settlementService.ApproveSettlement)
}

// Reject contests a pending settlement claim.
func (h *SettlementHandler) Reject(c echo.Context) error {
	return h.decide(c, h.settlementService.RejectSettlement)
}

func (h *SettlementHandler) decide(c echo.Context, decideFn func(ctx context.Context, id, actorID uuid.UUID) (*domain.SettlementRecord, error)) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid settlement ID")
	}

	record, err := decideFn(c.Request().Context(), id, middleware.GetActorID(c))
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":    true,
		"settlement": toSettlementJSON(record),
	})
}

// handleServiceError maps domain errors to appropriate HTTP responses.
// Internal detail stays in the server log.
func (h *SettlementHandler) handleServiceError(c echo.Context, err error) error {
	var rateErr *domain.RateLimitedError
	switch {
	case errors.As(err, &rateErr):
		return NewRateLimitError(c, rateErr.RetryAfterSeconds())
	case errors.Is(err, domain.ErrInvalidInput):
		return NewValidationError(c, "Invalid settlement claim")
	case errors.Is(err, domain.ErrUnauthenticated):
		return NewUnauthorizedError(c, "Sign in to record settlements")
	case errors.Is(err, domain.ErrForbidden):
		return NewForbiddenError(c, "You are not a member of this group")
	case errors.Is(err, domain.ErrAlreadyProcessing):
		return NewConflictError(c, "This settlement is already being processed. Please try again shortly.")
	case errors.Is(err, domain.ErrSettlementNotFound):
		return NewNotFoundError(c, "Settlement not found")
	case errors.Is(err, domain.ErrNotPending):
		return NewConflictError(c, "This settlement has already been decided")
	default:
		log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("Settlement operation failed")
		return NewInternalError(c, "Settlement failed")
	}
}

func toSettlementJSON(record *domain.SettlementRecord) SettlementJSON {
	out := SettlementJSON{
		ID:          record.ID,
		GroupID:     record.GroupID,
		Amount:      record.Amount.StringFixed(),
		Status:      string(record.Status),
		Payer:       record.Payer,
		Payee:       record.Payee,
		RequestedBy: record.RequestedBy,
		CreatedAt:   record.CreatedAt.Format(time.RFC3339),
	}
	if record.SettledAt != nil {
		settledAt := record.SettledAt.Format(time.RFC3339)
		out.SettledAt = &settledAt
	}
	return out
}
