package handler

import (
	"net/http"

	"github.com/Rdevang/Smart-Split-sub004/internal/domain"
	"github.com/Rdevang/Smart-Split-sub004/internal/simplify"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// SimplifyHandler handles balance simplification requests. Simplification
// performs no writes, so the endpoint requires no authentication.
type SimplifyHandler struct{}

// NewSimplifyHandler creates a new SimplifyHandler
func NewSimplifyHandler() *SimplifyHandler {
	return &SimplifyHandler{}
}

// BalanceJSON represents one member's net balance in a request
type BalanceJSON struct {
	MemberID      uuid.UUID       `json:"memberId"`
	DisplayName   string          `json:"displayName"`
	NetAmount     decimal.Decimal `json:"netAmount"`
	IsPlaceholder bool            `json:"isPlaceholder"`
}

// SimplifyRequest represents the JSON request for simplifying balances
type SimplifyRequest struct {
	Balances []BalanceJSON `json:"balances"`
	Currency string        `json:"currency,omitempty"`
}

// PaymentJSON represents one suggested payment in a response
type PaymentJSON struct {
	FromMemberID      uuid.UUID `json:"fromMemberId"`
	FromDisplayName   string    `json:"fromDisplayName"`
	FromIsPlaceholder bool      `json:"fromIsPlaceholder"`
	ToMemberID        uuid.UUID `json:"toMemberId"`
	ToDisplayName     string    `json:"toDisplayName"`
	ToIsPlaceholder   bool      `json:"toIsPlaceholder"`
	Amount            string    `json:"amount"`
	Formatted         string    `json:"formatted"`
}

// SimplifyResponse represents the JSON response for simplified balances
type SimplifyResponse struct {
	Payments []PaymentJSON  `json:"payments"`
	Stats    simplify.Stats `json:"stats"`
}

// Simplify computes the payments that settle the submitted balances.
func (h *SimplifyHandler) Simplify(c echo.Context) error {
	var req SimplifyRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body")
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	balances := make([]domain.Balance, 0, len(req.Balances))
	for _, b := range req.Balances {
		balances = append(balances, domain.Balance{
			MemberID:      b.MemberID,
			DisplayName:   b.DisplayName,
			NetAmount:     domain.CentsFromDecimal(b.NetAmount),
			IsPlaceholder: b.IsPlaceholder,
		})
	}

	payments := simplify.Simplify(balances)

	out := make([]PaymentJSON, 0, len(payments))
	for _, p := range payments {
		out = append(out, PaymentJSON{
			FromMemberID:      p.FromMemberID,
			FromDisplayName:   p.FromDisplayName,
			FromIsPlaceholder: p.FromIsPlaceholder,
			ToMemberID:        p.ToMemberID,
			ToDisplayName:     p.ToDisplayName,
			ToIsPlaceholder:   p.ToIsPlaceholder,
			Amount:            p.Amount.StringFixed(),
			Formatted:         simplify.FormatPayment(p, currency),
		})
	}

	return c.JSON(http.StatusOK, SimplifyResponse{
		Payments: out,
		Stats:    simplify.ComputeStats(balances, payments),
	})
}
