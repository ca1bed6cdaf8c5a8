package domain

import (
	"time"

	"github.com/google/uuid"
)

// SettlementStatus is the lifecycle state of a settlement record.
// pending → approved or pending → rejected; approved and rejected are
// terminal. A record that needs no approval is created directly as approved.
type SettlementStatus string

const (
	SettlementPending  SettlementStatus = "pending"
	SettlementApproved SettlementStatus = "approved"
	SettlementRejected SettlementStatus = "rejected"
)

// PartyRef identifies one side of a settlement: either a registered member
// or a placeholder member added by name only. Exactly one interpretation
// applies per side, selected by IsPlaceholder.
type PartyRef struct {
	ID            uuid.UUID `json:"id"`
	IsPlaceholder bool      `json:"isPlaceholder"`
}

// SettlementRecord is the durable ledger entry for a real-world payment
// claim. Payer, payee, amount and group are immutable once created; only
// Status and SettledAt transition afterwards.
type SettlementRecord struct {
	ID          uuid.UUID        `json:"id"`
	GroupID     uuid.UUID        `json:"groupId"`
	Amount      Cents            `json:"amount"`
	Status      SettlementStatus `json:"status"`
	Payer       PartyRef         `json:"payer"`
	Payee       PartyRef         `json:"payee"`
	RequestedBy uuid.UUID        `json:"requestedBy"`
	SettledAt   *time.Time       `json:"settledAt,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// SettlementInput is a settlement claim as submitted by a caller.
type SettlementInput struct {
	GroupID        uuid.UUID
	Payer          PartyRef
	Payee          PartyRef
	Amount         Cents
	ActorID        uuid.UUID // authenticated member recording the claim
	ClientIP       string    // originating network identity, for rate limiting
	IdempotencyKey string    // optional; repeat keys return the original record
}

// Validate checks well-formedness of the claim. Authorization is a separate
// concern and is not checked here.
func (in SettlementInput) Validate() error {
	if in.GroupID == uuid.Nil || in.Payer.ID == uuid.Nil || in.Payee.ID == uuid.Nil {
		return ErrInvalidInput
	}
	if in.Payer.ID == in.Payee.ID {
		return ErrInvalidInput
	}
	if in.Amount <= 0 || in.Amount > MaxSettlementCents {
		return ErrInvalidInput
	}
	return nil
}

// SettlementResult is the outcome of a successfully recorded claim. Pending
// is true when the payee still has to confirm receipt.
type SettlementResult struct {
	Record  *SettlementRecord `json:"settlement"`
	Pending bool              `json:"pending"`
	Message string            `json:"message"`
}
