// Package audit records security and activity events as structured logs.
package audit

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Recorder writes audit events through a zerolog logger.
type Recorder struct {
	logger zerolog.Logger
}

// NewRecorder creates a Recorder tagging every event with an audit marker.
func NewRecorder(logger zerolog.Logger) *Recorder {
	return &Recorder{logger: logger.With().Str("log_type", "audit").Logger()}
}

// ForbiddenAttempt records a security event for an actor acting outside
// their group membership.
func (r *Recorder) ForbiddenAttempt(actorID, groupID uuid.UUID, action string) {
	r.logger.Warn().
		Str("event", "security.forbidden").
		Str("actor_id", actorID.String()).
		Str("group_id", groupID.String()).
		Str("action", action).
		Msg("Forbidden attempt")
}

// SettlementActivity records a settlement being requested (pending) or
// created (auto-approved), with resolved party names.
func (r *Recorder) SettlementActivity(actorID, groupID, settlementID uuid.UUID, action, payerName, payeeName, amount string) {
	r.logger.Info().
		Str("event", "settlement."+action).
		Str("actor_id", actorID.String()).
		Str("group_id", groupID.String()).
		Str("settlement_id", settlementID.String()).
		Str("payer", payerName).
		Str("payee", payeeName).
		Str("amount", amount).
		Msg("Settlement activity")
}
