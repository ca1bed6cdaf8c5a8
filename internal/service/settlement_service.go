package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rdevang/Smart-Split-sub004/internal/audit"
	"github.com/Rdevang/Smart-Split-sub004/internal/cache"
	"github.com/Rdevang/Smart-Split-sub004/internal/domain"
	"github.com/Rdevang/Smart-Split-sub004/internal/lock"
	"github.com/google/uuid"
)

// settlementLockTTL bounds how long a crashed claim can hold its lock.
const settlementLockTTL = 15 * time.Second

// RateLimiter gates the financial operation class per network identity.
type RateLimiter interface {
	Allow(key string) (bool, time.Duration)
}

// SettlementService records real-world payment claims against the group
// ledger, exactly once per concurrent ordered pair.
type SettlementService struct {
	settlementRepo domain.SettlementRepository
	memberRepo     domain.MemberRepository
	limiter        RateLimiter
	locker         lock.Locker
	invalidator    cache.Invalidator
	audit          *audit.Recorder
}

// NewSettlementService creates a SettlementService with all collaborators
// injected. Lifecycle of the limiter and locker is owned by the caller.
func NewSettlementService(
	settlementRepo domain.SettlementRepository,
	memberRepo domain.MemberRepository,
	limiter RateLimiter,
	locker lock.Locker,
	invalidator cache.Invalidator,
	auditRecorder *audit.Recorder,
) *SettlementService {
	return &SettlementService{
		settlementRepo: settlementRepo,
		memberRepo:     memberRepo,
		limiter:        limiter,
		locker:         locker,
		invalidator:    invalidator,
		audit:          auditRecorder,
	}
}

// RecordSettlement durably records one payment claim. Validation and
// authorization failures return before any side effect; the claim's
// critical section runs under a distributed lock keyed by the ordered
// (group, payer, payee) triple.
//
// A claim auto-approves when the payee is recording it themselves or when
// either party is a placeholder; otherwise it is created pending until the
// payee confirms receipt.
func (s *SettlementService) RecordSettlement(ctx context.Context, in domain.SettlementInput) (*domain.SettlementResult, error) {
	if ok, retryAfter := s.limiter.Allow(in.ClientIP); !ok {
		return nil, &domain.RateLimitedError{RetryAfter: retryAfter}
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	if in.ActorID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}
	if _, err := s.memberRepo.GetRole(ctx, in.GroupID, in.ActorID); err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			s.audit.ForbiddenAttempt(in.ActorID, in.GroupID, "settlement.record")
			return nil, domain.ErrForbidden
		}
		return nil, fmt.Errorf("%w: membership lookup: %v", domain.ErrStorage, err)
	}

	key := lock.SettlementKey(in.GroupID, in.Payer.ID, in.Payee.ID)
	handle, err := s.locker.Acquire(ctx, key, settlementLockTTL)
	if err != nil {
		if errors.Is(err, lock.ErrAlreadyHeld) {
			return nil, domain.ErrAlreadyProcessing
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrLockService, err)
	}
	defer handle.Release(ctx)

	needsApproval := !in.Payee.IsPlaceholder && !in.Payer.IsPlaceholder && in.Payee.ID != in.ActorID

	now := time.Now().UTC()
	record := &domain.SettlementRecord{
		GroupID:     in.GroupID,
		Amount:      in.Amount,
		Status:      domain.SettlementApproved,
		Payer:       in.Payer,
		Payee:       in.Payee,
		RequestedBy: in.ActorID,
		SettledAt:   &now,
	}
	if needsApproval {
		record.Status = domain.SettlementPending
		record.SettledAt = nil
	}

	created, isNew, err := s.settlementRepo.Insert(ctx, record, in.IdempotencyKey)
	if err != nil {
		return nil, fmt.Errorf("%w: insert settlement: %v", domain.ErrStorage, err)
	}

	if !isNew {
		// Idempotent replay: the claim was already recorded, nothing new
		// happened, so no activity event and no cache invalidation.
		return &domain.SettlementResult{
			Record:  created,
			Pending: created.Status == domain.SettlementPending,
			Message: "Settlement was already recorded.",
		}, nil
	}

	payerName := s.resolveName(ctx, in.Payer)
	payeeName := s.resolveName(ctx, in.Payee)

	action := "created"
	if needsApproval {
		action = "requested"
	}
	s.audit.SettlementActivity(in.ActorID, in.GroupID, created.ID, action, payerName, payeeName, in.Amount.StringFixed())

	s.invalidateParties(ctx, created)

	message := "Settlement recorded."
	if needsApproval {
		message = fmt.Sprintf("Settlement recorded. Waiting for %s to confirm receipt.", payeeName)
	}
	return &domain.SettlementResult{
		Record:  created,
		Pending: needsApproval,
		Message: message,
	}, nil
}

// ApproveSettlement confirms receipt of a pending settlement. Only the
// payee may approve, and only from the pending state.
func (s *SettlementService) ApproveSettlement(ctx context.Context, id, actorID uuid.UUID) (*domain.SettlementRecord, error) {
	return s.decideSettlement(ctx, id, actorID, domain.SettlementApproved)
}

// RejectSettlement contests a pending settlement claim. Only the payee may
// reject, and only from the pending state.
func (s *SettlementService) RejectSettlement(ctx context.Context, id, actorID uuid.UUID) (*domain.SettlementRecord, error) {
	return s.decideSettlement(ctx, id, actorID, domain.SettlementRejected)
}

func (s *SettlementService) decideSettlement(ctx context.Context, id, actorID uuid.UUID, status domain.SettlementStatus) (*domain.SettlementRecord, error) {
	if actorID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}

	record, err := s.settlementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrSettlementNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: load settlement: %v", domain.ErrStorage, err)
	}

	if record.Payee.IsPlaceholder || record.Payee.ID != actorID {
		s.audit.ForbiddenAttempt(actorID, record.GroupID, "settlement."+string(status))
		return nil, domain.ErrForbidden
	}
	if record.Status != domain.SettlementPending {
		return nil, domain.ErrNotPending
	}

	var settledAt *time.Time
	if status == domain.SettlementApproved {
		now := time.Now().UTC()
		settledAt = &now
	}

	updated, err := s.settlementRepo.UpdateStatus(ctx, id, status, settledAt)
	if err != nil {
		return nil, fmt.Errorf("%w: update settlement status: %v", domain.ErrStorage, err)
	}

	s.invalidateParties(ctx, updated)

	return updated, nil
}

// invalidateParties signals the balance cache for the group and both
// non-placeholder parties.
func (s *SettlementService) invalidateParties(ctx context.Context, record *domain.SettlementRecord) {
	members := make([]uuid.UUID, 0, 2)
	if !record.Payer.IsPlaceholder {
		members = append(members, record.Payer.ID)
	}
	if !record.Payee.IsPlaceholder {
		members = append(members, record.Payee.ID)
	}
	s.invalidator.InvalidateBalances(ctx, record.GroupID, members...)
}

// resolveName looks up a party's display name. Lookups are best-effort: a
// failure degrades to a fallback label and never aborts the settlement.
func (s *SettlementService) resolveName(ctx context.Context, ref domain.PartyRef) string {
	name, err := s.memberRepo.GetDisplayName(ctx, ref)
	if err != nil || name == "" {
		return "member " + ref.ID.String()[:8]
	}
	return name
}
