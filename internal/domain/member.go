package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// GroupRole is a member's role within a group.
type GroupRole string

const (
	RoleOwner  GroupRole = "owner"
	RoleMember GroupRole = "member"
)

// SettlementRepository persists settlement records. Insert never updates an
// existing row; status transitions go through UpdateStatus only.
type SettlementRepository interface {
	// Insert creates the record, or returns the previously created record
	// when the input carries an idempotency key that was already used for
	// this group. The bool reports whether a new row was created.
	Insert(ctx context.Context, record *SettlementRecord, idempotencyKey string) (*SettlementRecord, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*SettlementRecord, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status SettlementStatus, settledAt *time.Time) (*SettlementRecord, error)
}

// MemberRepository answers membership and directory lookups against the
// relational store.
type MemberRepository interface {
	// GetRole returns the actor's role in the group, or ErrMemberNotFound
	// when the actor is not a current member.
	GetRole(ctx context.Context, groupID, userID uuid.UUID) (GroupRole, error)
	// GetDisplayName resolves a party to a human-readable name.
	GetDisplayName(ctx context.Context, ref PartyRef) (string, error)
}
