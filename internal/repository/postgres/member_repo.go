package postgres

import (
	"context"
	"errors"

	"github.com/Rdevang/Smart-Split-sub004/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MemberRepository implements domain.MemberRepository using PostgreSQL
type MemberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

// GetRole returns the user's role in the group, or ErrMemberNotFound when
// the user is not a current member.
func (r *MemberRepository) GetRole(ctx context.Context, groupID, userID uuid.UUID) (domain.GroupRole, error) {
	var role string
	err := r.pool.QueryRow(ctx,
		`SELECT role FROM group_members WHERE group_id = $1 AND user_id = $2`,
		groupID, userID,
	).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrMemberNotFound
	}
	if err != nil {
		return "", err
	}
	return domain.GroupRole(role), nil
}

// GetDisplayName resolves either a registered user or a placeholder member
// to a display name.
func (r *MemberRepository) GetDisplayName(ctx context.Context, ref domain.PartyRef) (string, error) {
	query := `SELECT display_name FROM users WHERE id = $1`
	if ref.IsPlaceholder {
		query = `SELECT display_name FROM placeholder_members WHERE id = $1`
	}

	var name string
	err := r.pool.QueryRow(ctx, query, ref.ID).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrMemberNotFound
	}
	if err != nil {
		return "", err
	}
	return name, nil
}
