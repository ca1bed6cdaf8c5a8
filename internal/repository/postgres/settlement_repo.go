package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/Rdevang/Smart-Split-sub004/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettlementRepository implements domain.SettlementRepository using PostgreSQL
type SettlementRepository struct {
	pool *pgxpool.Pool
}

// NewSettlementRepository creates a new SettlementRepository
func NewSettlementRepository(pool *pgxpool.Pool) *SettlementRepository {
	return &SettlementRepository{pool: pool}
}

const settlementColumns = `id, group_id, amount_cents, status,
	payer_id, payer_is_placeholder, payee_id, payee_is_placeholder,
	requested_by, settled_at, created_at`

// Insert creates a settlement record as a single atomic row-create. When an
// idempotency key is supplied the insert is insert-if-absent: a repeat key
// within the group returns the original record instead of a new row.
func (r *SettlementRepository) Insert(ctx context.Context, record *domain.SettlementRecord, idempotencyKey string) (*domain.SettlementRecord, bool, error) {
	var key *string
	if idempotencyKey != "" {
		key = &idempotencyKey
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO settlements (
			group_id, amount_cents, status,
			payer_id, payer_is_placeholder, payee_id, payee_is_placeholder,
			requested_by, idempotency_key, settled_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (group_id, idempotency_key) WHERE idempotency_key IS NOT NULL
		DO NOTHING
		RETURNING `+settlementColumns,
		record.GroupID, int64(record.Amount), string(record.Status),
		record.Payer.ID, record.Payer.IsPlaceholder,
		record.Payee.ID, record.Payee.IsPlaceholder,
		record.RequestedBy, key, record.SettledAt,
	)

	created, err := scanSettlement(row)
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) || key == nil {
		return nil, false, err
	}

	// Conflict on the idempotency key: hand back the original record.
	existing, err := r.getByIdempotencyKey(ctx, record.GroupID, idempotencyKey)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// GetByID retrieves a settlement record by its ID
func (r *SettlementRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SettlementRecord, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+settlementColumns+` FROM settlements WHERE id = $1`, id)
	record, err := scanSettlement(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSettlementNotFound
	}
	return record, err
}

// UpdateStatus transitions only status and settled_at; all other columns
// are immutable after creation.
func (r *SettlementRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SettlementStatus, settledAt *time.Time) (*domain.SettlementRecord, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE settlements SET status = $2, settled_at = $3
		WHERE id = $1
		RETURNING `+settlementColumns,
		id, string(status), settledAt,
	)
	record, err := scanSettlement(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSettlementNotFound
	}
	return record, err
}

func (r *SettlementRepository) getByIdempotencyKey(ctx context.Context, groupID uuid.UUID, key string) (*domain.SettlementRecord, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+settlementColumns+` FROM settlements WHERE group_id = $1 AND idempotency_key = $2`,
		groupID, key)
	return scanSettlement(row)
}

func scanSettlement(row pgx.Row) (*domain.SettlementRecord, error) {
	var (
		record domain.SettlementRecord
		amount int64
		status string
	)
	err := row.Scan(
		&record.ID, &record.GroupID, &amount, &status,
		&record.Payer.ID, &record.Payer.IsPlaceholder,
		&record.Payee.ID, &record.Payee.IsPlaceholder,
		&record.RequestedBy, &record.SettledAt, &record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	record.Amount = domain.Cents(amount)
	record.Status = domain.SettlementStatus(status)
	return &record, nil
}
