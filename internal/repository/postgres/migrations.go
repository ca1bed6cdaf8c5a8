package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// migrations is the bootstrap DDL for the tables this core owns or reads.
// Statements are idempotent so startup can run them unconditionally.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id uuid PRIMARY KEY,
		display_name text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS placeholder_members (
		id uuid PRIMARY KEY,
		group_id uuid NOT NULL,
		display_name text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS group_members (
		group_id uuid NOT NULL,
		user_id uuid NOT NULL,
		role text NOT NULL DEFAULT 'member',
		created_at timestamptz NOT NULL DEFAULT now(),
		PRIMARY KEY (group_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS settlements (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		group_id uuid NOT NULL,
		amount_cents bigint NOT NULL CHECK (amount_cents > 0 AND amount_cents <= 99999999999),
		status text NOT NULL CHECK (status IN ('pending', 'approved', 'rejected')),
		payer_id uuid NOT NULL,
		payer_is_placeholder boolean NOT NULL DEFAULT false,
		payee_id uuid NOT NULL,
		payee_is_placeholder boolean NOT NULL DEFAULT false,
		requested_by uuid NOT NULL,
		idempotency_key text,
		settled_at timestamptz,
		created_at timestamptz NOT NULL DEFAULT now(),
		CHECK ((status = 'approved') = (settled_at IS NOT NULL))
	)`,
	`CREATE INDEX IF NOT EXISTS settlements_group_id_idx ON settlements (group_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS settlements_idempotency_idx
		ON settlements (group_id, idempotency_key)
		WHERE idempotency_key IS NOT NULL`,
}

// Migrate applies the bootstrap schema.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}
