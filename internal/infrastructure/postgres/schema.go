package postgres

import (
	"context"
	"fmt"
)

// schema idempotente; se aplica al arrancar.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS stock_ledgers (
		id                  TEXT PRIMARY KEY,
		theater_id          TEXT NOT NULL,
		product_id          TEXT NOT NULL,
		year                INT NOT NULL,
		month               INT NOT NULL CHECK (month BETWEEN 1 AND 12),
		carry_forward       NUMERIC(18,4) NOT NULL DEFAULT 0,
		entries             JSONB NOT NULL DEFAULT '[]'::jsonb,
		total_stock_added   NUMERIC(18,4) NOT NULL DEFAULT 0,
		total_used_stock    NUMERIC(18,4) NOT NULL DEFAULT 0,
		total_expired_stock NUMERIC(18,4) NOT NULL DEFAULT 0,
		total_damage_stock  NUMERIC(18,4) NOT NULL DEFAULT 0,
		closing_balance     NUMERIC(18,4) NOT NULL DEFAULT 0,
		version             INT NOT NULL DEFAULT 1,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (theater_id, product_id, year, month)
	)`,
	`CREATE TABLE IF NOT EXISTS theater_product_stock (
		theater_id    TEXT NOT NULL,
		product_id    TEXT NOT NULL,
		current_stock NUMERIC(18,4) NOT NULL DEFAULT 0,
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (theater_id, product_id)
	)`,
}

// EnsureSchema crea las tablas del kardex si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
