package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Concesiones-api/internal/domain"
	"github.com/jhoicas/Concesiones-api/internal/domain/entity"
	"github.com/jhoicas/Concesiones-api/internal/domain/repository"
)

var _ repository.StockLedgerRepository = (*StockLedgerRepo)(nil)

// StockLedgerRepo meses del kardex en stock_ledgers; las entradas viajan como JSONB.
type StockLedgerRepo struct {
	q Querier
}

// NewStockLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLedgerRepository(q Querier) *StockLedgerRepo {
	return &StockLedgerRepo{q: q}
}

const ledgerColumns = `
	id, theater_id, product_id, year, month, carry_forward, entries,
	total_stock_added, total_used_stock, total_expired_stock, total_damage_stock,
	closing_balance, version, created_at, updated_at`

// ListByProductForUpdate meses del producto en orden cronológico; bloquea las filas hasta el fin de la transacción.
func (r *StockLedgerRepo) ListByProductForUpdate(ctx context.Context, theaterID, productID string) ([]*entity.MonthlyLedger, error) {
	query := `SELECT` + ledgerColumns + `
		FROM stock_ledgers
		WHERE theater_id = $1 AND product_id = $2
		ORDER BY year, month
		FOR UPDATE`
	rows, err := r.q.Query(ctx, query, theaterID, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock ledgers: %w", err)
	}
	defer rows.Close()

	var out []*entity.MonthlyLedger
	for rows.Next() {
		m, err := scanLedger(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock ledger: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stock ledgers: %w", err)
	}
	return out, nil
}

// SaveAll inserta los meses nuevos (Version 0) y actualiza los demás con control optimista.
// Una versión distinta o un mes insertado por otro proceso devuelve ErrConcurrencyConflict;
// la transacción del llamador se revierte completa.
func (r *StockLedgerRepo) SaveAll(ctx context.Context, months []*entity.MonthlyLedger) error {
	for _, m := range months {
		entries, err := json.Marshal(m.Entries)
		if err != nil {
			return fmt.Errorf("encode entries %s: %w", m.Period, err)
		}
		if m.Version == 0 {
			err = r.insert(ctx, m, entries)
		} else {
			err = r.update(ctx, m, entries)
		}
		if err != nil {
			return err
		}
	}
	for _, m := range months {
		m.Version++
	}
	return nil
}

func (r *StockLedgerRepo) insert(ctx context.Context, m *entity.MonthlyLedger, entries []byte) error {
	query := `
		INSERT INTO stock_ledgers (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 1, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.TheaterID, m.ProductID, m.Period.Year, int(m.Period.Month), m.CarryForward, entries,
		m.TotalStockAdded, m.TotalUsedStock, m.TotalExpiredStock, m.TotalDamageStock,
		m.ClosingBalance, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConcurrencyConflict
		}
		return fmt.Errorf("insert stock ledger %s: %w", m.Period, err)
	}
	return nil
}

func (r *StockLedgerRepo) update(ctx context.Context, m *entity.MonthlyLedger, entries []byte) error {
	query := `
		UPDATE stock_ledgers SET
			carry_forward = $3, entries = $4,
			total_stock_added = $5, total_used_stock = $6, total_expired_stock = $7, total_damage_stock = $8,
			closing_balance = $9, version = version + 1, updated_at = $10
		WHERE id = $1 AND version = $2`
	tag, err := r.q.Exec(ctx, query,
		m.ID, m.Version, m.CarryForward, entries,
		m.TotalStockAdded, m.TotalUsedStock, m.TotalExpiredStock, m.TotalDamageStock,
		m.ClosingBalance, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock ledger %s: %w", m.Period, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrencyConflict
	}
	return nil
}

func scanLedger(row pgx.Row) (*entity.MonthlyLedger, error) {
	var (
		m       entity.MonthlyLedger
		month   int
		entries []byte
	)
	err := row.Scan(
		&m.ID, &m.TheaterID, &m.ProductID, &m.Period.Year, &month, &m.CarryForward, &entries,
		&m.TotalStockAdded, &m.TotalUsedStock, &m.TotalExpiredStock, &m.TotalDamageStock,
		&m.ClosingBalance, &m.Version, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Period.Month = time.Month(month)
	if len(entries) > 0 {
		if err := json.Unmarshal(entries, &m.Entries); err != nil {
			return nil, fmt.Errorf("decode entries %s: %w", m.Period, err)
		}
	}
	m.SortEntries()
	return &m, nil
}
