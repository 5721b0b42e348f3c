package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Concesiones-api/internal/domain/repository"
)

var _ repository.ProductStockSyncer = (*ProductStockRepo)(nil)

// ProductStockRepo stock visible por producto y teatro (theater_product_stock).
type ProductStockRepo struct {
	q Querier
}

// NewProductStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductStockRepository(q Querier) *ProductStockRepo {
	return &ProductStockRepo{q: q}
}

// SetCurrentStock inserta o actualiza la cantidad visible del producto.
func (r *ProductStockRepo) SetCurrentStock(ctx context.Context, theaterID, productID string, quantity decimal.Decimal) error {
	query := `
		INSERT INTO theater_product_stock (theater_id, product_id, current_stock, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (theater_id, product_id)
		DO UPDATE SET current_stock = EXCLUDED.current_stock, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, theaterID, productID, quantity); err != nil {
		return fmt.Errorf("upsert product stock: %w", err)
	}
	return nil
}
