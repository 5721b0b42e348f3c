package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Concesiones-api/internal/domain/entity"
)

// StockLedgerRepository define el puerto de persistencia del kardex mensual.
// Un registro por (teatro, producto, año, mes); las entradas viajan con el agregado.
type StockLedgerRepository interface {
	// ListByProductForUpdate todos los meses del producto en el teatro, en orden cronológico.
	// Bloquea las filas hasta el fin de la transacción (SELECT FOR UPDATE).
	ListByProductForUpdate(ctx context.Context, theaterID, productID string) ([]*entity.MonthlyLedger, error)
	// SaveAll guarda los meses con control de versión optimista: si alguno cambió desde que se
	// leyó devuelve domain.ErrConcurrencyConflict y no guarda ninguno. Incrementa Version.
	SaveAll(ctx context.Context, months []*entity.MonthlyLedger) error
}

// ProductStockSyncer actualiza el stock visible del producto (catálogo del teatro) con el
// saldo de cierre del kardex.
type ProductStockSyncer interface {
	SetCurrentStock(ctx context.Context, theaterID, productID string, quantity decimal.Decimal) error
}
