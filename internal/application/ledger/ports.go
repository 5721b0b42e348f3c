package ledger

import (
	"context"

	"github.com/jhoicas/Concesiones-api/internal/application/dto"
	"github.com/jhoicas/Concesiones-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con el repositorio del kardex atado a ella.
// Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	RunLedger(ctx context.Context, fn func(repo repository.StockLedgerRepository) error) error
}

// KeyLocker serializa las operaciones sobre un mismo (teatro, producto).
// Lock bloquea hasta obtener la llave o hasta que ctx termine; unlock libera.
type KeyLocker interface {
	Lock(ctx context.Context, theaterID, productID string) (unlock func(), err error)
}

// MonthReportRenderer genera la representación imprimible de un mes del kardex.
type MonthReportRenderer interface {
	RenderMonthReport(ctx context.Context, month *dto.LedgerMonthResponse) ([]byte, error)
}
