// Package ledger contiene la lógica pura del kardex de perecederos: recálculo de saldos,
// cadena de saldos entre meses, expansión de vencimientos y barrido de lotes vencidos.
// Nada aquí toca persistencia; el servicio de aplicación carga, invoca y guarda.
package ledger

import (
	"github.com/jhoicas/Concesiones-api/internal/domain/entity"
)

// RecalculateMonth reproduce las entradas del mes en orden de fecha desde su CarryForward:
// cada entrada toma como saldo inicial el saldo final de la anterior, deriva sus buckets
// según el tipo y fija su saldo (nunca negativo). Es idempotente.
//
// Con lots != nil además re-deriva cada corte de lote al remanente del lote en ese día;
// con nil usa las cantidades de corte ya guardadas.
func RecalculateMonth(m *entity.MonthlyLedger, lots *LotBook) {
	m.SortEntries()
	carry := m.CarryForward
	for _, e := range m.Entries {
		if lots != nil {
			allocate(e, lots)
		}
		e.DeriveBuckets()
		e.Settle(carry)
		carry = e.Balance
	}
	m.RecomputeTotals()
}

// allocate aplica la entrada al libro de lotes: ingresos, luego cortes, luego consumos.
func allocate(e *entity.LedgerEntry, lots *LotBook) {
	if e.IsBatch() {
		lots.ReceiveBatch(e.BatchNumber, *e.ExpireDate, e.Inflow())
	} else {
		lots.ReceiveUntracked(e.Inflow())
	}
	for i := range e.Expirations {
		e.Expirations[i].Quantity = lots.Expire(e.Expirations[i].BatchNumber)
	}
	lots.Consume(e.Consumption())
}
