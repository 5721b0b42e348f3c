package ledger

import (
	"fmt"

	"github.com/jhoicas/Concesiones-api/internal/domain/calendar"
	"github.com/jhoicas/Concesiones-api/internal/domain/entity"
)

// Expansion resultado de expandir un lote.
type Expansion struct {
	Placeholders int  // entradas de relleno insertadas
	Expired      bool // el corte se registró en esta pasada
}

// ExpandBatch garantiza una entrada por cada día desde el día siguiente al ingreso hasta
// el corte del lote (o hasta hoy si el corte no ha llegado) y, pasado el corte, registra
// el descuento del lote en la entrada del día de corte. Puede crear meses nuevos.
// Es idempotente: una segunda llamada no inserta nada ni duplica el corte.
func ExpandBatch(b *Book, batch *entity.LedgerEntry) Expansion {
	var out Expansion
	if !batch.IsBatch() {
		return out
	}
	clock := b.Clock()
	cutover := calendar.CutoverDay(*batch.ExpireDate)
	end := calendar.Min(cutover, clock.Today())
	note := fmt.Sprintf("seguimiento lote %s", batch.BatchNumber)

	for d := batch.Date.Next(); !d.After(end); d = d.Next() {
		if _, created := b.EnsureEntry(d, note); created {
			out.Placeholders++
		}
	}

	if !calendar.CutoverPassed(*batch.ExpireDate, clock.Now, clock.Location) {
		return out
	}
	cut, _ := b.EnsureEntry(cutover, fmt.Sprintf("corte lote %s", batch.BatchNumber))
	out.Expired = cut.AddExpiration(batch.BatchNumber)
	return out
}
