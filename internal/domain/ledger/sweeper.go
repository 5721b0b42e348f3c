package ledger

import (
	"slices"

	"github.com/jhoicas/Concesiones-api/internal/domain/calendar"
	"github.com/jhoicas/Concesiones-api/internal/domain/entity"
)

// SweepReport qué hizo un barrido.
type SweepReport struct {
	Placeholders      int
	ExpiredBatches    []string
	PrunedExpirations int
	CorrectedMonths   []calendar.Month
}

// Empty true si el barrido no encontró nada que hacer.
func (r SweepReport) Empty() bool {
	return r.Placeholders == 0 && len(r.ExpiredBatches) == 0 && r.PrunedExpirations == 0 && len(r.CorrectedMonths) == 0
}

// Merge suma a r el reporte de una pasada posterior. Los meses corregidos no se repiten.
func (r *SweepReport) Merge(o SweepReport) {
	r.Placeholders += o.Placeholders
	r.ExpiredBatches = append(r.ExpiredBatches, o.ExpiredBatches...)
	r.PrunedExpirations += o.PrunedExpirations
	for _, p := range o.CorrectedMonths {
		if !slices.Contains(r.CorrectedMonths, p) {
			r.CorrectedMonths = append(r.CorrectedMonths, p)
		}
	}
}

// Sweep lleva el libro a un estado consistente con el reloj:
//  1. quita cortes de lotes que ya no existen, cambiaron de vencimiento o aún no vencen;
//  2. expande cada lote (relleno diario y corte si ya pasó);
//  3. resuelve la cadena de saldos de todos los meses.
//
// Aplicarlo dos veces seguidas con el mismo reloj no cambia nada la segunda vez.
func Sweep(b *Book) SweepReport {
	var r SweepReport
	r.PrunedExpirations = pruneExpirations(b)
	for _, batch := range b.Batches() {
		x := ExpandBatch(b, batch)
		r.Placeholders += x.Placeholders
		if x.Expired {
			r.ExpiredBatches = append(r.ExpiredBatches, batch.BatchNumber)
		}
	}
	for _, m := range ResolveChain(b.Months()) {
		r.CorrectedMonths = append(r.CorrectedMonths, m.Period)
	}
	return r
}

func pruneExpirations(b *Book) int {
	clock := b.Clock()
	due := make(map[string]calendar.Day)
	for _, batch := range b.Batches() {
		if calendar.CutoverPassed(*batch.ExpireDate, clock.Now, clock.Location) {
			due[batch.BatchNumber] = calendar.CutoverDay(*batch.ExpireDate)
		}
	}
	removed := 0
	for _, m := range b.Months() {
		for _, e := range m.Entries {
			day := e.Date
			removed += e.RetainExpirations(func(x entity.BatchExpiry) bool {
				cut, ok := due[x.BatchNumber]
				return ok && cut == day
			})
		}
	}
	return removed
}
