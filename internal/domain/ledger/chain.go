package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Concesiones-api/internal/domain/entity"
)

// ResolveChain recorre los meses de un (teatro, producto) en orden cronológico y fija el
// saldo inicial de cada uno al cierre del anterior (cero para el primero), recalculando
// cada mes antes de pasar al siguiente para que las correcciones se propaguen.
// Un único libro de lotes atraviesa todos los meses. Devuelve los meses cuyo saldo
// inicial estaba desfasado.
func ResolveChain(months []*entity.MonthlyLedger) []*entity.MonthlyLedger {
	sorted := append([]*entity.MonthlyLedger(nil), months...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Period.Before(sorted[j].Period) })

	lots := NewLotBook(decimal.Zero)
	opening := decimal.Zero
	var corrected []*entity.MonthlyLedger
	for _, m := range sorted {
		if !m.CarryForward.Equal(opening) {
			m.CarryForward = opening
			corrected = append(corrected, m)
		}
		RecalculateMonth(m, lots)
		opening = m.ClosingBalance
	}
	return corrected
}
