package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Concesiones-api/internal/application/dto"
	"github.com/jhoicas/Concesiones-api/internal/domain/calendar"
	"github.com/jhoicas/Concesiones-api/internal/domain/entity"
)

func toEntryResponse(e *entity.LedgerEntry) dto.LedgerEntryResponse {
	out := dto.LedgerEntryResponse{
		ID:              e.ID,
		Date:            e.Date.String(),
		Kind:            string(e.Kind),
		Quantity:        e.Quantity,
		CarryForward:    e.CarryForward,
		StockAdded:      e.StockAdded,
		UsedStock:       e.UsedStock,
		ExpiredOldStock: e.ExpiredOldStock,
		ExpiredStock:    e.ExpiredStock,
		DamageStock:     e.DamageStock,
		Balance:         e.Balance,
		BatchNumber:     e.BatchNumber,
		Notes:           e.Notes,
		AutoGenerated:   e.IsAutoGenerated(),
	}
	if e.ExpireDate != nil {
		out.ExpireDate = e.ExpireDate.String()
	}
	for _, x := range e.Expirations {
		out.Expirations = append(out.Expirations, dto.BatchExpiryResponse{BatchNumber: x.BatchNumber, Quantity: x.Quantity})
	}
	return out
}

// toMonthResponse vista del mes; las entradas autogeneradas posteriores a today no se muestran.
func toMonthResponse(m *entity.MonthlyLedger, currentStock decimal.Decimal, today calendar.Day) *dto.LedgerMonthResponse {
	out := &dto.LedgerMonthResponse{
		TheaterID:         m.TheaterID,
		ProductID:         m.ProductID,
		Year:              m.Period.Year,
		Month:             int(m.Period.Month),
		CarryForward:      m.CarryForward,
		TotalStockAdded:   m.TotalStockAdded,
		TotalUsedStock:    m.TotalUsedStock,
		TotalExpiredStock: m.TotalExpiredStock,
		TotalDamageStock:  m.TotalDamageStock,
		ClosingBalance:    m.ClosingBalance,
		CurrentStock:      currentStock,
		Entries:           make([]dto.LedgerEntryResponse, 0, len(m.Entries)),
	}
	for _, e := range m.Entries {
		if e.IsAutoGenerated() && e.Date.After(today) {
			continue
		}
		out.Entries = append(out.Entries, toEntryResponse(e))
	}
	return out
}
