package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Concesiones-api/internal/application/dto"
)

func TestRenderMonthReport_GeneraPDF(t *testing.T) {
	month := &dto.LedgerMonthResponse{
		TheaterID: "teatro-1", ProductID: "crispetas", Year: 2026, Month: 3,
		ClosingBalance: decimal.NewFromInt(0),
		Entries: []dto.LedgerEntryResponse{
			{Date: "2026-03-01", Kind: "ADDED", StockAdded: decimal.NewFromInt(100), Balance: decimal.NewFromInt(100), BatchNumber: "L20260301-AB", ExpireDate: "2026-03-05"},
			{Date: "2026-03-06", Kind: "ADDED", AutoGenerated: true, ExpiredOldStock: decimal.NewFromInt(100),
				Expirations: []dto.BatchExpiryResponse{{BatchNumber: "L20260301-AB", Quantity: decimal.NewFromInt(100)}}},
		},
		Warnings: []string{"stock no sincronizado"},
	}

	out, err := NewLedgerReport().RenderMonthReport(context.Background(), month)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderMonthReport_SinMes(t *testing.T) {
	_, err := NewLedgerReport().RenderMonthReport(context.Background(), nil)
	assert.Error(t, err)
}

func TestQty_SeparadoresEnEspanol(t *testing.T) {
	g := NewLedgerReport()
	assert.Equal(t, "1.234.567,5", g.qty(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "0", g.qty(decimal.Zero))
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "marzo de 2026", periodLabel(2026, 3))
	assert.Equal(t, "2026-13", periodLabel(2026, 13))
}
