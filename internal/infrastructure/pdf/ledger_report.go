// Package pdf genera el reporte mensual del kardex de perecederos en PDF (A4 horizontal).
//
// Layout:
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│  HEADER: Kardex de perecederos │ Teatro / Producto / Periodo     │
//	│  RESUMEN: saldo inicial, ingresos, usado, vencido, daño, cierre  │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Inicial | Ingreso | Usado | Venc. | ...   │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  FOOTER: lotes vencidos en el mes + avisos                       │
//	└──────────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/Concesiones-api/internal/application/dto"
	"github.com/jhoicas/Concesiones-api/internal/application/ledger"
)

var _ ledger.MonthReportRenderer = (*LedgerReport)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAuto    = &props.Color{Red: 150, Green: 150, Blue: 150}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// LedgerReport implementa ledger.MonthReportRenderer usando Maroto v2.
type LedgerReport struct {
	printer *message.Printer
}

// NewLedgerReport construye el generador con formato numérico en español (1.234.567,5).
func NewLedgerReport() *LedgerReport {
	return &LedgerReport{printer: message.NewPrinter(language.Spanish)}
}

// RenderMonthReport genera el PDF del mes y devuelve sus bytes.
func (g *LedgerReport) RenderMonthReport(_ context.Context, month *dto.LedgerMonthResponse) ([]byte, error) {
	if month == nil {
		return nil, fmt.Errorf("pdf: mes vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Kardex de perecederos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(month))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(month))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range g.entryRows(month.Entries) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range g.footerRows(month) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *LedgerReport) headerRow(month *dto.LedgerMonthResponse) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New("KARDEX DE PERECEDEROS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(periodLabel(month.Year, month.Month), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New("Teatro: "+month.TheaterID, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
			text.New("Producto: "+month.ProductID, props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

func (g *LedgerReport) summaryRow(month *dto.LedgerMonthResponse) core.Row {
	cell := func(label string, v decimal.Decimal) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Align: align.Center, Top: 1}),
			text.New(g.qty(v), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Center, Top: 5}),
		)
	}
	return row.New(12).Add(
		cell("Saldo inicial", month.CarryForward),
		cell("Ingresos", month.TotalStockAdded),
		cell("Usado", month.TotalUsedStock),
		cell("Vencido", month.TotalExpiredStock),
		cell("Daño", month.TotalDamageStock),
		cell("Saldo final", month.ClosingBalance),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 1, align.Left),
		h("Tipo", 1, align.Left),
		h("Inicial", 1, align.Right),
		h("Ingreso", 1, align.Right),
		h("Usado", 1, align.Right),
		h("Venc. lote", 1, align.Right),
		h("Vencido", 1, align.Right),
		h("Daño", 1, align.Right),
		h("Saldo", 1, align.Right),
		h("Lote / Vence", 1, align.Left),
		h("Notas", 2, align.Left),
	)
}

// entryRows una fila por día; el relleno automático va en gris.
func (g *LedgerReport) entryRows(entries []dto.LedgerEntryResponse) []core.Row {
	out := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		var color *props.Color
		if e.AutoGenerated {
			color = colorAuto
		}
		num := func(v decimal.Decimal) core.Col {
			return col.New(1).Add(text.New(g.qty(v), props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1, Color: color}))
		}
		txt := func(s string, size int) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 7, Top: 1, Left: 1, Color: color}))
		}
		batch := e.BatchNumber
		if e.ExpireDate != "" {
			batch = strings.TrimSpace(batch + " " + e.ExpireDate)
		}
		out = append(out, row.New(6).Add(
			txt(e.Date, 1),
			txt(e.Kind, 1),
			num(e.CarryForward),
			num(e.StockAdded),
			num(e.UsedStock),
			num(e.ExpiredOldStock),
			num(e.ExpiredStock),
			num(e.DamageStock),
			num(e.Balance),
			txt(batch, 1),
			txt(e.Notes, 2),
		))
	}
	return out
}

func (g *LedgerReport) footerRows(month *dto.LedgerMonthResponse) []core.Row {
	var rows []core.Row
	for _, e := range month.Entries {
		for _, x := range e.Expirations {
			rows = append(rows, row.New(5).Add(col.New(12).Add(
				text.New(fmt.Sprintf("Lote %s vencido el %s: %s unidades", x.BatchNumber, e.Date, g.qty(x.Quantity)),
					props.Text{Size: 7, Color: colorGray, Top: 1}),
			)))
		}
	}
	for _, w := range month.Warnings {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Aviso: "+w, props.Text{Size: 7, Color: colorAlert, Top: 1}),
		)))
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Stock actual: %s", g.qty(month.CurrentStock)),
			props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Color: colorPrimary}),
	)))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// qty cantidad con separador de miles y hasta dos decimales.
func (g *LedgerReport) qty(v decimal.Decimal) string {
	return g.printer.Sprintf("%v", number.Decimal(v.InexactFloat64(), number.MaxFractionDigits(2)))
}

func periodLabel(year, month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("%04d-%02d", year, month)
	}
	return fmt.Sprintf("%s de %d", monthNames[month-1], year)
}
