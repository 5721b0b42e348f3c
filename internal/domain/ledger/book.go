package ledger

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Concesiones-api/internal/domain/calendar"
	"github.com/jhoicas/Concesiones-api/internal/domain/entity"
)

// Clock instante de referencia y zona horaria de los teatros.
type Clock struct {
	Now      time.Time
	Location *time.Location
}

// Today día calendario de Now en la zona de los teatros.
func (c Clock) Today() calendar.Day {
	return calendar.FromTime(c.Now, c.Location)
}

// Book todos los meses de un (teatro, producto) cargados para una operación.
// Guarda una foto de cada mes tal como se cargó para detectar qué cambió.
type Book struct {
	theaterID string
	productID string
	clock     Clock
	months    map[calendar.Month]*entity.MonthlyLedger
	loaded    map[calendar.Month]*entity.MonthlyLedger

	// NewID genera IDs de meses y de entradas de relleno.
	NewID func() string
}

// NewBook arma el libro con los meses leídos de persistencia.
func NewBook(theaterID, productID string, months []*entity.MonthlyLedger, clock Clock) *Book {
	if clock.Location == nil {
		clock.Location = time.UTC
	}
	b := &Book{
		theaterID: theaterID,
		productID: productID,
		clock:     clock,
		months:    make(map[calendar.Month]*entity.MonthlyLedger, len(months)),
		loaded:    make(map[calendar.Month]*entity.MonthlyLedger, len(months)),
		NewID:     uuid.NewString,
	}
	for _, m := range months {
		m.SortEntries()
		b.months[m.Period] = m
		b.loaded[m.Period] = m.Clone()
	}
	return b
}

func (b *Book) TheaterID() string { return b.theaterID }
func (b *Book) ProductID() string { return b.productID }
func (b *Book) Clock() Clock { return b.clock }

// Months meses en orden cronológico.
func (b *Book) Months() []*entity.MonthlyLedger {
	out := make([]*entity.MonthlyLedger, 0, len(b.months))
	for _, m := range b.months {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period.Before(out[j].Period) })
	return out
}

// Month mes cargado o creado en esta operación.
func (b *Book) Month(p calendar.Month) (*entity.MonthlyLedger, bool) {
	m, ok := b.months[p]
	return m, ok
}

// EnsureMonth devuelve el mes, creándolo vacío si no existe.
func (b *Book) EnsureMonth(p calendar.Month) *entity.MonthlyLedger {
	if m, ok := b.months[p]; ok {
		return m
	}
	key := entity.LedgerKey{TheaterID: b.theaterID, ProductID: b.productID, Period: p}
	m := entity.NewMonthlyLedger(b.NewID(), key, b.clock.Now)
	b.months[p] = m
	return m
}

// EntryAt entrada del día en cualquier mes, o nil.
func (b *Book) EntryAt(day calendar.Day) *entity.LedgerEntry {
	m, ok := b.months[day.Period()]
	if !ok {
		return nil
	}
	return m.EntryAt(day)
}

// EnsureEntry entrada del día; si no hay, inserta una de relleno con la nota dada.
// created es true si se insertó.
func (b *Book) EnsureEntry(day calendar.Day, note string) (e *entity.LedgerEntry, created bool) {
	if e := b.EntryAt(day); e != nil {
		return e, false
	}
	e = entity.NewPlaceholder(b.NewID(), day, note, b.clock.Now)
	b.EnsureMonth(day.Period()).Insert(e)
	return e, true
}

// Batches entradas reales que representan lotes con vencimiento, por fecha.
func (b *Book) Batches() []*entity.LedgerEntry {
	var out []*entity.LedgerEntry
	for _, m := range b.Months() {
		for _, e := range m.Entries {
			if e.IsBatch() && !e.IsAutoGenerated() {
				out = append(out, e)
			}
		}
	}
	return out
}

// BatchInUse true si otra entrada (distinta de exceptID) ya usa ese número de lote.
func (b *Book) BatchInUse(batch, exceptID string) bool {
	for _, m := range b.months {
		for _, e := range m.Entries {
			if e.ID != exceptID && e.BatchNumber == batch {
				return true
			}
		}
	}
	return false
}

// ClosingBalance saldo de cierre del último mes, incluidos movimientos con fecha futura.
func (b *Book) ClosingBalance() decimal.Decimal {
	months := b.Months()
	if len(months) == 0 {
		return decimal.Zero
	}
	return months[len(months)-1].ClosingBalance
}

// StockAt saldo al final del día dado: el de la última entrada con fecha <= day, o el saldo
// inicial del mes si no hay entradas anteriores. Ignora movimientos con fecha futura.
func (b *Book) StockAt(day calendar.Day) decimal.Decimal {
	stock := decimal.Zero
	for _, m := range b.Months() {
		if m.Period.After(day.Period()) {
			break
		}
		stock = m.CarryForward
		for _, e := range m.Entries {
			if e.Date.After(day) {
				break
			}
			stock = e.Balance
		}
	}
	return stock
}

// CurrentStock saldo a hoy según el reloj del libro.
func (b *Book) CurrentStock() decimal.Decimal {
	return b.StockAt(b.clock.Today())
}

// Changed meses nuevos o modificados respecto a lo cargado, en orden cronológico.
func (b *Book) Changed() []*entity.MonthlyLedger {
	var out []*entity.MonthlyLedger
	for _, m := range b.Months() {
		before, ok := b.loaded[m.Period]
		if !ok || !m.SameState(before) {
			m.UpdatedAt = b.clock.Now
			out = append(out, m)
		}
	}
	return out
}
