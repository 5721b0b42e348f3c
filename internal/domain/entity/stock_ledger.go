package entity

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Concesiones-api/internal/domain/calendar"
)

// MovementKind tipo de movimiento diario del kardex de perecederos.
type MovementKind string

const (
	KindAdded      MovementKind = "ADDED"      // ingreso de mercancía
	KindReturned   MovementKind = "RETURNED"   // devolución que reingresa al stock
	KindSold       MovementKind = "SOLD"       // venta en POS
	KindExpired    MovementKind = "EXPIRED"    // vencido reportado manualmente
	KindDamaged    MovementKind = "DAMAGED"    // averiado
	KindAdjustment MovementKind = "ADJUSTMENT" // ajuste con signo
)

// AutoNotePrefix marca las entradas sintetizadas por la expansión de vencimientos.
const AutoNotePrefix = "AUTO:"

// Valid true si es un tipo conocido.
func (k MovementKind) Valid() bool {
	switch k {
	case KindAdded, KindReturned, KindSold, KindExpired, KindDamaged, KindAdjustment:
		return true
	}
	return false
}

// IsStockIn true para ADDED y RETURNED (movimientos que traen un lote físico).
func (k MovementKind) IsStockIn() bool {
	return k == KindAdded || k == KindReturned
}

// ReportedStock consumos del mismo día reportados junto a un ingreso.
// NullDecimal distingue "no reportado" de "cero explícito".
type ReportedStock struct {
	Used       decimal.NullDecimal `json:"used"`
	ExpiredOld decimal.NullDecimal `json:"expired_old"`
	Expired    decimal.NullDecimal `json:"expired"`
	Damage     decimal.NullDecimal `json:"damage"`
}

// IsEmpty true si no se reportó ningún bucket.
func (r ReportedStock) IsEmpty() bool {
	return !r.Used.Valid && !r.ExpiredOld.Valid && !r.Expired.Valid && !r.Damage.Valid
}

// Add suma bucket a bucket; un bucket queda reportado si lo estaba en cualquiera de los dos.
func (r ReportedStock) Add(o ReportedStock) ReportedStock {
	return ReportedStock{
		Used:       addNull(r.Used, o.Used),
		ExpiredOld: addNull(r.ExpiredOld, o.ExpiredOld),
		Expired:    addNull(r.Expired, o.Expired),
		Damage:     addNull(r.Damage, o.Damage),
	}
}

func addNull(a, b decimal.NullDecimal) decimal.NullDecimal {
	if !a.Valid {
		return b
	}
	if !b.Valid {
		return a
	}
	return decimal.NewNullDecimal(a.Decimal.Add(b.Decimal))
}

func orZero(n decimal.NullDecimal) decimal.Decimal {
	if n.Valid {
		return n.Decimal
	}
	return decimal.Zero
}

func sameNull(a, b decimal.NullDecimal) bool {
	return a.Valid == b.Valid && (!a.Valid || a.Decimal.Equal(b.Decimal))
}

// BatchExpiry descuento de un lote vencido registrado en el día de corte.
type BatchExpiry struct {
	BatchNumber string          `json:"batch_number"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// LedgerEntry un día calendario, un registro de movimiento.
// Los buckets y el saldo son derivados: los recalcula el recalculador a partir de Kind,
// Quantity, Reported y Expirations.
type LedgerEntry struct {
	ID              string          `json:"id"`
	Date            calendar.Day    `json:"date"`
	Kind            MovementKind    `json:"kind"`
	Quantity        decimal.Decimal `json:"quantity"` // con signo solo en ADJUSTMENT
	CarryForward    decimal.Decimal `json:"carry_forward"`
	StockAdded      decimal.Decimal `json:"stock_added"`
	UsedStock       decimal.Decimal `json:"used_stock"`
	ExpiredOldStock decimal.Decimal `json:"expired_old_stock"`
	ExpiredStock    decimal.Decimal `json:"expired_stock"`
	DamageStock     decimal.Decimal `json:"damage_stock"`
	Balance         decimal.Decimal `json:"balance"`
	ExpireDate      *calendar.Day   `json:"expire_date,omitempty"`
	BatchNumber     string          `json:"batch_number,omitempty"`
	Reported        ReportedStock   `json:"reported"`
	Expirations     []BatchExpiry   `json:"expirations,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedBy       string          `json:"created_by,omitempty"`
	UpdatedBy       string          `json:"updated_by,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// NewPlaceholder entrada de relleno (ADDED con cantidad cero) para un día sin movimientos.
func NewPlaceholder(id string, day calendar.Day, note string, now time.Time) *LedgerEntry {
	return &LedgerEntry{
		ID:        id,
		Date:      day,
		Kind:      KindAdded,
		Quantity:  decimal.Zero,
		Notes:     AutoNotePrefix + " " + note,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAutoGenerated true si la entrada fue sintetizada (prefijo AUTO: en las notas).
func (e *LedgerEntry) IsAutoGenerated() bool {
	return strings.HasPrefix(e.Notes, AutoNotePrefix)
}

// IsBatch true si la entrada representa un lote físico con vencimiento.
func (e *LedgerEntry) IsBatch() bool {
	return e.Kind.IsStockIn() && e.ExpireDate != nil && e.BatchNumber != "" && e.Quantity.IsPositive()
}

// HasExpiration true si el vencimiento del lote ya está registrado en esta entrada.
func (e *LedgerEntry) HasExpiration(batch string) bool {
	for _, x := range e.Expirations {
		if x.BatchNumber == batch {
			return true
		}
	}
	return false
}

// AddExpiration registra el corte del lote en esta entrada; false si ya estaba.
// La cantidad la fija el recalculador con el remanente del lote.
func (e *LedgerEntry) AddExpiration(batch string) bool {
	if e.HasExpiration(batch) {
		return false
	}
	e.Expirations = append(e.Expirations, BatchExpiry{BatchNumber: batch, Quantity: decimal.Zero})
	sort.Slice(e.Expirations, func(i, j int) bool {
		return e.Expirations[i].BatchNumber < e.Expirations[j].BatchNumber
	})
	return true
}

// RetainExpirations conserva solo los cortes para los que keep es true; devuelve cuántos quitó.
func (e *LedgerEntry) RetainExpirations(keep func(BatchExpiry) bool) int {
	kept := e.Expirations[:0]
	removed := 0
	for _, x := range e.Expirations {
		if keep(x) {
			kept = append(kept, x)
		} else {
			removed++
		}
	}
	if len(kept) == 0 {
		kept = nil
	}
	e.Expirations = kept
	return removed
}

// ExpirationTotal suma de los cortes de lote registrados en el día.
func (e *LedgerEntry) ExpirationTotal() decimal.Decimal {
	total := decimal.Zero
	for _, x := range e.Expirations {
		total = total.Add(x.Quantity)
	}
	return total
}

// Inflow cantidad que entra al stock según el tipo.
func (e *LedgerEntry) Inflow() decimal.Decimal {
	switch {
	case e.Kind.IsStockIn():
		return e.Quantity.Abs()
	case e.Kind == KindAdjustment && e.Quantity.IsPositive():
		return e.Quantity
	}
	return decimal.Zero
}

// Consumption salidas del día distintas de los cortes de lote
// (ventas, averías, vencidos manuales y vencido antiguo reportado).
func (e *LedgerEntry) Consumption() decimal.Decimal {
	qty := e.Quantity.Abs()
	switch e.Kind {
	case KindAdded, KindReturned:
		return orZero(e.Reported.Used).
			Add(orZero(e.Reported.ExpiredOld)).
			Add(orZero(e.Reported.Expired)).
			Add(orZero(e.Reported.Damage))
	case KindSold, KindExpired, KindDamaged:
		return qty
	case KindAdjustment:
		if e.Quantity.IsNegative() {
			return qty
		}
	}
	return decimal.Zero
}

// DeriveBuckets fija los buckets según el tipo (tabla de semántica de movimientos).
func (e *LedgerEntry) DeriveBuckets() {
	qty := e.Quantity.Abs()
	e.StockAdded = decimal.Zero
	e.UsedStock = decimal.Zero
	e.ExpiredOldStock = decimal.Zero
	e.ExpiredStock = decimal.Zero
	e.DamageStock = decimal.Zero

	switch e.Kind {
	case KindAdded, KindReturned:
		e.StockAdded = qty
		e.UsedStock = orZero(e.Reported.Used)
		e.ExpiredOldStock = orZero(e.Reported.ExpiredOld)
		e.ExpiredStock = orZero(e.Reported.Expired)
		e.DamageStock = orZero(e.Reported.Damage)
	case KindSold:
		e.UsedStock = qty
	case KindExpired:
		e.ExpiredStock = qty
	case KindDamaged:
		e.DamageStock = qty
	case KindAdjustment:
		if e.Quantity.IsPositive() {
			e.StockAdded = qty
		} else {
			e.UsedStock = qty
		}
	}
	e.ExpiredOldStock = e.ExpiredOldStock.Add(e.ExpirationTotal())
}

// Settle fija el saldo inicial del día y calcula el saldo final, nunca negativo.
func (e *LedgerEntry) Settle(carryForward decimal.Decimal) {
	e.CarryForward = carryForward
	balance := carryForward.
		Add(e.StockAdded).
		Sub(e.UsedStock).
		Sub(e.ExpiredOldStock).
		Sub(e.ExpiredStock).
		Sub(e.DamageStock)
	if balance.IsNegative() {
		balance = decimal.Zero
	}
	e.Balance = balance
}

// Clone copia profunda.
func (e *LedgerEntry) Clone() *LedgerEntry {
	c := *e
	if e.ExpireDate != nil {
		d := *e.ExpireDate
		c.ExpireDate = &d
	}
	if e.Expirations != nil {
		c.Expirations = append([]BatchExpiry(nil), e.Expirations...)
	}
	return &c
}

// SameAs compara todos los campos persistidos salvo las marcas de tiempo.
func (e *LedgerEntry) SameAs(o *LedgerEntry) bool {
	if e.ID != o.ID || e.Date != o.Date || e.Kind != o.Kind || e.BatchNumber != o.BatchNumber || e.Notes != o.Notes {
		return false
	}
	for _, pair := range [][2]decimal.Decimal{
		{e.Quantity, o.Quantity},
		{e.CarryForward, o.CarryForward},
		{e.StockAdded, o.StockAdded},
		{e.UsedStock, o.UsedStock},
		{e.ExpiredOldStock, o.ExpiredOldStock},
		{e.ExpiredStock, o.ExpiredStock},
		{e.DamageStock, o.DamageStock},
		{e.Balance, o.Balance},
	} {
		if !pair[0].Equal(pair[1]) {
			return false
		}
	}
	if (e.ExpireDate == nil) != (o.ExpireDate == nil) || (e.ExpireDate != nil && *e.ExpireDate != *o.ExpireDate) {
		return false
	}
	if !sameNull(e.Reported.Used, o.Reported.Used) || !sameNull(e.Reported.ExpiredOld, o.Reported.ExpiredOld) ||
		!sameNull(e.Reported.Expired, o.Reported.Expired) || !sameNull(e.Reported.Damage, o.Reported.Damage) {
		return false
	}
	if len(e.Expirations) != len(o.Expirations) {
		return false
	}
	for i := range e.Expirations {
		if e.Expirations[i].BatchNumber != o.Expirations[i].BatchNumber || !e.Expirations[i].Quantity.Equal(o.Expirations[i].Quantity) {
			return false
		}
	}
	return true
}

// LedgerKey llave del agregado mensual: teatro × producto × año × mes.
type LedgerKey struct {
	TheaterID string
	ProductID string
	Period    calendar.Month
}

// MonthlyLedger kardex mensual de un producto en un teatro (raíz del agregado).
// Entries se mantiene ordenado por fecha con fechas únicas.
type MonthlyLedger struct {
	ID                string
	TheaterID         string
	ProductID         string
	Period            calendar.Month
	CarryForward      decimal.Decimal // saldo inicial heredado del cierre del mes anterior
	Entries           []*LedgerEntry
	TotalStockAdded   decimal.Decimal
	TotalUsedStock    decimal.Decimal
	TotalExpiredStock decimal.Decimal // vencido antiguo (cortes de lote) + vencido manual
	TotalDamageStock  decimal.Decimal
	ClosingBalance    decimal.Decimal
	Version           int // 0 = aún no persistido
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewMonthlyLedger crea un mes vacío con saldo inicial cero.
func NewMonthlyLedger(id string, key LedgerKey, now time.Time) *MonthlyLedger {
	return &MonthlyLedger{
		ID:           id,
		TheaterID:    key.TheaterID,
		ProductID:    key.ProductID,
		Period:       key.Period,
		CarryForward: decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Key llave del agregado.
func (m *MonthlyLedger) Key() LedgerKey {
	return LedgerKey{TheaterID: m.TheaterID, ProductID: m.ProductID, Period: m.Period}
}

func (m *MonthlyLedger) search(day calendar.Day) int {
	return sort.Search(len(m.Entries), func(i int) bool { return !m.Entries[i].Date.Before(day) })
}

// EntryAt entrada del día o nil (búsqueda binaria sobre el índice por fecha).
func (m *MonthlyLedger) EntryAt(day calendar.Day) *LedgerEntry {
	i := m.search(day)
	if i < len(m.Entries) && m.Entries[i].Date == day {
		return m.Entries[i]
	}
	return nil
}

// EntryByID entrada con ese ID o nil.
func (m *MonthlyLedger) EntryByID(id string) *LedgerEntry {
	for _, e := range m.Entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Insert agrega la entrada en su posición; false si el día ya tiene entrada o no es del mes.
func (m *MonthlyLedger) Insert(e *LedgerEntry) bool {
	if !m.Period.Contains(e.Date) {
		return false
	}
	i := m.search(e.Date)
	if i < len(m.Entries) && m.Entries[i].Date == e.Date {
		return false
	}
	m.Entries = append(m.Entries, nil)
	copy(m.Entries[i+1:], m.Entries[i:])
	m.Entries[i] = e
	return true
}

// Replace sustituye la entrada del mismo día; false si el día no tiene entrada.
func (m *MonthlyLedger) Replace(e *LedgerEntry) bool {
	i := m.search(e.Date)
	if i < len(m.Entries) && m.Entries[i].Date == e.Date {
		m.Entries[i] = e
		return true
	}
	return false
}

// Remove quita la entrada por ID y la devuelve (nil si no existe).
func (m *MonthlyLedger) Remove(id string) *LedgerEntry {
	for i, e := range m.Entries {
		if e.ID == id {
			m.Entries = append(m.Entries[:i], m.Entries[i+1:]...)
			return e
		}
	}
	return nil
}

// RemoveWhere quita todas las entradas que cumplan pred; devuelve cuántas quitó.
func (m *MonthlyLedger) RemoveWhere(pred func(*LedgerEntry) bool) int {
	kept := m.Entries[:0]
	removed := 0
	for _, e := range m.Entries {
		if pred(e) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(m.Entries); i++ {
		m.Entries[i] = nil
	}
	m.Entries = kept
	return removed
}

// SortEntries reordena por fecha (tras cargar datos de persistencia).
func (m *MonthlyLedger) SortEntries() {
	sort.SliceStable(m.Entries, func(i, j int) bool { return m.Entries[i].Date.Before(m.Entries[j].Date) })
}

// RecomputeTotals recalcula los totales derivados y el saldo de cierre.
func (m *MonthlyLedger) RecomputeTotals() {
	m.TotalStockAdded = decimal.Zero
	m.TotalUsedStock = decimal.Zero
	m.TotalExpiredStock = decimal.Zero
	m.TotalDamageStock = decimal.Zero
	for _, e := range m.Entries {
		m.TotalStockAdded = m.TotalStockAdded.Add(e.StockAdded)
		m.TotalUsedStock = m.TotalUsedStock.Add(e.UsedStock)
		m.TotalExpiredStock = m.TotalExpiredStock.Add(e.ExpiredOldStock).Add(e.ExpiredStock)
		m.TotalDamageStock = m.TotalDamageStock.Add(e.DamageStock)
	}
	m.ClosingBalance = m.CarryForward
	if n := len(m.Entries); n > 0 {
		m.ClosingBalance = m.Entries[n-1].Balance
	}
}

// Clone copia profunda del agregado.
func (m *MonthlyLedger) Clone() *MonthlyLedger {
	c := *m
	c.Entries = make([]*LedgerEntry, len(m.Entries))
	for i, e := range m.Entries {
		c.Entries[i] = e.Clone()
	}
	return &c
}

// SameState compara el contenido persistible (ignora Version y marcas de tiempo).
func (m *MonthlyLedger) SameState(o *MonthlyLedger) bool {
	if m.Key() != o.Key() || len(m.Entries) != len(o.Entries) {
		return false
	}
	if !m.CarryForward.Equal(o.CarryForward) || !m.ClosingBalance.Equal(o.ClosingBalance) ||
		!m.TotalStockAdded.Equal(o.TotalStockAdded) || !m.TotalUsedStock.Equal(o.TotalUsedStock) ||
		!m.TotalExpiredStock.Equal(o.TotalExpiredStock) || !m.TotalDamageStock.Equal(o.TotalDamageStock) {
		return false
	}
	for i := range m.Entries {
		if !m.Entries[i].SameAs(o.Entries[i]) {
			return false
		}
	}
	return true
}
