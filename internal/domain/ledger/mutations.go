package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Concesiones-api/internal/domain"
	"github.com/jhoicas/Concesiones-api/internal/domain/calendar"
	"github.com/jhoicas/Concesiones-api/internal/domain/entity"
)

// QuantityScale decimales que admite una cantidad; los saldos del mes se persisten con esa escala.
const QuantityScale = 4

func overScale(v decimal.Decimal) bool {
	return !v.Truncate(QuantityScale).Equal(v)
}

func scaleError(field string) error {
	return domain.NewValidationError(field, fmt.Sprintf("máximo %d decimales", QuantityScale))
}

// ValidateEntry reglas de un movimiento real antes de aplicarlo al libro.
func ValidateEntry(e *entity.LedgerEntry) error {
	if !e.Kind.Valid() {
		return domain.NewValidationError("kind", fmt.Sprintf("tipo de movimiento desconocido %q", e.Kind))
	}
	if e.Date.IsZero() {
		return domain.NewValidationError("date", "la fecha es requerida")
	}
	if e.IsAutoGenerated() {
		return domain.NewValidationError("notes", "el prefijo "+entity.AutoNotePrefix+" está reservado")
	}
	switch {
	case e.Kind == entity.KindAdjustment && e.Quantity.IsZero():
		return domain.NewValidationError("quantity", "el ajuste no puede ser cero")
	case e.Kind != entity.KindAdjustment && !e.Quantity.IsPositive():
		return domain.NewValidationError("quantity", "la cantidad debe ser mayor a cero")
	case overScale(e.Quantity):
		return scaleError("quantity")
	}
	if !e.Kind.IsStockIn() {
		if e.ExpireDate != nil {
			return domain.NewValidationError("expire_date", "solo los ingresos llevan fecha de vencimiento")
		}
		if e.BatchNumber != "" {
			return domain.NewValidationError("batch_number", "solo los ingresos llevan número de lote")
		}
		if !e.Reported.IsEmpty() {
			return domain.NewValidationError("reported", "solo los ingresos llevan consumos reportados")
		}
		return nil
	}
	if e.ExpireDate != nil && e.ExpireDate.Before(e.Date) {
		return domain.NewValidationError("expire_date", "el vencimiento no puede ser anterior a la fecha del ingreso")
	}
	for field, v := range map[string]decimal.NullDecimal{
		"reported.used":        e.Reported.Used,
		"reported.expired_old": e.Reported.ExpiredOld,
		"reported.expired":     e.Reported.Expired,
		"reported.damage":      e.Reported.Damage,
	} {
		if !v.Valid {
			continue
		}
		if v.Decimal.IsNegative() {
			return domain.NewValidationError(field, "no puede ser negativo")
		}
		if overScale(v.Decimal) {
			return scaleError(field)
		}
	}
	return nil
}

// normalize limpia los campos que solo aplican a ingresos cuando el tipo ya no lo es.
func normalize(e *entity.LedgerEntry) {
	if e.Kind.IsStockIn() {
		return
	}
	e.ExpireDate = nil
	e.BatchNumber = ""
	e.Reported = entity.ReportedStock{}
}

// BatchNumberFor número de lote generado: L + fecha del ingreso + sufijo del id.
func BatchNumberFor(day calendar.Day, id string) string {
	suffix := strings.ReplaceAll(id, "-", "")
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("L%04d%02d%02d-%s", day.Year(), int(day.Month()), day.DayOfMonth(), strings.ToUpper(suffix))
}

func (b *Book) assignBatch(e *entity.LedgerEntry) {
	if e.Kind.IsStockIn() && e.ExpireDate != nil && e.BatchNumber == "" {
		e.BatchNumber = BatchNumberFor(e.Date, b.NewID())
	}
}

// Record aplica un movimiento real nuevo. Si el día tiene una entrada de relleno, la
// reemplaza heredando sus cortes de lote; si tiene una real, combina ambos movimientos.
// Devuelve la entrada que quedó en el libro.
func (b *Book) Record(e *entity.LedgerEntry) (*entity.LedgerEntry, error) {
	if err := ValidateEntry(e); err != nil {
		return nil, err
	}
	b.assignBatch(e)
	if e.BatchNumber != "" && b.BatchInUse(e.BatchNumber, e.ID) {
		return nil, domain.NewValidationError("batch_number", fmt.Sprintf("el lote %s ya existe para este producto", e.BatchNumber))
	}
	m := b.EnsureMonth(e.Date.Period())
	existing := m.EntryAt(e.Date)
	switch {
	case existing == nil:
		m.Insert(e)
		return e, nil
	case existing.IsAutoGenerated():
		e.Expirations = existing.Expirations
		m.Replace(e)
		return e, nil
	}
	if err := merge(existing, e); err != nil {
		return nil, err
	}
	return existing, nil
}

// reportedFrom convierte una salida simple en el bucket equivalente de un ingreso.
func reportedFrom(e *entity.LedgerEntry) (entity.ReportedStock, bool) {
	qty := decimal.NewNullDecimal(e.Quantity)
	switch e.Kind {
	case entity.KindSold:
		return entity.ReportedStock{Used: qty}, true
	case entity.KindExpired:
		return entity.ReportedStock{Expired: qty}, true
	case entity.KindDamaged:
		return entity.ReportedStock{Damage: qty}, true
	}
	return entity.ReportedStock{}, false
}

// merge combina incoming en existing (mismo día, ambos reales).
func merge(existing, incoming *entity.LedgerEntry) error {
	switch {
	case existing.Kind == incoming.Kind && existing.Kind.IsStockIn():
		if !sameExpiry(existing.ExpireDate, incoming.ExpireDate) {
			return domain.NewValidationError("expire_date", "ese día ya tiene un ingreso con otro vencimiento")
		}
		existing.Quantity = existing.Quantity.Add(incoming.Quantity)
		existing.Reported = existing.Reported.Add(incoming.Reported)
	case existing.Kind == incoming.Kind:
		existing.Quantity = existing.Quantity.Add(incoming.Quantity)
	case existing.Kind.IsStockIn():
		rep, ok := reportedFrom(incoming)
		if !ok {
			return conflictingKinds(existing, incoming)
		}
		existing.Reported = existing.Reported.Add(rep)
	case incoming.Kind.IsStockIn():
		rep, ok := reportedFrom(existing)
		if !ok {
			return conflictingKinds(existing, incoming)
		}
		existing.Kind = incoming.Kind
		existing.Quantity = incoming.Quantity
		existing.ExpireDate = incoming.ExpireDate
		existing.BatchNumber = incoming.BatchNumber
		existing.Reported = incoming.Reported.Add(rep)
	default:
		return conflictingKinds(existing, incoming)
	}
	existing.Notes = joinNotes(existing.Notes, incoming.Notes)
	existing.UpdatedAt = incoming.UpdatedAt
	if incoming.CreatedBy != "" {
		existing.UpdatedBy = incoming.CreatedBy
	}
	return nil
}

func conflictingKinds(existing, incoming *entity.LedgerEntry) error {
	return domain.NewValidationError("kind", fmt.Sprintf(
		"el %s ya tiene un movimiento %s; no se puede combinar con %s", existing.Date, existing.Kind, incoming.Kind))
}

func sameExpiry(a, b *calendar.Day) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func joinNotes(a, b string) string {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	switch {
	case a == "":
		return b
	case b == "" || a == b:
		return a
	}
	return a + " | " + b
}

// Update edita una entrada real del mes. apply modifica una copia; si el tipo deja de ser
// ingreso se limpian vencimiento, lote y reportados. Si la fecha cambia, la entrada se
// mueve (incluso a otro mes) y hereda los cortes de la entrada de relleno del día destino.
func (b *Book) Update(period calendar.Month, id string, apply func(*entity.LedgerEntry) error) (*entity.LedgerEntry, error) {
	m, ok := b.Month(period)
	if !ok {
		return nil, &domain.NotFoundError{Resource: "month", ID: period.String()}
	}
	current := m.EntryByID(id)
	if current == nil {
		return nil, &domain.NotFoundError{Resource: "entry", ID: id}
	}
	if current.IsAutoGenerated() {
		return nil, domain.NewValidationError("id", "las entradas autogeneradas no se editan; regenere el mes")
	}

	updated := current.Clone()
	if err := apply(updated); err != nil {
		return nil, err
	}
	updated.ID = current.ID
	normalize(updated)
	if err := ValidateEntry(updated); err != nil {
		return nil, err
	}
	b.assignBatch(updated)
	if updated.BatchNumber != "" && b.BatchInUse(updated.BatchNumber, updated.ID) {
		return nil, domain.NewValidationError("batch_number", fmt.Sprintf("el lote %s ya existe para este producto", updated.BatchNumber))
	}

	if updated.Date == current.Date {
		m.Replace(updated)
		return updated, nil
	}

	target := b.EnsureMonth(updated.Date.Period())
	occupant := target.EntryAt(updated.Date)
	if occupant != nil && !occupant.IsAutoGenerated() {
		return nil, domain.NewValidationError("date", fmt.Sprintf("el %s ya tiene un movimiento registrado", updated.Date))
	}
	m.Remove(current.ID)
	updated.Expirations = nil
	if occupant != nil {
		updated.Expirations = occupant.Expirations
		target.Replace(updated)
	} else {
		target.Insert(updated)
	}
	return updated, nil
}

// Delete quita una entrada del mes y la devuelve.
func (b *Book) Delete(period calendar.Month, id string) (*entity.LedgerEntry, error) {
	m, ok := b.Month(period)
	if !ok {
		return nil, &domain.NotFoundError{Resource: "month", ID: period.String()}
	}
	removed := m.Remove(id)
	if removed == nil {
		return nil, &domain.NotFoundError{Resource: "entry", ID: id}
	}
	return removed, nil
}

// Regenerate quita las entradas de relleno y los cortes del mes para que el barrido los
// vuelva a construir desde los lotes reales. Devuelve cuántas entradas quitó.
func (b *Book) Regenerate(period calendar.Month) (int, error) {
	m, ok := b.Month(period)
	if !ok {
		return 0, &domain.NotFoundError{Resource: "month", ID: period.String()}
	}
	removed := m.RemoveWhere((*entity.LedgerEntry).IsAutoGenerated)
	for _, e := range m.Entries {
		e.Expirations = nil
	}
	return removed, nil
}

// Clear quita todas las entradas del mes; el mes sigue existiendo. Devuelve cuántas quitó.
func (b *Book) Clear(period calendar.Month) (int, error) {
	m, ok := b.Month(period)
	if !ok {
		return 0, &domain.NotFoundError{Resource: "month", ID: period.String()}
	}
	return m.RemoveWhere(func(*entity.LedgerEntry) bool { return true }), nil
}
