package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Concesiones-api/internal/application/dto"
	"github.com/jhoicas/Concesiones-api/internal/domain"
	"github.com/jhoicas/Concesiones-api/internal/domain/calendar"
	"github.com/jhoicas/Concesiones-api/internal/domain/entity"
)

// MovementInput entrada para registrar un movimiento diario.
// ExpireDate, BatchNumber y Reported solo aplican a ADDED/RETURNED.
type MovementInput struct {
	UserID      string
	Date        calendar.Day
	Kind        entity.MovementKind
	Quantity    decimal.Decimal
	ExpireDate  *calendar.Day
	BatchNumber string
	Reported    entity.ReportedStock
	Notes       string
}

// entry construye la entrada con un ID nuevo.
func (in MovementInput) entry(now time.Time) *entity.LedgerEntry {
	e := &entity.LedgerEntry{
		ID:          uuid.NewString(),
		Date:        in.Date,
		Kind:        in.Kind,
		Quantity:    in.Quantity,
		BatchNumber: in.BatchNumber,
		Reported:    in.Reported,
		Notes:       in.Notes,
		CreatedBy:   in.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.ExpireDate != nil {
		d := *in.ExpireDate
		e.ExpireDate = &d
	}
	return e
}

// MovementPatch cambios parciales sobre un movimiento; nil = sin cambio.
type MovementPatch struct {
	UserID          string
	Date            *calendar.Day
	Kind            *entity.MovementKind
	Quantity        *decimal.Decimal
	ExpireDate      *calendar.Day
	ClearExpireDate bool
	BatchNumber     *string
	Reported        *entity.ReportedStock
	Notes           *string
}

func (p MovementPatch) apply(e *entity.LedgerEntry) {
	if p.UserID != "" {
		e.UpdatedBy = p.UserID
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Kind != nil {
		e.Kind = *p.Kind
	}
	if p.Quantity != nil {
		e.Quantity = *p.Quantity
	}
	switch {
	case p.ClearExpireDate:
		e.ExpireDate = nil
	case p.ExpireDate != nil:
		d := *p.ExpireDate
		e.ExpireDate = &d
	}
	if p.BatchNumber != nil {
		e.BatchNumber = strings.TrimSpace(*p.BatchNumber)
	}
	if p.Reported != nil {
		e.Reported = *p.Reported
	}
	if p.Notes != nil {
		e.Notes = strings.TrimSpace(*p.Notes)
	}
}

func parseDay(field, s string) (calendar.Day, error) {
	d, err := calendar.Parse(strings.TrimSpace(s))
	if err != nil {
		return 0, domain.NewValidationError(field, "se espera una fecha YYYY-MM-DD")
	}
	return d, nil
}

func reportedFromDTO(in *dto.ReportedStockDTO) entity.ReportedStock {
	var r entity.ReportedStock
	if in == nil {
		return r
	}
	wrap := func(v *decimal.Decimal) decimal.NullDecimal {
		if v == nil {
			return decimal.NullDecimal{}
		}
		return decimal.NewNullDecimal(*v)
	}
	r.Used = wrap(in.Used)
	r.ExpiredOld = wrap(in.ExpiredOld)
	r.Expired = wrap(in.Expired)
	r.Damage = wrap(in.Damage)
	return r
}

// MovementInputFromRequest adapta el request HTTP a MovementInput.
func MovementInputFromRequest(userID string, in dto.RecordMovementRequest) (MovementInput, error) {
	date, err := parseDay("date", in.Date)
	if err != nil {
		return MovementInput{}, err
	}
	out := MovementInput{
		UserID:      userID,
		Date:        date,
		Kind:        entity.MovementKind(strings.ToUpper(strings.TrimSpace(in.Kind))),
		Quantity:    in.Quantity,
		BatchNumber: strings.TrimSpace(in.BatchNumber),
		Reported:    reportedFromDTO(in.Reported),
		Notes:       strings.TrimSpace(in.Notes),
	}
	if strings.TrimSpace(in.ExpireDate) != "" {
		exp, err := parseDay("expire_date", in.ExpireDate)
		if err != nil {
			return MovementInput{}, err
		}
		out.ExpireDate = &exp
	}
	return out, nil
}

// MovementPatchFromRequest adapta el PATCH HTTP a MovementPatch.
func MovementPatchFromRequest(userID string, in dto.UpdateMovementRequest) (MovementPatch, error) {
	out := MovementPatch{UserID: userID, Quantity: in.Quantity, BatchNumber: in.BatchNumber, Notes: in.Notes}
	if in.Date != nil {
		d, err := parseDay("date", *in.Date)
		if err != nil {
			return MovementPatch{}, err
		}
		out.Date = &d
	}
	if in.Kind != nil {
		k := entity.MovementKind(strings.ToUpper(strings.TrimSpace(*in.Kind)))
		out.Kind = &k
	}
	if in.ExpireDate != nil {
		if strings.TrimSpace(*in.ExpireDate) == "" {
			out.ClearExpireDate = true
		} else {
			d, err := parseDay("expire_date", *in.ExpireDate)
			if err != nil {
				return MovementPatch{}, err
			}
			out.ExpireDate = &d
		}
	}
	if in.Reported != nil {
		r := reportedFromDTO(in.Reported)
		out.Reported = &r
	}
	return out, nil
}
