// Package calendar define el día calendario del kardex, independiente de hora y zona horaria.
package calendar

import (
	"fmt"
	"time"
)

const (
	secondsPerDay = 24 * 60 * 60
	layout        = "2006-01-02"
)

// Day día calendario como número de días desde 1970-01-01.
// Comparable con ==, ordenable con < y usable como llave de mapa.
type Day int32

// Date construye el día a partir de año, mes y día (normaliza desbordes como time.Date).
func Date(year int, month time.Month, day int) Day {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Day(t.Unix() / secondsPerDay)
}

// FromTime día calendario del instante t visto en la zona loc.
func FromTime(t time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return Date(y, m, d)
}

// Parse lee un día en formato YYYY-MM-DD.
func Parse(s string) (Day, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	return Date(t.Year(), t.Month(), t.Day()), nil
}

func (d Day) civil() time.Time {
	return time.Unix(int64(d)*secondsPerDay, 0).UTC()
}

// IsZero true para el valor cero (1970-01-01), que se usa como "sin fecha".
func (d Day) IsZero() bool { return d == 0 }

func (d Day) Year() int { return d.civil().Year() }
func (d Day) Month() time.Month { return d.civil().Month() }
func (d Day) DayOfMonth() int { return d.civil().Day() }
func (d Day) AddDays(n int) Day { return d + Day(n) }
func (d Day) Next() Day { return d + 1 }
func (d Day) Prev() Day { return d - 1 }
func (d Day) Before(o Day) bool { return d < o }
func (d Day) After(o Day) bool { return d > o }
func (d Day) Period() Month { return MonthOf(d) }
func (d Day) String() string { return d.civil().Format(layout) }

// Start primer instante del día en la zona loc.
func (d Day) Start(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, dd := d.civil().Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, loc)
}

// MarshalText serializa como YYYY-MM-DD (también aplica a JSON).
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText lee YYYY-MM-DD.
func (d *Day) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Min devuelve el menor de dos días.
func Min(a, b Day) Day {
	if a < b {
		return a
	}
	return b
}

// CutoverDay día en que un lote con vencimiento expireDate pasa a estar vencido:
// se vende durante todo expireDate y se descuenta al día siguiente.
func CutoverDay(expireDate Day) Day {
	return expireDate.Next()
}

// CutoverInstant primer minuto (00:01) del día de corte en la zona loc.
func CutoverInstant(expireDate Day, loc *time.Location) time.Time {
	return CutoverDay(expireDate).Start(loc).Add(time.Minute)
}

// CutoverPassed true si en el instante now el lote ya debe descontarse.
func CutoverPassed(expireDate Day, now time.Time, loc *time.Location) bool {
	return !now.Before(CutoverInstant(expireDate, loc))
}
