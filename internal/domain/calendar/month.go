package calendar

import (
	"fmt"
	"time"
)

// Month período año-mes de un kardex mensual.
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth construye el período; valida el rango del mes.
func NewMonth(year int, month int) (Month, error) {
	if month < 1 || month > 12 {
		return Month{}, fmt.Errorf("mes inválido %d", month)
	}
	if year < 1971 || year > 9999 {
		return Month{}, fmt.Errorf("año inválido %d", year)
	}
	return Month{Year: year, Month: time.Month(month)}, nil
}

// MonthOf período al que pertenece el día.
func MonthOf(d Day) Month {
	y, m, _ := d.civil().Date()
	return Month{Year: y, Month: m}
}

func (m Month) index() int { return m.Year*12 + int(m.Month) - 1 }

func (m Month) Before(o Month) bool { return m.index() < o.index() }
func (m Month) After(o Month) bool  { return m.index() > o.index() }

// Next mes siguiente.
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

// Prev mes anterior.
func (m Month) Prev() Month {
	if m.Month == time.January {
		return Month{Year: m.Year - 1, Month: time.December}
	}
	return Month{Year: m.Year, Month: m.Month - 1}
}

// FirstDay primer día del mes.
func (m Month) FirstDay() Day { return Date(m.Year, m.Month, 1) }

// LastDay último día del mes.
func (m Month) LastDay() Day { return m.Next().FirstDay().Prev() }

// Contains true si el día cae dentro del mes.
func (m Month) Contains(d Day) bool { return MonthOf(d) == m }

func (m Month) String() string { return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month)) }
