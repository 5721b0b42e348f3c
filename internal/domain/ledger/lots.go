package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Concesiones-api/internal/domain/calendar"
)

type lot struct {
	batch     string
	expire    calendar.Day
	remaining decimal.Decimal
}

// LotBook atribuye las existencias a lotes para saber cuánto queda de cada uno en su corte.
// El consumo sale primero del lote que vence antes (FEFO); el stock sin lote
// (saldo inicial, ingresos sin vencimiento, ajustes positivos) se consume al final.
// Invariante: Total() es igual al saldo del último día procesado.
type LotBook struct {
	lots      []*lot // con remanente, ordenados por vencimiento y número de lote
	byBatch   map[string]*lot
	untracked decimal.Decimal
}

// NewLotBook libro con el saldo inicial como stock sin lote.
func NewLotBook(opening decimal.Decimal) *LotBook {
	if opening.IsNegative() {
		opening = decimal.Zero
	}
	return &LotBook{byBatch: make(map[string]*lot), untracked: opening}
}

// ReceiveBatch ingresa cantidad a un lote con vencimiento.
func (b *LotBook) ReceiveBatch(batch string, expire calendar.Day, qty decimal.Decimal) {
	if !qty.IsPositive() {
		return
	}
	if l, ok := b.byBatch[batch]; ok {
		if l.remaining.IsZero() {
			b.insert(l)
		}
		l.remaining = l.remaining.Add(qty)
		return
	}
	l := &lot{batch: batch, expire: expire, remaining: qty}
	b.byBatch[batch] = l
	b.insert(l)
}

func (b *LotBook) insert(l *lot) {
	i := sort.Search(len(b.lots), func(i int) bool {
		o := b.lots[i]
		if o.expire != l.expire {
			return o.expire.After(l.expire)
		}
		return o.batch > l.batch
	})
	b.lots = append(b.lots, nil)
	copy(b.lots[i+1:], b.lots[i:])
	b.lots[i] = l
}

// ReceiveUntracked ingresa stock sin lote.
func (b *LotBook) ReceiveUntracked(qty decimal.Decimal) {
	if qty.IsPositive() {
		b.untracked = b.untracked.Add(qty)
	}
}

// Expire retira el remanente del lote y lo devuelve (cero si el lote no existe o ya se agotó).
func (b *LotBook) Expire(batch string) decimal.Decimal {
	l, ok := b.byBatch[batch]
	if !ok || l.remaining.IsZero() {
		return decimal.Zero
	}
	qty := l.remaining
	l.remaining = decimal.Zero
	b.compact()
	return qty
}

// Consume descuenta qty en orden FEFO; devuelve lo que no se pudo cubrir.
func (b *LotBook) Consume(qty decimal.Decimal) decimal.Decimal {
	pending := qty
	for _, l := range b.lots {
		if !pending.IsPositive() {
			break
		}
		take := decimal.Min(pending, l.remaining)
		l.remaining = l.remaining.Sub(take)
		pending = pending.Sub(take)
	}
	b.compact()
	if pending.IsPositive() {
		take := decimal.Min(pending, b.untracked)
		b.untracked = b.untracked.Sub(take)
		pending = pending.Sub(take)
	}
	if pending.IsNegative() {
		return decimal.Zero
	}
	return pending
}

func (b *LotBook) compact() {
	kept := b.lots[:0]
	for _, l := range b.lots {
		if l.remaining.IsPositive() {
			kept = append(kept, l)
		}
	}
	for i := len(kept); i < len(b.lots); i++ {
		b.lots[i] = nil
	}
	b.lots = kept
}

// Remaining cantidad aún no descontada del lote.
func (b *LotBook) Remaining(batch string) decimal.Decimal {
	if l, ok := b.byBatch[batch]; ok {
		return l.remaining
	}
	return decimal.Zero
}

// Total existencias atribuidas (lotes + sin lote).
func (b *LotBook) Total() decimal.Decimal {
	total := b.untracked
	for _, l := range b.lots {
		total = total.Add(l.remaining)
	}
	return total
}
