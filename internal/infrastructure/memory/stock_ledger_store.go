// Package memory implementa los puertos del kardex en memoria (desarrollo y pruebas).
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Concesiones-api/internal/application/ledger"
	"github.com/jhoicas/Concesiones-api/internal/domain"
	"github.com/jhoicas/Concesiones-api/internal/domain/calendar"
	"github.com/jhoicas/Concesiones-api/internal/domain/entity"
	"github.com/jhoicas/Concesiones-api/internal/domain/repository"
)

var (
	_ repository.StockLedgerRepository = (*LedgerStore)(nil)
	_ ledger.TxRunner                  = (*LedgerStore)(nil)
)

type productKey struct {
	TheaterID string
	ProductID string
}

// LedgerStore kardex mensual en memoria. Guarda y devuelve copias, así que los llamadores
// nunca comparten punteros con el almacén.
type LedgerStore struct {
	mu     sync.RWMutex
	months map[productKey][]*entity.MonthlyLedger // ordenados por periodo

	// BeforeSave se invoca dentro de SaveAll antes de verificar versiones; un error aborta el guardado.
	BeforeSave func(months []*entity.MonthlyLedger) error
}

// NewLedgerStore crea el almacén vacío.
func NewLedgerStore() *LedgerStore {
	return &LedgerStore{months: make(map[productKey][]*entity.MonthlyLedger)}
}

// RunLedger ejecuta fn con el propio almacén; SaveAll es atómico, no hay más escrituras que revertir.
func (s *LedgerStore) RunLedger(ctx context.Context, fn func(repo repository.StockLedgerRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(s)
}

// ListByProduct copias de todos los meses del producto, en orden cronológico.
func (s *LedgerStore) ListByProduct(_ context.Context, theaterID, productID string) ([]*entity.MonthlyLedger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.months[productKey{theaterID, productID}]
	out := make([]*entity.MonthlyLedger, len(list))
	for i, m := range list {
		out[i] = m.Clone()
	}
	return out, nil
}

// ListByProductForUpdate igual que ListByProduct; la exclusión la da el KeyLocker y la versión.
func (s *LedgerStore) ListByProductForUpdate(ctx context.Context, theaterID, productID string) ([]*entity.MonthlyLedger, error) {
	return s.ListByProduct(ctx, theaterID, productID)
}

// SaveAll verifica primero todas las versiones y luego escribe todo (atómico).
func (s *LedgerStore) SaveAll(_ context.Context, months []*entity.MonthlyLedger) error {
	if s.BeforeSave != nil {
		if err := s.BeforeSave(months); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range months {
		list := s.months[productKey{m.TheaterID, m.ProductID}]
		i, ok := search(list, m.Period)
		switch {
		case !ok && m.Version != 0:
			return domain.ErrConcurrencyConflict
		case ok && list[i].Version != m.Version:
			return domain.ErrConcurrencyConflict
		}
	}

	for _, m := range months {
		m.Version++
		k := productKey{m.TheaterID, m.ProductID}
		list := s.months[k]
		i, ok := search(list, m.Period)
		if ok {
			list[i] = m.Clone()
			continue
		}
		list = append(list, nil)
		copy(list[i+1:], list[i:])
		list[i] = m.Clone()
		s.months[k] = list
	}
	return nil
}

// search posición del periodo (o de inserción) en la lista ordenada.
func search(list []*entity.MonthlyLedger, period calendar.Month) (int, bool) {
	i := sort.Search(len(list), func(i int) bool { return !list[i].Period.Before(period) })
	return i, i < len(list) && list[i].Period == period
}
