package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Concesiones-api/internal/domain"
	"github.com/jhoicas/Concesiones-api/internal/domain/calendar"
	"github.com/jhoicas/Concesiones-api/internal/domain/entity"
	"github.com/jhoicas/Concesiones-api/internal/infrastructure/memory"
)

func month(m time.Month) *entity.MonthlyLedger {
	key := entity.LedgerKey{TheaterID: "t1", ProductID: "p1", Period: calendar.Month{Year: 2026, Month: m}}
	return entity.NewMonthlyLedger("id-"+m.String(), key, time.Now())
}

func TestLedgerStore_GuardaCopiasOrdenadas(t *testing.T) {
	ctx := context.Background()
	s := memory.NewLedgerStore()

	mar, jan := month(time.March), month(time.January)
	require.NoError(t, s.SaveAll(ctx, []*entity.MonthlyLedger{mar, jan}))
	assert.Equal(t, 1, mar.Version)

	mar.CarryForward = decimal.NewFromInt(99)
	list, err := s.ListByProduct(ctx, "t1", "p1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, time.January, list[0].Period.Month)
	assert.True(t, list[1].CarryForward.IsZero(), "el almacén no comparte el puntero")

	list[0].CarryForward = decimal.NewFromInt(5)
	again, err := s.ListByProductForUpdate(ctx, "t1", "p1")
	require.NoError(t, err)
	assert.True(t, again[0].CarryForward.IsZero(), "las copias devueltas tampoco")

	empty, err := s.ListByProduct(ctx, "t1", "p9")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLedgerStore_ConflictoDeVersionEsAtomico(t *testing.T) {
	ctx := context.Background()
	s := memory.NewLedgerStore()
	require.NoError(t, s.SaveAll(ctx, []*entity.MonthlyLedger{month(time.January)}))

	loaded, err := s.ListByProduct(ctx, "t1", "p1")
	require.NoError(t, err)
	other, err := s.ListByProduct(ctx, "t1", "p1")
	require.NoError(t, err)
	require.NoError(t, s.SaveAll(ctx, other))

	feb := month(time.February)
	err = s.SaveAll(ctx, []*entity.MonthlyLedger{feb, loaded[0]})

	assert.True(t, errors.Is(err, domain.ErrConcurrencyConflict))
	list, _ := s.ListByProduct(ctx, "t1", "p1")
	assert.Len(t, list, 1, "febrero no se guardó")

	stale := month(time.January)
	stale.Version = 0
	assert.True(t, errors.Is(s.SaveAll(ctx, []*entity.MonthlyLedger{stale}), domain.ErrConcurrencyConflict), "insert sobre mes existente")
}

func TestKeyMutex_SerializaPorLlave(t *testing.T) {
	k := memory.NewKeyMutex()
	ctx := context.Background()

	var mu sync.Mutex
	inside, maxInside := 0, 0
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := k.Lock(ctx, "t1", "p1")
			require.NoError(t, err)
			mu.Lock()
			inside++
			if inside > maxInside {
				maxInside = inside
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			inside--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxInside)
}

func TestKeyMutex_RespetaElContexto(t *testing.T) {
	k := memory.NewKeyMutex()
	unlock, err := k.Lock(context.Background(), "t1", "p1")
	require.NoError(t, err)
	defer unlock()

	other, err := k.Lock(context.Background(), "t1", "p2")
	require.NoError(t, err, "otra llave no espera")
	other()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = k.Lock(ctx, "t1", "p1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestProductStock(t *testing.T) {
	p := memory.NewProductStock()
	ctx := context.Background()

	require.NoError(t, p.SetCurrentStock(ctx, "t1", "p1", decimal.NewFromInt(7)))
	q, ok := p.Current("t1", "p1")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(7).Equal(q))

	p.Fail = errors.New("caído")
	assert.Error(t, p.SetCurrentStock(ctx, "t1", "p1", decimal.Zero))
	q, _ = p.Current("t1", "p1")
	assert.True(t, decimal.NewFromInt(7).Equal(q))
	assert.Equal(t, 2, p.Calls())
}
