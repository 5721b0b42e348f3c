package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Concesiones-api/internal/application/dto"
	"github.com/jhoicas/Concesiones-api/internal/application/ledger"
	"github.com/jhoicas/Concesiones-api/internal/domain"
	"github.com/jhoicas/Concesiones-api/internal/domain/calendar"
	"github.com/jhoicas/Concesiones-api/internal/domain/entity"
	"github.com/jhoicas/Concesiones-api/internal/infrastructure/memory"
)

var cot = time.FixedZone("COT", -5*60*60)

const (
	theater = "teatro-1"
	product = "crispetas-grandes"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func day(d int) calendar.Day { return calendar.Date(2026, time.March, d) }

func dayPtr(d int) *calendar.Day {
	x := day(d)
	return &x
}

func marchKey() entity.LedgerKey {
	return entity.LedgerKey{TheaterID: theater, ProductID: product, Period: calendar.Month{Year: 2026, Month: time.March}}
}

// fixture servicio sobre adaptadores en memoria con reloj controlable.
type fixture struct {
	mu     sync.Mutex
	now    time.Time
	store  *memory.LedgerStore
	stock  *memory.ProductStock
	svc    *ledger.Service
	report *fakeRenderer
}

func newFixture(now time.Time) *fixture {
	f := &fixture{now: now, store: memory.NewLedgerStore(), stock: memory.NewProductStock(), report: &fakeRenderer{}}
	f.svc = ledger.NewService(f.store, memory.NewKeyMutex(), f.stock, ledger.Options{
		Location: cot,
		Clock:    f.clock,
		Renderer: f.report,
	})
	return f
}

func (f *fixture) clock() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fixture) setNow(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

type fakeRenderer struct {
	last *dto.LedgerMonthResponse
}

func (r *fakeRenderer) RenderMonthReport(_ context.Context, month *dto.LedgerMonthResponse) ([]byte, error) {
	r.last = month
	return []byte("%PDF-fake"), nil
}

func addBatch(qty int64, d, expire int) ledger.MovementInput {
	in := ledger.MovementInput{UserID: "u1", Date: day(d), Kind: entity.KindAdded, Quantity: dec(qty)}
	if expire > 0 {
		in.ExpireDate = dayPtr(expire)
	}
	return in
}

func sale(qty int64, d int) ledger.MovementInput {
	return ledger.MovementInput{UserID: "u1", Date: day(d), Kind: entity.KindSold, Quantity: dec(qty)}
}

func mustRecord(t *testing.T, f *fixture, in ledger.MovementInput) *dto.MovementResponse {
	t.Helper()
	resp, err := f.svc.RecordMovement(context.Background(), theater, product, in)
	require.NoError(t, err)
	return resp
}

func entryOn(t *testing.T, view *dto.LedgerMonthResponse, d int) dto.LedgerEntryResponse {
	t.Helper()
	for _, e := range view.Entries {
		if e.Date == day(d).String() {
			return e
		}
	}
	t.Fatalf("sin entrada el %s", day(d))
	return dto.LedgerEntryResponse{}
}

func assertDec(t *testing.T, want int64, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]interface{}{"want %d got %s", want, got}, msgAndArgs...)...)
}

// storedMonth mes tal como quedó en el almacén, o nil.
func storedMonth(t *testing.T, f *fixture, period calendar.Month) *entity.MonthlyLedger {
	t.Helper()
	months, err := f.store.ListByProduct(context.Background(), theater, product)
	require.NoError(t, err)
	for _, m := range months {
		if m.Period == period {
			return m
		}
	}
	return nil
}

// ── Registro y barrido ────────────────────────────────────────────────────────

func TestRecordMovement_LoteVenceConElPasoDelTiempo(t *testing.T) {
	f := newFixture(time.Date(2026, time.March, 3, 10, 0, 0, 0, cot))

	resp := mustRecord(t, f, addBatch(100, 1, 5))

	assert.Equal(t, entity.KindAdded, entity.MovementKind(resp.Entry.Kind))
	assert.NotEmpty(t, resp.Entry.BatchNumber)
	assert.Len(t, resp.Month.Entries, 3, "relleno hasta hoy")
	assertDec(t, 100, resp.Month.CurrentStock)
	synced, ok := f.stock.Current(theater, product)
	require.True(t, ok)
	assertDec(t, 100, synced)

	f.setNow(time.Date(2026, time.March, 6, 9, 0, 0, 0, cot))
	view, err := f.svc.GetMonthView(context.Background(), marchKey())
	require.NoError(t, err)

	require.Len(t, view.Entries, 6)
	cut := entryOn(t, view, 6)
	assert.True(t, cut.AutoGenerated)
	assertDec(t, 100, cut.ExpiredOldStock)
	assertDec(t, 0, cut.Balance)
	assertDec(t, 0, view.ClosingBalance)
	assertDec(t, 0, view.CurrentStock)
	synced, _ = f.stock.Current(theater, product)
	assertDec(t, 0, synced)
}

func TestRecordMovement_VentaSobreRellenoYCombinacion(t *testing.T) {
	f := newFixture(time.Date(2026, time.March, 10, 10, 0, 0, 0, cot))
	mustRecord(t, f, addBatch(100, 1, 20))

	first := mustRecord(t, f, sale(30, 3))
	second := mustRecord(t, f, sale(5, 3))

	assert.False(t, first.Entry.AutoGenerated)
	assert.Equal(t, first.Entry.ID, second.Entry.ID, "mismo día, misma entrada")
	assertDec(t, 35, second.Entry.Quantity)
	e := entryOn(t, &second.Month, 3)
	assertDec(t, 100, e.CarryForward)
	assertDec(t, 65, e.Balance)
	assertDec(t, 65, second.Month.CurrentStock)
}

func TestRecordMovement_ValidacionNoEscribe(t *testing.T) {
	f := newFixture(time.Date(2026, time.March, 10, 10, 0, 0, 0, cot))

	_, err := f.svc.RecordMovement(context.Background(), theater, product, ledger.MovementInput{
		Date: day(2), Kind: entity.KindSold, Quantity: dec(1), ExpireDate: dayPtr(9),
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "expire_date", verr.Field)
	months, err := f.store.ListByProduct(context.Background(), theater, product)
	require.NoError(t, err)
	assert.Empty(t, months)
	assert.Zero(t, f.stock.Calls())
}

func TestMovementInputFromRequest_FechaInvalida(t *testing.T) {
	_, err := ledger.MovementInputFromRequest("u1", dto.RecordMovementRequest{Date: "10/03/2026", Kind: "SOLD", Quantity: dec(1)})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "date", verr.Field)
}

func TestMovementInputFromRequest(t *testing.T) {
	used := dec(4)
	in, err := ledger.MovementInputFromRequest("u1", dto.RecordMovementRequest{
		Date:       "2026-03-02",
		Kind:       "added",
		Quantity:   dec(10),
		ExpireDate: "2026-03-09",
		Reported:   &dto.ReportedStockDTO{Used: &used},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.KindAdded, in.Kind)
	assert.Equal(t, day(2), in.Date)
	require.NotNil(t, in.ExpireDate)
	assert.Equal(t, day(9), *in.ExpireDate)
	assert.True(t, in.Reported.Used.Valid)
	assert.False(t, in.Reported.Damage.Valid)
}

// ── Edición y borrado ─────────────────────────────────────────────────────────

func TestUpdateMovement_EdicionRetroactiva(t *testing.T) {
	f := newFixture(time.Date(2026, time.March, 12, 10, 0, 0, 0, cot))
	added := mustRecord(t, f, addBatch(100, 1, 0))
	mustRecord(t, f, sale(30, 10))

	qty := dec(80)
	resp, err := f.svc.UpdateMovement(context.Background(), marchKey(), added.Entry.ID, ledger.MovementPatch{UserID: "u2", Quantity: &qty})
	require.NoError(t, err)

	e := entryOn(t, &resp.Month, 10)
	assertDec(t, 80, e.CarryForward)
	assertDec(t, 50, e.Balance)

	stored := storedMonth(t, f, marchKey().Period)
	require.NotNil(t, stored)
	edited := stored.EntryByID(added.Entry.ID)
	require.NotNil(t, edited)
	assert.Equal(t, "u1", edited.CreatedBy)
	assert.Equal(t, "u2", edited.UpdatedBy)
}

func TestUpdateMovement_MueveAOtroMes(t *testing.T) {
	f := newFixture(time.Date(2026, time.April, 15, 10, 0, 0, 0, cot))
	mustRecord(t, f, addBatch(10, 1, 0))
	s := mustRecord(t, f, sale(4, 3))

	to := calendar.Date(2026, time.April, 2)
	resp, err := f.svc.UpdateMovement(context.Background(), marchKey(), s.Entry.ID, ledger.MovementPatch{Date: &to})
	require.NoError(t, err)

	assert.Equal(t, 4, resp.Month.Month)
	assertDec(t, 10, resp.Month.CarryForward)
	assertDec(t, 6, resp.Month.ClosingBalance)

	march, err := f.svc.GetMonthView(context.Background(), marchKey())
	require.NoError(t, err)
	assert.Len(t, march.Entries, 1)
	assertDec(t, 10, march.ClosingBalance)
}

func TestDeleteMovement(t *testing.T) {
	f := newFixture(time.Date(2026, time.March, 12, 10, 0, 0, 0, cot))
	mustRecord(t, f, addBatch(100, 1, 0))
	s := mustRecord(t, f, sale(30, 10))

	view, err := f.svc.DeleteMovement(context.Background(), marchKey(), s.Entry.ID)
	require.NoError(t, err)
	assert.Len(t, view.Entries, 1)
	assertDec(t, 100, view.ClosingBalance)

	_, err = f.svc.DeleteMovement(context.Background(), marchKey(), s.Entry.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRegenerateYClearMonth(t *testing.T) {
	f := newFixture(time.Date(2026, time.March, 8, 10, 0, 0, 0, cot))
	mustRecord(t, f, addBatch(10, 1, 5))

	view, err := f.svc.RegenerateMonth(context.Background(), marchKey())
	require.NoError(t, err)
	assert.Len(t, view.Entries, 6, "se reconstruye el relleno hasta el corte")
	assertDec(t, 0, view.ClosingBalance)

	view, err = f.svc.ClearMonth(context.Background(), marchKey())
	require.NoError(t, err)
	assert.Empty(t, view.Entries)
	assertDec(t, 0, view.CarryForward)

	view, err = f.svc.GetMonthView(context.Background(), marchKey())
	require.NoError(t, err, "el mes vacío se conserva")
	assert.Empty(t, view.Entries)
}

// ── Vista y cadena ────────────────────────────────────────────────────────────

func TestGetMonthView_MesInexistente(t *testing.T) {
	f := newFixture(time.Date(2026, time.March, 8, 10, 0, 0, 0, cot))

	_, err := f.svc.GetMonthView(context.Background(), marchKey())

	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "month", nf.Resource)
}

func TestGetMonthView_CorrigeSaldoHeredado(t *testing.T) {
	f := newFixture(time.Date(2026, time.February, 20, 10, 0, 0, 0, cot))
	now := f.clock()
	jan := entity.NewMonthlyLedger("jan", entity.LedgerKey{TheaterID: theater, ProductID: product, Period: calendar.Month{Year: 2026, Month: time.January}}, now)
	jan.Insert(&entity.LedgerEntry{ID: "a", Date: calendar.Date(2026, 1, 5), Kind: entity.KindAdded, Quantity: dec(100)})
	feb := entity.NewMonthlyLedger("feb", entity.LedgerKey{TheaterID: theater, ProductID: product, Period: calendar.Month{Year: 2026, Month: time.February}}, now)
	feb.CarryForward = dec(10)
	feb.Insert(&entity.LedgerEntry{ID: "s", Date: calendar.Date(2026, 2, 3), Kind: entity.KindSold, Quantity: dec(20)})
	require.NoError(t, f.store.SaveAll(context.Background(), []*entity.MonthlyLedger{jan, feb}))

	view, err := f.svc.GetMonthView(context.Background(), entity.LedgerKey{TheaterID: theater, ProductID: product, Period: feb.Period})
	require.NoError(t, err)

	assertDec(t, 100, view.CarryForward)
	assertDec(t, 80, view.ClosingBalance)
	stored := storedMonth(t, f, feb.Period)
	require.NotNil(t, stored)
	assertDec(t, 100, stored.CarryForward)
	assert.Equal(t, 2, stored.Version)
}

func TestGetMonthView_OcultaRellenoFuturo(t *testing.T) {
	f := newFixture(time.Date(2026, time.March, 10, 10, 0, 0, 0, cot))
	mustRecord(t, f, addBatch(10, 1, 5))

	f.setNow(time.Date(2026, time.March, 4, 10, 0, 0, 0, cot))
	view, err := f.svc.GetMonthView(context.Background(), marchKey())
	require.NoError(t, err)

	for _, e := range view.Entries {
		d, err := calendar.Parse(e.Date)
		require.NoError(t, err)
		assert.False(t, e.AutoGenerated && d.After(day(4)), "relleno futuro visible: %s", e.Date)
	}
	assertDec(t, 10, view.CurrentStock, "el corte aún no llega")
}

func TestSweep_Explicito(t *testing.T) {
	f := newFixture(time.Date(2026, time.March, 2, 10, 0, 0, 0, cot))
	mustRecord(t, f, addBatch(10, 1, 5))

	f.setNow(time.Date(2026, time.March, 7, 10, 0, 0, 0, cot))
	resp, err := f.svc.Sweep(context.Background(), theater, product)
	require.NoError(t, err)
	assert.Len(t, resp.ExpiredBatches, 1)
	assert.Equal(t, 4, resp.Placeholders, "del 3 al 6")
	assertDec(t, 0, resp.CurrentStock)

	again, err := f.svc.Sweep(context.Background(), theater, product)
	require.NoError(t, err)
	assert.Zero(t, again.Placeholders)
	assert.Empty(t, again.ExpiredBatches)
	assert.Empty(t, again.CorrectedMonths)
}

// ── Concurrencia y colaboradores ──────────────────────────────────────────────

func TestRun_ReintentaConflictosDeVersion(t *testing.T) {
	f := newFixture(time.Date(2026, time.March, 10, 10, 0, 0, 0, cot))
	failures := 2
	f.store.BeforeSave = func([]*entity.MonthlyLedger) error {
		if failures > 0 {
			failures--
			return domain.ErrConcurrencyConflict
		}
		return nil
	}

	resp, err := f.svc.RecordMovement(context.Background(), theater, product, addBatch(10, 1, 0))
	require.NoError(t, err)
	assertDec(t, 10, resp.Month.ClosingBalance)
	assert.Zero(t, failures)
}

func TestRun_AgotaReintentos(t *testing.T) {
	f := newFixture(time.Date(2026, time.March, 10, 10, 0, 0, 0, cot))
	attempts := 0
	f.store.BeforeSave = func([]*entity.MonthlyLedger) error {
		attempts++
		return domain.ErrConcurrencyConflict
	}

	_, err := f.svc.RecordMovement(context.Background(), theater, product, addBatch(10, 1, 0))

	assert.True(t, errors.Is(err, domain.ErrConcurrencyConflict))
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, 1+ledger.DefaultMaxRetries, attempts)
}

func TestRecordMovement_AvisoDeSincronizacion(t *testing.T) {
	f := newFixture(time.Date(2026, time.March, 10, 10, 0, 0, 0, cot))
	f.stock.Fail = errors.New("catálogo no disponible")

	resp, err := f.svc.RecordMovement(context.Background(), theater, product, addBatch(10, 1, 0))

	var warn *domain.DownstreamSyncWarning
	require.ErrorAs(t, err, &warn)
	assert.Equal(t, product, warn.ProductID)
	require.NotNil(t, resp, "el kardex quedó guardado")
	assert.Len(t, resp.Month.Warnings, 1)
	stored := storedMonth(t, f, marchKey().Period)
	require.NotNil(t, stored)
	assertDec(t, 10, stored.ClosingBalance)
}

func TestGetMonthView_SaldosConEscalaPersistidaNoReescriben(t *testing.T) {
	f := newFixture(time.Date(2026, time.March, 10, 10, 0, 0, 0, cot))
	saves := 0
	f.store.BeforeSave = func(months []*entity.MonthlyLedger) error {
		saves++
		for _, m := range months {
			m.CarryForward = m.CarryForward.Round(4)
			m.ClosingBalance = m.ClosingBalance.Round(4)
		}
		return nil
	}

	mustRecord(t, f, ledger.MovementInput{UserID: "u1", Date: calendar.Date(2026, time.February, 3), Kind: entity.KindAdded, Quantity: decimal.RequireFromString("10.1234")})
	mustRecord(t, f, sale(1, 5))
	saves, syncs := 0, f.stock.Calls()

	for i := 0; i < 3; i++ {
		view, err := f.svc.GetMonthView(context.Background(), marchKey())
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("9.1234").Equal(view.ClosingBalance))
	}
	assert.Zero(t, saves, "las lecturas no vuelven a guardar")
	assert.Equal(t, syncs, f.stock.Calls())

	_, err := f.svc.RecordMovement(context.Background(), theater, product, ledger.MovementInput{
		Date: day(6), Kind: entity.KindAdded, Quantity: decimal.RequireFromString("10.123456"),
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "quantity", verr.Field)
}

func TestRecordMovement_ConcurrenteMismoProducto(t *testing.T) {
	f := newFixture(time.Date(2026, time.March, 10, 10, 0, 0, 0, cot))
	mustRecord(t, f, addBatch(100, 1, 0))

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.RecordMovement(context.Background(), theater, product, sale(1, 2))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	view, err := f.svc.GetMonthView(context.Background(), marchKey())
	require.NoError(t, err)
	e := entryOn(t, view, 2)
	assertDec(t, 20, e.Quantity)
	assertDec(t, 80, view.ClosingBalance)
}

func TestMonthReport_UsaLaVistaDelMes(t *testing.T) {
	f := newFixture(time.Date(2026, time.March, 10, 10, 0, 0, 0, cot))
	mustRecord(t, f, addBatch(10, 1, 0))

	doc, err := f.svc.MonthReport(context.Background(), marchKey())
	require.NoError(t, err)

	assert.Equal(t, "%PDF-fake", string(doc))
	require.NotNil(t, f.report.last)
	assert.Equal(t, 2026, f.report.last.Year)
}
