// Package ledger orquesta el kardex de perecederos: bloquea la llave (teatro, producto),
// carga todos sus meses, barre vencimientos, aplica el cambio, recalcula la cadena y guarda
// en una sola transacción con control de versión.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Concesiones-api/internal/application/dto"
	"github.com/jhoicas/Concesiones-api/internal/domain"
	"github.com/jhoicas/Concesiones-api/internal/domain/calendar"
	"github.com/jhoicas/Concesiones-api/internal/domain/entity"
	kardex "github.com/jhoicas/Concesiones-api/internal/domain/ledger"
	"github.com/jhoicas/Concesiones-api/internal/domain/repository"
	"github.com/jhoicas/Concesiones-api/pkg/logger"
)

// DefaultMaxRetries reintentos ante conflicto de versión antes de devolver el error.
const DefaultMaxRetries = 3

// Options parámetros opcionales del servicio.
type Options struct {
	Location   *time.Location // zona horaria de los teatros; UTC si es nil
	MaxRetries int            // reintentos adicionales ante ErrConcurrencyConflict; <0 = ninguno
	Clock      func() time.Time
	Logger     *logger.Logger
	Renderer   MonthReportRenderer
}

// Service fachada del kardex de perecederos.
type Service struct {
	tx         TxRunner
	locker     KeyLocker
	stock      repository.ProductStockSyncer
	renderer   MonthReportRenderer
	loc        *time.Location
	maxRetries int
	clock      func() time.Time
	log        *logger.Logger
}

// NewService construye el servicio.
func NewService(tx TxRunner, locker KeyLocker, stock repository.ProductStockSyncer, opts Options) *Service {
	s := &Service{
		tx:         tx,
		locker:     locker,
		stock:      stock,
		renderer:   opts.Renderer,
		loc:        opts.Location,
		maxRetries: opts.MaxRetries,
		clock:      opts.Clock,
		log:        opts.Logger,
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.maxRetries == 0 {
		s.maxRetries = DefaultMaxRetries
	}
	if s.maxRetries < 0 {
		s.maxRetries = 0
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	return s
}

// result lo que queda de un ciclo confirmado.
type result struct {
	book    *kardex.Book
	report  kardex.SweepReport
	saved   int
	warning *domain.DownstreamSyncWarning
}

func (r *result) view(period calendar.Month) (*dto.LedgerMonthResponse, bool) {
	m, ok := r.book.Month(period)
	if !ok {
		return nil, false
	}
	v := toMonthResponse(m, r.book.CurrentStock(), r.book.Clock().Today())
	if r.warning != nil {
		v.Warnings = append(v.Warnings, r.warning.Error())
	}
	return v, true
}

// err devuelve el aviso de sincronización como error (o nil).
func (r *result) err() error {
	if r.warning == nil {
		return nil
	}
	return r.warning
}

// run ejecuta el ciclo completo bajo el bloqueo de la llave. mutate puede ser nil (solo barrido);
// se invoca una vez por intento, así que no debe cerrar sobre estado de un intento anterior.
func (s *Service) run(ctx context.Context, theaterID, productID string, mutate func(b *kardex.Book) error) (*result, error) {
	if theaterID == "" || productID == "" {
		return nil, domain.NewValidationError("product_id", "teatro y producto son requeridos")
	}
	log := s.log.ForProduct(theaterID, productID)

	unlock, err := s.locker.Lock(ctx, theaterID, productID)
	if err != nil {
		return nil, fmt.Errorf("bloquear kardex: %w", err)
	}
	defer unlock()

	for attempt := 0; ; attempt++ {
		res, err := s.attempt(ctx, theaterID, productID, mutate)
		if err == nil {
			if res.saved > 0 {
				res.warning = s.syncStock(ctx, log, res.book)
			}
			if !res.report.Empty() {
				log.Debug().
					Int("placeholders", res.report.Placeholders).
					Strs("expired_batches", res.report.ExpiredBatches).
					Int("pruned_expirations", res.report.PrunedExpirations).
					Int("corrected_months", len(res.report.CorrectedMonths)).
					Msg("barrido de vencimientos aplicado")
			}
			return res, nil
		}
		if !errors.Is(err, domain.ErrConcurrencyConflict) || attempt >= s.maxRetries {
			return nil, err
		}
		log.Warn().Int("attempt", attempt+1).Int("max_retries", s.maxRetries).Msg("conflicto de versión en kardex; reintentando")
	}
}

func (s *Service) attempt(ctx context.Context, theaterID, productID string, mutate func(b *kardex.Book) error) (*result, error) {
	res := &result{}
	err := s.tx.RunLedger(ctx, func(repo repository.StockLedgerRepository) error {
		months, err := repo.ListByProductForUpdate(ctx, theaterID, productID)
		if err != nil {
			return err
		}
		b := kardex.NewBook(theaterID, productID, months, kardex.Clock{Now: s.clock(), Location: s.loc})
		res.book = b
		res.report = kardex.Sweep(b)
		if mutate != nil {
			if err := mutate(b); err != nil {
				return err
			}
			// Segunda pasada: el cambio pudo crear, mover o eliminar lotes.
			res.report.Merge(kardex.Sweep(b))
		}
		changed := b.Changed()
		res.saved = len(changed)
		if len(changed) == 0 {
			return nil
		}
		return repo.SaveAll(ctx, changed)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// syncStock propaga el stock actual al catálogo. Un fallo no revierte el kardex.
func (s *Service) syncStock(ctx context.Context, log *logger.Logger, b *kardex.Book) *domain.DownstreamSyncWarning {
	if s.stock == nil {
		return nil
	}
	if err := s.stock.SetCurrentStock(ctx, b.TheaterID(), b.ProductID(), b.CurrentStock()); err != nil {
		log.Warn().Err(err).Str("current_stock", b.CurrentStock().String()).Msg("no se pudo sincronizar el stock del producto")
		return &domain.DownstreamSyncWarning{ProductID: b.ProductID(), TheaterID: b.TheaterID(), Err: err}
	}
	return nil
}

// RecordMovement registra un movimiento real. Si el día ya tiene un movimiento real se
// combinan; si tiene una entrada de relleno, la reemplaza. Devuelve la entrada resultante
// y la vista del mes. Si falla la sincronización del stock del producto, devuelve la
// respuesta junto con un *domain.DownstreamSyncWarning.
func (s *Service) RecordMovement(ctx context.Context, theaterID, productID string, in MovementInput) (*dto.MovementResponse, error) {
	// Validar antes de tomar el bloqueo.
	if err := kardex.ValidateEntry(in.entry(s.clock())); err != nil {
		return nil, err
	}
	var stored *entity.LedgerEntry
	res, err := s.run(ctx, theaterID, productID, func(b *kardex.Book) error {
		var err error
		stored, err = b.Record(in.entry(b.Clock().Now))
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.movementResponse(res, stored)
}

// UpdateMovement edita una entrada real del mes. Puede cambiar su fecha a otro mes.
func (s *Service) UpdateMovement(ctx context.Context, key entity.LedgerKey, entryID string, patch MovementPatch) (*dto.MovementResponse, error) {
	var stored *entity.LedgerEntry
	res, err := s.run(ctx, key.TheaterID, key.ProductID, func(b *kardex.Book) error {
		var err error
		stored, err = b.Update(key.Period, entryID, func(e *entity.LedgerEntry) error {
			patch.apply(e)
			e.UpdatedAt = b.Clock().Now
			return nil
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.movementResponse(res, stored)
}

func (s *Service) movementResponse(res *result, stored *entity.LedgerEntry) (*dto.MovementResponse, error) {
	view, ok := res.view(stored.Date.Period())
	if !ok {
		return nil, &domain.NotFoundError{Resource: "month", ID: stored.Date.Period().String()}
	}
	return &dto.MovementResponse{Entry: toEntryResponse(stored), Month: *view}, res.err()
}

// DeleteMovement elimina una entrada del mes y devuelve la vista actualizada.
func (s *Service) DeleteMovement(ctx context.Context, key entity.LedgerKey, entryID string) (*dto.LedgerMonthResponse, error) {
	return s.monthOperation(ctx, key, func(b *kardex.Book) error {
		_, err := b.Delete(key.Period, entryID)
		return err
	})
}

// RegenerateMonth descarta el relleno y los cortes del mes y los reconstruye desde los lotes.
func (s *Service) RegenerateMonth(ctx context.Context, key entity.LedgerKey) (*dto.LedgerMonthResponse, error) {
	return s.monthOperation(ctx, key, func(b *kardex.Book) error {
		_, err := b.Regenerate(key.Period)
		return err
	})
}

// ClearMonth elimina todas las entradas del mes; el mes se conserva con saldo heredado.
func (s *Service) ClearMonth(ctx context.Context, key entity.LedgerKey) (*dto.LedgerMonthResponse, error) {
	return s.monthOperation(ctx, key, func(b *kardex.Book) error {
		_, err := b.Clear(key.Period)
		return err
	})
}

// GetMonthView barre vencimientos y devuelve el mes. NotFound si el mes no existe.
func (s *Service) GetMonthView(ctx context.Context, key entity.LedgerKey) (*dto.LedgerMonthResponse, error) {
	return s.monthOperation(ctx, key, nil)
}

func (s *Service) monthOperation(ctx context.Context, key entity.LedgerKey, mutate func(b *kardex.Book) error) (*dto.LedgerMonthResponse, error) {
	res, err := s.run(ctx, key.TheaterID, key.ProductID, mutate)
	if err != nil {
		return nil, err
	}
	view, ok := res.view(key.Period)
	if !ok {
		return nil, &domain.NotFoundError{Resource: "month", ID: key.Period.String()}
	}
	return view, res.err()
}

// Sweep dispara el barrido de vencimientos del producto sin otro cambio.
func (s *Service) Sweep(ctx context.Context, theaterID, productID string) (*dto.SweepResponse, error) {
	res, err := s.run(ctx, theaterID, productID, nil)
	if err != nil {
		return nil, err
	}
	out := &dto.SweepResponse{
		Placeholders:      res.report.Placeholders,
		ExpiredBatches:    append([]string{}, res.report.ExpiredBatches...),
		PrunedExpirations: res.report.PrunedExpirations,
		CorrectedMonths:   make([]string, 0, len(res.report.CorrectedMonths)),
		CurrentStock:      res.book.CurrentStock(),
	}
	for _, p := range res.report.CorrectedMonths {
		out.CorrectedMonths = append(out.CorrectedMonths, p.String())
	}
	if res.warning != nil {
		out.Warnings = append(out.Warnings, res.warning.Error())
	}
	return out, res.err()
}

// MonthReport genera el PDF del mes (misma vista que GetMonthView).
func (s *Service) MonthReport(ctx context.Context, key entity.LedgerKey) ([]byte, error) {
	if s.renderer == nil {
		return nil, fmt.Errorf("reporte mensual: %w", domain.ErrInvalidInput)
	}
	view, err := s.GetMonthView(ctx, key)
	var warn *domain.DownstreamSyncWarning
	if err != nil && !errors.As(err, &warn) {
		return nil, err
	}
	doc, err := s.renderer.RenderMonthReport(ctx, view)
	if err != nil {
		return nil, fmt.Errorf("reporte mensual: %w", err)
	}
	return doc, nil
}
