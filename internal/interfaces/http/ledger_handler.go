package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Concesiones-api/internal/application/dto"
	"github.com/jhoicas/Concesiones-api/internal/application/ledger"
	"github.com/jhoicas/Concesiones-api/internal/domain"
	"github.com/jhoicas/Concesiones-api/internal/domain/calendar"
	"github.com/jhoicas/Concesiones-api/internal/domain/entity"
)

// LedgerHandler kardex de perecederos por teatro y producto (protegido).
type LedgerHandler struct {
	svc *ledger.Service
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(svc *ledger.Service) *LedgerHandler {
	return &LedgerHandler{svc: svc}
}

// monthKey llave del mes desde :theaterID, :productID, :year y :month.
func monthKey(c *fiber.Ctx) (entity.LedgerKey, error) {
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil {
		return entity.LedgerKey{}, domain.NewValidationError("year", "año inválido")
	}
	month, err := strconv.Atoi(c.Params("month"))
	if err != nil {
		return entity.LedgerKey{}, domain.NewValidationError("month", "mes inválido")
	}
	period, err := calendar.NewMonth(year, month)
	if err != nil {
		return entity.LedgerKey{}, domain.NewValidationError("month", err.Error())
	}
	return entity.LedgerKey{TheaterID: c.Params("theaterID"), ProductID: c.Params("productID"), Period: period}, nil
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// RecordMovement godoc
// @Summary      Registrar movimiento del día
// @Description  Si el día ya tiene un movimiento compatible se combinan; una entrada de relleno se reemplaza.
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        theaterID  path  string                     true  "Teatro"
// @Param        productID  path  string                     true  "Producto"
// @Param        body       body  dto.RecordMovementRequest  true  "date, kind, quantity, expire_date (ingresos), reported"
// @Success      201  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/theaters/{theaterID}/products/{productID}/ledger/movements [post]
func (h *LedgerHandler) RecordMovement(c *fiber.Ctx) error {
	var req dto.RecordMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	in, err := ledger.MovementInputFromRequest(GetUserID(c), req)
	if err != nil {
		return writeError(c, err)
	}
	resp, err := h.svc.RecordMovement(c.Context(), c.Params("theaterID"), c.Params("productID"), in)
	return respond(c, fiber.StatusCreated, resp, err)
}

// UpdateMovement godoc
// @Summary      Editar movimiento
// @Description  Solo los campos enviados cambian; expire_date "" la elimina. Las entradas automáticas no se editan.
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        theaterID  path  string                     true  "Teatro"
// @Param        productID  path  string                     true  "Producto"
// @Param        year       path  int                        true  "Año"
// @Param        month      path  int                        true  "Mes (1-12)"
// @Param        entryID    path  string                     true  "Entrada"
// @Param        body       body  dto.UpdateMovementRequest  true  "campos a cambiar"
// @Success      200  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/theaters/{theaterID}/products/{productID}/ledger/{year}/{month}/movements/{entryID} [patch]
func (h *LedgerHandler) UpdateMovement(c *fiber.Ctx) error {
	key, err := monthKey(c)
	if err != nil {
		return writeError(c, err)
	}
	var req dto.UpdateMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	patch, err := ledger.MovementPatchFromRequest(GetUserID(c), req)
	if err != nil {
		return writeError(c, err)
	}
	resp, err := h.svc.UpdateMovement(c.Context(), key, c.Params("entryID"), patch)
	return respond(c, fiber.StatusOK, resp, err)
}

// DeleteMovement godoc
// @Summary      Eliminar movimiento
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        theaterID  path  string  true  "Teatro"
// @Param        productID  path  string  true  "Producto"
// @Param        year       path  int     true  "Año"
// @Param        month      path  int     true  "Mes (1-12)"
// @Param        entryID    path  string  true  "Entrada"
// @Success      200  {object}  dto.LedgerMonthResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/theaters/{theaterID}/products/{productID}/ledger/{year}/{month}/movements/{entryID} [delete]
func (h *LedgerHandler) DeleteMovement(c *fiber.Ctx) error {
	key, err := monthKey(c)
	if err != nil {
		return writeError(c, err)
	}
	resp, err := h.svc.DeleteMovement(c.Context(), key, c.Params("entryID"))
	return respond(c, fiber.StatusOK, resp, err)
}

// RegenerateMonth godoc
// @Summary      Regenerar relleno y cortes del mes
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        theaterID  path  string  true  "Teatro"
// @Param        productID  path  string  true  "Producto"
// @Param        year       path  int     true  "Año"
// @Param        month      path  int     true  "Mes (1-12)"
// @Success      200  {object}  dto.LedgerMonthResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/theaters/{theaterID}/products/{productID}/ledger/{year}/{month}/regenerate [post]
func (h *LedgerHandler) RegenerateMonth(c *fiber.Ctx) error {
	key, err := monthKey(c)
	if err != nil {
		return writeError(c, err)
	}
	resp, err := h.svc.RegenerateMonth(c.Context(), key)
	return respond(c, fiber.StatusOK, resp, err)
}

// ClearMonth godoc
// @Summary      Vaciar el mes
// @Description  Elimina todas las entradas; el mes queda con su saldo heredado.
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        theaterID  path  string  true  "Teatro"
// @Param        productID  path  string  true  "Producto"
// @Param        year       path  int     true  "Año"
// @Param        month      path  int     true  "Mes (1-12)"
// @Success      200  {object}  dto.LedgerMonthResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/theaters/{theaterID}/products/{productID}/ledger/{year}/{month} [delete]
func (h *LedgerHandler) ClearMonth(c *fiber.Ctx) error {
	key, err := monthKey(c)
	if err != nil {
		return writeError(c, err)
	}
	resp, err := h.svc.ClearMonth(c.Context(), key)
	return respond(c, fiber.StatusOK, resp, err)
}

// GetMonth godoc
// @Summary      Ver kardex del mes
// @Description  Barre vencimientos antes de responder. El relleno de días futuros no se muestra.
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        theaterID  path  string  true  "Teatro"
// @Param        productID  path  string  true  "Producto"
// @Param        year       path  int     true  "Año"
// @Param        month      path  int     true  "Mes (1-12)"
// @Success      200  {object}  dto.LedgerMonthResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/theaters/{theaterID}/products/{productID}/ledger/{year}/{month} [get]
func (h *LedgerHandler) GetMonth(c *fiber.Ctx) error {
	key, err := monthKey(c)
	if err != nil {
		return writeError(c, err)
	}
	resp, err := h.svc.GetMonthView(c.Context(), key)
	return respond(c, fiber.StatusOK, resp, err)
}

// MonthReport godoc
// @Summary      Reporte PDF del mes
// @Tags         ledger
// @Security     Bearer
// @Produce      application/pdf
// @Param        theaterID  path  string  true  "Teatro"
// @Param        productID  path  string  true  "Producto"
// @Param        year       path  int     true  "Año"
// @Param        month      path  int     true  "Mes (1-12)"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/theaters/{theaterID}/products/{productID}/ledger/{year}/{month}/report.pdf [get]
func (h *LedgerHandler) MonthReport(c *fiber.Ctx) error {
	key, err := monthKey(c)
	if err != nil {
		return writeError(c, err)
	}
	doc, err := h.svc.MonthReport(c.Context(), key)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="kardex-`+key.ProductID+`-`+key.Period.String()+`.pdf"`)
	return c.Status(fiber.StatusOK).Send(doc)
}

// Sweep godoc
// @Summary      Barrer vencimientos del producto
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        theaterID  path  string  true  "Teatro"
// @Param        productID  path  string  true  "Producto"
// @Success      200  {object}  dto.SweepResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/theaters/{theaterID}/products/{productID}/ledger/sweep [post]
func (h *LedgerHandler) Sweep(c *fiber.Ctx) error {
	resp, err := h.svc.Sweep(c.Context(), c.Params("theaterID"), c.Params("productID"))
	return respond(c, fiber.StatusOK, resp, err)
}
