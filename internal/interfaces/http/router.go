package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Concesiones-api/internal/application/dto"
	"github.com/jhoicas/Concesiones-api/internal/application/ledger"
	"github.com/jhoicas/Concesiones-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger    *ledger.Service
	JWTSecret string
	AppName   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", App: deps.AppName})
	})

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Kardex por teatro y producto
	h := NewLedgerHandler(deps.Ledger)
	theater := RequireTheaterAccess()
	managers := RequireRole(jwt.RoleAdmin, jwt.RoleSupervisor)

	kardex := protected.Group("/theaters/:theaterID/products/:productID/ledger")
	kardex.Post("/movements", theater, h.RecordMovement)
	kardex.Post("/sweep", theater, h.Sweep)
	kardex.Get("/:year/:month", theater, h.GetMonth)
	kardex.Get("/:year/:month/report.pdf", theater, h.MonthReport)
	kardex.Patch("/:year/:month/movements/:entryID", theater, h.UpdateMovement)
	kardex.Delete("/:year/:month/movements/:entryID", theater, h.DeleteMovement)
	kardex.Post("/:year/:month/regenerate", theater, managers, h.RegenerateMonth)
	kardex.Delete("/:year/:month", theater, managers, h.ClearMonth)
}
