package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Concesiones-api/internal/application/dto"
	"github.com/jhoicas/Concesiones-api/internal/application/ledger"
	"github.com/jhoicas/Concesiones-api/internal/infrastructure/memory"
	"github.com/jhoicas/Concesiones-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Concesiones-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Concesiones-api/pkg/jwt"
)

const basePath = "/api/theaters/" + testTheaterID + "/products/crispetas/ledger"

type apiFixture struct {
	app   *fiber.App
	stock *memory.ProductStock
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	cot := time.FixedZone("COT", -5*60*60)
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, cot)
	stock := memory.NewProductStock()
	svc := ledger.NewService(memory.NewLedgerStore(), memory.NewKeyMutex(), stock, ledger.Options{
		Location: cot,
		Clock:    func() time.Time { return now },
		Renderer: pdf.NewLedgerReport(),
	})
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{Ledger: svc, JWTSecret: testJWTSecret, AppName: "concesiones-api"})
	return &apiFixture{app: app, stock: stock}
}

func (f *apiFixture) do(t *testing.T, method, path, role string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{UserID: testUserID, TheaterID: testTheaterID, Role: role}, testIssuer, testExpMin)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func addedBody() map[string]any {
	return map[string]any{"date": "2026-03-01", "kind": "ADDED", "quantity": "100", "expire_date": "2026-03-05"}
}

func TestHealth(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/health", "", nil)

	body := decode[dto.HealthResponse](t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body.Status)
}

func TestLedgerAPI_RegistraYConsultaMes(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPost, basePath+"/movements", "cajero", addedBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.MovementResponse](t, resp)
	assert.NotEmpty(t, created.Entry.BatchNumber)

	resp = f.do(t, http.MethodGet, basePath+"/2026/3", "cajero", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	month := decode[dto.LedgerMonthResponse](t, resp)

	assert.Equal(t, 3, month.Month)
	require.Len(t, month.Entries, 6, "día 1, relleno 2-5 y corte el 6")
	last := month.Entries[5]
	assert.Equal(t, "2026-03-06", last.Date)
	assert.True(t, last.AutoGenerated)
	assert.Equal(t, "100", last.ExpiredOldStock.String())
	assert.True(t, month.CurrentStock.IsZero())
}

func TestLedgerAPI_ErroresDeValidacion(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPost, basePath+"/movements", "cajero",
		map[string]any{"date": "2026-03-02", "kind": "SOLD", "quantity": "5", "expire_date": "2026-03-09"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	verr := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", verr.Code)
	assert.Equal(t, "expire_date", verr.Field)

	resp = f.do(t, http.MethodGet, basePath+"/2026/13", "cajero", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	req := httptest.NewRequest(http.MethodPost, basePath+"/movements", bytes.NewBufferString("{no json"))
	req.Header.Set("Content-Type", "application/json")
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{UserID: testUserID, TheaterID: testTheaterID, Role: "cajero"}, testIssuer, testExpMin)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err = f.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)
}

func TestLedgerAPI_MesInexistente(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, basePath+"/2026/2", "cajero", nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

func TestLedgerAPI_SinToken(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, basePath+"/2026/3", "", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLedgerAPI_RegenerarYVaciarSoloSupervisor(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, basePath+"/movements", "cajero", addedBody())
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, basePath+"/2026/3/regenerate", "cajero", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, basePath+"/2026/3/regenerate", "supervisor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[dto.LedgerMonthResponse](t, resp).Entries, 6)

	resp = f.do(t, http.MethodDelete, basePath+"/2026/3", "supervisor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[dto.LedgerMonthResponse](t, resp).Entries)
}

func TestLedgerAPI_EditaYBorra(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, basePath+"/movements", "cajero",
		map[string]any{"date": "2026-03-01", "kind": "ADDED", "quantity": "50"})
	resp.Body.Close()
	resp = f.do(t, http.MethodPost, basePath+"/movements", "cajero",
		map[string]any{"date": "2026-03-04", "kind": "SOLD", "quantity": "10"})
	sale := decode[dto.MovementResponse](t, resp)

	resp = f.do(t, http.MethodPatch, basePath+"/2026/3/movements/"+sale.Entry.ID, "cajero", map[string]any{"quantity": "15"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.MovementResponse](t, resp)
	assert.Equal(t, "35", updated.Month.ClosingBalance.String())

	resp = f.do(t, http.MethodDelete, basePath+"/2026/3/movements/"+sale.Entry.ID, "cajero", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "50", decode[dto.LedgerMonthResponse](t, resp).ClosingBalance.String())

	resp = f.do(t, http.MethodDelete, basePath+"/2026/3/movements/"+sale.Entry.ID, "cajero", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestLedgerAPI_AvisoDeSincronizacionNoEsFatal(t *testing.T) {
	f := newAPI(t)
	f.stock.Fail = errors.New("inventario caído")

	resp := f.do(t, http.MethodPost, basePath+"/movements", "cajero", addedBody())

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decode[dto.MovementResponse](t, resp)
	assert.NotEmpty(t, body.Month.Warnings)
}

func TestLedgerAPI_ReportePDFYBarrido(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, basePath+"/movements", "cajero", addedBody())
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, basePath+"/2026/3/report.pdf", "cajero", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	doc, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))

	resp = f.do(t, http.MethodPost, basePath+"/sweep", "cajero", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sweep := decode[dto.SweepResponse](t, resp)
	assert.Zero(t, sweep.Placeholders, "ya estaba al día")
}
