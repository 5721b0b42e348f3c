package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Concesiones-api/internal/domain/repository"
)

var _ repository.ProductStockSyncer = (*ProductStock)(nil)

// ProductStock stock visible por producto en memoria.
type ProductStock struct {
	mu    sync.Mutex
	stock map[productKey]decimal.Decimal
	calls int

	// Fail si no es nil, SetCurrentStock lo devuelve sin guardar.
	Fail error
}

// NewProductStock crea el almacén vacío.
func NewProductStock() *ProductStock {
	return &ProductStock{stock: make(map[productKey]decimal.Decimal)}
}

// SetCurrentStock guarda el stock del producto.
func (p *ProductStock) SetCurrentStock(_ context.Context, theaterID, productID string, quantity decimal.Decimal) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.Fail != nil {
		return p.Fail
	}
	p.stock[productKey{theaterID, productID}] = quantity
	return nil
}

// Current stock guardado y si existe.
func (p *ProductStock) Current(theaterID, productID string) (decimal.Decimal, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	q, ok := p.stock[productKey{theaterID, productID}]
	return q, ok
}

// Calls cuántas veces se invocó SetCurrentStock.
func (p *ProductStock) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
