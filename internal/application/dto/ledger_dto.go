package dto

import "github.com/shopspring/decimal"

// ReportedStockDTO consumos del mismo día reportados junto a un ingreso (campos opcionales).
type ReportedStockDTO struct {
	Used       *decimal.Decimal `json:"used,omitempty"`
	ExpiredOld *decimal.Decimal `json:"expired_old,omitempty"`
	Expired    *decimal.Decimal `json:"expired,omitempty"`
	Damage     *decimal.Decimal `json:"damage,omitempty"`
}

// RecordMovementRequest body para POST /api/theaters/:theaterID/products/:productID/ledger/movements.
type RecordMovementRequest struct {
	Date        string            `json:"date"` // YYYY-MM-DD
	Kind        string            `json:"kind"` // ADDED, RETURNED, SOLD, EXPIRED, DAMAGED, ADJUSTMENT
	Quantity    decimal.Decimal   `json:"quantity"`
	ExpireDate  string            `json:"expire_date,omitempty"`
	BatchNumber string            `json:"batch_number,omitempty"`
	Reported    *ReportedStockDTO `json:"reported,omitempty"`
	Notes       string            `json:"notes,omitempty"`
}

// UpdateMovementRequest body para PATCH de un movimiento. Solo se aplican los campos presentes;
// expire_date = "" quita el vencimiento.
type UpdateMovementRequest struct {
	Date        *string           `json:"date,omitempty"`
	Kind        *string           `json:"kind,omitempty"`
	Quantity    *decimal.Decimal  `json:"quantity,omitempty"`
	ExpireDate  *string           `json:"expire_date,omitempty"`
	BatchNumber *string           `json:"batch_number,omitempty"`
	Reported    *ReportedStockDTO `json:"reported,omitempty"`
	Notes       *string           `json:"notes,omitempty"`
}

// BatchExpiryResponse corte de un lote registrado en el día.
type BatchExpiryResponse struct {
	BatchNumber string          `json:"batch_number"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// LedgerEntryResponse un día del kardex.
type LedgerEntryResponse struct {
	ID              string                `json:"id"`
	Date            string                `json:"date"`
	Kind            string                `json:"kind"`
	Quantity        decimal.Decimal       `json:"quantity"`
	CarryForward    decimal.Decimal       `json:"carry_forward"`
	StockAdded      decimal.Decimal       `json:"stock_added"`
	UsedStock       decimal.Decimal       `json:"used_stock"`
	ExpiredOldStock decimal.Decimal       `json:"expired_old_stock"`
	ExpiredStock    decimal.Decimal       `json:"expired_stock"`
	DamageStock     decimal.Decimal       `json:"damage_stock"`
	Balance         decimal.Decimal       `json:"balance"`
	ExpireDate      string                `json:"expire_date,omitempty"`
	BatchNumber     string                `json:"batch_number,omitempty"`
	Expirations     []BatchExpiryResponse `json:"expirations,omitempty"`
	Notes           string                `json:"notes,omitempty"`
	AutoGenerated   bool                  `json:"auto_generated"`
}

// LedgerMonthResponse vista de un mes del kardex con el stock actual del producto.
type LedgerMonthResponse struct {
	TheaterID         string                `json:"theater_id"`
	ProductID         string                `json:"product_id"`
	Year              int                   `json:"year"`
	Month             int                   `json:"month"`
	CarryForward      decimal.Decimal       `json:"carry_forward"`
	TotalStockAdded   decimal.Decimal       `json:"total_stock_added"`
	TotalUsedStock    decimal.Decimal       `json:"total_used_stock"`
	TotalExpiredStock decimal.Decimal       `json:"total_expired_stock"`
	TotalDamageStock  decimal.Decimal       `json:"total_damage_stock"`
	ClosingBalance    decimal.Decimal       `json:"closing_balance"`
	CurrentStock      decimal.Decimal       `json:"current_stock"`
	Entries           []LedgerEntryResponse `json:"entries"`
	Warnings          []string              `json:"warnings,omitempty"`
}

// MovementResponse resultado de registrar o editar un movimiento.
type MovementResponse struct {
	Entry LedgerEntryResponse `json:"entry"`
	Month LedgerMonthResponse `json:"month"`
}

// SweepResponse resultado de un barrido explícito.
type SweepResponse struct {
	Placeholders      int             `json:"placeholders"`
	ExpiredBatches    []string        `json:"expired_batches"`
	PrunedExpirations int             `json:"pruned_expirations"`
	CorrectedMonths   []string        `json:"corrected_months"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	Warnings          []string        `json:"warnings,omitempty"`
}
