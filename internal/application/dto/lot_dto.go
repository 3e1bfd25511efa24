package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLotRequest input per creare un lotto di un prodotto.
type CreateLotRequest struct {
	LotCode     string          `json:"lot_code"`
	Supplier    *string         `json:"supplier"`
	ExpiryDate  *string         `json:"expiry_date"` // "2006-01-02", nil = senza scadenza
	Quantity    decimal.Decimal `json:"quantity"`
	CostCents   *int64          `json:"cost_cents"`
	Location    string          `json:"location"` // default "generale"
	Status      string          `json:"status"`   // default "ok"
	BlockReason *string         `json:"block_reason"`
}

// UpdateLotRequest input parziale per aggiornare un lotto. ProductID permette
// la riassegnazione a un altro prodotto (ricalcolo su entrambi).
type UpdateLotRequest struct {
	ProductID   *string          `json:"product_id"`
	LotCode     *string          `json:"lot_code"`
	Supplier    *string          `json:"supplier"`
	ExpiryDate  *string          `json:"expiry_date"`
	Quantity    *decimal.Decimal `json:"quantity"`
	CostCents   *int64           `json:"cost_cents"`
	Location    *string          `json:"location"`
	Status      *string          `json:"status"`
	BlockReason *string          `json:"block_reason"`
}

// LotResponse output di un lotto.
type LotResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	LotCode     string          `json:"lot_code"`
	Supplier    *string         `json:"supplier"`
	ExpiryDate  *string         `json:"expiry_date"`
	Quantity    decimal.Decimal `json:"quantity"`
	CostCents   *int64          `json:"cost_cents"`
	Location    string          `json:"location"`
	Status      string          `json:"status"`
	BlockReason *string         `json:"block_reason"`
	CreatedAt   time.Time       `json:"created_at"`
}

// LotWithProductResponse lotto arricchito con il nome del prodotto
// (ricerca globale per codice lotto).
type LotWithProductResponse struct {
	LotResponse
	ProductName string `json:"product_name"`
}
