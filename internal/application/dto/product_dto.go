package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest input per creare un prodotto.
type CreateProductRequest struct {
	Name            string           `json:"name"`
	SKU             *string          `json:"sku"`
	PriceCents      int64            `json:"price_cents"`
	Unit            string           `json:"unit"`
	Quantity        decimal.Decimal  `json:"quantity"`
	MinQuantity     decimal.Decimal  `json:"min_quantity"`
	VATRate         *int             `json:"vat_rate"` // default 22
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	Supplier        *string          `json:"supplier"`
	IsActive        *bool            `json:"is_active"` // default true
}

// UpdateProductRequest input parziale per aggiornare un prodotto
// (i campi nil restano invariati).
type UpdateProductRequest struct {
	Name            *string          `json:"name"`
	SKU             *string          `json:"sku"`
	PriceCents      *int64           `json:"price_cents"`
	Unit            *string          `json:"unit"`
	Quantity        *decimal.Decimal `json:"quantity"`
	MinQuantity     *decimal.Decimal `json:"min_quantity"`
	VATRate         *int             `json:"vat_rate"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	Supplier        *string          `json:"supplier"`
	IsActive        *bool            `json:"is_active"`
}

// ProductResponse output di un prodotto.
type ProductResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	SKU             *string         `json:"sku"`
	PriceCents      int64           `json:"price_cents"`
	Unit            string          `json:"unit"`
	Quantity        decimal.Decimal `json:"quantity"`
	MinQuantity     decimal.Decimal `json:"min_quantity"`
	VATRate         int             `json:"vat_rate"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Supplier        *string         `json:"supplier"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// InventoryItem coppia (prodotto, quantità contata) della rettifica massiva.
type InventoryItem struct {
	ID       string          `json:"id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// InventoryBulkRequest body per POST /products/inventory.
type InventoryBulkRequest struct {
	Items []InventoryItem `json:"items"`
}

// StockChangeRequest body per stock_in / stock_out su un prodotto.
type StockChangeRequest struct {
	Quantity     decimal.Decimal `json:"quantity"` // sempre > 0
	MovementType string          `json:"movement_type,omitempty"`
	FromLocation *string         `json:"from_location,omitempty"`
	ToLocation   *string         `json:"to_location,omitempty"`
	DocumentRef  *string         `json:"document_ref,omitempty"`
}

// ProductWithMovements prodotto aggiornato più i suoi movimenti recenti.
type ProductWithMovements struct {
	ProductResponse
	Movements []MovementResponse `json:"movements"`
}
