package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMovementRequest body per registrare un movimento nel registro.
type CreateMovementRequest struct {
	ProductID    string          `json:"product_id"`
	LotID        *string         `json:"lot_id"`
	FromLocation *string         `json:"from_location"`
	ToLocation   *string         `json:"to_location"`
	Quantity     decimal.Decimal `json:"quantity"` // sempre > 0
	MovementType string          `json:"movement_type"`
	DocumentRef  *string         `json:"document_ref"`
}

// MovementResponse output di un movimento di magazzino.
type MovementResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	LotID        *string         `json:"lot_id"`
	FromLocation *string         `json:"from_location"`
	ToLocation   *string         `json:"to_location"`
	Quantity     decimal.Decimal `json:"quantity"`
	MovementType string          `json:"movement_type"`
	DocumentRef  *string         `json:"document_ref"`
	UserID       *string         `json:"user_id"`
	CreatedAt    time.Time       `json:"created_at"`
}
