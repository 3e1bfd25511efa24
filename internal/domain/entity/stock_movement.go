package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipi di movimento di magazzino (semantica di business).
const (
	MovementPurchase         = "PURCHASE"           // carico da fornitore
	MovementInventoryAdjust  = "INVENTORY_ADJUST"   // rettifica inventario
	MovementTransfer         = "TRANSFER"           // spostamento interno
	MovementSale             = "SALE"               // vendita
	MovementWaste            = "WASTE"              // scarto / rottura / perdita
	MovementReturnToSupplier = "RETURN_TO_SUPPLIER" // reso a fornitore
)

// ValidMovementType verifica che il tipo appartenga all'enumerazione chiusa.
func ValidMovementType(t string) bool {
	switch t {
	case MovementPurchase, MovementInventoryAdjust, MovementTransfer,
		MovementSale, MovementWaste, MovementReturnToSupplier:
		return true
	}
	return false
}

// StockMovement registra ogni variazione di stock: carichi, scarichi e
// trasferimenti. La quantità è sempre positiva; la direzione si deduce da
// from/to location (nil -> "cantina" = carico, "banco" -> nil = scarico).
// Riga append-only: mai modificata né cancellata dall'applicazione.
type StockMovement struct {
	ID           string
	ProductID    string
	LotID        *string // nil se il movimento non riguarda un lotto specifico
	FromLocation *string
	ToLocation   *string
	Quantity     decimal.Decimal // sempre > 0
	MovementType string
	DocumentRef  *string // DDT, fattura, scontrino, comanda, ecc.
	UserID       *string
	CreatedAt    time.Time
}
