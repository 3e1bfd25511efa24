package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stati logistici di un lotto.
const (
	LotStatusOK        = "ok"        // utilizzabile
	LotStatusBlocked   = "blocked"   // bloccato (es. richiamo fornitore)
	LotStatusDiscarded = "discarded" // scartato
)

// Magazzini riconosciuti.
const (
	LocationGenerale = "generale"
	LocationBanco    = "banco"
	LocationCantina  = "cantina"
)

// ValidLocation verifica che la location appartenga all'insieme riconosciuto.
func ValidLocation(loc string) bool {
	switch loc {
	case LocationGenerale, LocationBanco, LocationCantina:
		return true
	}
	return false
}

// ValidLotStatus verifica lo stato logistico di un lotto.
func ValidLotStatus(status string) bool {
	switch status {
	case LotStatusOK, LotStatusBlocked, LotStatusDiscarded:
		return true
	}
	return false
}

// Lot rappresenta una partita di un prodotto con scadenza, magazzino e stato
// propri, indipendente dalle altre partite dello stesso prodotto.
// Appartiene esattamente a un Product (cancellazione in cascata).
type Lot struct {
	ID          string
	ProductID   string
	LotCode     string // codice alfanumerico del produttore
	Supplier    *string
	ExpiryDate  *time.Time // nil = senza scadenza, consumato per ultimo in FEFO
	Quantity    decimal.Decimal
	CostCents   *int64
	Location    string // generale, banco, cantina
	Status      string // ok, blocked, discarded
	BlockReason *string
	CreatedAt   time.Time
}
