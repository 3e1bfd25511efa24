package repository

import (
	"github.com/shopspring/decimal"

	"github.com/gbirreria/gb-api/internal/domain/entity"
)

// LotWithProduct arricchisce un lotto con il nome del prodotto (ricerca globale per codice).
type LotWithProduct struct {
	entity.Lot
	ProductName string
}

// LotRepository porta di persistenza per Lot.
// Tutti i listati per prodotto sono in ordine FEFO: scadenza nulla per ultima,
// poi scadenza crescente, poi ordine di inserimento (created_at, id).
type LotRepository interface {
	Create(l *entity.Lot) error
	GetByID(id string) (*entity.Lot, error) // (nil, nil) se assente
	ListByProduct(productID string, location *string) ([]*entity.Lot, error)
	// ListByProductForUpdate blocca le righe dei lotti (FOR UPDATE) in ordine
	// FEFO: da usare dentro una transazione per il consumo.
	ListByProductForUpdate(productID string) ([]*entity.Lot, error)
	SumQuantityByProduct(productID string) (decimal.Decimal, error)
	SearchByCode(lotCode string, location *string) ([]*LotWithProduct, error)
	Update(l *entity.Lot) error
	UpdateQuantity(id string, qty decimal.Decimal) error
	Delete(id string) error
}
