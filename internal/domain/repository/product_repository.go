package repository

import (
	"github.com/shopspring/decimal"

	"github.com/gbirreria/gb-api/internal/domain/entity"
)

// ProductRepository porta di persistenza per Product.
// GetByID e GetForUpdate restituiscono (nil, nil) se il prodotto non esiste.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate blocca la riga (SELECT FOR UPDATE): da usare solo dentro
	// una transazione, per evitare lost update sulla giacenza aggregata.
	GetForUpdate(id string) (*entity.Product, error)
	List() ([]*entity.Product, error) // ordinati per nome
	Update(p *entity.Product) error
	UpdateQuantity(id string, qty decimal.Decimal) error
	Delete(id string) error
}
