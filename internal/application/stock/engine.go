// Package stock implementa il motore di coerenza delle giacenze: mantiene
// l'invariante Product.Quantity == Σ Lot.Quantity, fornisce il consumo FEFO
// (First-Expired-First-Out) e il guard di non-negatività sugli scarichi.
package stock

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/gbirreria/gb-api/internal/domain"
	"github.com/gbirreria/gb-api/internal/domain/entity"
	"github.com/gbirreria/gb-api/internal/domain/repository"
)

// Engine esegue le operazioni di coerenza in una singola transazione ciascuna
// (lettura, calcolo, scrittura, commit): nessuno stato intermedio persistito,
// nessun retry. Le righe di prodotto e lotto vengono bloccate FOR UPDATE per
// serializzare scarichi concorrenti sullo stesso prodotto.
type Engine struct {
	txRunner TxRunner
}

// NewEngine costruisce il motore.
func NewEngine(txRunner TxRunner) *Engine {
	return &Engine{txRunner: txRunner}
}

// Consumption è il prelievo effettuato su un singolo lotto durante il consumo FEFO.
type Consumption struct {
	LotID    string
	Quantity decimal.Decimal
}

// BulkItem coppia (prodotto, quantità) per la rettifica inventario massiva.
type BulkItem struct {
	ProductID string
	Quantity  decimal.Decimal
}

// Recalculate riallinea la giacenza del prodotto con la somma dei suoi lotti
// e restituisce il totale calcolato. Idempotente: senza mutazioni di lotto
// intermedie, due chiamate consecutive restituiscono lo stesso valore.
func (e *Engine) Recalculate(ctx context.Context, productID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := e.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		lotRepo repository.LotRepository,
		_ repository.StockMovementRepository,
	) error {
		t, err := RecalculateInTx(productRepo, lotRepo, productID)
		if err != nil {
			return err
		}
		total = t
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// RecalculateInTx è la variante usata dentro una transazione già aperta
// (dopo ogni creazione, modifica o cancellazione di lotto). Blocca la riga
// del prodotto, somma i lotti (assenti = 0) e scrive il totale.
func RecalculateInTx(productRepo repository.ProductRepository, lotRepo repository.LotRepository, productID string) (decimal.Decimal, error) {
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return decimal.Zero, err
	}
	if product == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	total, err := lotRepo.SumQuantityByProduct(productID)
	if err != nil {
		return decimal.Zero, err
	}
	if err := productRepo.UpdateQuantity(productID, total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// ConsumeFEFO scarica la quantità richiesta dai lotti del prodotto in ordine
// FEFO: scadenza più vicina per prima, lotti senza scadenza per ultimi, parità
// risolta per ordine di inserimento. Restituisce i prelievi effettuati e il
// residuo non soddisfatto (> 0 se la giacenza a lotti era insufficiente: sta
// al chiamante decidere se è un errore). Al termine riallinea la giacenza.
func (e *Engine) ConsumeFEFO(ctx context.Context, productID string, requested decimal.Decimal) ([]Consumption, decimal.Decimal, error) {
	var (
		used      []Consumption
		remaining decimal.Decimal
	)
	err := e.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		lotRepo repository.LotRepository,
		_ repository.StockMovementRepository,
	) error {
		u, r, err := ConsumeFEFOInTx(productRepo, lotRepo, productID, requested)
		if err != nil {
			return err
		}
		used, remaining = u, r
		return nil
	})
	if err != nil {
		return nil, decimal.Zero, err
	}
	return used, remaining, nil
}

// ConsumeFEFOInTx esegue il consumo FEFO dentro una transazione già aperta,
// così il chiamante può registrare i movimenti nella stessa transazione.
func ConsumeFEFOInTx(productRepo repository.ProductRepository, lotRepo repository.LotRepository, productID string, requested decimal.Decimal) ([]Consumption, decimal.Decimal, error) {
	if !requested.GreaterThan(decimal.Zero) {
		return nil, decimal.Zero, domain.ErrInvalidInput
	}

	// FOR UPDATE in ordine FEFO: serializza i consumi concorrenti sul prodotto.
	lots, err := lotRepo.ListByProductForUpdate(productID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	remaining := requested
	var used []Consumption
	for _, lot := range lots {
		if !remaining.GreaterThan(decimal.Zero) {
			break
		}
		take := decimal.Min(lot.Quantity, remaining)
		if !take.GreaterThan(decimal.Zero) {
			continue
		}
		if err := lotRepo.UpdateQuantity(lot.ID, lot.Quantity.Sub(take)); err != nil {
			return nil, decimal.Zero, err
		}
		used = append(used, Consumption{LotID: lot.ID, Quantity: take})
		remaining = remaining.Sub(take)
	}

	if _, err := RecalculateInTx(productRepo, lotRepo, productID); err != nil {
		return nil, decimal.Zero, err
	}
	return used, remaining, nil
}

// EnsureCanDecrease verifica che uno scarico non porti la giacenza aggregata
// sotto zero. requestedDelta deve essere > 0.
func EnsureCanDecrease(product *entity.Product, requestedDelta decimal.Decimal) error {
	if !requestedDelta.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if requestedDelta.GreaterThan(product.Quantity) {
		return domain.ErrInsufficientStock
	}
	return nil
}

// ApplyBulkInventory sovrascrive la giacenza dei prodotti indicati con il
// valore del conteggio fisico, in un'unica transazione. Bypassa i lotti:
// il conteggio reale prevale sulla contabilità a lotti finché un lotto non
// viene di nuovo toccato. Un prodotto inesistente fa fallire tutta la rettifica.
func (e *Engine) ApplyBulkInventory(ctx context.Context, items []BulkItem) ([]*entity.Product, error) {
	var updated []*entity.Product
	err := e.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.LotRepository,
		_ repository.StockMovementRepository,
	) error {
		for _, it := range items {
			if it.Quantity.LessThan(decimal.Zero) {
				return domain.ErrInvalidInput
			}
			product, err := productRepo.GetForUpdate(it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if err := productRepo.UpdateQuantity(it.ProductID, it.Quantity); err != nil {
				return err
			}
			product.Quantity = it.Quantity
			updated = append(updated, product)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
