package stock

import (
	"context"

	"github.com/gbirreria/gb-api/internal/domain/repository"
)

// TxRunner esegue una funzione dentro una transazione di DB, passando
// repository legati a quella transazione. Garantisce atomicità: o tutte le
// scritture dell'operazione vengono committate, o nessuna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		lotRepo repository.LotRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
