package export

import (
	"context"

	"github.com/gbirreria/gb-api/internal/domain/entity"
)

// CloseoutPDFGenerator genera la scheda PDF di una singola chiusura di cassa.
type CloseoutPDFGenerator interface {
	GenerateCloseoutPDF(ctx context.Context, c *entity.Closeout) ([]byte, error)
}

// WorkbookGenerator genera i fogli di calcolo di esportazione.
type WorkbookGenerator interface {
	ProductsWorkbook(products []*entity.Product) ([]byte, error)
	CloseoutsWorkbook(closeouts []*entity.Closeout) ([]byte, error)
}
