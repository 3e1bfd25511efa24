// Package lots implementa il CRUD dei lotti. Ogni mutazione (creazione,
// modifica, cancellazione) avviene nella stessa transazione del ricalcolo
// della giacenza aggregata, così l'invariante prodotto/lotti non è mai
// osservabile violato.
package lots

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gbirreria/gb-api/internal/application/dto"
	"github.com/gbirreria/gb-api/internal/application/stock"
	"github.com/gbirreria/gb-api/internal/domain"
	"github.com/gbirreria/gb-api/internal/domain/entity"
	"github.com/gbirreria/gb-api/internal/domain/repository"
)

// UseCase casi d'uso dei lotti.
type UseCase struct {
	txRunner stock.TxRunner
	lotRepo  repository.LotRepository
}

// NewUseCase costruisce il caso d'uso.
func NewUseCase(txRunner stock.TxRunner, lotRepo repository.LotRepository) *UseCase {
	return &UseCase{txRunner: txRunner, lotRepo: lotRepo}
}

// ListByProduct restituisce i lotti di un prodotto in ordine FEFO,
// con filtro opzionale per magazzino.
func (uc *UseCase) ListByProduct(productID string, location *string) ([]dto.LotResponse, error) {
	if location != nil && !entity.ValidLocation(*location) {
		return nil, domain.ErrInvalidInput
	}
	lots, err := uc.lotRepo.ListByProduct(productID, location)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LotResponse, 0, len(lots))
	for _, l := range lots {
		out = append(out, *toLotResponse(l))
	}
	return out, nil
}

// Create persiste un lotto e riallinea la giacenza del prodotto nella stessa
// transazione.
func (uc *UseCase) Create(ctx context.Context, productID string, in dto.CreateLotRequest) (*dto.LotResponse, error) {
	code := strings.TrimSpace(in.LotCode)
	if code == "" || in.Quantity.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	location := in.Location
	if location == "" {
		location = entity.LocationGenerale
	}
	if !entity.ValidLocation(location) {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.LotStatusOK
	}
	if !entity.ValidLotStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	if in.CostCents != nil && *in.CostCents < 0 {
		return nil, domain.ErrInvalidInput
	}
	expiry, err := parseDate(in.ExpiryDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	lot := &entity.Lot{
		ID:          uuid.New().String(),
		ProductID:   productID,
		LotCode:     code,
		Supplier:    in.Supplier,
		ExpiryDate:  expiry,
		Quantity:    in.Quantity,
		CostCents:   in.CostCents,
		Location:    location,
		Status:      status,
		BlockReason: in.BlockReason,
		CreatedAt:   time.Now().UTC(),
	}
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		lotRepo repository.LotRepository,
		_ repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := lotRepo.Create(lot); err != nil {
			return err
		}
		_, err = stock.RecalculateInTx(productRepo, lotRepo, productID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toLotResponse(lot), nil
}

// Update applica una modifica parziale al lotto e ricalcola la giacenza del
// prodotto. Se il lotto viene riassegnato a un altro prodotto, il ricalcolo
// avviene sia sul prodotto di origine che su quello di destinazione.
func (uc *UseCase) Update(ctx context.Context, lotID string, in dto.UpdateLotRequest) (*dto.LotResponse, error) {
	var updated *entity.Lot
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		lotRepo repository.LotRepository,
		_ repository.StockMovementRepository,
	) error {
		lot, err := lotRepo.GetByID(lotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return domain.ErrNotFound
		}
		oldProductID := lot.ProductID

		if in.ProductID != nil && *in.ProductID != lot.ProductID {
			dest, err := productRepo.GetByID(*in.ProductID)
			if err != nil {
				return err
			}
			if dest == nil {
				return domain.ErrNotFound
			}
			lot.ProductID = *in.ProductID
		}
		if in.LotCode != nil {
			code := strings.TrimSpace(*in.LotCode)
			if code == "" {
				return domain.ErrInvalidInput
			}
			lot.LotCode = code
		}
		if in.Supplier != nil {
			lot.Supplier = in.Supplier
		}
		if in.ExpiryDate != nil {
			expiry, err := parseDate(in.ExpiryDate)
			if err != nil {
				return domain.ErrInvalidInput
			}
			lot.ExpiryDate = expiry
		}
		if in.Quantity != nil {
			if in.Quantity.LessThan(decimal.Zero) {
				return domain.ErrInvalidInput
			}
			lot.Quantity = *in.Quantity
		}
		if in.CostCents != nil {
			if *in.CostCents < 0 {
				return domain.ErrInvalidInput
			}
			lot.CostCents = in.CostCents
		}
		if in.Location != nil {
			if !entity.ValidLocation(*in.Location) {
				return domain.ErrInvalidInput
			}
			lot.Location = *in.Location
		}
		if in.Status != nil {
			if !entity.ValidLotStatus(*in.Status) {
				return domain.ErrInvalidInput
			}
			lot.Status = *in.Status
		}
		if in.BlockReason != nil {
			lot.BlockReason = in.BlockReason
		}

		if err := lotRepo.Update(lot); err != nil {
			return err
		}
		if _, err := stock.RecalculateInTx(productRepo, lotRepo, oldProductID); err != nil {
			return err
		}
		if lot.ProductID != oldProductID {
			if _, err := stock.RecalculateInTx(productRepo, lotRepo, lot.ProductID); err != nil {
				return err
			}
		}
		updated = lot
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toLotResponse(updated), nil
}

// Delete elimina un lotto e riallinea la giacenza del prodotto prima di
// riportare l'esito.
func (uc *UseCase) Delete(ctx context.Context, lotID string) error {
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		lotRepo repository.LotRepository,
		_ repository.StockMovementRepository,
	) error {
		lot, err := lotRepo.GetByID(lotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return domain.ErrNotFound
		}
		if err := lotRepo.Delete(lotID); err != nil {
			return err
		}
		_, err = stock.RecalculateInTx(productRepo, lotRepo, lot.ProductID)
		return err
	})
}

// SearchByCode ricerca globale di lotti per codice, su tutti i prodotti,
// con filtro opzionale per magazzino.
func (uc *UseCase) SearchByCode(lotCode string, location *string) ([]dto.LotWithProductResponse, error) {
	if strings.TrimSpace(lotCode) == "" {
		return nil, domain.ErrInvalidInput
	}
	if location != nil && !entity.ValidLocation(*location) {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.lotRepo.SearchByCode(lotCode, location)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LotWithProductResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LotWithProductResponse{
			LotResponse: *toLotResponse(&r.Lot),
			ProductName: r.ProductName,
		})
	}
	return out, nil
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toLotResponse(l *entity.Lot) *dto.LotResponse {
	if l == nil {
		return nil
	}
	var expiry *string
	if l.ExpiryDate != nil {
		s := l.ExpiryDate.Format("2006-01-02")
		expiry = &s
	}
	return &dto.LotResponse{
		ID:          l.ID,
		ProductID:   l.ProductID,
		LotCode:     l.LotCode,
		Supplier:    l.Supplier,
		ExpiryDate:  expiry,
		Quantity:    l.Quantity,
		CostCents:   l.CostCents,
		Location:    l.Location,
		Status:      l.Status,
		BlockReason: l.BlockReason,
		CreatedAt:   l.CreatedAt,
	}
}
