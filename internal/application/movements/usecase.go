// Package movements espone il registro movimenti di magazzino: scritture
// append-only e letture filtrate, nessuna logica di business oltre la
// validazione dell'input.
package movements

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gbirreria/gb-api/internal/application/dto"
	"github.com/gbirreria/gb-api/internal/domain"
	"github.com/gbirreria/gb-api/internal/domain/entity"
	"github.com/gbirreria/gb-api/internal/domain/repository"
)

// UseCase casi d'uso del registro movimenti.
type UseCase struct {
	movementRepo repository.StockMovementRepository
	productRepo  repository.ProductRepository
}

// NewUseCase costruisce il caso d'uso.
func NewUseCase(movementRepo repository.StockMovementRepository, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{movementRepo: movementRepo, productRepo: productRepo}
}

// Create registra un movimento nel registro. Non tocca le giacenze: è la
// tracciatura storica, i carichi/scarichi passano dal catalogo.
func (uc *UseCase) Create(in dto.CreateMovementRequest, userID string) (*dto.MovementResponse, error) {
	if in.ProductID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(in.MovementType) {
		return nil, domain.ErrInvalidInput
	}
	if in.FromLocation != nil && !entity.ValidLocation(*in.FromLocation) {
		return nil, domain.ErrInvalidInput
	}
	if in.ToLocation != nil && !entity.ValidLocation(*in.ToLocation) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var user *string
	if userID != "" {
		user = &userID
	}
	m := &entity.StockMovement{
		ID:           uuid.New().String(),
		ProductID:    in.ProductID,
		LotID:        in.LotID,
		FromLocation: in.FromLocation,
		ToLocation:   in.ToLocation,
		Quantity:     in.Quantity,
		MovementType: in.MovementType,
		DocumentRef:  in.DocumentRef,
		UserID:       user,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.movementRepo.Create(m); err != nil {
		return nil, err
	}
	return ToResponse(m), nil
}

// List restituisce i movimenti filtrati per prodotto e/o lotto, più recenti
// prima, limitati dal chiamante (default 200, massimo 500).
func (uc *UseCase) List(productID, lotID *string, limit int) ([]dto.MovementResponse, error) {
	if limit <= 0 {
		limit = 200
	}
	if limit > 500 {
		limit = 500
	}
	rows, err := uc.movementRepo.List(repository.MovementFilter{
		ProductID: productID,
		LotID:     lotID,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, *ToResponse(m))
	}
	return out, nil
}

// ToResponse mappa l'entità sul DTO di uscita.
func ToResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		LotID:        m.LotID,
		FromLocation: m.FromLocation,
		ToLocation:   m.ToLocation,
		Quantity:     m.Quantity,
		MovementType: m.MovementType,
		DocumentRef:  m.DocumentRef,
		UserID:       m.UserID,
		CreatedAt:    m.CreatedAt,
	}
}
