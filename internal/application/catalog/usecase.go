// Package catalog implementa il CRUD prodotti e le operazioni di carico e
// scarico sulla giacenza aggregata, appoggiandosi al motore di coerenza per
// il consumo FEFO e il guard di non-negatività.
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gbirreria/gb-api/internal/application/dto"
	"github.com/gbirreria/gb-api/internal/application/movements"
	"github.com/gbirreria/gb-api/internal/application/stock"
	"github.com/gbirreria/gb-api/internal/domain"
	"github.com/gbirreria/gb-api/internal/domain/entity"
	"github.com/gbirreria/gb-api/internal/domain/repository"
)

// UseCase casi d'uso del catalogo prodotti.
type UseCase struct {
	txRunner     stock.TxRunner
	engine       *stock.Engine
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewUseCase costruisce il caso d'uso.
func NewUseCase(
	txRunner stock.TxRunner,
	engine *stock.Engine,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		engine:       engine,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// Create valida e persiste un nuovo prodotto. Nome duplicato o SKU duplicato
// risalgono come domain.ErrDuplicate.
func (uc *UseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.PriceCents < 0 || in.Quantity.LessThan(decimal.Zero) || in.MinQuantity.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	unit := in.Unit
	if unit == "" {
		unit = "pz"
	}
	vatRate := 22
	if in.VATRate != nil {
		vatRate = *in.VATRate
	}
	discount := decimal.Zero
	if in.DiscountPercent != nil {
		discount = *in.DiscountPercent
	}
	if discount.LessThan(decimal.Zero) || discount.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domain.ErrInvalidInput
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:              uuid.New().String(),
		Name:            name,
		SKU:             in.SKU,
		PriceCents:      in.PriceCents,
		Unit:            unit,
		Quantity:        in.Quantity,
		MinQuantity:     in.MinQuantity,
		VATRate:         vatRate,
		DiscountPercent: discount,
		Supplier:        in.Supplier,
		IsActive:        active,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List restituisce il catalogo ordinato per nome.
func (uc *UseCase) List() ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *ToProductResponse(p))
	}
	return out, nil
}

// GetByID restituisce un prodotto, o ErrNotFound.
func (uc *UseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return ToProductResponse(product), nil
}

// Update applica una modifica parziale. I campi nil restano invariati. La
// quantity, se presente, sovrascrive la giacenza aggregata come una rettifica
// (passa da UpdateQuantity: la UPDATE anagrafica non tocca quella colonna);
// la prossima mutazione di lotto la riallinea. Anagrafica e giacenza vengono
// scritte nella stessa transazione.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.LotRepository,
		_ repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.ErrInvalidInput
			}
			product.Name = name
		}
		if in.SKU != nil {
			product.SKU = in.SKU
		}
		if in.PriceCents != nil {
			if *in.PriceCents < 0 {
				return domain.ErrInvalidInput
			}
			product.PriceCents = *in.PriceCents
		}
		if in.Unit != nil && *in.Unit != "" {
			product.Unit = *in.Unit
		}
		if in.Quantity != nil {
			if in.Quantity.LessThan(decimal.Zero) {
				return domain.ErrInvalidInput
			}
			product.Quantity = *in.Quantity
		}
		if in.MinQuantity != nil {
			if in.MinQuantity.LessThan(decimal.Zero) {
				return domain.ErrInvalidInput
			}
			product.MinQuantity = *in.MinQuantity
		}
		if in.VATRate != nil {
			product.VATRate = *in.VATRate
		}
		if in.DiscountPercent != nil {
			if in.DiscountPercent.LessThan(decimal.Zero) || in.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
				return domain.ErrInvalidInput
			}
			product.DiscountPercent = *in.DiscountPercent
		}
		if in.Supplier != nil {
			product.Supplier = in.Supplier
		}
		if in.IsActive != nil {
			product.IsActive = *in.IsActive
		}
		product.UpdatedAt = time.Now().UTC()
		if err := productRepo.Update(product); err != nil {
			return err
		}
		if in.Quantity != nil {
			if err := productRepo.UpdateQuantity(id, product.Quantity); err != nil {
				return err
			}
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToProductResponse(updated), nil
}

// Delete elimina un prodotto: lotti e movimenti vengono rimossi dalle regole
// di cascata dichiarate nello schema (ON DELETE CASCADE).
func (uc *UseCase) Delete(id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(id)
}

// StockIn carica quantità sulla giacenza aggregata e registra il movimento,
// in un'unica transazione. Il tipo di movimento di default è PURCHASE.
// Non tocca i lotti: il prossimo ricalcolo da mutazione di lotto riallinea.
func (uc *UseCase) StockIn(ctx context.Context, productID string, in dto.StockChangeRequest, userID string) (*dto.ProductWithMovements, error) {
	movementType := in.MovementType
	if movementType == "" {
		movementType = entity.MovementPurchase
	}
	if err := validateStockChange(in, movementType); err != nil {
		return nil, err
	}

	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.LotRepository,
		movRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		product.Quantity = product.Quantity.Add(in.Quantity)
		if err := productRepo.UpdateQuantity(productID, product.Quantity); err != nil {
			return err
		}
		if err := movRepo.Create(newMovement(productID, nil, in, movementType, userID)); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.withMovements(updated)
}

// StockOut scarica quantità dopo il guard di non-negatività. Se il prodotto ha
// lotti lo scarico passa dal consumo FEFO e viene registrato un movimento per
// ogni lotto prelevato (con il suo lot_id); altrimenti si decrementa la sola
// giacenza aggregata con un movimento unico. Tipo di default: SALE.
func (uc *UseCase) StockOut(ctx context.Context, productID string, in dto.StockChangeRequest, userID string) (*dto.ProductWithMovements, error) {
	movementType := in.MovementType
	if movementType == "" {
		movementType = entity.MovementSale
	}
	if err := validateStockChange(in, movementType); err != nil {
		return nil, err
	}

	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		lotRepo repository.LotRepository,
		movRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := stock.EnsureCanDecrease(product, in.Quantity); err != nil {
			return err
		}

		lots, err := lotRepo.ListByProductForUpdate(productID)
		if err != nil {
			return err
		}
		if len(lots) == 0 {
			// Nessun lotto: scarico diretto sull'aggregato.
			product.Quantity = product.Quantity.Sub(in.Quantity)
			if err := productRepo.UpdateQuantity(productID, product.Quantity); err != nil {
				return err
			}
			if err := movRepo.Create(newMovement(productID, nil, in, movementType, userID)); err != nil {
				return err
			}
			updated = product
			return nil
		}

		used, remaining, err := stock.ConsumeFEFOInTx(productRepo, lotRepo, productID, in.Quantity)
		if err != nil {
			return err
		}
		if remaining.GreaterThan(decimal.Zero) {
			// I lotti coprono meno dell'aggregato: rollback, niente scarico parziale.
			return domain.ErrInsufficientStock
		}
		for _, c := range used {
			mv := in
			mv.Quantity = c.Quantity
			lotID := c.LotID
			if err := movRepo.Create(newMovement(productID, &lotID, mv, movementType, userID)); err != nil {
				return err
			}
		}
		// Il ricalcolo ha già scritto la giacenza dalla somma dei lotti:
		// la risposta rilegge la riga, non sottrae dall'aggregato in memoria.
		refreshed, err := productRepo.GetByID(productID)
		if err != nil {
			return err
		}
		updated = refreshed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.withMovements(updated)
}

// ApplyInventory sovrascrive le giacenze con il conteggio fisico (rettifica massiva).
func (uc *UseCase) ApplyInventory(ctx context.Context, in dto.InventoryBulkRequest) ([]dto.ProductResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	items := make([]stock.BulkItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.ID == "" {
			return nil, domain.ErrInvalidInput
		}
		items = append(items, stock.BulkItem{ProductID: it.ID, Quantity: it.Quantity})
	}
	updated, err := uc.engine.ApplyBulkInventory(ctx, items)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(updated))
	for _, p := range updated {
		out = append(out, *ToProductResponse(p))
	}
	return out, nil
}

// Movements restituisce i movimenti recenti di un prodotto (più recenti prima).
func (uc *UseCase) Movements(productID string) ([]dto.MovementResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.movementRepo.List(repository.MovementFilter{ProductID: &productID})
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, *movements.ToResponse(m))
	}
	return out, nil
}

func (uc *UseCase) withMovements(product *entity.Product) (*dto.ProductWithMovements, error) {
	mvs, err := uc.Movements(product.ID)
	if err != nil {
		return nil, err
	}
	return &dto.ProductWithMovements{
		ProductResponse: *ToProductResponse(product),
		Movements:       mvs,
	}, nil
}

func validateStockChange(in dto.StockChangeRequest, movementType string) error {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(movementType) {
		return domain.ErrInvalidInput
	}
	if in.FromLocation != nil && !entity.ValidLocation(*in.FromLocation) {
		return domain.ErrInvalidInput
	}
	if in.ToLocation != nil && !entity.ValidLocation(*in.ToLocation) {
		return domain.ErrInvalidInput
	}
	return nil
}

func newMovement(productID string, lotID *string, in dto.StockChangeRequest, movementType, userID string) *entity.StockMovement {
	var user *string
	if userID != "" {
		user = &userID
	}
	return &entity.StockMovement{
		ID:           uuid.New().String(),
		ProductID:    productID,
		LotID:        lotID,
		FromLocation: in.FromLocation,
		ToLocation:   in.ToLocation,
		Quantity:     in.Quantity,
		MovementType: movementType,
		DocumentRef:  in.DocumentRef,
		UserID:       user,
		CreatedAt:    time.Now().UTC(),
	}
}

// ToProductResponse mappa l'entità sul DTO di uscita.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		SKU:             p.SKU,
		PriceCents:      p.PriceCents,
		Unit:            p.Unit,
		Quantity:        p.Quantity,
		MinQuantity:     p.MinQuantity,
		VATRate:         p.VATRate,
		DiscountPercent: p.DiscountPercent,
		Supplier:        p.Supplier,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
