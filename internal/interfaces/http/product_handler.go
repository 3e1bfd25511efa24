package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gbirreria/gb-api/internal/application/catalog"
	"github.com/gbirreria/gb-api/internal/application/dto"
)

// ProductHandler gestisce le richieste HTTP per il catalogo prodotti.
type ProductHandler struct {
	uc *catalog.UseCase
}

// NewProductHandler costruisce l'handler.
func NewProductHandler(uc *catalog.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create crea un prodotto. 409 su nome o SKU duplicato.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body non valido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List elenca i prodotti ordinati per nome.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetByID restituisce un prodotto per ID.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Update applica una modifica parziale al prodotto.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body non valido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un prodotto; lotti e movimenti seguono le cascate dello schema.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.StatusResponse{Status: "deleted"})
}

// StockIn carica quantità sulla giacenza e registra il movimento.
func (h *ProductHandler) StockIn(c *fiber.Ctx) error {
	var in dto.StockChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body non valido"})
	}
	out, err := h.uc.StockIn(c.Context(), c.Params("id"), in, GetUsername(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// StockOut scarica quantità: se il prodotto ha lotti il consumo segue il FEFO,
// un movimento per lotto consumato. 400 se la giacenza non basta.
func (h *ProductHandler) StockOut(c *fiber.Ctx) error {
	var in dto.StockChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body non valido"})
	}
	out, err := h.uc.StockOut(c.Context(), c.Params("id"), in, GetUsername(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ApplyInventory sovrascrive le giacenze indicate in un'unica transazione
// (riallineamento da conta fisica).
func (h *ProductHandler) ApplyInventory(c *fiber.Ctx) error {
	var in dto.InventoryBulkRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body non valido"})
	}
	if len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "items è obbligatorio"})
	}
	out, err := h.uc.ApplyInventory(c.Context(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Movements restituisce il registro movimenti del prodotto.
func (h *ProductHandler) Movements(c *fiber.Ctx) error {
	out, err := h.uc.Movements(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
