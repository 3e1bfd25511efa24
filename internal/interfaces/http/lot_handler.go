package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gbirreria/gb-api/internal/application/dto"
	"github.com/gbirreria/gb-api/internal/application/lots"
)

// LotHandler gestisce le richieste HTTP per i lotti.
type LotHandler struct {
	uc *lots.UseCase
}

// NewLotHandler costruisce l'handler.
func NewLotHandler(uc *lots.UseCase) *LotHandler {
	return &LotHandler{uc: uc}
}

// ListByProduct elenca i lotti di un prodotto in ordine FEFO (?location= opzionale).
func (h *LotHandler) ListByProduct(c *fiber.Ctx) error {
	out, err := h.uc.ListByProduct(c.Params("id"), queryPtr(c, "location"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Create registra un lotto e riallinea la giacenza del prodotto.
func (h *LotHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body non valido"})
	}
	out, err := h.uc.Create(c.Context(), c.Params("id"), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update modifica un lotto; una riassegnazione di prodotto riallinea entrambe
// le giacenze.
func (h *LotHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body non valido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un lotto e riallinea la giacenza del prodotto.
func (h *LotHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.StatusResponse{Status: "deleted"})
}

// SearchByCode cerca lotti per codice su tutto il catalogo (?lot_code=&location=).
func (h *LotHandler) SearchByCode(c *fiber.Ctx) error {
	code := c.Query("lot_code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lot_code è obbligatorio"})
	}
	out, err := h.uc.SearchByCode(code, queryPtr(c, "location"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// queryPtr restituisce un puntatore al query param, o nil se assente.
func queryPtr(c *fiber.Ctx, key string) *string {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	return &v
}
