package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gbirreria/gb-api/internal/application/closeout"
	"github.com/gbirreria/gb-api/internal/application/dto"
)

// CloseoutHandler gestisce le chiusure di cassa giornaliere.
type CloseoutHandler struct {
	uc *closeout.UseCase
}

// NewCloseoutHandler costruisce l'handler.
func NewCloseoutHandler(uc *closeout.UseCase) *CloseoutHandler {
	return &CloseoutHandler{uc: uc}
}

// Create registra una chiusura. Il totale contanti si calcola qui una volta
// sola e resta fissato.
func (h *CloseoutHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCloseoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body non valido"})
	}
	out, err := h.uc.Create(in, GetUsername(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List elenca le chiusure dalla più recente (?start=&end= in formato 2006-01-02).
func (h *CloseoutHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(queryPtr(c, "start"), queryPtr(c, "end"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetByID restituisce una chiusura per ID.
func (h *CloseoutHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
