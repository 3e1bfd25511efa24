package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gbirreria/gb-api/internal/application/dto"
	"github.com/gbirreria/gb-api/internal/application/movements"
)

// MovementHandler gestisce il registro movimenti.
type MovementHandler struct {
	uc *movements.UseCase
}

// NewMovementHandler costruisce l'handler.
func NewMovementHandler(uc *movements.UseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Create registra un movimento documentale; non tocca le giacenze.
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body non valido"})
	}
	out, err := h.uc.Create(in, GetUsername(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List legge il registro dal più recente (?product_id=&lot_id=&limit=).
func (h *MovementHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(queryPtr(c, "product_id"), queryPtr(c, "lot_id"), c.QueryInt("limit", 0))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
