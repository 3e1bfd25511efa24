package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gbirreria/gb-api/internal/application/auth"
	"github.com/gbirreria/gb-api/internal/application/dto"
)

// AuthHandler gestisce login e profilo utente.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler costruisce l'handler di auth.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login verifica le credenziali e rilascia il token di accesso.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "body non valido"})
	}
	if in.Username == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "username e password sono obbligatori"})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Me restituisce l'utente del token corrente.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(GetUsername(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
