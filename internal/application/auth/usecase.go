// Package auth implementa login e emissione dei token di accesso.
// Un solo percorso di verifica credenziali: bcrypt su password_hash.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/gbirreria/gb-api/internal/application/dto"
	"github.com/gbirreria/gb-api/internal/domain"
	"github.com/gbirreria/gb-api/internal/domain/entity"
	"github.com/gbirreria/gb-api/internal/domain/repository"
	"github.com/gbirreria/gb-api/pkg/jwt"
)

// JWTConfig configurazione per la generazione dei token.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casi d'uso di autenticazione.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewUseCase costruisce il caso d'uso.
func NewUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica username/password e genera il bearer token con il claim role.
// Credenziali errate e utente disattivato rispondono allo stesso modo, per
// non rivelare quale dei due sia il caso.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// Me restituisce l'utente autenticato a partire dallo username del token.
func (uc *UseCase) Me(username string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
