// Strumento di provisioning: crea (o riallinea) un utente manager con hash
// bcrypt della password. Da lanciare una tantum su una installazione nuova:
//
//	createmanager -username mario -password 'segreta'
package main

import (
	"context"
	"flag"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gbirreria/gb-api/internal/domain/entity"
	"github.com/gbirreria/gb-api/internal/infrastructure/postgres"
	"github.com/gbirreria/gb-api/pkg/config"
	"github.com/gbirreria/gb-api/pkg/logger"
)

func main() {
	username := flag.String("username", "", "username del manager")
	password := flag.String("password", "", "password in chiaro (verrà salvato solo l'hash)")
	flag.Parse()

	log := logger.New(logger.Config{Env: "development", Level: "info"})

	if *username == "" || *password == "" {
		log.Fatal().Msg("servono -username e -password")
	}
	if len(*password) < 8 {
		log.Fatal().Msg("la password deve avere almeno 8 caratteri")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("carica configurazione")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connessione a PostgreSQL")
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash password")
	}

	userRepo := postgres.NewUserRepository(pool)
	existing, err := userRepo.GetByUsername(*username)
	if err != nil {
		log.Fatal().Err(err).Msg("lettura utente")
	}

	if existing != nil {
		existing.PasswordHash = string(hash)
		existing.Role = entity.RoleManager
		existing.IsActive = true
		if err := userRepo.Update(existing); err != nil {
			log.Fatal().Err(err).Msg("aggiornamento utente")
		}
		log.Info().Str("username", *username).Msg("utente esistente riallineato a manager")
		return
	}

	user := &entity.User{
		ID:           uuid.NewString(),
		Username:     *username,
		PasswordHash: string(hash),
		Role:         entity.RoleManager,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := userRepo.Create(user); err != nil {
		log.Fatal().Err(err).Msg("creazione utente")
	}
	log.Info().Str("username", *username).Msg("manager creato")
}
