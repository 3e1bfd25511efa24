// Package closeout implementa la chiusura di cassa giornaliera: il totale
// contanti viene calcolato in centesimi interi alla creazione e persistito;
// le letture restituiscono sempre i totali memorizzati, mai ricalcolati.
package closeout

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/gbirreria/gb-api/internal/application/dto"
	"github.com/gbirreria/gb-api/internal/domain"
	"github.com/gbirreria/gb-api/internal/domain/cash"
	"github.com/gbirreria/gb-api/internal/domain/entity"
	"github.com/gbirreria/gb-api/internal/domain/repository"
)

// UseCase casi d'uso delle chiusure di cassa.
type UseCase struct {
	closeoutRepo repository.CloseoutRepository
}

// NewUseCase costruisce il caso d'uso.
func NewUseCase(closeoutRepo repository.CloseoutRepository) *UseCase {
	return &UseCase{closeoutRepo: closeoutRepo}
}

// Create registra la chiusura: normalizza il conteggio sui tagli riconosciuti,
// fissa il totale contanti e converte gli importi in centesimi interi.
func (uc *UseCase) Create(in dto.CreateCloseoutRequest, createdBy string) (*dto.CloseoutResponse, error) {
	if in.POSEur < 0 || in.SatispayEur < 0 {
		return nil, domain.ErrInvalidInput
	}
	day := time.Now().UTC().Truncate(24 * time.Hour)
	if in.Date != nil && *in.Date != "" {
		parsed, err := time.Parse("2006-01-02", *in.Date)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		day = parsed
	}

	counts := cash.Normalize(in.Cash)
	bottles := in.BottlesFinished
	if bottles == nil {
		bottles = []string{}
	}
	kegs := in.KegsFinished
	if kegs == nil {
		kegs = []string{}
	}
	var by *string
	if createdBy != "" {
		by = &createdBy
	}

	c := &entity.Closeout{
		ID:                  uuid.New().String(),
		Date:                day,
		CashCounts:          counts,
		BottlesFinished:     bottles,
		KegsFinished:        kegs,
		CashTotalCents:      cash.TotalCents(counts),
		POSAmountCents:      eurToCents(in.POSEur),
		SatispayAmountCents: eurToCents(in.SatispayEur),
		Notes:               in.Notes,
		CreatedBy:           by,
		CreatedAt:           time.Now().UTC(),
	}
	if err := uc.closeoutRepo.Create(c); err != nil {
		return nil, err
	}
	return ToResponse(c), nil
}

// List restituisce le chiusure per intervallo di date (estremi inclusi),
// dalla più recente.
func (uc *UseCase) List(start, end *string) ([]dto.CloseoutResponse, error) {
	from, err := parseDate(start)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	to, err := parseDate(end)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.closeoutRepo.List(from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CloseoutResponse, 0, len(rows))
	for _, c := range rows {
		out = append(out, *ToResponse(c))
	}
	return out, nil
}

// GetByID restituisce una chiusura, o ErrNotFound.
func (uc *UseCase) GetByID(id string) (*dto.CloseoutResponse, error) {
	c, err := uc.closeoutRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return ToResponse(c), nil
}

// ToResponse mappa l'entità sul DTO: conversione centesimi -> euro solo qui,
// in presentazione.
func ToResponse(c *entity.Closeout) *dto.CloseoutResponse {
	if c == nil {
		return nil
	}
	return &dto.CloseoutResponse{
		ID:              c.ID,
		Date:            c.Date.Format("2006-01-02"),
		Cash:            c.CashCounts,
		CashTotalEur:    centsToEur(c.CashTotalCents),
		POSEur:          centsToEur(c.POSAmountCents),
		SatispayEur:     centsToEur(c.SatispayAmountCents),
		BottlesFinished: c.BottlesFinished,
		KegsFinished:    c.KegsFinished,
		Notes:           c.Notes,
		CreatedBy:       c.CreatedBy,
		CreatedAt:       c.CreatedAt,
	}
}

func eurToCents(e float64) int64 {
	return int64(math.Round(e * 100))
}

func centsToEur(c int64) float64 {
	return float64(c) / 100.0
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
