package repository

import (
	"time"

	"github.com/gbirreria/gb-api/internal/domain/entity"
)

// CloseoutRepository porta di persistenza per Closeout.
// Solo creazione e lettura: le chiusure non si modificano.
type CloseoutRepository interface {
	Create(c *entity.Closeout) error
	GetByID(id string) (*entity.Closeout, error) // (nil, nil) se assente
	List(start, end *time.Time) ([]*entity.Closeout, error) // per data desc
}
