package repository

import "github.com/gbirreria/gb-api/internal/domain/entity"

// MovementFilter criteri di lettura del registro movimenti.
type MovementFilter struct {
	ProductID *string
	LotID     *string
	Limit     int // 0 = default del repository (200)
}

// StockMovementRepository porta per il registro movimenti: append-only,
// nessun update né delete applicativo. La lettura è dal più recente.
type StockMovementRepository interface {
	Create(m *entity.StockMovement) error
	List(filter MovementFilter) ([]*entity.StockMovement, error)
}
