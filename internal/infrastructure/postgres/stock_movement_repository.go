package postgres

import (
	"context"
	"fmt"

	"github.com/gbirreria/gb-api/internal/domain/entity"
	"github.com/gbirreria/gb-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const defaultMovementLimit = 200

// StockMovementRepo implementazione del registro movimenti su PostgreSQL (pool o tx).
// Il registro è append-only: nessun UPDATE né DELETE applicativo.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository costruisce l'adattatore dei movimenti. Passare pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra un movimento di magazzino.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, lot_id, from_location, to_location, quantity, movement_type, document_ref, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, m.LotID, m.FromLocation, m.ToLocation,
		m.Quantity, m.MovementType, m.DocumentRef, m.UserID, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// List legge il registro dal movimento più recente, con filtri opzionali per
// prodotto e lotto. Limit 0 applica il default.
func (r *StockMovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, lot_id, from_location, to_location, quantity, movement_type, document_ref, user_id, created_at
		FROM stock_movements WHERE 1=1`
	var args []any
	if filter.ProductID != nil {
		args = append(args, *filter.ProductID)
		query += fmt.Sprintf(" AND product_id = $%d", len(args))
	}
	if filter.LotID != nil {
		args = append(args, *filter.LotID)
		query += fmt.Sprintf(" AND lot_id = $%d", len(args))
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultMovementLimit
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.LotID, &m.FromLocation, &m.ToLocation,
			&m.Quantity, &m.MovementType, &m.DocumentRef, &m.UserID, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
