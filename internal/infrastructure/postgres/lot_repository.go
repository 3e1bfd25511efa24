package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/gbirreria/gb-api/internal/domain"
	"github.com/gbirreria/gb-api/internal/domain/entity"
	"github.com/gbirreria/gb-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementazione di LotRepository su PostgreSQL (pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository costruisce l'adattatore dei lotti. Passare pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

const lotColumns = `id, product_id, lot_code, supplier, expiry_date, quantity, cost_cents, location, status, block_reason, created_at`

// Ordine FEFO: prima i lotti con scadenza più vicina, quelli senza scadenza
// per ultimi; a parità di scadenza vince l'ordine di inserimento.
const lotFEFOOrder = ` ORDER BY expiry_date ASC NULLS LAST, created_at ASC, id ASC`

// Create persiste un nuovo lotto.
func (r *LotRepo) Create(l *entity.Lot) error {
	query := `
		INSERT INTO lots (` + lotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.ProductID, l.LotCode, l.Supplier, l.ExpiryDate, l.Quantity,
		l.CostCents, l.Location, l.Status, l.BlockReason, l.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// GetByID ottiene un lotto per ID. Restituisce (nil, nil) se assente.
func (r *LotRepo) GetByID(id string) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE id = $1`
	var l entity.Lot
	if err := scanLot(r.q.QueryRow(context.Background(), query, id), &l); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return &l, nil
}

// ListByProduct elenca i lotti di un prodotto in ordine FEFO, con filtro
// opzionale per ubicazione.
func (r *LotRepo) ListByProduct(productID string, location *string) ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE product_id = $1`
	args := []any{productID}
	if location != nil {
		query += ` AND location = $2`
		args = append(args, *location)
	}
	query += lotFEFOOrder
	return r.list(query, args...)
}

// ListByProductForUpdate elenca i lotti di un prodotto in ordine FEFO
// bloccando le righe (FOR UPDATE). Da usare dentro una transazione di consumo.
func (r *LotRepo) ListByProductForUpdate(productID string) ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE product_id = $1` + lotFEFOOrder + ` FOR UPDATE`
	return r.list(query, productID)
}

// SumQuantityByProduct somma le quantità di tutti i lotti di un prodotto.
func (r *LotRepo) SumQuantityByProduct(productID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM lots WHERE product_id = $1`,
		productID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum lot quantity: %w", err)
	}
	return sum, nil
}

// SearchByCode cerca i lotti con esattamente quel codice su tutto il
// catalogo, con filtro opzionale per ubicazione. L'ordinamento è pensato per
// la lettura a video: prodotto, poi ubicazione, poi scadenza.
func (r *LotRepo) SearchByCode(lotCode string, location *string) ([]*repository.LotWithProduct, error) {
	query := `
		SELECT l.id, l.product_id, l.lot_code, l.supplier, l.expiry_date, l.quantity,
			l.cost_cents, l.location, l.status, l.block_reason, l.created_at, p.name
		FROM lots l JOIN products p ON p.id = l.product_id
		WHERE l.lot_code = $1`
	args := []any{lotCode}
	if location != nil {
		query += ` AND l.location = $2`
		args = append(args, *location)
	}
	query += ` ORDER BY p.name ASC, l.location ASC, l.expiry_date ASC NULLS LAST`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("search lots: %w", err)
	}
	defer rows.Close()
	var list []*repository.LotWithProduct
	for rows.Next() {
		var lw repository.LotWithProduct
		if err := rows.Scan(
			&lw.ID, &lw.ProductID, &lw.LotCode, &lw.Supplier, &lw.ExpiryDate, &lw.Quantity,
			&lw.CostCents, &lw.Location, &lw.Status, &lw.BlockReason, &lw.CreatedAt, &lw.ProductName,
		); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, &lw)
	}
	return list, rows.Err()
}

// Update aggiorna un lotto esistente (compresa l'eventuale riassegnazione di prodotto).
func (r *LotRepo) Update(l *entity.Lot) error {
	query := `
		UPDATE lots SET product_id = $2, lot_code = $3, supplier = $4, expiry_date = $5,
			quantity = $6, cost_cents = $7, location = $8, status = $9, block_reason = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.ProductID, l.LotCode, l.Supplier, l.ExpiryDate,
		l.Quantity, l.CostCents, l.Location, l.Status, l.BlockReason,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update lot: %w", err)
	}
	return nil
}

// UpdateQuantity aggiorna solo la quantità residua del lotto (consumo FEFO).
func (r *LotRepo) UpdateQuantity(id string, qty decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE lots SET quantity = $2 WHERE id = $1`,
		id, qty,
	)
	if err != nil {
		return fmt.Errorf("update lot quantity: %w", err)
	}
	return nil
}

// Delete elimina un lotto per ID.
func (r *LotRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM lots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lot: %w", err)
	}
	return nil
}

func (r *LotRepo) list(query string, args ...any) ([]*entity.Lot, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lot
	for rows.Next() {
		var l entity.Lot
		if err := scanLot(rows, &l); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func scanLot(row pgx.Row, l *entity.Lot) error {
	return row.Scan(
		&l.ID, &l.ProductID, &l.LotCode, &l.Supplier, &l.ExpiryDate, &l.Quantity,
		&l.CostCents, &l.Location, &l.Status, &l.BlockReason, &l.CreatedAt,
	)
}
