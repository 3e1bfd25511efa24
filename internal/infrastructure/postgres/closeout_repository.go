package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gbirreria/gb-api/internal/domain"
	"github.com/gbirreria/gb-api/internal/domain/entity"
	"github.com/gbirreria/gb-api/internal/domain/repository"
)

var _ repository.CloseoutRepository = (*CloseoutRepo)(nil)

// CloseoutRepo implementazione di CloseoutRepository su PostgreSQL (pool o tx).
// Conteggi cassa e liste di vuoti viaggiano come JSONB.
type CloseoutRepo struct {
	q Querier
}

// NewCloseoutRepository costruisce l'adattatore delle chiusure di cassa. Passare pool o tx (Querier).
func NewCloseoutRepository(q Querier) *CloseoutRepo {
	return &CloseoutRepo{q: q}
}

const closeoutColumns = `id, date, cash_counts, bottles_finished, kegs_finished, cash_total_cents, pos_amount_cents, satispay_amount_cents, notes, created_by, created_at`

// Create persiste una chiusura di cassa. Il totale contanti è già calcolato
// a monte e non viene mai ricalcolato in lettura.
func (r *CloseoutRepo) Create(c *entity.Closeout) error {
	cashJSON, err := json.Marshal(c.CashCounts)
	if err != nil {
		return fmt.Errorf("marshal cash counts: %w", err)
	}
	bottlesJSON, err := json.Marshal(c.BottlesFinished)
	if err != nil {
		return fmt.Errorf("marshal bottles: %w", err)
	}
	kegsJSON, err := json.Marshal(c.KegsFinished)
	if err != nil {
		return fmt.Errorf("marshal kegs: %w", err)
	}
	query := `
		INSERT INTO closeouts (` + closeoutColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(context.Background(), query,
		c.ID, c.Date, cashJSON, bottlesJSON, kegsJSON,
		c.CashTotalCents, c.POSAmountCents, c.SatispayAmountCents,
		c.Notes, c.CreatedBy, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert closeout: %w", err)
	}
	return nil
}

// GetByID ottiene una chiusura per ID. Restituisce (nil, nil) se assente.
func (r *CloseoutRepo) GetByID(id string) (*entity.Closeout, error) {
	query := `SELECT ` + closeoutColumns + ` FROM closeouts WHERE id = $1`
	c, err := scanCloseout(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get closeout: %w", err)
	}
	return c, nil
}

// List elenca le chiusure dalla più recente, con intervallo date opzionale
// (estremi inclusi).
func (r *CloseoutRepo) List(start, end *time.Time) ([]*entity.Closeout, error) {
	query := `SELECT ` + closeoutColumns + ` FROM closeouts WHERE 1=1`
	var args []any
	if start != nil {
		args = append(args, *start)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list closeouts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Closeout
	for rows.Next() {
		c, err := scanCloseout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan closeout: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanCloseout(row pgx.Row) (*entity.Closeout, error) {
	var c entity.Closeout
	var cashJSON, bottlesJSON, kegsJSON []byte
	if err := row.Scan(
		&c.ID, &c.Date, &cashJSON, &bottlesJSON, &kegsJSON,
		&c.CashTotalCents, &c.POSAmountCents, &c.SatispayAmountCents,
		&c.Notes, &c.CreatedBy, &c.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cashJSON, &c.CashCounts); err != nil {
		return nil, fmt.Errorf("unmarshal cash counts: %w", err)
	}
	if err := json.Unmarshal(bottlesJSON, &c.BottlesFinished); err != nil {
		return nil, fmt.Errorf("unmarshal bottles: %w", err)
	}
	if err := json.Unmarshal(kegsJSON, &c.KegsFinished); err != nil {
		return nil, fmt.Errorf("unmarshal kegs: %w", err)
	}
	return &c, nil
}
