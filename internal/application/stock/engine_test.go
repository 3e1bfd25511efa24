package stock_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbirreria/gb-api/internal/application/stock"
	"github.com/gbirreria/gb-api/internal/domain"
	"github.com/gbirreria/gb-api/internal/domain/entity"
	"github.com/gbirreria/gb-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake in-memory: repos + TxRunner
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	products  map[string]*entity.Product
	lots      map[string]*entity.Lot
	movements []*entity.StockMovement
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: map[string]*entity.Product{},
		lots:     map[string]*entity.Lot{},
	}
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) List() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateQuantity(id string, qty decimal.Decimal) error {
	p, ok := r.s.products[id]
	if !ok {
		return nil
	}
	p.Quantity = qty
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

type fakeLotRepo struct{ s *fakeStore }

func (r *fakeLotRepo) Create(l *entity.Lot) error {
	cl := *l
	r.s.lots[l.ID] = &cl
	return nil
}

func (r *fakeLotRepo) GetByID(id string) (*entity.Lot, error) {
	l, ok := r.s.lots[id]
	if !ok {
		return nil, nil
	}
	cl := *l
	return &cl, nil
}

// sortFEFO ordina come il repository reale: scadenza più vicina per prima,
// scadenza nulla in coda, parità risolta per (created_at, id).
func sortFEFO(lots []*entity.Lot) {
	sort.Slice(lots, func(i, j int) bool {
		a, b := lots[i], lots[j]
		switch {
		case a.ExpiryDate == nil && b.ExpiryDate != nil:
			return false
		case a.ExpiryDate != nil && b.ExpiryDate == nil:
			return true
		case a.ExpiryDate != nil && b.ExpiryDate != nil && !a.ExpiryDate.Equal(*b.ExpiryDate):
			return a.ExpiryDate.Before(*b.ExpiryDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

func (r *fakeLotRepo) ListByProduct(productID string, location *string) ([]*entity.Lot, error) {
	var out []*entity.Lot
	for _, l := range r.s.lots {
		if l.ProductID != productID {
			continue
		}
		if location != nil && l.Location != *location {
			continue
		}
		cl := *l
		out = append(out, &cl)
	}
	sortFEFO(out)
	return out, nil
}

func (r *fakeLotRepo) ListByProductForUpdate(productID string) ([]*entity.Lot, error) {
	return r.ListByProduct(productID, nil)
}

func (r *fakeLotRepo) SumQuantityByProduct(productID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, l := range r.s.lots {
		if l.ProductID == productID {
			total = total.Add(l.Quantity)
		}
	}
	return total, nil
}

func (r *fakeLotRepo) SearchByCode(lotCode string, location *string) ([]*repository.LotWithProduct, error) {
	return nil, nil
}

func (r *fakeLotRepo) Update(l *entity.Lot) error {
	cl := *l
	r.s.lots[l.ID] = &cl
	return nil
}

func (r *fakeLotRepo) UpdateQuantity(id string, qty decimal.Decimal) error {
	l, ok := r.s.lots[id]
	if !ok {
		return nil
	}
	l.Quantity = qty
	return nil
}

func (r *fakeLotRepo) Delete(id string) error {
	delete(r.s.lots, id)
	return nil
}

type fakeMovementRepo struct{ s *fakeStore }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	cm := *m
	r.s.movements = append(r.s.movements, &cm)
	return nil
}

func (r *fakeMovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	return r.s.movements, nil
}

// fakeTxRunner esegue il callback direttamente sui repos in memoria: niente
// commit né rollback, un errore del callback si propaga e basta.
type fakeTxRunner struct{ s *fakeStore }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	lotRepo repository.LotRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return fn(&fakeProductRepo{s: r.s}, &fakeLotRepo{s: r.s}, &fakeMovementRepo{s: r.s})
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func dateptr(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return &d
}

func seedProduct(s *fakeStore, id string, qty string) {
	s.products[id] = &entity.Product{
		ID:       id,
		Name:     "prodotto " + id,
		Unit:     "pz",
		Quantity: decimal.RequireFromString(qty),
		IsActive: true,
	}
}

func seedLot(s *fakeStore, id, productID, qty string, expiry *time.Time, createdAt time.Time) {
	s.lots[id] = &entity.Lot{
		ID:         id,
		ProductID:  productID,
		LotCode:    "L-" + id,
		ExpiryDate: expiry,
		Quantity:   decimal.RequireFromString(qty),
		Location:   entity.LocationGenerale,
		Status:     entity.LotStatusOK,
		CreatedAt:  createdAt,
	}
}

func newEngine(s *fakeStore) *stock.Engine {
	return stock.NewEngine(&fakeTxRunner{s: s})
}

// ──────────────────────────────────────────────────────────────────────────────
// Recalculate
// ──────────────────────────────────────────────────────────────────────────────

func TestRecalculate_SommaDeiLotti(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "999") // giacenza volutamente sballata
	base := time.Now().UTC()
	seedLot(s, "l1", "p1", "4", nil, base)
	seedLot(s, "l2", "p1", "2.5", nil, base.Add(time.Minute))

	total, err := newEngine(s).Recalculate(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("6.5")), "totale = %s", total)
	assert.True(t, s.products["p1"].Quantity.Equal(decimal.RequireFromString("6.5")))
}

func TestRecalculate_SenzaLottiAzzera(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "10")

	total, err := newEngine(s).Recalculate(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, total.IsZero())
	assert.True(t, s.products["p1"].Quantity.IsZero())
}

func TestRecalculate_Idempotente(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "0")
	seedLot(s, "l1", "p1", "7", nil, time.Now().UTC())
	eng := newEngine(s)

	first, err := eng.Recalculate(context.Background(), "p1")
	require.NoError(t, err)
	second, err := eng.Recalculate(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}

func TestRecalculate_ProdottoInesistente(t *testing.T) {
	s := newFakeStore()
	_, err := newEngine(s).Recalculate(context.Background(), "manca")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ConsumeFEFO
// ──────────────────────────────────────────────────────────────────────────────

// Il lotto con scadenza più vicina si consuma per primo, quelli senza
// scadenza per ultimi.
func TestConsumeFEFO_OrdinePerScadenza(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "0")
	base := time.Now().UTC()
	seedLot(s, "tardi", "p1", "10", dateptr(t, "2026-12-31"), base)
	seedLot(s, "presto", "p1", "3", dateptr(t, "2026-09-01"), base)
	seedLot(s, "senza", "p1", "10", nil, base)

	used, remaining, err := newEngine(s).ConsumeFEFO(context.Background(), "p1", decimal.RequireFromString("5"))
	require.NoError(t, err)
	assert.True(t, remaining.IsZero())
	require.Len(t, used, 2)
	assert.Equal(t, "presto", used[0].LotID)
	assert.True(t, used[0].Quantity.Equal(decimal.RequireFromString("3")))
	assert.Equal(t, "tardi", used[1].LotID)
	assert.True(t, used[1].Quantity.Equal(decimal.RequireFromString("2")))
	assert.True(t, s.lots["senza"].Quantity.Equal(decimal.RequireFromString("10")), "i lotti senza scadenza si toccano per ultimi")
}

// A parità di scadenza vince l'ordine di inserimento.
func TestConsumeFEFO_ParitaRisoltaPerInserimento(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "0")
	expiry := dateptr(t, "2026-10-01")
	base := time.Now().UTC()
	seedLot(s, "secondo", "p1", "5", expiry, base.Add(time.Hour))
	seedLot(s, "primo", "p1", "5", expiry, base)

	used, _, err := newEngine(s).ConsumeFEFO(context.Background(), "p1", decimal.RequireFromString("6"))
	require.NoError(t, err)
	require.Len(t, used, 2)
	assert.Equal(t, "primo", used[0].LotID)
	assert.Equal(t, "secondo", used[1].LotID)
}

// Giacenza a lotti insufficiente: i lotti si svuotano e il residuo torna al
// chiamante, che decide se è un errore.
func TestConsumeFEFO_ResiduoSuEsaurimento(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "0")
	seedLot(s, "l1", "p1", "2", nil, time.Now().UTC())

	used, remaining, err := newEngine(s).ConsumeFEFO(context.Background(), "p1", decimal.RequireFromString("5"))
	require.NoError(t, err)
	require.Len(t, used, 1)
	assert.True(t, remaining.Equal(decimal.RequireFromString("3")))
	assert.True(t, s.lots["l1"].Quantity.IsZero())
}

// I lotti già vuoti vengono scavalcati senza generare prelievi a zero.
func TestConsumeFEFO_SaltaLottiVuoti(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "0")
	base := time.Now().UTC()
	seedLot(s, "vuoto", "p1", "0", dateptr(t, "2026-09-01"), base)
	seedLot(s, "pieno", "p1", "4", dateptr(t, "2026-10-01"), base)

	used, remaining, err := newEngine(s).ConsumeFEFO(context.Background(), "p1", decimal.RequireFromString("4"))
	require.NoError(t, err)
	require.Len(t, used, 1)
	assert.Equal(t, "pieno", used[0].LotID)
	assert.True(t, remaining.IsZero())
}

// Dopo il consumo la giacenza aggregata coincide con la somma dei lotti.
func TestConsumeFEFO_RiallineaGiacenza(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "999")
	base := time.Now().UTC()
	seedLot(s, "l1", "p1", "6", nil, base)
	seedLot(s, "l2", "p1", "4", nil, base.Add(time.Minute))

	_, _, err := newEngine(s).ConsumeFEFO(context.Background(), "p1", decimal.RequireFromString("7"))
	require.NoError(t, err)
	assert.True(t, s.products["p1"].Quantity.Equal(decimal.RequireFromString("3")))
}

func TestConsumeFEFO_QuantitaNonPositiva(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "0")

	_, _, err := newEngine(s).ConsumeFEFO(context.Background(), "p1", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = newEngine(s).ConsumeFEFO(context.Background(), "p1", decimal.RequireFromString("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// EnsureCanDecrease
// ──────────────────────────────────────────────────────────────────────────────

func TestEnsureCanDecrease(t *testing.T) {
	p := &entity.Product{Quantity: decimal.RequireFromString("5")}

	assert.NoError(t, stock.EnsureCanDecrease(p, decimal.RequireFromString("5")))
	assert.NoError(t, stock.EnsureCanDecrease(p, decimal.RequireFromString("0.001")))
	assert.ErrorIs(t, stock.EnsureCanDecrease(p, decimal.RequireFromString("5.001")), domain.ErrInsufficientStock)
	assert.ErrorIs(t, stock.EnsureCanDecrease(p, decimal.Zero), domain.ErrInvalidInput)
	assert.ErrorIs(t, stock.EnsureCanDecrease(p, decimal.RequireFromString("-2")), domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyBulkInventory
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyBulkInventory_SovrascriveLeGiacenze(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "3")
	seedProduct(s, "p2", "8")

	updated, err := newEngine(s).ApplyBulkInventory(context.Background(), []stock.BulkItem{
		{ProductID: "p1", Quantity: decimal.RequireFromString("12")},
		{ProductID: "p2", Quantity: decimal.Zero},
	})
	require.NoError(t, err)
	require.Len(t, updated, 2)
	assert.True(t, s.products["p1"].Quantity.Equal(decimal.RequireFromString("12")))
	assert.True(t, s.products["p2"].Quantity.IsZero())
}

// I lotti non vengono toccati: il conteggio fisico prevale finché un lotto
// non viene di nuovo mutato.
func TestApplyBulkInventory_NonToccaILotti(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "10")
	seedLot(s, "l1", "p1", "10", nil, time.Now().UTC())

	_, err := newEngine(s).ApplyBulkInventory(context.Background(), []stock.BulkItem{
		{ProductID: "p1", Quantity: decimal.RequireFromString("6")},
	})
	require.NoError(t, err)
	assert.True(t, s.lots["l1"].Quantity.Equal(decimal.RequireFromString("10")))
	assert.True(t, s.products["p1"].Quantity.Equal(decimal.RequireFromString("6")))
}

func TestApplyBulkInventory_ProdottoMancanteFallisceTutto(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "3")

	_, err := newEngine(s).ApplyBulkInventory(context.Background(), []stock.BulkItem{
		{ProductID: "p1", Quantity: decimal.RequireFromString("7")},
		{ProductID: "manca", Quantity: decimal.RequireFromString("1")},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyBulkInventory_QuantitaNegativa(t *testing.T) {
	s := newFakeStore()
	seedProduct(s, "p1", "3")

	_, err := newEngine(s).ApplyBulkInventory(context.Background(), []stock.BulkItem{
		{ProductID: "p1", Quantity: decimal.RequireFromString("-1")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
