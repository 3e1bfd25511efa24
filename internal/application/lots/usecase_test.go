package lots_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbirreria/gb-api/internal/application/dto"
	"github.com/gbirreria/gb-api/internal/application/lots"
	"github.com/gbirreria/gb-api/internal/domain"
	"github.com/gbirreria/gb-api/internal/domain/entity"
	"github.com/gbirreria/gb-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake in-memory
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	products map[string]*entity.Product
	lots     map[string]*entity.Lot
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *fakeProductRepo) List() ([]*entity.Product, error)   { return nil, nil }
func (r *fakeProductRepo) Update(p *entity.Product) error     { r.s.products[p.ID] = p; return nil }
func (r *fakeProductRepo) Delete(id string) error             { delete(r.s.products, id); return nil }
func (r *fakeProductRepo) UpdateQuantity(id string, qty decimal.Decimal) error {
	if p, ok := r.s.products[id]; ok {
		p.Quantity = qty
	}
	return nil
}

type fakeLotRepo struct{ s *fakeStore }

func (r *fakeLotRepo) Create(l *entity.Lot) error { r.s.lots[l.ID] = l; return nil }
func (r *fakeLotRepo) GetByID(id string) (*entity.Lot, error) {
	return r.s.lots[id], nil
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
		out = append(out, l)
	}
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
	var out []*repository.LotWithProduct
	for _, l := range r.s.lots {
		out = append(out, &repository.LotWithProduct{Lot: *l, ProductName: "birra"})
	}
	return out, nil
}
func (r *fakeLotRepo) Update(l *entity.Lot) error { r.s.lots[l.ID] = l; return nil }
func (r *fakeLotRepo) UpdateQuantity(id string, qty decimal.Decimal) error {
	if l, ok := r.s.lots[id]; ok {
		l.Quantity = qty
	}
	return nil
}
func (r *fakeLotRepo) Delete(id string) error { delete(r.s.lots, id); return nil }

type fakeMovementRepo struct{}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error { return nil }
func (r *fakeMovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	return nil, nil
}

type fakeTxRunner struct{ s *fakeStore }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	lotRepo repository.LotRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return fn(&fakeProductRepo{s: r.s}, &fakeLotRepo{s: r.s}, &fakeMovementRepo{})
}

func newFixture() (*fakeStore, *lots.UseCase) {
	s := &fakeStore{products: map[string]*entity.Product{}, lots: map[string]*entity.Lot{}}
	uc := lots.NewUseCase(&fakeTxRunner{s: s}, &fakeLotRepo{s: s})
	return s, uc
}

func seedProduct(s *fakeStore, id string, qty string) {
	s.products[id] = &entity.Product{ID: id, Name: "prodotto " + id, Quantity: decimal.RequireFromString(qty)}
}

func strptr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Dopo la creazione di un lotto la giacenza aggregata è la somma dei lotti.
func TestCreate_RicalcolaLaGiacenza(t *testing.T) {
	s, uc := newFixture()
	seedProduct(s, "p1", "0")

	out, err := uc.Create(context.Background(), "p1", dto.CreateLotRequest{
		LotCode:  "IPA-2026-01",
		Quantity: decimal.RequireFromString("24"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.LocationGenerale, out.Location)
	assert.Equal(t, entity.LotStatusOK, out.Status)
	assert.True(t, s.products["p1"].Quantity.Equal(decimal.RequireFromString("24")))

	_, err = uc.Create(context.Background(), "p1", dto.CreateLotRequest{
		LotCode:  "IPA-2026-02",
		Quantity: decimal.RequireFromString("12"),
	})
	require.NoError(t, err)
	assert.True(t, s.products["p1"].Quantity.Equal(decimal.RequireFromString("36")))
}

func TestCreate_ProdottoInesistente(t *testing.T) {
	_, uc := newFixture()

	_, err := uc.Create(context.Background(), "manca", dto.CreateLotRequest{
		LotCode:  "X",
		Quantity: decimal.RequireFromString("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_InputNonValidi(t *testing.T) {
	s, uc := newFixture()
	seedProduct(s, "p1", "0")
	ctx := context.Background()

	_, err := uc.Create(ctx, "p1", dto.CreateLotRequest{LotCode: "  ", Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "codice vuoto")

	_, err = uc.Create(ctx, "p1", dto.CreateLotRequest{LotCode: "X", Quantity: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantità negativa")

	_, err = uc.Create(ctx, "p1", dto.CreateLotRequest{LotCode: "X", Quantity: decimal.NewFromInt(1), Location: "soffitta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "magazzino sconosciuto")

	_, err = uc.Create(ctx, "p1", dto.CreateLotRequest{LotCode: "X", Quantity: decimal.NewFromInt(1), ExpiryDate: strptr("31/12/2026")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "data malformata")
}

// La modifica della quantità di un lotto riallinea la giacenza del prodotto.
func TestUpdate_RicalcolaLaGiacenza(t *testing.T) {
	s, uc := newFixture()
	seedProduct(s, "p1", "0")
	out, err := uc.Create(context.Background(), "p1", dto.CreateLotRequest{
		LotCode:  "L1",
		Quantity: decimal.RequireFromString("10"),
	})
	require.NoError(t, err)

	qty := decimal.RequireFromString("4")
	_, err = uc.Update(context.Background(), out.ID, dto.UpdateLotRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.True(t, s.products["p1"].Quantity.Equal(qty))
}

// La riassegnazione di un lotto riallinea entrambe le giacenze nella stessa
// transazione.
func TestUpdate_RiassegnazioneRicalcolaEntrambi(t *testing.T) {
	s, uc := newFixture()
	seedProduct(s, "p1", "0")
	seedProduct(s, "p2", "0")
	out, err := uc.Create(context.Background(), "p1", dto.CreateLotRequest{
		LotCode:  "L1",
		Quantity: decimal.RequireFromString("10"),
	})
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), out.ID, dto.UpdateLotRequest{ProductID: strptr("p2")})
	require.NoError(t, err)
	assert.True(t, s.products["p1"].Quantity.IsZero())
	assert.True(t, s.products["p2"].Quantity.Equal(decimal.RequireFromString("10")))
}

func TestUpdate_RiassegnazioneADestinazioneInesistente(t *testing.T) {
	s, uc := newFixture()
	seedProduct(s, "p1", "0")
	out, err := uc.Create(context.Background(), "p1", dto.CreateLotRequest{
		LotCode:  "L1",
		Quantity: decimal.RequireFromString("10"),
	})
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), out.ID, dto.UpdateLotRequest{ProductID: strptr("manca")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// L'eliminazione di un lotto riallinea la giacenza prima di riportare l'esito.
func TestDelete_RicalcolaLaGiacenza(t *testing.T) {
	s, uc := newFixture()
	seedProduct(s, "p1", "0")
	first, err := uc.Create(context.Background(), "p1", dto.CreateLotRequest{
		LotCode:  "L1",
		Quantity: decimal.RequireFromString("10"),
	})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), "p1", dto.CreateLotRequest{
		LotCode:  "L2",
		Quantity: decimal.RequireFromString("5"),
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), first.ID))
	assert.True(t, s.products["p1"].Quantity.Equal(decimal.RequireFromString("5")))
}

func TestDelete_LottoInesistente(t *testing.T) {
	_, uc := newFixture()
	assert.ErrorIs(t, uc.Delete(context.Background(), "manca"), domain.ErrNotFound)
}

func TestSearchByCode_CodiceObbligatorio(t *testing.T) {
	_, uc := newFixture()
	_, err := uc.SearchByCode("  ", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
