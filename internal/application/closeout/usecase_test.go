package closeout_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbirreria/gb-api/internal/application/closeout"
	"github.com/gbirreria/gb-api/internal/application/dto"
	"github.com/gbirreria/gb-api/internal/domain"
	"github.com/gbirreria/gb-api/internal/domain/entity"
)

// fakeCloseoutRepo archivio in memoria delle chiusure.
type fakeCloseoutRepo struct {
	rows map[string]*entity.Closeout
}

func newFakeCloseoutRepo() *fakeCloseoutRepo {
	return &fakeCloseoutRepo{rows: map[string]*entity.Closeout{}}
}

func (r *fakeCloseoutRepo) Create(c *entity.Closeout) error {
	cc := *c
	r.rows[c.ID] = &cc
	return nil
}

func (r *fakeCloseoutRepo) GetByID(id string) (*entity.Closeout, error) {
	c, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (r *fakeCloseoutRepo) List(start, end *time.Time) ([]*entity.Closeout, error) {
	var out []*entity.Closeout
	for _, c := range r.rows {
		if start != nil && c.Date.Before(*start) {
			continue
		}
		if end != nil && c.Date.After(*end) {
			continue
		}
		cc := *c
		out = append(out, &cc)
	}
	return out, nil
}

func strptr(s string) *string { return &s }

func TestCreate_TotaleContantiFissatoAllaCreazione(t *testing.T) {
	repo := newFakeCloseoutRepo()
	uc := closeout.NewUseCase(repo)

	out, err := uc.Create(dto.CreateCloseoutRequest{
		Date:        strptr("2026-08-28"),
		Cash:        map[string]int{"1": 10, "2": 5, "0.50": 4},
		POSEur:      150.50,
		SatispayEur: 12.30,
	}, "mario")
	require.NoError(t, err)

	assert.InDelta(t, 22.00, out.CashTotalEur, 0.0001)
	assert.InDelta(t, 150.50, out.POSEur, 0.0001)
	assert.InDelta(t, 12.30, out.SatispayEur, 0.0001)
	assert.Equal(t, "2026-08-28", out.Date)
	require.NotNil(t, out.CreatedBy)
	assert.Equal(t, "mario", *out.CreatedBy)

	// Persistito in centesimi interi.
	saved := repo.rows[out.ID]
	require.NotNil(t, saved)
	assert.Equal(t, int64(2200), saved.CashTotalCents)
	assert.Equal(t, int64(15050), saved.POSAmountCents)
	assert.Equal(t, int64(1230), saved.SatispayAmountCents)
}

// La lettura restituisce il totale memorizzato: una manomissione del conteggio
// salvato non cambia il totale già fissato.
func TestGetByID_NonRicalcolaIlTotale(t *testing.T) {
	repo := newFakeCloseoutRepo()
	uc := closeout.NewUseCase(repo)

	out, err := uc.Create(dto.CreateCloseoutRequest{
		Cash: map[string]int{"10": 3},
	}, "")
	require.NoError(t, err)

	repo.rows[out.ID].CashCounts = map[string]int{"10": 999}

	got, err := uc.GetByID(out.ID)
	require.NoError(t, err)
	assert.InDelta(t, 30.00, got.CashTotalEur, 0.0001)
}

func TestCreate_ConteggioNormalizzato(t *testing.T) {
	repo := newFakeCloseoutRepo()
	uc := closeout.NewUseCase(repo)

	out, err := uc.Create(dto.CreateCloseoutRequest{
		Cash: map[string]int{"1": 2, "100": 7, "0.50": -3},
	}, "")
	require.NoError(t, err)

	assert.InDelta(t, 2.00, out.CashTotalEur, 0.0001)
	assert.NotContains(t, out.Cash, "100")
	assert.Equal(t, 0, out.Cash["0.50"])
}

func TestCreate_DataNonValida(t *testing.T) {
	uc := closeout.NewUseCase(newFakeCloseoutRepo())

	_, err := uc.Create(dto.CreateCloseoutRequest{Date: strptr("28/08/2026")}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_ImportiNegativi(t *testing.T) {
	uc := closeout.NewUseCase(newFakeCloseoutRepo())

	_, err := uc.Create(dto.CreateCloseoutRequest{POSEur: -1}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateCloseoutRequest{SatispayEur: -0.01}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetByID_Assente(t *testing.T) {
	uc := closeout.NewUseCase(newFakeCloseoutRepo())

	_, err := uc.GetByID("manca")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_IntervalloDate(t *testing.T) {
	repo := newFakeCloseoutRepo()
	uc := closeout.NewUseCase(repo)

	for _, d := range []string{"2026-08-01", "2026-08-15", "2026-08-28"} {
		_, err := uc.Create(dto.CreateCloseoutRequest{Date: strptr(d)}, "")
		require.NoError(t, err)
	}

	out, err := uc.List(strptr("2026-08-10"), strptr("2026-08-20"))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "2026-08-15", out[0].Date)
}
