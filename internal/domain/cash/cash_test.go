package cash_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gbirreria/gb-api/internal/domain/cash"
)

func TestTotalCents(t *testing.T) {
	// 10×1€ + 5×2€ + 4×0,50€ = 22,00€
	counts := map[string]int{"1": 10, "2": 5, "0.50": 4}
	assert.Equal(t, int64(2200), cash.TotalCents(counts))
}

func TestTotalCents_ConteggioVuoto(t *testing.T) {
	assert.Equal(t, int64(0), cash.TotalCents(map[string]int{}))
	assert.Equal(t, int64(0), cash.TotalCents(nil))
}

func TestTotalCents_TagliSconosciutiIgnorati(t *testing.T) {
	counts := map[string]int{"1": 2, "100": 99, "0.25": 7}
	assert.Equal(t, int64(200), cash.TotalCents(counts))
}

func TestTotalCents_ConteggiNegativiIgnorati(t *testing.T) {
	counts := map[string]int{"5": 2, "10": -3}
	assert.Equal(t, int64(1000), cash.TotalCents(counts))
}

func TestTotalCents_TuttiITagli(t *testing.T) {
	counts := map[string]int{}
	for _, d := range cash.Denominations {
		counts[d.Key] = 1
	}
	// 0,01+0,02+0,05+0,10+0,20+0,50+1+2+5+10+20+50 = 88,88€
	assert.Equal(t, int64(8888), cash.TotalCents(counts))
}

func TestNormalize(t *testing.T) {
	out := cash.Normalize(map[string]int{"1": 3, "100": 4, "0.50": -2})

	assert.Len(t, out, len(cash.Denominations))
	assert.Equal(t, 3, out["1"])
	assert.Equal(t, 0, out["0.50"], "i negativi si azzerano")
	assert.NotContains(t, out, "100", "le chiavi sconosciute spariscono")
	assert.Equal(t, 0, out["50"], "i tagli assenti compaiono a zero")
}
