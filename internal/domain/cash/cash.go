// Package cash calcola i totali del conteggio contanti per taglio.
// Tutti gli importi sono in centesimi interi: niente aritmetica in virgola
// mobile sul denaro, la conversione in euro avviene solo in presentazione.
package cash

// Denomination è un taglio riconosciuto di banconote o monete.
type Denomination struct {
	Key   string // chiave usata nel conteggio: "0.01".."0.50", "1".."50"
	Cents int64
}

// Denominations è l'insieme fisso dei tagli riconosciuti, dal più piccolo.
var Denominations = []Denomination{
	{Key: "0.01", Cents: 1},
	{Key: "0.02", Cents: 2},
	{Key: "0.05", Cents: 5},
	{Key: "0.10", Cents: 10},
	{Key: "0.20", Cents: 20},
	{Key: "0.50", Cents: 50},
	{Key: "1", Cents: 100},
	{Key: "2", Cents: 200},
	{Key: "5", Cents: 500},
	{Key: "10", Cents: 1000},
	{Key: "20", Cents: 2000},
	{Key: "50", Cents: 5000},
}

// Normalize restituisce un conteggio con tutti i tagli riconosciuti presenti
// (assenti = 0). Chiavi sconosciute e conteggi negativi vengono ignorati.
func Normalize(counts map[string]int) map[string]int {
	out := make(map[string]int, len(Denominations))
	for _, d := range Denominations {
		n := counts[d.Key]
		if n < 0 {
			n = 0
		}
		out[d.Key] = n
	}
	return out
}

// TotalCents somma valore×pezzi sull'insieme dei tagli riconosciuti.
func TotalCents(counts map[string]int) int64 {
	var total int64
	for _, d := range Denominations {
		n := counts[d.Key]
		if n <= 0 {
			continue
		}
		total += d.Cents * int64(n)
	}
	return total
}
