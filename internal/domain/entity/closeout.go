package entity

import "time"

// Closeout è la chiusura di cassa di fine giornata: conteggio contanti per
// taglio, bottiglie e fusti finiti, incassi POS e Satispay.
// I totali sono calcolati alla creazione e mai ricalcolati in lettura:
// il record è di sola lettura una volta scritto.
type Closeout struct {
	ID                  string
	Date                time.Time         // giorno di esercizio (solo data)
	CashCounts          map[string]int    // taglio ("0.01".."50") -> numero pezzi
	BottlesFinished     []string          // identificativi bottiglie terminate
	KegsFinished        []string          // identificativi fusti terminati
	CashTotalCents      int64             // Σ(valore taglio × pezzi), fissato alla creazione
	POSAmountCents      int64
	SatispayAmountCents int64
	Notes               *string
	CreatedBy           *string // username di chi ha chiuso
	CreatedAt           time.Time
}
