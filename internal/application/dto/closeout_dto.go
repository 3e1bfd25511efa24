package dto

import "time"

// CreateCloseoutRequest body per creare una chiusura di cassa.
// Gli importi POS e Satispay arrivano in euro e vengono convertiti in
// centesimi interi alla creazione.
type CreateCloseoutRequest struct {
	Date            *string        `json:"date"` // "2006-01-02", default oggi
	Cash            map[string]int `json:"cash"` // {"0.01":3, "2":5, ...}
	BottlesFinished []string       `json:"bottles_finished"`
	KegsFinished    []string       `json:"kegs_finished"`
	POSEur          float64        `json:"pos_eur"`
	SatispayEur     float64        `json:"satispay_eur"`
	Notes           *string        `json:"notes"`
}

// CloseoutResponse output di una chiusura: i totali sono quelli persistiti
// alla creazione, mai ricalcolati in lettura.
type CloseoutResponse struct {
	ID              string         `json:"id"`
	Date            string         `json:"date"` // "2006-01-02"
	Cash            map[string]int `json:"cash"`
	CashTotalEur    float64        `json:"cash_total_eur"`
	POSEur          float64        `json:"pos_eur"`
	SatispayEur     float64        `json:"satispay_eur"`
	BottlesFinished []string       `json:"bottles_finished"`
	KegsFinished    []string       `json:"kegs_finished"`
	Notes           *string        `json:"notes"`
	CreatedBy       *string        `json:"created_by"`
	CreatedAt       time.Time      `json:"created_at"`
}
