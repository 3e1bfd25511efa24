package dto

// ErrorResponse corpo di errore HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusResponse esito generico per le operazioni senza corpo (es. delete).
type StatusResponse struct {
	Status string `json:"status"`
}
