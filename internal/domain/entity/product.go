package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product rappresenta un prodotto del catalogo (birre, fusti, bottiglie, consumabili).
// Quantity è la giacenza aggregata: quando esistono lotti deve coincidere con la
// somma delle loro quantità (riallineata dal motore di coerenza dopo ogni
// mutazione di lotto). I prezzi sono sempre in centesimi interi.
type Product struct {
	ID              string
	Name            string  // univoco
	SKU             *string // univoco se presente
	PriceCents      int64
	Unit            string // es. "pz", "lt", "kg"
	Quantity        decimal.Decimal
	MinQuantity     decimal.Decimal // soglia di riordino
	VATRate         int             // IVA percentuale (default 22)
	DiscountPercent decimal.Decimal // 0..100
	Supplier        *string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
