// Package pdf genera la scheda stampabile della chiusura di cassa giornaliera.
//
// Layout della pagina A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Birreria + "Chiusura di cassa" + Data              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELLA: Taglio | Pezzi | Subtotale                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALI: Contanti / POS / Satispay / TOTALE GIORNATA        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  VUOTI: bottiglie e fusti terminati + Note                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/gbirreria/gb-api/internal/application/export"
	"github.com/gbirreria/gb-api/internal/domain/cash"
	"github.com/gbirreria/gb-api/internal/domain/entity"
)

var _ export.CloseoutPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Palette colori ────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 120, Green: 63, Blue: 4}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa export.CloseoutPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator costruisce il generatore.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateCloseoutPDF genera il PDF della chiusura e ne restituisce i byte.
func (g *MarotoPDFGenerator) GenerateCloseoutPDF(_ context.Context, c *entity.Closeout) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Chiusura di cassa", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// Conteggio contanti per taglio
	m.AddRows(cashHeaderRow())
	for _, r := range cashRows(c) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(c))

	// Vuoti e note
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range emptiesRows(c) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: genera documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sezioni ───────────────────────────────────────────────────────────────────

// headerRow: intestazione con data della chiusura e operatore.
func headerRow(c *entity.Closeout) core.Row {
	operatore := "—"
	if c.CreatedBy != nil && *c.CreatedBy != "" {
		operatore = *c.CreatedBy
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("Birreria — Chiusura di cassa", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Operatore: "+operatore, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("GIORNATA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(c.Date.Format("02/01/2006"), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
		),
	)
}

// cashHeaderRow: intestazione della tabella dei tagli.
func cashHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Taglio", 4, align.Left),
		h("Pezzi", 4, align.Center),
		h("Subtotale", 4, align.Right),
	)
}

// cashRows: una riga per taglio, dal più piccolo al più grande. I tagli a
// zero pezzi si saltano per tenere la scheda corta.
func cashRows(c *entity.Closeout) []core.Row {
	counts := cash.Normalize(c.CashCounts)
	result := make([]core.Row, 0, len(cash.Denominations))
	for _, d := range cash.Denominations {
		n := counts[d.Key]
		if n == 0 {
			continue
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(
				formatEuro(d.Cents),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				fmt.Sprintf("%d", n),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				formatEuro(d.Cents*int64(n)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: blocco totali allineato a destra. Il totale contanti è quello
// salvato alla creazione della chiusura.
func totalsRow(c *entity.Closeout) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	totale := c.CashTotalCents + c.POSAmountCents + c.SatispayAmountCents

	return row.New(30).Add(
		col.New(3),
		col.New(4).Add(
			label("Contanti:"),
			label("POS:"),
			label("Satispay:"),
			grandLabel("TOTALE GIORNATA:"),
		),
		col.New(4).Add(
			value(formatEuro(c.CashTotalCents)),
			value(formatEuro(c.POSAmountCents)),
			value(formatEuro(c.SatispayAmountCents)),
			grandValue(formatEuro(totale)),
		),
		col.New(1),
	)
}

// emptiesRows: bottiglie e fusti terminati nella giornata, più le note.
func emptiesRows(c *entity.Closeout) []core.Row {
	section := func(titolo, contenuto string) []core.Row {
		return []core.Row{
			row.New(6).Add(col.New(12).Add(
				text.New(titolo, props.Text{
					Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
				}),
			)),
			row.New(6).Add(col.New(12).Add(
				text.New(contenuto, props.Text{Size: 8, Top: 1, Left: 2, Color: colorGray}),
			)),
		}
	}

	rows := section("BOTTIGLIE TERMINATE", listOrDash(c.BottlesFinished))
	rows = append(rows, section("FUSTI TERMINATI", listOrDash(c.KegsFinished))...)
	if c.Notes != nil && *c.Notes != "" {
		rows = append(rows, section("NOTE", *c.Notes)...)
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func listOrDash(items []string) string {
	if len(items) == 0 {
		return "—"
	}
	return strings.Join(items, ", ")
}

// formatEuro formatta centesimi come importo in euro con la virgola.
// Es: 2200 → "22,00 €"
func formatEuro(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d,%02d €", sign, cents/100, cents%100)
}
