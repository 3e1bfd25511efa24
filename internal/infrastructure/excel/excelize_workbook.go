// Package excel genera i fogli di calcolo di esportazione con excelize.
package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/gbirreria/gb-api/internal/application/export"
	"github.com/gbirreria/gb-api/internal/domain/entity"
)

var _ export.WorkbookGenerator = (*ExcelizeWorkbook)(nil)

// ExcelizeWorkbook implementa export.WorkbookGenerator usando excelize.
type ExcelizeWorkbook struct{}

// NewExcelizeWorkbook costruisce il generatore.
func NewExcelizeWorkbook() *ExcelizeWorkbook { return &ExcelizeWorkbook{} }

// ProductsWorkbook genera il foglio "Prodotti" con una riga per prodotto.
// I prezzi escono già in euro.
func (g *ExcelizeWorkbook) ProductsWorkbook(products []*entity.Product) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Prodotti"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := []any{"ID", "Nome", "SKU", "Prezzo EUR", "Unità", "Quantità", "Min. scorta", "Fornitore", "IVA %", "Attivo"}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return nil, err
	}
	if err := boldHeader(f, sheet, len(header)); err != nil {
		return nil, err
	}

	for i, p := range products {
		sku := ""
		if p.SKU != nil {
			sku = *p.SKU
		}
		supplier := ""
		if p.Supplier != nil {
			supplier = *p.Supplier
		}
		active := "no"
		if p.IsActive {
			active = "sì"
		}
		qty, _ := p.Quantity.Float64()
		minQty, _ := p.MinQuantity.Float64()
		row := []any{
			p.ID,
			p.Name,
			sku,
			float64(p.PriceCents) / 100,
			p.Unit,
			qty,
			minQty,
			supplier,
			p.VATRate,
			active,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	return workbookBytes(f)
}

// CloseoutsWorkbook genera il foglio "Chiusure" con i totali salvati alla
// creazione di ogni chiusura (mai ricalcolati).
func (g *ExcelizeWorkbook) CloseoutsWorkbook(closeouts []*entity.Closeout) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Chiusure"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := []any{"Data", "Contanti EUR", "POS EUR", "Satispay EUR", "Totale EUR", "Bottiglie terminate", "Fusti terminati", "Note", "Operatore"}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return nil, err
	}
	if err := boldHeader(f, sheet, len(header)); err != nil {
		return nil, err
	}

	for i, c := range closeouts {
		notes := ""
		if c.Notes != nil {
			notes = *c.Notes
		}
		createdBy := ""
		if c.CreatedBy != nil {
			createdBy = *c.CreatedBy
		}
		totale := c.CashTotalCents + c.POSAmountCents + c.SatispayAmountCents
		row := []any{
			c.Date.Format("2006-01-02"),
			float64(c.CashTotalCents) / 100,
			float64(c.POSAmountCents) / 100,
			float64(c.SatispayAmountCents) / 100,
			float64(totale) / 100,
			len(c.BottlesFinished),
			len(c.KegsFinished),
			notes,
			createdBy,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	return workbookBytes(f)
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", rowNum, err)
	}
	return nil
}

func boldHeader(f *excelize.File, sheet string, cols int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}
	return nil
}

func workbookBytes(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
