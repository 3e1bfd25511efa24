// Package export produce gli snapshot di esportazione del catalogo e delle
// chiusure: CSV (separatore ";"), fogli di calcolo e scheda PDF. Sola lettura,
// nessuna regola di business.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/gbirreria/gb-api/internal/domain"
	"github.com/gbirreria/gb-api/internal/domain/repository"
)

// UseCase casi d'uso di esportazione.
type UseCase struct {
	productRepo  repository.ProductRepository
	closeoutRepo repository.CloseoutRepository
	pdf          CloseoutPDFGenerator
	workbook     WorkbookGenerator
}

// NewUseCase costruisce il caso d'uso.
func NewUseCase(
	productRepo repository.ProductRepository,
	closeoutRepo repository.CloseoutRepository,
	pdf CloseoutPDFGenerator,
	workbook WorkbookGenerator,
) *UseCase {
	return &UseCase{
		productRepo:  productRepo,
		closeoutRepo: closeoutRepo,
		pdf:          pdf,
		workbook:     workbook,
	}
}

// ProductsCSV esporta il catalogo in CSV con separatore ";" (formato storico
// degli export gestionali, apribile direttamente dai fogli di calcolo locali).
func (uc *UseCase) ProductsCSV() ([]byte, error) {
	products, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	header := []string{"id", "name", "sku", "quantity", "unit", "price_cents", "supplier", "min_quantity", "is_active", "vat_rate", "discount_percent"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	for _, p := range products {
		sku := ""
		if p.SKU != nil {
			sku = *p.SKU
		}
		supplier := ""
		if p.Supplier != nil {
			supplier = *p.Supplier
		}
		active := "0"
		if p.IsActive {
			active = "1"
		}
		record := []string{
			p.ID,
			p.Name,
			sku,
			p.Quantity.String(),
			p.Unit,
			strconv.FormatInt(p.PriceCents, 10),
			supplier,
			p.MinQuantity.String(),
			active,
			strconv.Itoa(p.VATRate),
			p.DiscountPercent.String(),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv flush: %w", err)
	}
	return buf.Bytes(), nil
}

// ProductsXLSX esporta il catalogo in un foglio di calcolo.
func (uc *UseCase) ProductsXLSX() ([]byte, error) {
	products, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	return uc.workbook.ProductsWorkbook(products)
}

// CloseoutsXLSX esporta le chiusure dell'intervallo richiesto in un foglio di calcolo.
func (uc *UseCase) CloseoutsXLSX(start, end *time.Time) ([]byte, error) {
	rows, err := uc.closeoutRepo.List(start, end)
	if err != nil {
		return nil, err
	}
	return uc.workbook.CloseoutsWorkbook(rows)
}

// CloseoutPDF genera la scheda PDF di una chiusura.
func (uc *UseCase) CloseoutPDF(ctx context.Context, closeoutID string) ([]byte, error) {
	c, err := uc.closeoutRepo.GetByID(closeoutID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return uc.pdf.GenerateCloseoutPDF(ctx, c)
}
