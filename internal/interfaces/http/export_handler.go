package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gbirreria/gb-api/internal/application/dto"
	"github.com/gbirreria/gb-api/internal/application/export"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serve gli snapshot di esportazione (CSV, fogli di calcolo, PDF).
type ExportHandler struct {
	uc *export.UseCase
}

// NewExportHandler costruisce l'handler.
func NewExportHandler(uc *export.UseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// ProductsCSV scarica il catalogo in CSV (separatore ";").
func (h *ExportHandler) ProductsCSV(c *fiber.Ctx) error {
	data, err := h.uc.ProductsCSV()
	if err != nil {
		return domainError(c, err)
	}
	return sendFile(c, data, "text/csv; charset=utf-8", "prodotti.csv")
}

// ProductsXLSX scarica il catalogo in un foglio di calcolo.
func (h *ExportHandler) ProductsXLSX(c *fiber.Ctx) error {
	data, err := h.uc.ProductsXLSX()
	if err != nil {
		return domainError(c, err)
	}
	return sendFile(c, data, xlsxMIME, "prodotti.xlsx")
}

// CloseoutsXLSX scarica le chiusure dell'intervallo richiesto (?start=&end=).
func (h *ExportHandler) CloseoutsXLSX(c *fiber.Ctx) error {
	start, err := dateQuery(c, "start")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start non valida (formato 2006-01-02)"})
	}
	end, err := dateQuery(c, "end")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end non valida (formato 2006-01-02)"})
	}
	data, err := h.uc.CloseoutsXLSX(start, end)
	if err != nil {
		return domainError(c, err)
	}
	return sendFile(c, data, xlsxMIME, "chiusure.xlsx")
}

// CloseoutPDF scarica la scheda PDF di una chiusura.
func (h *ExportHandler) CloseoutPDF(c *fiber.Ctx) error {
	data, err := h.uc.CloseoutPDF(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return sendFile(c, data, "application/pdf", "chiusura.pdf")
}

func sendFile(c *fiber.Ctx, data []byte, contentType, filename string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

func dateQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
