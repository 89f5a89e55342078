package exporter

import (
	"bytes"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/swinck/catalogo-backend/internal/pricing"
	pkgerrors "github.com/swinck/catalogo-backend/pkg/errors"
)

// Page geometry in millimeters (A4 portrait).
const (
	pdfLeftMargin  = 14.0
	pdfTopMargin   = 14.0
	pdfLineHeight  = 6.5
	pdfBreakAt     = 272.0 // start a new page once a line would land below this
	colQtyRight    = 110.0
	colPriceRight  = 145.0
	colTotalRight  = 185.0
)

// PDF renders the quote as a paginated document: title, column header, one
// line per cart entry with right-aligned numeric columns, then the total.
func PDF(quote pricing.Quote) ([]byte, error) {
	if quote.IsEmpty() {
		return nil, errEmptyCart()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	y := pdfTopMargin
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(pdfLeftMargin, y, tr("Carrinho de Compras"))
	y += 10

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Text(pdfLeftMargin, y, tr("Produto"))
		textRight(pdf, colQtyRight, y, tr("Qtd"))
		textRight(pdf, colPriceRight, y, tr("Preço"))
		textRight(pdf, colTotalRight, y, tr("Total"))
		y += pdfLineHeight
		pdf.SetFont("Helvetica", "", 10)
	}
	writeHeader()

	for _, line := range quote.Lines {
		if y > pdfBreakAt {
			pdf.AddPage()
			y = pdfTopMargin
			writeHeader()
		}
		pdf.Text(pdfLeftMargin, y, tr(line.Product.Name))
		textRight(pdf, colQtyRight, y, strconv.Itoa(line.Quantity))
		textRight(pdf, colPriceRight, y, tr("R$ "+money(line.UnitPrice)))
		textRight(pdf, colTotalRight, y, tr("R$ "+money(line.LineTotal)))
		y += pdfLineHeight
	}

	if y > pdfBreakAt {
		pdf.AddPage()
		y = pdfTopMargin
	}
	y += 4
	pdf.SetFont("Helvetica", "B", 11)
	textRight(pdf, colTotalRight, y, tr("Total: R$ "+money(quote.GrandTotal)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode pdf")
	}
	return buf.Bytes(), nil
}

func textRight(pdf *fpdf.Fpdf, right, y float64, s string) {
	pdf.Text(right-pdf.GetStringWidth(s), y, s)
}
