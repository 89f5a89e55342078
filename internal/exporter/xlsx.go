package exporter

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"github.com/swinck/catalogo-backend/internal/pricing"
	pkgerrors "github.com/swinck/catalogo-backend/pkg/errors"
)

const cartSheetName = "Carrinho"

// XLSX renders the quote as a single-sheet spreadsheet.
func XLSX(quote pricing.Quote) ([]byte, error) {
	if quote.IsEmpty() {
		return nil, errEmptyCart()
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", cartSheetName); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rename sheet")
	}

	header := []any{"SKU", "Nome", "Quantidade", "PrecoUnitario", "TotalLinha"}
	if err := f.SetSheetRow(cartSheetName, "A1", &header); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write header")
	}

	for i, line := range quote.Lines {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "locate row")
		}
		unit, _ := line.UnitPrice.Float64()
		total, _ := line.LineTotal.Float64()
		values := []any{line.Product.ID, line.Product.Name, line.Quantity, unit, total}
		if err := f.SetSheetRow(cartSheetName, cell, &values); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write row")
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode spreadsheet")
	}
	return buf.Bytes(), nil
}
