package exporter

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/swinck/catalogo-backend/internal/pricing"
	pkgerrors "github.com/swinck/catalogo-backend/pkg/errors"
)

// CSV renders the quote as semicolon-separated text. The output is prefixed
// with a UTF-8 byte-order marker so spreadsheet tools pick the encoding up.
func CSV(quote pricing.Quote) ([]byte, error) {
	if quote.IsEmpty() {
		return nil, errEmptyCart()
	}

	var buf bytes.Buffer
	buf.WriteString("\ufeff")

	writer := csv.NewWriter(&buf)
	writer.Comma = ';'
	if err := writer.Write([]string{"SKU", "Nome", "Quantidade", "PrecoUnitario", "TotalLinha"}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv header")
	}
	for _, line := range quote.Lines {
		record := []string{
			line.Product.ID,
			line.Product.Name,
			strconv.Itoa(line.Quantity),
			money(line.UnitPrice),
			money(line.LineTotal),
		}
		if err := writer.Write(record); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv line")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flush csv")
	}
	return buf.Bytes(), nil
}
