package exporter

import (
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/swinck/catalogo-backend/pkg/errors"
)

// Download filenames for the three cart renderings.
const (
	FileNameCSV  = "carrinho.csv"
	FileNameXLSX = "carrinho.xlsx"
	FileNamePDF  = "carrinho.pdf"
)

// ErrEmptyCart is returned by every rendering when the quote resolved no
// lines; callers surface it as a validation message, not a failure.
func errEmptyCart() error {
	return pkgerrors.New(pkgerrors.CodeEmptyCart, "carrinho vazio")
}

// money renders a currency value with two decimals and a comma separator,
// the format consuming spreadsheet/ERP tools expect.
func money(value decimal.Decimal) string {
	return strings.Replace(value.StringFixed(2), ".", ",", 1)
}
