package seed

import (
	"fmt"
	"strconv"

	"github.com/swinck/catalogo-backend/internal/tabular"
)

// Run writes the demo catalog through the store: two suppliers, twelve
// products for the first and six for the second (every third product of
// the first supplier carries a promo price), and one demo client.
func Run(store tabular.Store) error {
	suppliers := []tabular.Row{
		{"id": "forn1", "name": "Fornecedor A", "logo": "logos/fornA.png"},
		{"id": "forn2", "name": "Fornecedor B", "logo": "logos/fornB.png"},
	}

	products := make([]tabular.Row, 0, 18)
	for i := 1; i <= 12; i++ {
		id := fmt.Sprintf("A%d", i)
		promo := ""
		if i%3 == 0 {
			promo = strconv.FormatFloat(9.5+float64(i), 'f', -1, 64)
		}
		products = append(products, tabular.Row{
			"id":          id,
			"supplier_id": "forn1",
			"name":        "Produto " + id,
			"price":       strconv.FormatFloat(10.0+float64(i), 'f', -1, 64),
			"promo_price": promo,
			"image":       "produtos/" + id + ".jpg",
		})
	}
	for i := 1; i <= 6; i++ {
		id := fmt.Sprintf("B%d", i)
		products = append(products, tabular.Row{
			"id":          id,
			"supplier_id": "forn2",
			"name":        "Produto " + id,
			"price":       strconv.FormatFloat(20.0+float64(i), 'f', -1, 64),
			"promo_price": "",
			"image":       "produtos/" + id + ".jpg",
		})
	}

	clients := []tabular.Row{
		{"id": "c1", "name": "Cliente Demo", "email": "demo@teste.com", "password": "123456"},
	}

	if err := store.Write(tabular.EntitySuppliers, suppliers); err != nil {
		return fmt.Errorf("seed suppliers: %w", err)
	}
	if err := store.Write(tabular.EntityProducts, products); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	if err := store.Write(tabular.EntityClients, clients); err != nil {
		return fmt.Errorf("seed clients: %w", err)
	}
	return nil
}
