package seed

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swinck/catalogo-backend/internal/tabular"
)

func TestRunSeedsAllEntities(t *testing.T) {
	store := tabular.NewMemoryStore()
	require.NoError(t, Run(store))

	suppliers, err := store.Read(tabular.EntitySuppliers)
	require.NoError(t, err)
	require.Len(t, suppliers, 2)

	products, err := store.Read(tabular.EntityProducts)
	require.NoError(t, err)
	require.Len(t, products, 18)
	require.Equal(t, "12.5", products[2]["promo_price"], "every third product of forn1 is on promo")
	require.Equal(t, "", products[0]["promo_price"])

	clients, err := store.Read(tabular.EntityClients)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	require.Equal(t, "demo@teste.com", clients[0]["email"])
}
