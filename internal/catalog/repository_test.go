package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/swinck/catalogo-backend/internal/tabular"
)

func seededStore(t *testing.T) tabular.Store {
	t.Helper()
	store := tabular.NewMemoryStore()
	require.NoError(t, store.Write(tabular.EntitySuppliers, []tabular.Row{
		{"id": "forn1", "name": "Fornecedor A", "logo": "logos\\fornA.png"},
		{"id": "forn2", "name": "Fornecedor B", "logo": ""},
	}))
	require.NoError(t, store.Write(tabular.EntityProducts, []tabular.Row{
		{"id": "A1", "supplier_id": "forn1", "name": "Produto A1", "price": "11", "promo_price": "", "image": "produtos/A1.jpg"},
		{"id": "A2", "supplier_id": "forn1", "name": "Produto A2", "price": "12.50", "promo_price": "9.90", "image": ""},
		{"id": "B1", "supplier_id": "forn2", "name": "Produto B1", "price": "abc", "promo_price": "x", "image": ""},
	}))
	require.NoError(t, store.Write(tabular.EntityClients, []tabular.Row{
		{"id": "c1", "name": "Cliente Demo", "email": "demo@teste.com", "password": "123456"},
	}))
	return store
}

func TestListProductsCoercion(t *testing.T) {
	repo := NewRepository(seededStore(t), "images")
	products, err := repo.ListProducts()
	require.NoError(t, err)
	require.Len(t, products, 3)

	require.True(t, products[0].Price.Equal(decimal.NewFromInt(11)))
	require.Nil(t, products[0].PromoPrice)
	require.Equal(t, "images/produtos/A1.jpg", products[0].ImagePath)

	require.NotNil(t, products[1].PromoPrice)
	require.True(t, products[1].EffectivePrice().Equal(decimal.RequireFromString("9.90")))

	// Malformed numerics degrade to zero/absent, never abort the load.
	require.True(t, products[2].Price.IsZero())
	require.Nil(t, products[2].PromoPrice)
}

func TestSupplierLogoBackslashNormalization(t *testing.T) {
	repo := NewRepository(seededStore(t), "images")
	suppliers, err := repo.ListSuppliers()
	require.NoError(t, err)
	require.Equal(t, "images/logos/fornA.png", suppliers[0].LogoPath)
	require.Empty(t, suppliers[1].LogoPath)
}

func TestEmptyStoreYieldsEmptyLists(t *testing.T) {
	repo := NewRepository(tabular.NewMemoryStore(), "images")
	products, err := repo.ListProducts()
	require.NoError(t, err)
	require.Empty(t, products)

	suppliers, err := repo.ListSuppliers()
	require.NoError(t, err)
	require.Empty(t, suppliers)
}

func TestFinders(t *testing.T) {
	repo := NewRepository(seededStore(t), "images")

	p, err := repo.FindProduct("A2")
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Equal(t, "Produto A2", p.Name)

	missing, err := repo.FindProduct("nope")
	require.NoError(t, err)
	require.Nil(t, missing)

	c, err := repo.FindClientByEmail("demo@teste.com")
	require.NoError(t, err)
	require.NotNil(t, c)
	require.Equal(t, "123456", c.Password)
}

func TestProductsBySupplier(t *testing.T) {
	repo := NewRepository(seededStore(t), "images")
	products, err := repo.ProductsBySupplier("forn1")
	require.NoError(t, err)
	require.Len(t, products, 2)
}

func TestUpdateClientByEmail(t *testing.T) {
	store := seededStore(t)
	repo := NewRepository(store, "images")

	err := repo.UpdateClientByEmail("demo@teste.com", ClientUpdate{
		Name:  "Cliente Renomeado",
		Email: "novo@teste.com",
		Phone: "11 99999-0000",
	})
	require.NoError(t, err)

	updated, err := repo.FindClientByEmail("novo@teste.com")
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Equal(t, "Cliente Renomeado", updated.Name)
	// Empty password in the update leaves the stored one untouched.
	require.Equal(t, "123456", updated.Password)

	err = repo.UpdateClientByEmail("ghost@teste.com", ClientUpdate{Name: "x"})
	require.Error(t, err)
}
