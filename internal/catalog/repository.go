package catalog

import (
	"path"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/swinck/catalogo-backend/internal/tabular"
	pkgerrors "github.com/swinck/catalogo-backend/pkg/errors"
)

// Repository exposes typed accessors over the tabular store. Every call
// re-reads the underlying dataset; nothing is cached between requests.
type Repository struct {
	store     tabular.Store
	assetRoot string
}

func NewRepository(store tabular.Store, assetRoot string) *Repository {
	if assetRoot == "" {
		assetRoot = "images"
	}
	return &Repository{store: store, assetRoot: assetRoot}
}

func (r *Repository) ListSuppliers() ([]Supplier, error) {
	rows, err := r.store.Read(tabular.EntitySuppliers)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load suppliers")
	}
	suppliers := make([]Supplier, 0, len(rows))
	for _, row := range rows {
		suppliers = append(suppliers, Supplier{
			ID:       strings.TrimSpace(row["id"]),
			Name:     row["name"],
			LogoPath: r.assetPath(row["logo"]),
		})
	}
	return suppliers, nil
}

func (r *Repository) ListProducts() ([]Product, error) {
	rows, err := r.store.Read(tabular.EntityProducts)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, Product{
			ID:         strings.TrimSpace(row["id"]),
			SupplierID: strings.TrimSpace(row["supplier_id"]),
			Name:       row["name"],
			Price:      priceOrZero(row["price"]),
			PromoPrice: optionalPrice(row["promo_price"]),
			ImagePath:  r.assetPath(row["image"]),
		})
	}
	return products, nil
}

func (r *Repository) ListClients() ([]Client, error) {
	rows, err := r.store.Read(tabular.EntityClients)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load clients")
	}
	clients := make([]Client, 0, len(rows))
	for _, row := range rows {
		clients = append(clients, Client{
			ID:       strings.TrimSpace(row["id"]),
			Name:     row["name"],
			Email:    strings.TrimSpace(row["email"]),
			Password: row["password"],
			Phone:    row["phone"],
			Address:  row["address"],
			State:    row["state"],
			City:     row["city"],
			CEP:      row["cep"],
		})
	}
	return clients, nil
}

// FindSupplier returns the first supplier with the given id, nil when absent.
func (r *Repository) FindSupplier(id string) (*Supplier, error) {
	suppliers, err := r.ListSuppliers()
	if err != nil {
		return nil, err
	}
	for i := range suppliers {
		if suppliers[i].ID == id {
			return &suppliers[i], nil
		}
	}
	return nil, nil
}

// FindProduct returns the first product with the given id, nil when absent.
func (r *Repository) FindProduct(id string) (*Product, error) {
	products, err := r.ListProducts()
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, nil
}

// FindClientByEmail returns the first client with the given email, nil when
// absent. Emails are not guaranteed unique by the store; first match wins.
func (r *Repository) FindClientByEmail(email string) (*Client, error) {
	clients, err := r.ListClients()
	if err != nil {
		return nil, err
	}
	for i := range clients {
		if clients[i].Email == email {
			return &clients[i], nil
		}
	}
	return nil, nil
}

// ProductsBySupplier filters the catalog to one supplier's products.
func (r *Repository) ProductsBySupplier(supplierID string) ([]Product, error) {
	products, err := r.ListProducts()
	if err != nil {
		return nil, err
	}
	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if p.SupplierID == supplierID {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// ProductIndex returns the catalog keyed by product id for cart resolution.
func (r *Repository) ProductIndex() (map[string]Product, error) {
	products, err := r.ListProducts()
	if err != nil {
		return nil, err
	}
	index := make(map[string]Product, len(products))
	for _, p := range products {
		if _, ok := index[p.ID]; ok {
			continue
		}
		index[p.ID] = p
	}
	return index, nil
}

// ClientUpdate carries the account fields a client may edit. Empty Email
// and Password leave the stored values untouched; the remaining fields are
// written as provided.
type ClientUpdate struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	State    string
	City     string
	CEP      string
}

// UpdateClientByEmail rewrites the first client row matching the email and
// persists the full dataset through the store.
func (r *Repository) UpdateClientByEmail(email string, update ClientUpdate) error {
	rows, err := r.store.Read(tabular.EntityClients)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load clients")
	}
	for _, row := range rows {
		if strings.TrimSpace(row["email"]) != email {
			continue
		}
		row["name"] = update.Name
		if update.Email != "" {
			row["email"] = update.Email
		}
		if update.Password != "" {
			row["password"] = update.Password
		}
		row["phone"] = update.Phone
		row["address"] = update.Address
		row["state"] = update.State
		row["city"] = update.City
		row["cep"] = update.CEP
		if err := r.store.Write(tabular.EntityClients, rows); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save clients")
		}
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "cliente não encontrado para atualizar")
}

// priceOrZero is the lenient price policy: malformed input becomes 0.
func priceOrZero(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return value
}

// optionalPrice is the lenient promo policy: malformed input becomes absent.
func optionalPrice(raw string) *decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &value
}

// assetPath normalizes backslash separators and anchors the reference under
// the configured asset root. Empty references stay empty.
func (r *Repository) assetPath(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	return path.Join(r.assetRoot, strings.ReplaceAll(raw, "\\", "/"))
}
