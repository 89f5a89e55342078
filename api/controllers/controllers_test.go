package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/swinck/catalogo-backend/api/controllers"
	"github.com/swinck/catalogo-backend/api/routes"
	"github.com/swinck/catalogo-backend/internal/admin"
	"github.com/swinck/catalogo-backend/internal/cart"
	"github.com/swinck/catalogo-backend/internal/catalog"
	"github.com/swinck/catalogo-backend/internal/importer"
	"github.com/swinck/catalogo-backend/internal/seed"
	"github.com/swinck/catalogo-backend/internal/session"
	"github.com/swinck/catalogo-backend/internal/tabular"
	"github.com/swinck/catalogo-backend/pkg/logger"
)

const cookieName = "catalogo_session"

type testEnv struct {
	t       *testing.T
	handler http.Handler
	store   *tabular.MemoryStore
	cookie  *http.Cookie
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := tabular.NewMemoryStore()
	require.NoError(t, seed.Run(store))

	sessions := session.NewMemoryStore()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	repo := catalog.NewRepository(store, "images")
	carts := cart.NewStore(sessions)
	admins := admin.NewStore(filepath.Join(t.TempDir(), "admin.json"))

	handler := routes.New(routes.Deps{
		Logger: logg,

		Sessions:      sessions,
		SessionCookie: cookieName,
		SessionTTL:    time.Hour,

		Admin: admins,

		Health:   controllers.NewHealthController(nil, logg),
		Catalog:  controllers.NewCatalogController(repo, logg),
		Cart:     controllers.NewCartController(carts, sessions, repo, logg),
		Checkout: controllers.NewCheckoutController(carts, sessions, repo, logg),
		Auth:     controllers.NewAuthController(repo, admins, sessions, logg),
		Account:  controllers.NewAccountController(repo, admins, sessions, logg),
		Imports:  controllers.NewImportController(importer.NewPipeline(store, admins), logg),
		Exports:  controllers.NewExportController(sessions, repo, logg),
	})

	return &testEnv{t: t, handler: handler, store: store}
}

// do issues one request, carrying the session cookie across calls.
func (e *testEnv) do(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	e.t.Helper()

	r := httptest.NewRequest(method, path, body)
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	if e.cookie != nil {
		r.AddCookie(e.cookie)
	}

	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, r)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == cookieName {
			e.cookie = cookie
		}
	}
	return w
}

func (e *testEnv) doJSON(method, path string, payload any) *httptest.ResponseRecorder {
	e.t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(e.t, err)
	return e.do(method, path, bytes.NewReader(raw), "application/json")
}

func (e *testEnv) addItem(productID string, qty int) *httptest.ResponseRecorder {
	e.t.Helper()
	return e.doJSON(http.MethodPost, "/api/v1/cart/items/"+productID, map[string]int{"quantity": qty})
}

func (e *testEnv) login(email, password string) {
	e.t.Helper()
	w := e.doJSON(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(e.t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
	return envelope.Data
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/health/live", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/health/ready", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestListSuppliers(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/suppliers", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	require.Len(t, data["suppliers"], 2)
}

func TestSupplierProductsPagination(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/suppliers/forn1/products", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	require.Len(t, data["products"], 9)
	require.EqualValues(t, 1, data["page"])
	require.EqualValues(t, 2, data["total_pages"])
	require.EqualValues(t, 12, data["total"])

	w = env.do(http.MethodGet, "/api/v1/suppliers/forn1/products?page=2", nil, "")
	data = decodeData(t, w)
	require.Len(t, data["products"], 3)
	require.EqualValues(t, 2, data["page"])

	// Out-of-range pages clamp to the last one.
	w = env.do(http.MethodGet, "/api/v1/suppliers/forn1/products?page=99", nil, "")
	data = decodeData(t, w)
	require.EqualValues(t, 2, data["page"])
	require.Len(t, data["products"], 3)
}

func TestSupplierProductsUnknownSupplier(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/suppliers/nope/products", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartAddRemoveQuote(t *testing.T) {
	env := newTestEnv(t)

	// A3 is seeded with price 13.00 and promo 12.50; promo wins.
	w := env.addItem("A3", 2)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	require.Equal(t, "25", data["subtotal"])

	// A bodyless add means quantity one.
	w = env.do(http.MethodPost, "/api/v1/cart/items/A3", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeData(t, w)
	require.Equal(t, "37.5", data["subtotal"])

	w = env.do(http.MethodDelete, "/api/v1/cart/items/A3", nil, "")
	data = decodeData(t, w)
	require.Empty(t, data["lines"])
	require.Equal(t, "0", data["subtotal"])
}

func TestCartUnknownProductPricesToNothing(t *testing.T) {
	env := newTestEnv(t)

	w := env.addItem("ghost", 5)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	require.Empty(t, data["lines"])
}

func TestCouponAndShipping(t *testing.T) {
	env := newTestEnv(t)
	env.addItem("A3", 2)

	// Lowercase input is uppercased before the lookup.
	w := env.doJSON(http.MethodPost, "/api/v1/cart/coupon", map[string]string{"code": "desconto10"})
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	require.Equal(t, true, data["applied"])
	quote := data["quote"].(map[string]any)
	require.Equal(t, "DESCONTO10", quote["coupon_code"])
	require.Equal(t, "2.5", quote["discount_value"])

	w = env.doJSON(http.MethodPost, "/api/v1/cart/shipping", map[string]any{"value": 7.5})
	data = decodeData(t, w)
	require.Equal(t, "30", data["grand_total"]) // 25 - 2.5 + 7.5

	// An unknown code clears the applied coupon.
	w = env.doJSON(http.MethodPost, "/api/v1/cart/coupon", map[string]string{"code": "NADA"})
	data = decodeData(t, w)
	require.Equal(t, false, data["applied"])
	quote = data["quote"].(map[string]any)
	require.Equal(t, "0", quote["discount_value"])
}

func TestShippingCoercesToZero(t *testing.T) {
	env := newTestEnv(t)
	env.addItem("A1", 1) // price 11.00, no promo

	w := env.doJSON(http.MethodPost, "/api/v1/cart/shipping", map[string]any{"value": -4})
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	require.Equal(t, "0", data["shipping_value"], "negative shipping coerces to zero")

	w = env.do(http.MethodPost, "/api/v1/cart/shipping", strings.NewReader("not json"), "application/json")
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeData(t, w)
	require.Equal(t, "0", data["shipping_value"], "malformed shipping coerces to zero")
}

func TestLoginRoles(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "demo@teste.com",
		"password": "123456",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	require.Equal(t, "client", data["role"])

	env2 := newTestEnv(t)
	w = env2.doJSON(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    admin.DefaultEmail,
		"password": admin.DefaultPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeData(t, w)
	require.Equal(t, "admin", data["role"])
}

func TestLoginRejectsBadPassword(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "demo@teste.com",
		"password": "errada",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutKeepsCart(t *testing.T) {
	env := newTestEnv(t)
	env.login("demo@teste.com", "123456")

	env.addItem("A1", 1)

	w := env.do(http.MethodPost, "/api/v1/auth/logout", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/v1/account", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodGet, "/api/v1/cart/", nil, "")
	data := decodeData(t, w)
	require.Len(t, data["lines"], 1)
}

func TestCheckout(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(http.MethodPost, "/api/v1/checkout", map[string]any{})
	require.Equal(t, http.StatusUnauthorized, w.Code, "checkout requires login")

	env.login("demo@teste.com", "123456")

	w = env.doJSON(http.MethodPost, "/api/v1/checkout", map[string]any{})
	require.Equal(t, http.StatusBadRequest, w.Code, "empty cart cannot check out")

	env.addItem("A3", 2)

	w = env.doJSON(http.MethodPost, "/api/v1/checkout", map[string]any{})
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	require.NotEmpty(t, data["order_id"])
	require.Equal(t, "demo@teste.com", data["user_email"])

	w = env.do(http.MethodGet, "/api/v1/cart/", nil, "")
	data = decodeData(t, w)
	require.Empty(t, data["lines"], "checkout empties the cart")
}

func TestAccountGetAndUpdate(t *testing.T) {
	env := newTestEnv(t)
	env.login("demo@teste.com", "123456")

	w := env.do(http.MethodGet, "/api/v1/account", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	require.Equal(t, "client", data["role"])
	profile := data["profile"].(map[string]any)
	require.Equal(t, "demo@teste.com", profile["email"])
	require.NotContains(t, profile, "password")

	w = env.doJSON(http.MethodPut, "/api/v1/account", map[string]string{
		"name":  "Cliente Renomeado",
		"phone": "11 99999-0000",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/v1/account", nil, "")
	data = decodeData(t, w)
	profile = data["profile"].(map[string]any)
	require.Equal(t, "Cliente Renomeado", profile["name"])
	require.Equal(t, "11 99999-0000", profile["phone"])
	require.Equal(t, "demo@teste.com", profile["email"], "empty email keeps the stored value")
}

func TestAccountEmailChangeFollowsSession(t *testing.T) {
	env := newTestEnv(t)
	env.login("demo@teste.com", "123456")

	w := env.doJSON(http.MethodPut, "/api/v1/account", map[string]string{
		"name":  "Cliente Demo",
		"email": "novo@teste.com",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/v1/account", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	profile := data["profile"].(map[string]any)
	require.Equal(t, "novo@teste.com", profile["email"])
}

func TestAdminAccountUpdate(t *testing.T) {
	env := newTestEnv(t)
	env.login(admin.DefaultEmail, admin.DefaultPassword)

	w := env.do(http.MethodGet, "/api/v1/account", nil, "")
	data := decodeData(t, w)
	require.Equal(t, "admin", data["role"])

	w = env.doJSON(http.MethodPut, "/api/v1/account", map[string]string{"password": "nova-senha"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.doJSON(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    admin.DefaultEmail,
		"password": "nova-senha",
	})
	require.Equal(t, http.StatusOK, w.Code, "updated password must authenticate")
}

func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestAdminImportReplacesDataset(t *testing.T) {
	env := newTestEnv(t)
	env.login(admin.DefaultEmail, admin.DefaultPassword)

	body, contentType := multipartUpload(t, "fornecedores.csv",
		[]byte("id,name,logo\nf9,Fornecedor Novo,logos/f9.png\n"))
	w := env.do(http.MethodPost, "/api/admin/v1/suppliers/import", body, contentType)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeData(t, w)
	require.EqualValues(t, 1, data["rows"])

	rows, err := env.store.Read(tabular.EntitySuppliers)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "f9", rows[0]["id"])
}

func TestImportRejectsNonAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.login("demo@teste.com", "123456")

	body, contentType := multipartUpload(t, "fornecedores.csv", []byte("id,name,logo\nf9,X,\n"))
	w := env.do(http.MethodPost, "/api/admin/v1/suppliers/import", body, contentType)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestImportRejectsUnsupportedExtension(t *testing.T) {
	env := newTestEnv(t)
	env.login(admin.DefaultEmail, admin.DefaultPassword)

	body, contentType := multipartUpload(t, "dados.txt", []byte("id,name\n1,X\n"))
	w := env.do(http.MethodPost, "/api/admin/v1/suppliers/import", body, contentType)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "UNSUPPORTED_FORMAT")
}

func TestExportCSVAttachment(t *testing.T) {
	env := newTestEnv(t)
	env.addItem("A3", 2)

	w := env.do(http.MethodGet, "/api/v1/cart/export/csv", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `attachment; filename="carrinho.csv"`, w.Header().Get("Content-Disposition"))

	body := w.Body.String()
	require.True(t, strings.HasPrefix(body, "\ufeff"), "csv export carries a BOM")
	require.Contains(t, body, "SKU;Nome;Quantidade;PrecoUnitario;TotalLinha")
	require.Contains(t, body, "A3;Produto A3;2;12,50;25,00")
}

func TestExportEmptyCartFails(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{
		"/api/v1/cart/export/csv",
		"/api/v1/cart/export/xlsx",
		"/api/v1/cart/export/pdf",
	} {
		w := env.do(http.MethodGet, path, nil, "")
		require.Equal(t, http.StatusBadRequest, w.Code, path)
		require.Contains(t, w.Body.String(), "EMPTY_CART", path)
	}
}

func TestExportPDFSignature(t *testing.T) {
	env := newTestEnv(t)
	env.addItem("A1", 1)

	w := env.do(http.MethodGet, "/api/v1/cart/export/pdf", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}
