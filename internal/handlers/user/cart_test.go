package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"novamart_back_end/internal/cart"
	"novamart_back_end/internal/config"
	"novamart_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Routeur de test : le middleware d'auth est remplacé par une injection
// directe de user_id, le panier vit dans le store mémoire.
func setupCartRouter(t *testing.T, policy cart.MissingQuantityPolicy) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.C.MissingQuantity = "reject"
	CartSync = cart.NewSynchronizer(cart.NewMemoryStore(), policy)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", "ada")
	})
	r.GET("/cart", GetCart)
	r.POST("/cart", AddToCart)
	r.PUT("/cart/:productId", SetCartQuantity)
	r.DELETE("/cart/:productId", RemoveFromCart)
	r.DELETE("/cart", ClearCart)
	return r
}

func doCart(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, []models.CartItem) {
	t.Helper()
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	r.ServeHTTP(w, req)

	var resp struct {
		Items []models.CartItem `json:"items"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp.Items
}

func TestGetCartEmpty(t *testing.T) {
	r := setupCartRouter(t, cart.RejectMissingQuantity)

	w, items := doCart(t, r, http.MethodGet, "/cart", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []models.CartItem{}, items)
}

// Scénario complet : ajout, ré-ajout additif, suppression.
func TestCartAddMergeRemoveScenario(t *testing.T) {
	r := setupCartRouter(t, cart.RejectMissingQuantity)

	w, items := doCart(t, r, http.MethodPost, "/cart", `{"productId":"book-1","quantity":1,"price":1000}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, items, 1)
	assert.Equal(t, models.CartItem{ProductID: "book-1", Quantity: 1, Price: 1000}, items[0])

	// Le même POST rejoué additionne la quantité (pas de remplacement)
	w, items = doCart(t, r, http.MethodPost, "/cart", `{"productId":"book-1","quantity":1,"price":1000}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	w, items = doCart(t, r, http.MethodDelete, "/cart/book-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, items)
}

func TestAddToCartValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "produit manquant", body: `{"quantity":1}`},
		{name: "quantité manquante (politique reject)", body: `{"productId":"P1"}`},
		{name: "quantité négative", body: `{"productId":"P1","quantity":-1}`},
		{name: "JSON invalide", body: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupCartRouter(t, cart.RejectMissingQuantity)
			w, _ := doCart(t, r, http.MethodPost, "/cart", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAddToCartMissingQuantityDefaultsToOne(t *testing.T) {
	r := setupCartRouter(t, cart.DefaultToOne)

	w, items := doCart(t, r, http.MethodPost, "/cart", `{"productId":"P1","price":500}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestSetCartQuantityReplaces(t *testing.T) {
	r := setupCartRouter(t, cart.RejectMissingQuantity)

	_, _ = doCart(t, r, http.MethodPost, "/cart", `{"productId":"P1","quantity":2,"price":100}`)

	w, items := doCart(t, r, http.MethodPut, "/cart/P1", `{"quantity":7}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestSetCartQuantityAbsentProductNoop(t *testing.T) {
	r := setupCartRouter(t, cart.RejectMissingQuantity)

	_, _ = doCart(t, r, http.MethodPost, "/cart", `{"productId":"P1","quantity":2,"price":100}`)

	w, items := doCart(t, r, http.MethodPut, "/cart/P2", `{"quantity":3}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, items, 1)
	assert.Equal(t, "P1", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestRemoveAbsentProductNoop(t *testing.T) {
	r := setupCartRouter(t, cart.RejectMissingQuantity)

	w, items := doCart(t, r, http.MethodDelete, "/cart/P1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, items)
}

func TestClearCartThenGetEmpty(t *testing.T) {
	r := setupCartRouter(t, cart.RejectMissingQuantity)

	_, _ = doCart(t, r, http.MethodPost, "/cart", `{"productId":"P1","quantity":2,"price":100}`)
	_, _ = doCart(t, r, http.MethodPost, "/cart", `{"productId":"P2","quantity":1,"price":50}`)

	w, _ := doCart(t, r, http.MethodDelete, "/cart", "")
	require.Equal(t, http.StatusOK, w.Code)

	w, items := doCart(t, r, http.MethodGet, "/cart", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, items)
}
