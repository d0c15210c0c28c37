package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"greenmart/internal/data/memstore"
	"greenmart/internal/dto/request"
	"greenmart/pkg/tokens"
	"greenmart/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

type testServer struct {
	t   *testing.T
	app *App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zap.NewNop()
	tokenSvc, err := tokens.NewService("router-secret", time.Hour)
	require.NoError(t, err)

	config := &utils.Config{
		CORS:     utils.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Security: utils.SecurityConfig{BcryptCost: bcrypt.MinCost},
	}
	return &testServer{t: t, app: Wiring(memstore.New(log), tokenSvc, config, log)}
}

func (s *testServer) do(method, path, token string, body any) (int, envelope) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.app.Router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func (s *testServer) signup(email, role string) string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/auth/signup", "", map[string]string{
		"email":     email,
		"password":  "secret123",
		"full_name": "Test User",
		"role":      role,
	})
	require.Equal(s.t, http.StatusCreated, code, env.Message)

	var auth struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &auth))
	assert.Equal(s.t, "bearer", auth.TokenType)
	return auth.AccessToken
}

func (s *testServer) admin() string {
	s.t.Helper()
	ctx := context.Background()
	_, err := s.app.Service.Auth.CreateAdmin(ctx, &request.CreateAdminRequest{
		Email:    "admin@example.com",
		Password: "admin-password",
		FullName: "Admin",
	})
	require.NoError(s.t, err)

	resp, err := s.app.Service.Auth.Login(ctx, &request.LoginRequest{Email: "admin@example.com", Password: "admin-password"})
	require.NoError(s.t, err)
	return resp.AccessToken
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)
	code, env := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Status)
}

func TestRouter_AuthFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.signup("buyer@example.com", "buyer")

	code, env := s.do(http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	me := decodeData[map[string]any](t, env)
	assert.Equal(t, "buyer@example.com", me["email"])
	assert.Equal(t, "buyer", me["role"])

	code, _ = s.do(http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodPost, "/auth/signup", "", map[string]string{
		"email": "buyer@example.com", "password": "secret123", "full_name": "Again", "role": "buyer",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(http.MethodPost, "/auth/signup", "", map[string]string{
		"email": "x@example.com", "password": "secret123", "full_name": "X", "role": "admin",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(env.Errors), "role")

	code, _ = s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "buyer@example.com", "password": "wrong-one"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "buyer@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusOK, code)

	require.NoError(t, s.app.Service.Auth.SetActive(context.Background(), "buyer@example.com", false))
	code, _ = s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "buyer@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusForbidden, code)

	// Existing tokens stop working once the account is disabled.
	code, _ = s.do(http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRouter_AccessControl(t *testing.T) {
	s := newTestServer(t)
	buyer := s.signup("buyer@example.com", "buyer")
	seller := s.signup("seller@example.com", "seller")
	admin := s.admin()

	tests := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"seller route anonymous", "/seller/products", "", http.StatusUnauthorized},
		{"seller route as buyer", "/seller/products", buyer, http.StatusForbidden},
		{"seller route as seller", "/seller/products", seller, http.StatusOK},
		{"admin route anonymous", "/admin/orders", "", http.StatusUnauthorized},
		{"admin route as seller", "/admin/orders", seller, http.StatusForbidden},
		{"admin route as admin", "/admin/orders", admin, http.StatusOK},
		{"public route anonymous", "/products", "", http.StatusOK},
		{"public route with junk token", "/categories", "junk", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := s.do(http.MethodGet, tt.path, tt.token, nil)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestRouter_SellerOwnsProducts(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup("alice@example.com", "seller")
	bob := s.signup("bob@example.com", "seller")

	code, env := s.do(http.MethodPost, "/seller/products", alice, map[string]any{
		"name": "Monstera", "price": 29.99, "stock": 15,
	})
	require.Equal(t, http.StatusCreated, code, string(env.Errors))
	product := decodeData[map[string]any](t, env)
	path := fmt.Sprintf("/seller/products/%v", product["id"])

	code, _ = s.do(http.MethodPut, path, bob, map[string]any{"stock": 0})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodDelete, path, bob, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = s.do(http.MethodPut, path, alice, map[string]any{"stock": 7})
	require.Equal(t, http.StatusOK, code)
	updated := decodeData[map[string]any](t, env)
	assert.EqualValues(t, 7, updated["stock"])
	assert.EqualValues(t, 29.99, updated["price"])

	code, _ = s.do(http.MethodPut, "/seller/products/abc", alice, map[string]any{"stock": 1})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodDelete, path, alice, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestRouter_PlaceOrder(t *testing.T) {
	s := newTestServer(t)
	admin := s.admin()

	code, env := s.do(http.MethodPost, "/admin/categories", admin, map[string]string{"name": "Plants", "slug": "plants"})
	require.Equal(t, http.StatusCreated, code)
	category := decodeData[map[string]any](t, env)

	code, env = s.do(http.MethodPost, "/admin/products", admin, map[string]any{
		"name": "Fern", "price": "10.00", "stock": 5, "category_id": category["id"],
	})
	require.Equal(t, http.StatusCreated, code, string(env.Errors))
	product := decodeData[map[string]any](t, env)
	productID := product["id"]

	order := map[string]any{
		"customer_name": "Jane Doe",
		"email":         "jane@example.com",
		"address":       "1 Garden Way",
		"items":         []map[string]any{{"product_id": productID, "quantity": 2}},
	}

	code, env = s.do(http.MethodPost, "/orders", "", order)
	require.Equal(t, http.StatusCreated, code, env.Message)
	placed := decodeData[map[string]any](t, env)
	assert.EqualValues(t, 20, placed["total"])
	assert.Equal(t, "pending", placed["status"])

	code, env = s.do(http.MethodGet, fmt.Sprintf("/products/%v", productID), "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 3, decodeData[map[string]any](t, env)["stock"])

	code, env = s.do(http.MethodGet, "/products?category=plants", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decodeData[[]map[string]any](t, env), 1)

	code, env = s.do(http.MethodGet, fmt.Sprintf("/orders/%v", placed["id"]), "", nil)
	require.Equal(t, http.StatusOK, code)
	items := decodeData[map[string]any](t, env)["items"].([]any)
	assert.Len(t, items, 1)

	order["items"] = []map[string]any{{"product_id": productID, "quantity": 4}}
	code, env = s.do(http.MethodPost, "/orders", "", order)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, fmt.Sprintf(`{"product_id":%v,"available":3}`, productID), string(env.Errors))

	order["items"] = []map[string]any{{"product_id": 999, "quantity": 1}}
	code, _ = s.do(http.MethodPost, "/orders", "", order)
	assert.Equal(t, http.StatusNotFound, code)

	order["items"] = []map[string]any{}
	code, env = s.do(http.MethodPost, "/orders", "", order)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(env.Errors), "items")

	code, env = s.do(http.MethodGet, "/admin/orders?page=1&per_page=10", admin, nil)
	require.Equal(t, http.StatusOK, code)
	page := decodeData[map[string]any](t, env)
	assert.EqualValues(t, 1, page["pagination"].(map[string]any)["total"])
}

func TestRouter_UnknownRoute(t *testing.T) {
	s := newTestServer(t)
	code, env := s.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Status)
}
