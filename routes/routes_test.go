package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tilecrm-backend/config"
	"tilecrm-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := config.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	hash, err := utils.HashPassword("open-sesame")
	require.NoError(t, err)

	router := SetupRouter(Deps{
		DB:           db,
		Logger:       zerolog.Nop(),
		CORSOrigins:  []string{"http://localhost:3000"},
		Issuer:       utils.NewTokenIssuer("test-secret", time.Hour),
		PasswordHash: hash,
	})
	return &testServer{t: t, router: router}
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (s *testServer) login() {
	s.t.Helper()
	w := s.do(http.MethodPost, "/auth/login", map[string]string{"password": "open-sesame"})
	require.Equal(s.t, http.StatusOK, w.Code)
	s.token = decode[map[string]string](s.t, w)["token"]
	require.NotEmpty(s.t, s.token)
}

func TestAuth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/customers", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/auth/login", map[string]string{"password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/auth/login", map[string]string{"password": "open-sesame"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), utils.TokenCookie+"=")
	s.token = decode[map[string]string](t, w)["token"]

	w = s.do(http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	s.token = "garbage"
	w = s.do(http.MethodGet, "/api/customers", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tilecrm_http_requests_total")
}

func TestCustomerInvoiceFlow(t *testing.T) {
	s := newTestServer(t)
	s.login()

	w := s.do(http.MethodPost, "/api/customers", map[string]any{"name": "", "type": "SHOP", "mobile": "1"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields := decode[struct {
		Fields map[string]string `json:"fields"`
	}](t, w).Fields
	assert.Equal(t, "Name is required", fields["name"])

	w = s.do(http.MethodPost, "/api/customers", map[string]any{
		"name":      "John Builders",
		"type":      "BUILDER",
		"mobile":    "9876543210",
		"city":      "Pune",
		"state":     "Maharashtra",
		"reference": "Ref1",
		"status":    "meet",
		"date":      map[string]any{"seconds": 1705053600, "nanoseconds": 0},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	customerID := decode[map[string]any](t, w)["id"].(string)

	w = s.do(http.MethodPost, "/api/companies", map[string]string{"name": "Kajaria"})
	require.Equal(t, http.StatusCreated, w.Code)
	companyID := decode[map[string]any](t, w)["id"].(string)

	w = s.do(http.MethodPost, "/api/companies", map[string]string{"name": "kajaria"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, companyID, decode[map[string]any](t, w)["id"])

	w = s.do(http.MethodPost, "/api/customers/"+customerID+"/orders", map[string]any{
		"companyId": companyID,
		"name":      "Glossy",
		"size":      "600x600",
		"grade":     "PRE",
		"boxNumber": 10,
		"amount":    1200,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	orderID := decode[map[string]any](t, w)["id"].(string)

	w = s.do(http.MethodPost, "/api/customers/"+customerID+"/orders", map[string]any{
		"companyId": "00000000-0000-0000-0000-000000000002",
		"name":      "Matt",
		"size":      "600x600",
		"amount":    500,
	})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Unknown company")

	w = s.do(http.MethodGet, "/api/customers/"+customerID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1200.0, decode[map[string]any](t, w)["totalAmount"])

	w = s.do(http.MethodPut, "/api/customers/"+customerID+"/invoice", map[string]any{
		"params": map[string]any{orderID: map[string]any{"billRate": "50", "rate": 60}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/customers/"+customerID+"/invoice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[struct {
		GrandTotals struct {
			TotalBillAmount float64 `json:"totalBillAmount"`
			TotalCashAmount float64 `json:"totalCashAmount"`
		} `json:"grandTotals"`
		FinalTotal float64 `json:"finalTotal"`
	}](t, w)
	assert.InDelta(t, 16335.7725, view.GrandTotals.TotalBillAmount, 1e-6)
	assert.InDelta(t, 2755.0, view.GrandTotals.TotalCashAmount, 1e-6)

	w = s.do(http.MethodPut, "/api/customers/"+customerID+"/invoice", map[string]any{
		"params": map[string]any{"00000000-0000-0000-0000-000000000001": map[string]any{"rate": 1}},
	})
	assert.Equal(t, http.StatusMultiStatus, w.Code)

	w = s.do(http.MethodGet, "/api/customers/"+customerID+"/receipt.pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))

	w = s.do(http.MethodGet, "/api/customers/export?city=Pune", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Name,Type,City,Reference,Date,Status\nJohn Builders,BUILDER,Pune,Ref1,12-01-2024,meet\n", w.Body.String())

	w = s.do(http.MethodGet, "/api/cities", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Pune"}, decode[[]string](t, w))

	w = s.do(http.MethodDelete, "/api/customers/"+customerID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/customers/"+customerID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/cities", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]string](t, w))
}

func TestCustomerListQuery(t *testing.T) {
	s := newTestServer(t)
	s.login()

	for _, c := range []map[string]any{
		{"name": "Early", "type": "BUILDER", "mobile": "9876543210", "date": "2024-01-10"},
		{"name": "Late", "type": "BUILDER", "mobile": "9876543211", "date": "2024-01-20T18:30:00Z"},
	} {
		w := s.do(http.MethodPost, "/api/customers", c)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := s.do(http.MethodGet, "/api/customers?to=2024-01-20&sortBy=name&sortDirection=desc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]map[string]any](t, w)
	require.Len(t, list, 2, "a date-only upper bound covers the whole day")
	assert.Equal(t, "Late", list[0]["name"])

	w = s.do(http.MethodGet, "/api/customers?sortBy=password", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/customers?from=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/customers/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConstants(t *testing.T) {
	s := newTestServer(t)
	s.login()

	w := s.do(http.MethodGet, "/api/constants", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.Len(t, body["tileSizes"], 9)
	assert.Equal(t, 27.55, body["invoiceDefaults"].(map[string]any)["sqft"])
}
