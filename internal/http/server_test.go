package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"financas/internal/core"
	"financas/internal/services"
	"financas/internal/store/memory"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	st := memory.New()
	svc := services.NewFinanceService(st, nil)
	s := NewServer(":0", svc)
	t.Cleanup(func() {
		_ = s.Shutdown(context.Background())
	})
	return s, st
}

func doRequest(s *Server, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestCreateExpenseAndDashboard(t *testing.T) {
	s, st := newTestServer(t)
	st.Seed(core.FinanceSnapshot{
		Cards: []core.CreditCard{
			{ID: "card-1", Name: "Nubank", BestPurchaseDay: 5, DueDay: 15},
		},
	})

	rec := doRequest(s, http.MethodPost, "/api/expenses", `{
		"description": "Notebook",
		"amount": "3000.00",
		"date": "2024-03-10",
		"type": "CARD_PURCHASE",
		"card_id": "card-1",
		"total_installments": 3
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/expenses = %d, body %s", rec.Code, rec.Body.String())
	}

	// Purchase on 2024-03-10 with best day 5: competence 2024-03, first
	// installment due 2024-04 for a third of the amount.
	rec = doRequest(s, http.MethodGet, "/api/dashboard?month=2024-04", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/dashboard = %d", rec.Code)
	}
	var summary struct {
		ExpenseTotal struct {
			Cents int64 `json:"cents"`
		} `json:"expense_total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if summary.ExpenseTotal.Cents != 100000 {
		t.Errorf("expense total = %d, want 100000", summary.ExpenseTotal.Cents)
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/expenses", `{
		"description": "",
		"amount": "10.00",
		"date": "2024-03-10",
		"type": "DIRECT_PAYMENT"
	}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("empty description = %d, want 422", rec.Code)
	}

	rec = doRequest(s, http.MethodPost, "/api/expenses", `{
		"description": "Compra",
		"amount": "10.00",
		"date": "2024-03-10",
		"type": "CARD_PURCHASE"
	}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("card purchase without card = %d, want 422", rec.Code)
	}

	rec = doRequest(s, http.MethodPost, "/api/expenses", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body = %d, want 400", rec.Code)
	}
}

func TestDeleteUnknownExpense(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(s, http.MethodDelete, "/api/expenses/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("delete unknown = %d, want 404", rec.Code)
	}
}

func TestVirtualEntriesAreReadOnly(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(s, http.MethodDelete, "/api/incomes/VIRTUAL-2024-04-Rent", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("delete virtual income = %d, want 400", rec.Code)
	}

	rec = doRequest(s, http.MethodPut, "/api/expenses/VIRTUAL-2024-04-Academia", `{
		"description": "Academia",
		"amount": "80.00",
		"date": "2024-04-05",
		"type": "DIRECT_PAYMENT"
	}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("update virtual expense = %d, want 400", rec.Code)
	}
}

func TestProjectionEndpoint(t *testing.T) {
	s, st := newTestServer(t)
	st.Seed(core.FinanceSnapshot{
		Incomes: []core.Income{
			{ID: "inc-1", Description: "Aluguel", Amount: core.Money{Cents: 150000},
				Date: core.Date("2024-03-05"), Type: core.RecurringPay, Recurring: true},
		},
	})

	rec := doRequest(s, http.MethodGet, "/api/projection?month=2024-03", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/projection = %d", rec.Code)
	}

	var rows []struct {
		Month   string `json:"month"`
		Incomes []struct {
			ID      string `json:"id"`
			Virtual bool   `json:"virtual"`
		} `json:"incomes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode projection: %v", err)
	}
	if len(rows) != 12 {
		t.Fatalf("projection rows = %d, want 12", len(rows))
	}
	if rows[0].Month != "2024-04" {
		t.Errorf("first row month = %s, want 2024-04", rows[0].Month)
	}
	if len(rows[0].Incomes) != 1 || !rows[0].Incomes[0].Virtual {
		t.Errorf("first row incomes = %+v, want one virtual entry", rows[0].Incomes)
	}
	if rows[0].Incomes[0].ID != "VIRTUAL-2024-04-Aluguel" {
		t.Errorf("virtual id = %s", rows[0].Incomes[0].ID)
	}
}

func TestClassifyEndpoint(t *testing.T) {
	s, st := newTestServer(t)
	st.Seed(core.FinanceSnapshot{
		Config: core.FinanceConfig{
			ClassificationRules: []core.ClassificationRule{
				{Name: "Mercado", Keywords: []string{"mercado", "padaria"}, IncludedInLimit: true},
				{Name: "Transporte", Keywords: []string{"uber"}},
			},
		},
	})

	rec := doRequest(s, http.MethodGet, "/api/classify?description=Padaria+do+Bairro", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/classify = %d", rec.Code)
	}
	var rules []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &rules); err != nil {
		t.Fatalf("decode classify: %v", err)
	}
	if len(rules) != 1 || rules[0].Name != "Mercado" {
		t.Errorf("classify = %+v, want [Mercado]", rules)
	}
}

func TestSnapshotCacheInvalidation(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/months", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/months = %d", rec.Code)
	}

	rec = doRequest(s, http.MethodPost, "/api/cards", `{
		"name": "Nubank",
		"best_purchase_day": 5,
		"due_day": 15
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/cards = %d, body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}

	// The new card must be visible right away, not after the cache TTL.
	rec = doRequest(s, http.MethodGet, "/api/snapshot", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/snapshot = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), created.ID) {
		t.Errorf("snapshot does not contain newly created card %s", created.ID)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	s, _ := newTestServer(t)

	if rec := doRequest(s, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("GET /healthz = %d", rec.Code)
	}
	if rec := doRequest(s, http.MethodGet, "/readyz", ""); rec.Code != http.StatusOK {
		t.Errorf("GET /readyz = %d", rec.Code)
	}

	rec := doRequest(s, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /metrics = %d", rec.Code)
	}
	var metrics map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &metrics); err != nil {
		t.Fatalf("decode metrics: %v", err)
	}
	if _, ok := metrics["total_requests"]; !ok {
		t.Error("metrics missing total_requests")
	}
}
