package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rafi0167/Bank-App/internal/auth"
	"github.com/rafi0167/Bank-App/internal/domain"
	"github.com/rafi0167/Bank-App/internal/httpapi"
	"github.com/rafi0167/Bank-App/internal/memory"
)

// newTestServer wires the full stack over an in-memory store.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	accounts := memory.NewAccountRepository(store)
	transactions := memory.NewTransactionRepository(store)
	loans := memory.NewLoanRepository(store)
	cards := memory.NewCardRepository(store)
	kyc := memory.NewKYCRepository(store)
	directory := memory.NewDirectoryRepository(store)
	txManager := memory.NewTransactionManager(store)

	if err := domain.EnsureSeedData(context.Background(), directory); err != nil {
		t.Fatalf("failed to seed directories: %v", err)
	}

	ledger := domain.NewLedger(accounts, transactions, txManager, domain.FloorPolicy{}, time.Second, nil)
	queries := domain.NewQueries(accounts, transactions, 100)
	registrar := domain.NewRegistrar(users, accounts, kyc, txManager)
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)

	server := httpapi.NewServer(users, accounts, loans, cards, kyc, directory, ledger, queries, registrar, tokens)
	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var fields map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&fields); err != nil {
		// List endpoints return arrays; callers decode those themselves.
		fields = nil
	}
	return resp, fields
}

func register(t *testing.T, ts *httptest.Server, email string) (token, accountID string) {
	t.Helper()

	resp, fields := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]string{
		"name":      "Test User",
		"email":     email,
		"password":  "hunter22",
		"nid_image": "https://example.com/nid.jpg",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, want 201", resp.StatusCode)
	}

	if err := json.Unmarshal(fields["token"], &token); err != nil {
		t.Fatalf("register response missing token: %v", err)
	}

	var account struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(fields["account"], &account); err != nil {
		t.Fatalf("register response missing account: %v", err)
	}
	return token, account.ID
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	register(t, ts, "alice@example.com")

	// Duplicate email is a conflict.
	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]string{
		"name":     "Alice Again",
		"email":    "alice@example.com",
		"password": "hunter22",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", resp.StatusCode)
	}

	// Correct credentials log in.
	resp, fields := doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "hunter22",
	})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("login status = %d, want 200", resp.StatusCode)
	}
	if _, ok := fields["token"]; !ok {
		t.Error("login response missing token")
	}

	// Wrong password and unknown email answer identically.
	wrongPass, _ := doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	unknownEmail, _ := doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "hunter22",
	})
	if wrongPass.StatusCode != http.StatusUnauthorized || unknownEmail.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad login statuses = %d, %d, want 401, 401", wrongPass.StatusCode, unknownEmail.StatusCode)
	}
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name  string
		token string
	}{
		{name: "no token", token: ""},
		{name: "garbage token", token: "not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doJSON(t, http.MethodGet, ts.URL+"/api/accounts", tt.token, nil)
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", resp.StatusCode)
			}
		})
	}
}

func TestTransactionFlow(t *testing.T) {
	ts := newTestServer(t)
	token, accountID := register(t, ts, "bob@example.com")

	// Credit 100.00.
	resp, fields := doJSON(t, http.MethodPost, ts.URL+"/api/transactions", token, map[string]string{
		"account_id": accountID,
		"kind":       "credit",
		"amount":     "100.00",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("credit status = %d, want 201", resp.StatusCode)
	}
	var balance string
	if err := json.Unmarshal(fields["new_balance"], &balance); err != nil || balance != "100.00" {
		t.Errorf("new_balance = %q, want 100.00", balance)
	}

	// Debit 30.00.
	resp, fields = doJSON(t, http.MethodPost, ts.URL+"/api/transactions", token, map[string]string{
		"account_id": accountID,
		"kind":       "debit",
		"amount":     "30.00",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("debit status = %d, want 201", resp.StatusCode)
	}
	if err := json.Unmarshal(fields["new_balance"], &balance); err != nil || balance != "70.00" {
		t.Errorf("new_balance = %q, want 70.00", balance)
	}

	// Overdraft attempt conflicts.
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/transactions", token, map[string]string{
		"account_id": accountID,
		"kind":       "debit",
		"amount":     "1000.00",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("overdraft status = %d, want 409", resp.StatusCode)
	}

	// History holds the two committed entries, newest first.
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	listResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("list request failed: %v", err)
	}
	defer listResp.Body.Close()

	var transactions []struct {
		Kind   string `json:"kind"`
		Amount string `json:"amount"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&transactions); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	if len(transactions) != 2 {
		t.Fatalf("history length = %d, want 2", len(transactions))
	}
	if transactions[0].Kind != "debit" || transactions[1].Kind != "credit" {
		t.Errorf("history order = %s, %s; want debit, credit", transactions[0].Kind, transactions[1].Kind)
	}
}

func TestTransactionValidation(t *testing.T) {
	ts := newTestServer(t)
	token, accountID := register(t, ts, "carol@example.com")

	tests := []struct {
		name string
		body map[string]string
		want int
	}{
		{
			name: "bad account id",
			body: map[string]string{"account_id": "nope", "kind": "credit", "amount": "10"},
			want: http.StatusBadRequest,
		},
		{
			name: "bad amount",
			body: map[string]string{"account_id": accountID, "kind": "credit", "amount": "ten"},
			want: http.StatusBadRequest,
		},
		{
			name: "zero amount",
			body: map[string]string{"account_id": accountID, "kind": "credit", "amount": "0"},
			want: http.StatusBadRequest,
		},
		{
			name: "bad kind",
			body: map[string]string{"account_id": accountID, "kind": "withdrawal", "amount": "10"},
			want: http.StatusBadRequest,
		},
		{
			name: "unknown field",
			body: map[string]string{"account_id": accountID, "kind": "credit", "amount": "10", "extra": "field"},
			want: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/transactions", token, tt.body)
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestTransactionForeignAccount(t *testing.T) {
	ts := newTestServer(t)
	_, aliceAccount := register(t, ts, "alice@example.com")
	bobToken, _ := register(t, ts, "bob@example.com")

	// Bob cannot write to Alice's account; the answer looks like a miss.
	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/transactions", bobToken, map[string]string{
		"account_id": aliceAccount,
		"kind":       "credit",
		"amount":     "10.00",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("foreign account status = %d, want 404", resp.StatusCode)
	}

	missing, _ := doJSON(t, http.MethodPost, ts.URL+"/api/transactions", bobToken, map[string]string{
		"account_id": "00000000-0000-0000-0000-000000000001",
		"kind":       "credit",
		"amount":     "10.00",
	})
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("missing account status = %d, want 404", missing.StatusCode)
	}
}

func TestLoansAndCards(t *testing.T) {
	ts := newTestServer(t)
	token, _ := register(t, ts, "dave@example.com")

	resp, fields := doJSON(t, http.MethodPost, ts.URL+"/api/loans", token, map[string]any{
		"amount":          "10000.00",
		"duration_months": 12,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("loan status = %d, want 201", resp.StatusCode)
	}
	var rate, status string
	json.Unmarshal(fields["interest_rate"], &rate)
	json.Unmarshal(fields["status"], &status)
	if rate != "5.5" {
		t.Errorf("default interest_rate = %q, want 5.5", rate)
	}
	if status != "pending" {
		t.Errorf("loan status = %q, want pending", status)
	}

	resp, fields = doJSON(t, http.MethodPost, ts.URL+"/api/cards", token, map[string]string{
		"card_type": "credit",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("card status = %d, want 201", resp.StatusCode)
	}
	var cardNumber, cvv, expiry string
	json.Unmarshal(fields["card_number"], &cardNumber)
	json.Unmarshal(fields["cvv"], &cvv)
	json.Unmarshal(fields["expiry_date"], &expiry)
	if len(cardNumber) != 16 {
		t.Errorf("card number length = %d, want 16", len(cardNumber))
	}
	if len(cvv) != 3 {
		t.Errorf("cvv length = %d, want 3", len(cvv))
	}
	if expiry != "12/28" {
		t.Errorf("default expiry = %q, want 12/28", expiry)
	}

	// Listing cards never shows the CVV.
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/cards", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	listResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("list request failed: %v", err)
	}
	defer listResp.Body.Close()

	var cards []map[string]any
	if err := json.NewDecoder(listResp.Body).Decode(&cards); err != nil {
		t.Fatalf("failed to decode cards: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("card count = %d, want 1", len(cards))
	}
	if _, ok := cards[0]["cvv"]; ok {
		t.Error("card listing exposes the CVV")
	}
}

func TestKYCLifecycle(t *testing.T) {
	ts := newTestServer(t)
	token, _ := register(t, ts, "erin@example.com")

	resp, fields := doJSON(t, http.MethodGet, ts.URL+"/api/kyc", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("kyc status = %d, want 200", resp.StatusCode)
	}
	var status string
	json.Unmarshal(fields["status"], &status)
	if status != "pending" {
		t.Errorf("initial kyc status = %q, want pending", status)
	}

	resp, fields = doJSON(t, http.MethodPut, ts.URL+"/api/kyc", token, map[string]any{
		"documents": []string{"https://example.com/passport.jpg"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("kyc update status = %d, want 200", resp.StatusCode)
	}
	var documents []string
	json.Unmarshal(fields["documents"], &documents)
	if len(documents) != 1 || documents[0] != "https://example.com/passport.jpg" {
		t.Errorf("documents after update = %v", documents)
	}
}

func TestPublicDirectories(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/employees", "/api/bank-info"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s failed: %v", path, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, resp.StatusCode)
			continue
		}

		var entries []map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
			t.Fatalf("failed to decode %s: %v", path, err)
		}
		if len(entries) == 0 {
			t.Errorf("%s returned no seeded entries", path)
		}
	}
}

func TestProfile(t *testing.T) {
	ts := newTestServer(t)
	token, _ := register(t, ts, "frank@example.com")

	resp, fields := doJSON(t, http.MethodGet, ts.URL+"/api/user/profile", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("profile status = %d, want 200", resp.StatusCode)
	}
	var email string
	json.Unmarshal(fields["email"], &email)
	if email != "frank@example.com" {
		t.Errorf("profile email = %q", email)
	}
	if _, ok := fields["password_hash"]; ok {
		t.Error("profile exposes the password hash")
	}
}
