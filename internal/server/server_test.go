package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/nvenk/divvy/internal/docstore/sqlite"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	srv := httptest.NewServer(New(store).Router())
	t.Cleanup(func() {
		srv.Close()
		store.Close()
	})
	return srv
}

func postJSON(t *testing.T, url string, payload any) (*http.Response, map[string]any) {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp, decodeBody(t, resp)
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return body
}

func TestRootAndStatus(t *testing.T) {
	srv := setupTestServer(t)

	var root map[string]any
	if resp := getJSON(t, srv.URL+"/", &root); resp.StatusCode != http.StatusOK {
		t.Errorf("GET / status = %d", resp.StatusCode)
	}

	var status map[string]any
	getJSON(t, srv.URL+"/test", &status)
	if status["database"] != "connected" {
		t.Errorf("database status = %v, want connected", status["database"])
	}
}

func TestSchemaEndpoint(t *testing.T) {
	srv := setupTestServer(t)

	var body map[string]any
	getJSON(t, srv.URL+"/schema", &body)

	schemas, ok := body["models"].(map[string]any)
	if !ok {
		t.Fatalf("schema response missing models: %v", body)
	}
	for _, name := range []string{"appuser", "group", "expense"} {
		if _, ok := schemas[name]; !ok {
			t.Errorf("schema missing %q", name)
		}
	}
}

func TestCreateAndListGroups(t *testing.T) {
	srv := setupTestServer(t)

	resp, body := postJSON(t, srv.URL+"/groups", map[string]any{
		"name":       "Roommates",
		"created_by": "owner@example.com",
		"members":    []string{"a@example.com"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST /groups status = %d, body %v", resp.StatusCode, body)
	}
	if body["id"] == "" {
		t.Fatal("expected non-empty group id")
	}

	var groups []map[string]any
	getJSON(t, srv.URL+"/groups?member=owner@example.com", &groups)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if groups[0]["id"] != body["id"] {
		t.Errorf("serialized id = %v, want %v", groups[0]["id"], body["id"])
	}

	members, _ := groups[0]["members"].([]any)
	if len(members) != 2 || members[1] != "owner@example.com" {
		t.Errorf("members = %v, want creator appended", members)
	}

	var none []map[string]any
	getJSON(t, srv.URL+"/groups?member=stranger@example.com", &none)
	if len(none) != 0 {
		t.Errorf("got %d groups for non-member, want 0", len(none))
	}
}

func TestCreateGroupRejectsBadPayload(t *testing.T) {
	srv := setupTestServer(t)

	resp, body := postJSON(t, srv.URL+"/groups", map[string]any{
		"name":       "Bad",
		"created_by": "not-an-email",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if body["error"] != "validation_failed" {
		t.Errorf("error = %v, want validation_failed", body["error"])
	}
}

func TestCreateExpenseRoundTrip(t *testing.T) {
	srv := setupTestServer(t)

	_, group := postJSON(t, srv.URL+"/groups", map[string]any{
		"name":       "Trip",
		"created_by": "a@example.com",
		"members":    []string{"b@example.com"},
	})
	groupID := group["id"].(string)

	resp, body := postJSON(t, srv.URL+"/expenses", map[string]any{
		"group_id":    groupID,
		"description": "Hotel",
		"amount":      100,
		"paid_by":     "a@example.com",
		"splits": []map[string]any{
			{"user": "a@example.com", "type": "exact", "share": 30},
			{"user": "b@example.com", "type": "equal"},
		},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST /expenses status = %d, body %v", resp.StatusCode, body)
	}

	shares, ok := body["normalized_splits"].([]any)
	if !ok || len(shares) != 2 {
		t.Fatalf("normalized_splits = %v, want 2 shares", body["normalized_splits"])
	}
	first := shares[0].(map[string]any)
	second := shares[1].(map[string]any)
	if first["amount_owed"] != "30" || second["amount_owed"] != "70" {
		t.Errorf("shares = %v / %v, want 30 / 70", first["amount_owed"], second["amount_owed"])
	}

	var expenses []map[string]any
	getJSON(t, srv.URL+"/expenses?group_id="+groupID, &expenses)
	if len(expenses) != 1 {
		t.Fatalf("got %d expenses, want 1", len(expenses))
	}
	if expenses[0]["id"] != body["id"] {
		t.Errorf("serialized id = %v, want %v", expenses[0]["id"], body["id"])
	}
	if expenses[0]["currency"] != "USD" {
		t.Errorf("currency = %v, want group default USD", expenses[0]["currency"])
	}
}

func TestCreateExpenseSplitErrors(t *testing.T) {
	srv := setupTestServer(t)

	_, group := postJSON(t, srv.URL+"/groups", map[string]any{
		"name":       "Trip",
		"created_by": "a@example.com",
		"members":    []string{"b@example.com"},
	})
	groupID := group["id"].(string)

	tests := []struct {
		name      string
		splits    []map[string]any
		wantError string
	}{
		{
			name: "percentages over 100",
			splits: []map[string]any{
				{"user": "a@example.com", "type": "percentage", "share": 60},
				{"user": "b@example.com", "type": "percentage", "share": 60},
			},
			wantError: "split_overflow",
		},
		{
			name: "unaccounted remainder",
			splits: []map[string]any{
				{"user": "a@example.com", "type": "exact", "share": 7},
			},
			wantError: "split_shortfall",
		},
		{
			name: "duplicate user",
			splits: []map[string]any{
				{"user": "a@example.com", "type": "equal"},
				{"user": "a@example.com", "type": "exact", "share": 1},
			},
			wantError: "duplicate_split_user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := postJSON(t, srv.URL+"/expenses", map[string]any{
				"group_id":    groupID,
				"description": "Bad",
				"amount":      10,
				"paid_by":     "a@example.com",
				"splits":      tt.splits,
			})
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			if body["error"] != tt.wantError {
				t.Errorf("error = %v, want %s", body["error"], tt.wantError)
			}
		})
	}
}

func TestCreateExpenseUnknownGroup(t *testing.T) {
	srv := setupTestServer(t)

	resp, body := postJSON(t, srv.URL+"/expenses", map[string]any{
		"group_id":    "missing",
		"description": "Ghost",
		"amount":      10,
		"paid_by":     "a@example.com",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if body["error"] != "validation_failed" {
		t.Errorf("error = %v, want validation_failed", body["error"])
	}
}

func TestRegisterUserEndpoint(t *testing.T) {
	srv := setupTestServer(t)

	resp, body := postJSON(t, srv.URL+"/users", map[string]any{
		"name":  "Alice",
		"email": "alice@example.com",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST /users status = %d, body %v", resp.StatusCode, body)
	}

	var users []map[string]any
	getJSON(t, srv.URL+"/users", &users)
	if len(users) != 1 || users[0]["email"] != "alice@example.com" {
		t.Errorf("users = %v", users)
	}
	if users[0]["default_currency"] != "USD" {
		t.Errorf("default_currency = %v, want USD", users[0]["default_currency"])
	}
}
