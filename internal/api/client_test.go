package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tally/internal/core"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, nil), srv
}

func TestLoginSendsFormCredentials(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("Content-Type = %q, want form encoding", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("username"); got != "ada@example.com" {
			t.Errorf("username = %q", got)
		}
		if got := r.PostForm.Get("password"); got != "hunter2" {
			t.Errorf("password = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123"})
	}))

	token, err := client.Login(context.Background(), "ada@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token != "tok-123" {
		t.Errorf("token = %q, want tok-123", token)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(core.UserProfile{Email: "ada@example.com", Streak: 3})
	}))

	client.SetToken("tok-456")
	profile, err := client.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if gotAuth != "Bearer tok-456" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if profile.Email != "ada@example.com" || profile.Streak != 3 {
		t.Errorf("profile = %+v", profile)
	}

	client.ClearToken()
	if tok := client.Token(); tok != "" {
		t.Errorf("Token after ClearToken = %q", tok)
	}
}

func TestServerDetailSurfaced(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Email already registered"})
	}))

	err := client.Signup(context.Background(), "ada@example.com", "hunter2")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Email already registered" {
		t.Errorf("error = %q, want server detail", err)
	}
}

func TestGenericFallbackWithoutDetail(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))

	_, err := client.ListTasks(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "server returned status 500" {
		t.Errorf("error = %q, want generic fallback", err)
	}
}

func TestIsUnauthorized(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
	}))

	_, err := client.CurrentUser(context.Background())
	if !IsUnauthorized(err) {
		t.Errorf("IsUnauthorized(%v) = false, want true", err)
	}
	if IsUnauthorized(nil) {
		t.Error("IsUnauthorized(nil) = true")
	}
}

func TestCreateTransactionWire(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["description"] != "Lunch" || body["type"] != "expense" {
			t.Errorf("request body = %v", body)
		}
		if amount, ok := body["amount"].(float64); !ok || amount != 25000 {
			t.Errorf("amount = %v, want JSON number 25000", body["amount"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":          7,
			"description": "Lunch",
			"amount":      25000,
			"type":        "expense",
			"category":    "Food",
			"created_at":  time.Now().UTC().Format(time.RFC3339),
		})
	}))

	tx, err := client.CreateTransaction(context.Background(), "Lunch", decimal.NewFromInt(25000), core.Expense)
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if tx.ID != 7 || tx.Category != "Food" {
		t.Errorf("transaction = %+v, want server-assigned id and category", tx)
	}
	if !tx.Amount.Equal(decimal.NewFromInt(25000)) {
		t.Errorf("amount = %s, want 25000", tx.Amount)
	}
}

func TestDecomposeTask(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/tasks/42/decompose" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":       42,
			"title":    "Plan website",
			"priority": "High",
			"subtasks": []string{"Sitemap & User Flow", "UI Design in Figma"},
		})
	}))

	task, err := client.DecomposeTask(context.Background(), 42)
	if err != nil {
		t.Fatalf("DecomposeTask: %v", err)
	}
	if !task.Decomposed() {
		t.Errorf("task = %+v, want populated subtasks", task)
	}
}
