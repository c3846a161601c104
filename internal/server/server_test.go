package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harborlane/specials/internal/auth"
	"github.com/harborlane/specials/internal/models"
	"github.com/harborlane/specials/internal/service"
	"github.com/harborlane/specials/internal/storage"
	"github.com/harborlane/specials/internal/storage/sqlite"
)

const testPassword = "sw0rdfish"

func setupServer(t *testing.T, store storage.Store) *httptest.Server {
	t.Helper()

	if store == nil {
		tempDir, err := os.MkdirTemp("", "specials-server-test-*")
		if err != nil {
			t.Fatalf("failed to create temp dir: %v", err)
		}
		t.Cleanup(func() { os.RemoveAll(tempDir) })

		s, err := sqlite.New(filepath.Join(tempDir, "test.db"))
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}
		t.Cleanup(func() { s.Close() })
		store = s
	}

	logger := slog.Default()
	sessions := auth.NewSessionManager("test-session-secret-0123456789", time.Hour)
	verifier := auth.NewPasswordVerifier(testPassword, "")

	srv := New(
		service.NewSpecialService(store, logger),
		service.NewAuthService(verifier, sessions, logger),
		sessions,
		logger,
	)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func login(t *testing.T, ts *httptest.Server, password string) (*http.Response, map[string]any) {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"password": password})
	resp, err := http.Post(ts.URL+"/api/admin/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	return resp, decoded
}

func authedRequest(t *testing.T, ts *httptest.Server, token, method, path string, body []byte) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestLogin(t *testing.T) {
	ts := setupServer(t, nil)

	t.Run("correct password returns a token", func(t *testing.T) {
		resp, body := login(t, ts, testPassword)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		if body["success"] != true {
			t.Errorf("success = %v, want true", body["success"])
		}
		token, _ := body["token"].(string)
		if token == "" {
			t.Error("expected a session token in the response")
		}
	})

	t.Run("trailing whitespace accepted", func(t *testing.T) {
		resp, _ := login(t, ts, testPassword+" \n")
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want 200 (both sides trimmed)", resp.StatusCode)
		}
	})

	t.Run("wrong password is 401", func(t *testing.T) {
		resp, body := login(t, ts, "letmein")
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
		if body["error"] != "Invalid password" {
			t.Errorf("error = %v, want Invalid password", body["error"])
		}
	})

	t.Run("missing password is 400", func(t *testing.T) {
		resp, body := login(t, ts, "")
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
		if body["error"] != "Password is required" {
			t.Errorf("error = %v, want Password is required", body["error"])
		}
	})
}

// deadStore fails the test if any storage method is reached.
type deadStore struct {
	t *testing.T
}

func (d *deadStore) UpsertSpecial(ctx context.Context, special *models.DailySpecial) error {
	d.t.Error("storage reached by an unauthorized request")
	return nil
}

func (d *deadStore) GetSpecialByDate(ctx context.Context, date string) (*models.DailySpecial, error) {
	d.t.Error("storage reached by an unauthorized request")
	return nil, storage.ErrNotFound
}

func (d *deadStore) GetLatestSpecial(ctx context.Context) (*models.DailySpecial, error) {
	d.t.Error("storage reached by an unauthorized request")
	return nil, storage.ErrNotFound
}

func (d *deadStore) UpsertBoard(ctx context.Context, board *models.MenuBoard) error {
	d.t.Error("storage reached by an unauthorized request")
	return nil
}

func (d *deadStore) GetBoard(ctx context.Context, date string) (*models.MenuBoard, error) {
	d.t.Error("storage reached by an unauthorized request")
	return nil, storage.ErrNotFound
}

func (d *deadStore) Close() error { return nil }

func TestAdminRoutesRequireSession(t *testing.T) {
	ts := setupServer(t, &deadStore{t: t})

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/specials"},
		{http.MethodPut, "/api/admin/specials"},
		{http.MethodGet, "/api/admin/special"},
		{http.MethodPost, "/api/admin/special"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path+" without token", func(t *testing.T) {
			resp := authedRequest(t, ts, "", p.method, p.path, []byte(`{}`))
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", resp.StatusCode)
			}
			var body map[string]string
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body["error"] == "" {
				t.Error("expected an error field in the 401 body")
			}
		})
	}

	t.Run("static placeholder bearer string rejected", func(t *testing.T) {
		resp := authedRequest(t, ts, "authenticated", http.MethodGet, "/api/admin/specials", nil)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401 for the old fixed bearer value", resp.StatusCode)
		}
	})
}

func TestBoardAPI(t *testing.T) {
	ts := setupServer(t, nil)
	_, loginBody := login(t, ts, testPassword)
	token := loginBody["token"].(string)

	t.Run("GET before any save returns empty defaults", func(t *testing.T) {
		resp := authedRequest(t, ts, token, http.MethodGet, "/api/admin/specials", nil)
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var body map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body["soup_name"] != "" || body["soup_price"] != float64(0) {
			t.Errorf("soup = %v/%v, want empty defaults", body["soup_name"], body["soup_price"])
		}
	})

	t.Run("PUT then GET round trip", func(t *testing.T) {
		payload := []byte(`{
			"soup_name": " Tomato Bisque ",
			"soup_price": 6.5,
			"lunch_name": "Club Sandwich",
			"lunch_price": 12,
			"dinner_name": "Ribeye",
			"dinner_price": 29.99,
			"vegetable_name": "Slaw",
			"vegetable_price": 4
		}`)
		resp := authedRequest(t, ts, token, http.MethodPut, "/api/admin/specials", payload)
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("PUT status = %d, want 200", resp.StatusCode)
		}
		var putBody map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&putBody); err != nil {
			t.Fatalf("failed to decode PUT body: %v", err)
		}
		if putBody["success"] != true {
			t.Errorf("success = %v, want true", putBody["success"])
		}

		getResp := authedRequest(t, ts, token, http.MethodGet, "/api/admin/specials", nil)
		defer getResp.Body.Close()
		var board map[string]any
		if err := json.NewDecoder(getResp.Body).Decode(&board); err != nil {
			t.Fatalf("failed to decode GET body: %v", err)
		}
		if board["soup_name"] != "Tomato Bisque" {
			t.Errorf("soup_name = %v, want trimmed Tomato Bisque", board["soup_name"])
		}
		if board["dinner_price"] != 29.99 {
			t.Errorf("dinner_price = %v, want 29.99 (major units)", board["dinner_price"])
		}
	})

	t.Run("missing name field is 400", func(t *testing.T) {
		resp := authedRequest(t, ts, token, http.MethodPut, "/api/admin/specials",
			[]byte(`{"soup_name": "Tomato", "lunch_name": "Club", "vegetable_name": "Slaw"}`))
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})

	t.Run("negative price is 400", func(t *testing.T) {
		resp := authedRequest(t, ts, token, http.MethodPut, "/api/admin/specials",
			[]byte(`{"soup_name": "Tomato", "soup_price": -2, "lunch_name": "Club", "dinner_name": "Ribeye", "vegetable_name": "Slaw"}`))
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})
}

func TestSpecialFormEndpoint(t *testing.T) {
	ts := setupServer(t, nil)
	_, loginBody := login(t, ts, testPassword)
	token := loginBody["token"].(string)

	postForm := func(t *testing.T, form url.Values) (*http.Response, map[string]string) {
		t.Helper()
		req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/admin/special",
			strings.NewReader(form.Encode()))
		if err != nil {
			t.Fatalf("failed to build request: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		var body map[string]string
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		return resp, body
	}

	t.Run("valid submission saves and reads back", func(t *testing.T) {
		resp, body := postForm(t, url.Values{
			"special_date":  {"2024-06-01"},
			"title":         {"Salmon"},
			"description":   {"Pan-seared"},
			"price_major":   {"26.00"},
			"currency_code": {"usd"},
			"highlights":    {"Local catch\nChef favorite"},
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body: %v)", resp.StatusCode, body)
		}
		if body["status"] != "success" || body["message"] != "Daily special saved." {
			t.Errorf("body = %v, want success status", body)
		}

		getResp := authedRequest(t, ts, token, http.MethodGet, "/api/admin/special", nil)
		defer getResp.Body.Close()

		var wrapper struct {
			Record *struct {
				SpecialDate  string   `json:"special_date"`
				Title        string   `json:"title"`
				PriceCents   int64    `json:"price_cents"`
				CurrencyCode string   `json:"currency_code"`
				Highlights   []string `json:"highlights"`
			} `json:"record"`
		}
		if err := json.NewDecoder(getResp.Body).Decode(&wrapper); err != nil {
			t.Fatalf("failed to decode record: %v", err)
		}
		if wrapper.Record == nil {
			t.Fatal("record = null, want the saved special")
		}
		if wrapper.Record.PriceCents != 2600 {
			t.Errorf("price_cents = %d, want 2600", wrapper.Record.PriceCents)
		}
		if wrapper.Record.CurrencyCode != "USD" {
			t.Errorf("currency_code = %q, want USD", wrapper.Record.CurrencyCode)
		}
		if len(wrapper.Record.Highlights) != 2 || wrapper.Record.Highlights[0] != "Local catch" {
			t.Errorf("highlights = %v, want the two submitted lines", wrapper.Record.Highlights)
		}
	})

	t.Run("zero price rejected with message", func(t *testing.T) {
		resp, body := postForm(t, url.Values{
			"special_date": {"2024-06-01"},
			"title":        {"Salmon"},
			"description":  {"Pan-seared"},
			"price_major":  {"0"},
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
		if body["status"] != "error" || body["message"] != "Price must be a positive number." {
			t.Errorf("body = %v, want positive-price validation message", body)
		}
	})

	t.Run("missing title rejected", func(t *testing.T) {
		resp, body := postForm(t, url.Values{
			"special_date": {"2024-06-01"},
			"description":  {"Pan-seared"},
			"price_major":  {"26.00"},
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
		if body["message"] != "Title is required." {
			t.Errorf("message = %q, want Title is required.", body["message"])
		}
	})
}

func TestPublicToday(t *testing.T) {
	ts := setupServer(t, nil)
	_, loginBody := login(t, ts, testPassword)
	token := loginBody["token"].(string)

	t.Run("empty table returns null record without auth", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/specials/today")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var body map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body["record"] != nil {
			t.Errorf("record = %v, want null", body["record"])
		}
	})

	t.Run("falls back to the latest saved record", func(t *testing.T) {
		form := url.Values{
			"special_date": {"2024-06-01"},
			"title":        {"Salmon"},
			"description":  {"Pan-seared"},
			"price_major":  {"26.00"},
		}
		req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/admin/special",
			strings.NewReader(form.Encode()))
		if err != nil {
			t.Fatalf("failed to build request: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		saveResp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("save failed: %v", err)
		}
		saveResp.Body.Close()

		resp, err := http.Get(ts.URL + "/api/specials/today")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		var body struct {
			Record       map[string]any `json:"record"`
			PriceDisplay string         `json:"price_display"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body.Record == nil {
			t.Fatal("record = null, want fallback to latest row")
		}
		if body.Record["title"] != "Salmon" {
			t.Errorf("title = %v, want Salmon", body.Record["title"])
		}
		if !strings.Contains(body.PriceDisplay, "26.00") {
			t.Errorf("price_display = %q, want formatted 26.00", body.PriceDisplay)
		}
	})
}

func TestHealthz(t *testing.T) {
	ts := setupServer(t, nil)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
