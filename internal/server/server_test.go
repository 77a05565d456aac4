package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akashbangaru2005/pro-math-calculator/internal/calc"
	"github.com/akashbangaru2005/pro-math-calculator/internal/store"
)

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	st, err := store.NewStore(filepath.Join(t.TempDir(), "h.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return New(calc.New(calc.DefaultLimits), st, Options{HistoryLimit: 3}), st
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestEvaluate(t *testing.T) {
	s, st := newTestServer(t)
	h := s.Handler()

	rec := do(t, h, http.MethodPost, "/api/evaluate", `{"expression":"sin(30)+√"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error":true`) {
		t.Fatalf("want failure body, got %s", rec.Body.String())
	}

	rec = do(t, h, http.MethodPost, "/api/evaluate", `{"expression":"2×(3+4"}`)
	var got struct {
		Result  *float64 `json:"result"`
		Display string   `json:"display"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Result == nil || *got.Result != 14 || got.Display != "14" {
		t.Fatalf("got %+v", got)
	}

	rec = do(t, h, http.MethodPost, "/api/evaluate", `{"expression":"1/0"}`)
	if !strings.Contains(rec.Body.String(), `"result":null`) || !strings.Contains(rec.Body.String(), `"display":"Infinity"`) {
		t.Fatalf("non-finite body: %s", rec.Body.String())
	}

	// successes only
	if n, _ := st.Count(); n != 2 {
		t.Fatalf("history count %d, want 2", n)
	}
}

func TestEvaluate_BadRequests(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	if rec := do(t, h, http.MethodGet, "/api/evaluate", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/evaluate", `{"expr":"1"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown field status %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/evaluate", `{"expression":"1"}{}`); rec.Code != http.StatusBadRequest {
		t.Errorf("trailing data status %d", rec.Code)
	}

	small := New(calc.New(calc.DefaultLimits), nil, Options{MaxBodyBytes: 8})
	if rec := do(t, small.Handler(), http.MethodPost, "/api/evaluate", `{"expression":"1+1+1+1"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("oversized body status %d", rec.Code)
	}
}

func TestSaveAndListHistory(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	for _, body := range []string{
		`{"expression":"1+1","result":2}`,
		`{"expression":"1/0","result":null}`,
		`{"expression":"sin(30)","result":"0.5"}`,
		`{"expression":"0.1+0.2","result":0.30000000000000004}`,
	} {
		if rec := do(t, h, http.MethodPost, "/api/saveHistory", body); rec.Code != http.StatusOK {
			t.Fatalf("save %s: status %d %s", body, rec.Code, rec.Body.String())
		}
	}
	if rec := do(t, h, http.MethodPost, "/api/saveHistory", `{"expression":"x","result":true}`); rec.Code != http.StatusBadRequest {
		t.Errorf("bool result status %d", rec.Code)
	}

	rec := do(t, h, http.MethodGet, "/api/history", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var entries []store.HistoryEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []struct{ expr, result string }{
		{"0.1+0.2", "0.30000000000000004"},
		{"sin(30)", "0.5"},
		{"1/0", "null"},
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, w := range want {
		if entries[i].Expression != w.expr || entries[i].Result != w.result {
			t.Errorf("entry %d = %+v, want %s = %s", i, entries[i], w.expr, w.result)
		}
	}
}

func TestHistory_EmptyIsArray(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodGet, "/api/history", "")
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("got %q", got)
	}
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || !bytes.Contains(rec.Body.Bytes(), []byte(`"status":"ok"`)) {
		t.Fatalf("got %d %s", rec.Code, rec.Body.String())
	}
}

type failingRecorder struct{}

func (failingRecorder) SaveHistory(string, string) error { return store.ErrClosed }
func (failingRecorder) ListHistory(int) ([]store.HistoryEntry, error) {
	return nil, store.ErrClosed
}

func TestHistoryFailures(t *testing.T) {
	s := New(calc.New(calc.DefaultLimits), failingRecorder{}, Options{})
	h := s.Handler()

	if rec := do(t, h, http.MethodPost, "/api/saveHistory", `{"expression":"1","result":1}`); rec.Code != http.StatusInternalServerError {
		t.Errorf("save status %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/api/history", ""); rec.Code != http.StatusInternalServerError {
		t.Errorf("list status %d", rec.Code)
	}
	// evaluation still answers when recording fails
	rec := do(t, h, http.MethodPost, "/api/evaluate", `{"expression":"2+2"}`)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"display":"4"`) {
		t.Errorf("evaluate got %d %s", rec.Code, rec.Body.String())
	}
}
