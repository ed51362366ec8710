package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"chatter/internal/core/hotlist"
	"chatter/internal/platform/config"
	phttp "chatter/internal/platform/net/http"
	"chatter/internal/platform/net/middleware"
	"chatter/internal/platform/store"

	"github.com/go-chi/chi/v5"
)

type emptyRows struct{}

func (emptyRows) Next() bool        { return false }
func (emptyRows) Scan(...any) error { return errors.New("no rows") }
func (emptyRows) Err() error        { return nil }
func (emptyRows) Close()            {}
func (emptyRows) Columns() []string { return nil }

// emptyDB answers every query with zero rows
type emptyDB struct{}

func (emptyDB) Exec(context.Context, string, ...any) (store.CommandTag, error) {
	return nil, errors.New("read only")
}
func (emptyDB) Query(context.Context, string, ...any) (store.Rows, error) { return emptyRows{}, nil }
func (emptyDB) QueryRow(context.Context, string, ...any) store.Row        { return nil }
func (d emptyDB) Tx(_ context.Context, fn func(store.RowQuerier) error) error {
	return fn(d)
}

func newAPI(t *testing.T) http.Handler {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, Options{
		Config: config.New(),
		Store:  &store.Store{PG: emptyDB{}},
		CORS:   middleware.CORSOptions{},
		Rate:   "100-M",
	})
	return r.Mux()
}

func TestMountRoutes(t *testing.T) {
	t.Parallel()

	h := newAPI(t)
	cases := []struct {
		path string
		code int
	}{
		{"/health", http.StatusOK},
		{"/readyz", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/version", http.StatusOK},
		{"/", http.StatusOK},
		{"/api/v1/hotlist", http.StatusOK},
		{"/api/docs/doc.json", http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rec.Code != tc.code {
			t.Fatalf("%s: status = %d, want %d", tc.path, rec.Code, tc.code)
		}
	}
}

func TestHotlistEmptyWindow(t *testing.T) {
	t.Parallel()

	h := newAPI(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?json=1", nil))

	var hl map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &hl); err != nil {
		t.Fatal(err)
	}
	if hl["message"] != hotlist.EmptyMessage {
		t.Fatalf("body = %v", hl)
	}
	for _, k := range []string{"articles", "clusters"} {
		if _, ok := hl[k]; ok {
			t.Fatalf("%s present on empty list", k)
		}
	}
	if _, ok := hl["generated_at"]; !ok {
		t.Fatal("generated_at missing")
	}
}
