package httpkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "chatter/internal/platform/errors"
	phttp "chatter/internal/platform/net/http"
	"chatter/internal/platform/net/middleware"

	"github.com/go-chi/chi/v5"
)

func newRouter(mw []func(http.Handler) http.Handler, mount func(Router)) http.Handler {
	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	MountAPIV1(r, mw, mount)
	return r.Mux()
}

func TestMountAPIV1AndCall(t *testing.T) {
	t.Parallel()

	h := newRouter(CommonStack(middleware.CORSOptions{}), func(api Router) {
		Get(api, "/ping", func(*http.Request) (any, error) { return map[string]string{"pong": "yes"}, nil })
		Get(api, "/bare", func(*http.Request) (any, error) { return Bare([]int{1, 2}), nil })
		Get(api, "/fail", func(*http.Request) (any, error) {
			return nil, perr.NotFoundf("no such thing")
		})
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var env struct {
		Data      map[string]string `json:"data"`
		RequestID string            `json:"request_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Data["pong"] != "yes" || env.RequestID == "" {
		t.Fatalf("envelope = %+v", env)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bare", nil))
	if got := rec.Body.String(); got != "[1,2]\n" {
		t.Fatalf("bare body = %q", got)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/fail", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestLimited(t *testing.T) {
	t.Parallel()

	if got, base := len(Limited(middleware.CORSOptions{}, "")), len(CommonStack(middleware.CORSOptions{})); got != base {
		t.Fatalf("empty rate added middleware: %d vs %d", got, base)
	}
	h := newRouter(Limited(middleware.CORSOptions{}, "1-M"), func(api Router) {
		Get(api, "/x", func(*http.Request) (any, error) { return "ok", nil })
	})
	codes := make([]int, 0, 2)
	for range 2 {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/x", nil)
		req.RemoteAddr = "10.0.0.9:1234"
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}
}
