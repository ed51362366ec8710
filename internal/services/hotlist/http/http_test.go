package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chatter/internal/core/hotlist"
	perr "chatter/internal/platform/errors"
	phttp "chatter/internal/platform/net/http"
	dom "chatter/internal/services/hotlist/domain"

	"github.com/go-chi/chi/v5"
)

type fakeGen struct {
	got dom.HotListRequest
	hl  hotlist.HotList
	err error
}

func (f *fakeGen) Generate(_ context.Context, req dom.HotListRequest) (hotlist.HotList, error) {
	f.got = req
	return f.hl, f.err
}

func serve(g dom.GeneratorPort, target string) *httptest.ResponseRecorder {
	r := phttp.AdaptChi(chi.NewRouter())
	lim := dom.ServiceLimits(12, 50)
	Register(r, g, lim)
	RegisterPage(r, "/", g, lim)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, target, nil))
	return rec
}

var sample = hotlist.HotList{
	GeneratedAt: "2024-03-01T12:00:00Z",
	Articles: []hotlist.Article{{
		URL: "https://news.example.com/s", Title: "Senate <passes> bill", Posts: 3,
		Topics: []hotlist.Topic{{Label: "Politics", Score: 1}},
	}},
}

func TestHotlistClampsQuery(t *testing.T) {
	t.Parallel()

	cases := []struct {
		query string
		want  dom.HotListRequest
	}{
		{"", dom.HotListRequest{MaxAge: 12, MaxResults: 50}},
		{"?age=100&max_results=1000&cluster=yes", dom.HotListRequest{MaxAge: 24, MaxResults: 100, Cluster: true}},
		{"?age=abc&max_results=-4&days_ago=2&hours_ago=3", dom.HotListRequest{DaysAgo: 2, HoursAgo: 3, MaxAge: 12, MaxResults: 50}},
		{"?cluster=nope", dom.HotListRequest{MaxAge: 12, MaxResults: 50}},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			t.Parallel()
			g := &fakeGen{hl: sample}
			rec := serve(g, "/hotlist"+tc.query)
			if rec.Code != stdhttp.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			if g.got != tc.want {
				t.Fatalf("request = %+v, want %+v", g.got, tc.want)
			}
		})
	}
}

func TestHotlistEnvelope(t *testing.T) {
	t.Parallel()

	rec := serve(&fakeGen{hl: sample}, "/hotlist")
	var env struct {
		StatusCode int `json:"status_code"`
		Data       struct {
			Articles []struct {
				Topics [][]any `json:"topics"`
			} `json:"articles"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.StatusCode != 200 || len(env.Data.Articles) != 1 {
		t.Fatalf("env = %+v", env)
	}
	if tp := env.Data.Articles[0].Topics[0]; tp[0] != "Politics" || tp[1] != float64(1) {
		t.Fatalf("topic = %v", tp)
	}
}

func TestHotlistError(t *testing.T) {
	t.Parallel()

	rec := serve(&fakeGen{err: perr.Wrap(errors.New("x"), perr.ErrorCodeDB, "db")}, "/hotlist")
	if rec.Code < 500 {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestPageHTMLAndJSON(t *testing.T) {
	t.Parallel()

	rec := serve(&fakeGen{hl: sample}, "/")
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Senate &lt;passes&gt; bill") || !strings.Contains(body, "Politics") {
		t.Fatalf("page = %s", body)
	}

	rec = serve(&fakeGen{hl: sample}, "/?json=1")
	var hl map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &hl); err != nil {
		t.Fatal(err)
	}
	if _, ok := hl["articles"]; !ok {
		t.Fatalf("bare json = %v", hl)
	}
	if _, ok := hl["status_code"]; ok {
		t.Fatal("json=1 must not be enveloped")
	}
}

func TestPageEmptyMessage(t *testing.T) {
	t.Parallel()

	rec := serve(&fakeGen{hl: hotlist.HotList{GeneratedAt: "t", Message: hotlist.EmptyMessage}}, "/")
	if !strings.Contains(rec.Body.String(), hotlist.EmptyMessage) {
		t.Fatalf("page = %s", rec.Body.String())
	}
}
