package classifier

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	perr "chatter/internal/platform/errors"
)

const calaisBody = `{
	"doc": {"info": {"docTitle": "x"}},
	"http://d.opencalais.com/dochash-1/cat/1": {"_typeGroup": "topics", "name": "Politics", "score": 0.857},
	"http://d.opencalais.com/dochash-1/cat/2": {"_typeGroup": "topics", "name": "Law_Crime", "score": 0.9},
	"http://d.opencalais.com/comphash-1/abc": {"name": "Senate"}
}`

func enabled(url string) Options {
	return Options{URL: url, Token: "tok", Enabled: true, Timeout: time.Second}
}

func TestClassifyParsesCategories(t *testing.T) {
	t.Parallel()

	var gotHeader http.Header
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Clone()
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = w.Write([]byte(calaisBody))
	}))
	defer srv.Close()

	topics, err := New(enabled(srv.URL)).Classify(context.Background(), "Senate passes\r\nbill", "abc")
	if err != nil {
		t.Fatal(err)
	}
	want := []Topic{{Label: "Law_Crime", Score: 0.9}, {Label: "Politics", Score: 0.857}}
	if !reflect.DeepEqual(topics, want) {
		t.Fatalf("topics = %+v", topics)
	}
	if gotHeader.Get("x-calais-DocumentTitle") != "Senate passes  bill" {
		t.Fatalf("title header = %q", gotHeader.Get("x-calais-DocumentTitle"))
	}
	if gotBody != "Senate passes  bill" {
		t.Fatalf("short content should be replaced by title, got %q", gotBody)
	}
	for k, v := range map[string]string{
		"Content-Type":               "text/raw",
		"x-ag-access-token":          "tok",
		"outputFormat":               "application/json",
		"omitOutputtingOriginalText": "true",
		"x-calais-language":          "English",
	} {
		if gotHeader.Get(k) != v {
			t.Errorf("header %s = %q, want %q", k, gotHeader.Get(k), v)
		}
	}
}

func TestClassifySkipsThinText(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { calls.Add(1) }))
	defer srv.Close()

	_, err := New(enabled(srv.URL)).Classify(context.Background(), "Hi", "short")
	if !errors.Is(err, ErrSkipped) {
		t.Fatalf("err = %v", err)
	}
	if calls.Load() != 0 {
		t.Fatal("skipped classification made a request")
	}
}

func TestClassifyDisabled(t *testing.T) {
	t.Parallel()

	_, err := New(Options{}).Classify(context.Background(), "A long enough title", "")
	if !errors.Is(err, ErrDisabled) {
		t.Fatalf("err = %v", err)
	}
}

func TestClassifyNonOKYieldsNothing(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	topics, err := New(enabled(srv.URL)).Classify(context.Background(), "", "enough content here")
	if err != nil {
		t.Fatal(err)
	}
	if len(topics) != 0 || calls.Load() != 1 {
		t.Fatalf("topics=%v calls=%d", topics, calls.Load())
	}
}

func TestClassifyExhaustsAttempts(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	o := enabled(url)
	o.Attempts = 2
	_, err := New(o).Classify(context.Background(), "A long enough title", "")
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) || errors.Is(err, ErrDisabled) {
		t.Fatalf("err = %v", err)
	}
}
