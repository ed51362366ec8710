package bind

import (
	"net/http/httptest"
	"testing"

	perr "chatter/internal/platform/errors"
)

type window struct {
	DaysAgo int    `query:"days_ago" validate:"min=0"`
	Age     int    `query:"age" validate:"min=1,max=24"`
	Cluster bool   `query:"cluster"`
	Label   string `query:"label"`
	Ignored int
}

func TestQueryKeepsDefaultsOnGarbage(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/?days_ago=2&age=abc&cluster=yes&label=%20x%20&Ignored=9", nil)
	w := window{Age: 12, Ignored: 1}
	Query(r, &w)

	if w.DaysAgo != 2 || w.Age != 12 || !w.Cluster || w.Label != "x" || w.Ignored != 1 {
		t.Fatalf("unexpected bind result: %+v", w)
	}
}

func TestTruthy(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{"1": true, "TRUE": true, " yes ": true, "on": true, "0": false, "": false, "nope": false}
	for in, want := range cases {
		if got := Truthy(in); got != want {
			t.Errorf("Truthy(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	if err := Validate(window{Age: 12}); err != nil {
		t.Fatalf("valid window rejected: %v", err)
	}
	err := Validate(window{Age: 30})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := err.Error(); got != "age must be at most 24" {
		t.Fatalf("message = %q", got)
	}
}
