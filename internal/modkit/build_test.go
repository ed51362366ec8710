package modkit

import (
	"net/http"
	"testing"
)

func TestBuild(t *testing.T) {
	t.Parallel()

	noop := func(h http.Handler) http.Handler { return h }
	cases := []struct {
		name   string
		opts   []Option
		prefix string
		mw     int
	}{
		{"empty", nil, "", 0},
		{"prefix normalized", []Option{WithPrefix(" hot/ ")}, "/hot", 0},
		{"root prefix", []Option{WithPrefix("/")}, "", 0},
		{"middlewares append", []Option{WithMiddlewares(noop), WithMiddlewares(noop, noop)}, "", 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			b := Build(tc.opts...)
			if b.Prefix != tc.prefix || len(b.Mw) != tc.mw {
				t.Fatalf("Build = %+v", b)
			}
		})
	}
}
