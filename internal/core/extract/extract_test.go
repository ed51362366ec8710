package extract

import (
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestPage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
		want Meta
	}{
		{
			name: "title and description",
			body: `<html><head><title>
				Senate   passes bill </title>
				<meta name="description" content="The vote was 52-48."></head><body></body></html>`,
			want: Meta{Title: "Senate passes bill", Description: "The vote was 52-48."},
		},
		{
			name: "og fallback",
			body: `<html><head><title>Storm</title><meta property="og:description" content="Coastal towns flood"></head></html>`,
			want: Meta{Title: "Storm", Description: "Coastal towns flood"},
		},
		{
			name: "attribute value case ignored",
			body: `<html><head><title>Rates</title><meta name="Description" content="Fed holds steady"></head></html>`,
			want: Meta{Title: "Rates", Description: "Fed holds steady"},
		},
		{
			name: "nothing",
			body: `<html><body><p>hello</p></body></html>`,
			want: Meta{},
		},
		{
			name: "not html",
			body: `{"json": true}`,
			want: Meta{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Page([]byte(tc.body), "text/html; charset=utf-8"); got != tc.want {
				t.Fatalf("Page = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestPageDecodesLatin1(t *testing.T) {
	t.Parallel()

	enc, err := charmap.ISO8859_1.NewEncoder().String("<html><head><title>Café crème</title></head></html>")
	if err != nil {
		t.Fatal(err)
	}
	got := Page([]byte(enc), "text/html; charset=iso-8859-1")
	if got.Title != "Café crème" {
		t.Fatalf("Title = %q", got.Title)
	}
}

func TestPageTruncatesTitle(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 600)
	got := Page([]byte("<title>"+long+"</title>"), "text/html")
	if len(got.Title) != maxTitle {
		t.Fatalf("title length = %d", len(got.Title))
	}
}

func TestPageEmpty(t *testing.T) {
	t.Parallel()

	if got := Page(nil, ""); got != (Meta{}) {
		t.Fatalf("Page(nil) = %+v", got)
	}
}
