// Package extract pulls display metadata out of fetched HTML pages
package extract

import (
	"bytes"
	"unicode/utf8"

	"chatter/internal/core/normalize"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

const (
	maxTitle       = 512
	maxDescription = 2048
)

// Meta is what a page says about itself; empty fields were absent
type Meta struct {
	Title       string
	Description string
}

// Page decodes body to UTF-8 using contentType and sniffing, then reads
// <title> and the description meta (name=description, else og:description).
// Unparseable input yields an empty Meta.
func Page(body []byte, contentType string) Meta {
	if len(body) == 0 {
		return Meta{}
	}
	data := body
	enc, _, _ := charset.DetermineEncoding(body, contentType)
	if decoded, err := enc.NewDecoder().Bytes(body); err == nil {
		data = decoded
	} else if !utf8.Valid(body) {
		return Meta{}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return Meta{}
	}

	title := doc.Find("title").First().Text()
	desc := doc.Find(`meta[name="description" i]`).AttrOr("content", "")
	if normalize.Clean(desc) == "" {
		desc = doc.Find(`meta[property="og:description" i]`).AttrOr("content", "")
	}

	return Meta{
		Title:       normalize.Truncate(normalize.Clean(title), maxTitle),
		Description: normalize.Truncate(normalize.Clean(desc), maxDescription),
	}
}
