package main

import (
	"encoding/json"
	"strings"
	"testing"

	"chatter/internal/core/hotlist"
	"chatter/internal/platform/testkit"
)

func sample() hotlist.HotList {
	return hotlist.HotList{
		GeneratedAt: "2024-05-01T12:00:00Z",
		Articles: []hotlist.Article{
			{URL: "https://a.example/x", Posts: 9, Age: 1.5, Domain: "a.example", Title: "First", Hotness: 11.25},
			{URL: "https://b.example/y", Posts: 4, Age: 3, Domain: "b.example", Title: "Second", Hotness: 4.4},
		},
	}
}

func TestRenderJSON(t *testing.T) {
	t.Parallel()

	body, ctype, err := render(sample(), "json")
	if err != nil {
		t.Fatal(err)
	}
	if ctype != "application/json" {
		t.Fatalf("content type = %q", ctype)
	}
	var got map[string]any
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if arts, _ := got["articles"].([]any); len(arts) != 2 {
		t.Fatalf("articles = %v", got["articles"])
	}
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	body, _, err := render(sample(), "table")
	if err != nil {
		t.Fatal(err)
	}
	out := string(body)
	for _, want := range []string{"HOTNESS", "11.25", "a.example", "Second"} {
		testkit.MustContain(t, out, want)
	}
}

func TestRenderTableClusters(t *testing.T) {
	t.Parallel()

	hl := sample()
	hl.Clusters = [][]hotlist.Article{hl.Articles[:1], hl.Articles[1:]}
	hl.Articles = nil

	rows := tableRows(hl)
	if len(rows) != 2 || rows[0][0] != 1 || rows[1][0] != 2 {
		t.Fatalf("rows = %v", rows)
	}
}

func TestRenderEmptyAndUnknown(t *testing.T) {
	t.Parallel()

	body, _, err := render(hotlist.HotList{GeneratedAt: "t", Message: hotlist.EmptyMessage}, "table")
	if err != nil || !strings.Contains(string(body), hotlist.EmptyMessage) {
		t.Fatalf("empty render = %q, %v", body, err)
	}
	if _, _, err := render(sample(), "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
