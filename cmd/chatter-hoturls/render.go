package main

import (
	"encoding/json"
	"fmt"

	"chatter/internal/core/hotlist"
	"chatter/internal/platform/sink"
	dom "chatter/internal/services/hotlist/domain"
)

var tableHeader = []string{"#", "hotness", "posts", "age", "domain", "title", "url"}

// render turns a hot list into a sink body and its content type
func render(hl hotlist.HotList, format string) ([]byte, string, error) {
	switch format {
	case "", dom.FormatJSON:
		b, err := json.MarshalIndent(hl, "", "  ")
		if err != nil {
			return nil, "", err
		}
		return b, "application/json", nil
	case dom.FormatTable:
		if hl.Message != "" {
			return []byte(hl.GeneratedAt + " " + hl.Message + "\n"), "text/plain; charset=utf-8", nil
		}
		return sink.Table(tableHeader, tableRows(hl)), "text/plain; charset=utf-8", nil
	default:
		return nil, "", fmt.Errorf("unsupported format %q (expected json or table)", format)
	}
}

// tableRows numbers plain lists per article and clustered lists per cluster
func tableRows(hl hotlist.HotList) [][]any {
	var rows [][]any
	if hl.Clusters != nil {
		for i, c := range hl.Clusters {
			for _, a := range c {
				rows = append(rows, row(i+1, a))
			}
		}
		return rows
	}
	for i, a := range hl.Articles {
		rows = append(rows, row(i+1, a))
	}
	return rows
}

func row(rank int, a hotlist.Article) []any {
	return []any{
		rank,
		fmt.Sprintf("%.2f", a.Hotness),
		a.Posts,
		fmt.Sprintf("%.1fh", a.Age),
		a.Domain,
		a.Title,
		a.URL,
	}
}
