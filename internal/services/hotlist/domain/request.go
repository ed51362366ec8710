// Package domain holds the hot list request, limits and ports
package domain

// Formats a hot list can be rendered in
const (
	FormatJSON  = "json"
	FormatTable = "table"
	FormatHTML  = "html"
)

// HotListRequest is bound from query strings or CLI flags
type HotListRequest struct {
	DaysAgo    int    `query:"days_ago" validate:"min=0" json:"days_ago"`
	HoursAgo   int    `query:"hours_ago" validate:"min=0" json:"hours_ago"`
	MaxAge     int    `query:"age" validate:"min=0" json:"age"`
	MaxResults int    `query:"max_results" validate:"min=1" json:"max_results"`
	Cluster    bool   `query:"cluster" json:"cluster"`
	Format     string `query:"format" validate:"omitempty,oneof=json table html" json:"format,omitempty"`
}

// Limits are per-surface defaults and ceilings; a zero ceiling means none
type Limits struct {
	DefaultAge     int
	MaxAge         int
	DefaultResults int
	MaxResults     int
}

// ServiceLimits are the ceilings of the ranking endpoint
func ServiceLimits(defAge, defResults int) Limits {
	return Limits{DefaultAge: defAge, MaxAge: 24, DefaultResults: defResults, MaxResults: 100}
}

// CLILimits keep the defaults but drop the ceilings
func CLILimits(defAge, defResults int) Limits {
	return Limits{DefaultAge: defAge, DefaultResults: defResults}
}

// Defaults is the request used when nothing was passed
func (l Limits) Defaults() HotListRequest {
	return HotListRequest{MaxAge: l.DefaultAge, MaxResults: l.DefaultResults}
}

// Clamp brings every field inside l: negatives fall back to defaults,
// values over a ceiling become the ceiling. It never fails
func (r HotListRequest) Clamp(l Limits) HotListRequest {
	r.DaysAgo = clampInt(r.DaysAgo, 0, 0)
	r.HoursAgo = clampInt(r.HoursAgo, 0, 0)
	r.MaxAge = clampInt(r.MaxAge, l.DefaultAge, l.MaxAge)
	if r.MaxResults < 1 {
		r.MaxResults = l.DefaultResults
	}
	r.MaxResults = clampInt(r.MaxResults, l.DefaultResults, l.MaxResults)
	switch r.Format {
	case FormatJSON, FormatTable, FormatHTML:
	default:
		r.Format = ""
	}
	return r
}

func clampInt(v, def, ceiling int) int {
	if v < 0 {
		v = def
	}
	if ceiling > 0 && v > ceiling {
		v = ceiling
	}
	return v
}
