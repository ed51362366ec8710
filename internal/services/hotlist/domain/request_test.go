package domain

import (
	"testing"

	"chatter/internal/platform/net/http/bind"
)

func TestClamp(t *testing.T) {
	t.Parallel()

	svc := ServiceLimits(12, 50)
	cli := CLILimits(12, 50)
	cases := []struct {
		name string
		in   HotListRequest
		lim  Limits
		want HotListRequest
	}{
		{"defaults pass", svc.Defaults(), svc, HotListRequest{MaxAge: 12, MaxResults: 50}},
		{"ceilings", HotListRequest{MaxAge: 100, MaxResults: 1000}, svc, HotListRequest{MaxAge: 24, MaxResults: 100}},
		{"negatives default", HotListRequest{DaysAgo: -1, HoursAgo: -3, MaxAge: -5, MaxResults: -2}, svc, HotListRequest{MaxAge: 12, MaxResults: 50}},
		{"zero results default", HotListRequest{MaxAge: 4}, svc, HotListRequest{MaxAge: 4, MaxResults: 50}},
		{"cli has no ceiling", HotListRequest{MaxAge: 100, MaxResults: 1000}, cli, HotListRequest{MaxAge: 100, MaxResults: 1000}},
		{"unknown format dropped", HotListRequest{MaxAge: 1, MaxResults: 1, Format: "xml"}, svc, HotListRequest{MaxAge: 1, MaxResults: 1}},
		{"flags kept", HotListRequest{DaysAgo: 2, HoursAgo: 1, MaxAge: 6, MaxResults: 5, Cluster: true, Format: FormatTable}, svc,
			HotListRequest{DaysAgo: 2, HoursAgo: 1, MaxAge: 6, MaxResults: 5, Cluster: true, Format: FormatTable}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.in.Clamp(tc.lim); got != tc.want {
				t.Fatalf("Clamp = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestValidateRawFlags(t *testing.T) {
	t.Parallel()

	if err := bind.Validate(HotListRequest{MaxAge: 4, MaxResults: 10, Format: FormatJSON}); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
	if err := bind.Validate(HotListRequest{MaxAge: -1, MaxResults: 10}); err == nil {
		t.Fatal("negative age accepted")
	}
	if err := bind.Validate(HotListRequest{MaxAge: 1, MaxResults: 1, Format: "xml"}); err == nil {
		t.Fatal("unknown format accepted")
	}
}
