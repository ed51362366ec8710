package canon

import (
	"testing"
	"time"
)

func TestCleanse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips utm keeps order",
			in:   "https://www.westernjournal.com/story/?b=2&utm_source=Twitter&a=1&utm_medium=Post",
			want: "https://www.westernjournal.com/story/?b=2&a=1",
		},
		{
			name: "all tracking drops query",
			in:   "https://example.com/a?fbclid=IwAR0&gclid=xyz",
			want: "https://example.com/a",
		},
		{
			name: "fragment kept",
			in:   "https://example.com/a?trk_ref=1&id=7#section",
			want: "https://example.com/a?id=7#section",
		},
		{
			name: "prefix match is case sensitive",
			in:   "https://example.com/?UTM_Campaign=x&q=go&utm_id=1",
			want: "https://example.com/?UTM_Campaign=x&q=go",
		},
		{
			name: "escaped values untouched",
			in:   "https://example.com/?q=a%20b+c&utm_term=x",
			want: "https://example.com/?q=a%20b+c",
		},
		{
			name: "clean url unchanged",
			in:   "https://example.com/?q=a%20b&&z",
			want: "https://example.com/?q=a%20b&&z",
		},
		{
			name: "no query",
			in:   "https://example.com/path#frag",
			want: "https://example.com/path#frag",
		},
		{
			name: "lookalike key kept",
			in:   "https://example.com/?utmost=1&utm_x=2",
			want: "https://example.com/?utmost=1",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Cleanse(tc.in)
			if got != tc.want {
				t.Fatalf("Cleanse(%q) = %q, want %q", tc.in, got, tc.want)
			}
			if again := Cleanse(got); again != got {
				t.Fatalf("not a fixed point: %q -> %q", got, again)
			}
		})
	}
}

func TestHash(t *testing.T) {
	t.Parallel()

	if got := Hash("abc"); got != "a9993e364706816aba3e25717850c26c9cd0d89d" {
		t.Fatalf("Hash(abc) = %s", got)
	}
	if Hash("https://a.example/x") == Hash("https://a.example/y") {
		t.Fatal("distinct urls share a hash")
	}
}

func TestRetryBookCountsAndClears(t *testing.T) {
	t.Parallel()

	b := NewRetryBook(0, 0)
	for want := 1; want <= 3; want++ {
		if got := b.Fail("id1"); got != want {
			t.Fatalf("Fail #%d = %d", want, got)
		}
	}
	b.Clear("id1")
	if b.Len() != 0 {
		t.Fatalf("Len after clear = %d", b.Len())
	}
	if got := b.Fail("id1"); got != 1 {
		t.Fatalf("count restarted at %d", got)
	}
}

func TestRetryBookBounds(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	b := NewRetryBook(2, time.Hour)
	b.now = func() time.Time { return now }

	b.Fail("a")
	now = now.Add(time.Minute)
	b.Fail("b")
	now = now.Add(time.Minute)
	b.Fail("c")
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
	if got := b.Fail("a"); got != 1 {
		t.Fatalf("oldest entry should have been evicted, count = %d", got)
	}

	now = now.Add(2 * time.Hour)
	if got := b.Fail("c"); got != 1 {
		t.Fatalf("expired entry should restart, count = %d", got)
	}
}
