package normalize

import "testing"

func TestClean(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"", ""},
		{"  Senate\n passes\t\tbill  ", "Senate passes bill"},
		{"nul\x00byte", "nulbyte"},
		{"bad\xffutf8", "badutf8"},
		{"c1\u0085control", "c1control"},
		{"Café au lait", "Café au lait"},
	}
	for _, tc := range cases {
		if got := Clean(tc.in); got != tc.want {
			t.Errorf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFold(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"Café CRÈME", "cafe creme"},
		{"ＦＵＬＬＷＩＤＴＨ", "fullwidth"},
		{"zero\u200bwidth", "zerowidth"},
		{"It's  BREAKING", "it's breaking"},
	}
	for _, tc := range cases {
		if got := Fold(tc.in); got != tc.want {
			t.Errorf("Fold(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := Truncate("héllo", 2); got != "hé" {
		t.Fatalf("Truncate = %q", got)
	}
	if got := Truncate("abc", 10); got != "abc" {
		t.Fatalf("Truncate = %q", got)
	}
	if got := Truncate("abc", 0); got != "" {
		t.Fatalf("Truncate = %q", got)
	}
}
