package raw

import "testing"

func TestRawConf(t *testing.T) {
	c := New().Prefix("RAWT_")
	t.Setenv("RAWT_LEVEL", " info ")
	t.Setenv("RAWT_CALLER", "YES")
	t.Setenv("RAWT_OFF", "nope")
	t.Setenv("RAWT_N", "12")
	t.Setenv("RAWT_NEG", "-4")

	if got := c.Get("LEVEL", "debug"); got != "info" {
		t.Fatalf("Get = %q", got)
	}
	if got := c.Get("MISSING", "debug"); got != "debug" {
		t.Fatalf("Get default = %q", got)
	}
	if !c.GetBool("CALLER", false) || c.GetBool("OFF", true) || !c.GetBool("MISSING", true) {
		t.Fatal("GetBool mismatch")
	}
	if c.GetInt("N", 0) != 12 || c.GetInt("NEG", 5) != 5 || c.GetInt("MISSING", 9) != 9 {
		t.Fatal("GetInt mismatch")
	}
}
