package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	kit "chatter/internal/platform/testkit"
)

func TestPrefixKey(t *testing.T) {
	c := New().Prefix("CORE_").Prefix("LINKS_")
	if got := c.Key("PAGE_SIZE"); got != "CORE_LINKS_PAGE_SIZE" {
		t.Fatalf("Key = %q", got)
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("CFGT_")
	t.Setenv("CFGT_DBURL", "  postgres://x  ")
	if got := c.MustString("DBURL"); got != "postgres://x" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { _ = c.MustString("NOPE") })
}

func TestMustURL(t *testing.T) {
	c := New().Prefix("CFGT_")
	t.Setenv("CFGT_URL", "https://example.com/calais")
	if u := c.MustURL("URL"); u.Host != "example.com" {
		t.Fatalf("host = %q", u.Host)
	}
	t.Setenv("CFGT_REL", "/relative")
	kit.MustPanic(t, func() { _ = c.MustURL("REL") })
}

func TestMayValues(t *testing.T) {
	c := New().Prefix("CFGM_")
	t.Setenv("CFGM_INT", "42")
	t.Setenv("CFGM_BADINT", "forty")
	t.Setenv("CFGM_F", "0.8")
	t.Setenv("CFGM_B", "true")
	t.Setenv("CFGM_D", "750ms")
	t.Setenv("CFGM_BADD", "soon")
	t.Setenv("CFGM_CSV", " a.com, ,b.com ")
	t.Setenv("CFGM_EMPTYCSV", " , ")

	if got := c.MayInt("INT", 1); got != 42 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayInt("BADINT", 7); got != 7 {
		t.Fatalf("MayInt fallback = %d", got)
	}
	if got := c.MayInt("MISSING", 3); got != 3 {
		t.Fatalf("MayInt missing = %d", got)
	}
	if got := c.MayFloat64("F", 0); got != 0.8 {
		t.Fatalf("MayFloat64 = %v", got)
	}
	if !c.MayBool("B", false) {
		t.Fatal("MayBool want true")
	}
	if got := c.MayDuration("D", time.Second); got != 750*time.Millisecond {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayDuration("BADD", time.Second); got != time.Second {
		t.Fatalf("MayDuration fallback = %v", got)
	}
	if got := c.MayCSV("CSV", nil); !reflect.DeepEqual(got, []string{"a.com", "b.com"}) {
		t.Fatalf("MayCSV = %v", got)
	}
	if got := c.MayCSV("EMPTYCSV", []string{"d"}); !reflect.DeepEqual(got, []string{"d"}) {
		t.Fatalf("MayCSV default = %v", got)
	}
	if got := c.MayString("MISSING", "x"); got != "x" {
		t.Fatalf("MayString = %q", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("CFGE_")
	t.Setenv("CFGE_FMT", "TABLE")
	if got := c.MayEnum("FMT", "json", "json", "table"); got != "table" {
		t.Fatalf("MayEnum = %q", got)
	}
	if got := c.MayEnum("UNSET", "json", "json", "table"); got != "json" {
		t.Fatalf("MayEnum default = %q", got)
	}
	t.Setenv("CFGE_BAD", "xml")
	kit.MustPanic(t, func() { _ = c.MayEnum("BAD", "json", "json", "table") })
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "test.env")
	if err := os.WriteFile(f, []byte("CFGD_FROM_FILE=yes\nCFGD_KEEP=file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ENV_FILE", f)
	t.Setenv("CFGD_KEEP", "env")
	t.Cleanup(func() { _ = os.Unsetenv("CFGD_FROM_FILE") })

	if err := LoadDotenv(); err != nil {
		t.Fatalf("LoadDotenv: %v", err)
	}
	if got := os.Getenv("CFGD_FROM_FILE"); got != "yes" {
		t.Fatalf("CFGD_FROM_FILE = %q", got)
	}
	if got := os.Getenv("CFGD_KEEP"); got != "env" {
		t.Fatalf("existing env overridden: %q", got)
	}

	t.Setenv("ENV_FILE", filepath.Join(dir, "absent.env"))
	if err := LoadDotenv(); err != nil {
		t.Fatalf("missing file should be ignored: %v", err)
	}
}
