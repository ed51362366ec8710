package migrate

import (
	"io/fs"
	"strings"
	"testing"
)

func TestEmbeddedMigrationsPaired(t *testing.T) {
	t.Parallel()
	names, err := fs.Glob(files, "sql/*.sql")
	if err != nil {
		t.Fatal(err)
	}
	ups, downs := map[string]bool{}, map[string]bool{}
	for _, n := range names {
		switch {
		case strings.HasSuffix(n, ".up.sql"):
			ups[strings.TrimSuffix(n, ".up.sql")] = true
		case strings.HasSuffix(n, ".down.sql"):
			downs[strings.TrimSuffix(n, ".down.sql")] = true
		default:
			t.Fatalf("unexpected file %s", n)
		}
	}
	if len(ups) == 0 {
		t.Fatal("no migrations embedded")
	}
	for k := range ups {
		if !downs[k] {
			t.Fatalf("%s has no down migration", k)
		}
	}
}

func TestInitCreatesPipelineTables(t *testing.T) {
	t.Parallel()
	b, err := fs.ReadFile(files, "sql/0001_init.up.sql")
	if err != nil {
		t.Fatal(err)
	}
	for _, table := range []string{"posts", "raw_links", "canonical_links", "topics", "classify_claims", "domains"} {
		if !strings.Contains(string(b), "CREATE TABLE IF NOT EXISTS "+table+" (") {
			t.Fatalf("missing table %s", table)
		}
	}
}
