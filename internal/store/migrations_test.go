package store

import (
	"path/filepath"
	"testing"
)

func TestMigrationsVersionsAreOrderedAndUnique(t *testing.T) {
	seen := map[int]bool{}
	last := 0
	for _, m := range migrations {
		if m.Version <= 0 {
			t.Fatalf("migration version must be positive: %d", m.Version)
		}
		if seen[m.Version] {
			t.Fatalf("duplicate migration version %d", m.Version)
		}
		seen[m.Version] = true
		if m.Version <= last {
			t.Fatalf("migrations out of order at version %d", m.Version)
		}
		last = m.Version
	}
}

func TestReopenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	st, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	version, err := st.SchemaVersion()
	if err != nil {
		t.Fatalf("schema version: %v", err)
	}
	if version != migrations[len(migrations)-1].Version {
		t.Fatalf("expected schema version %d, got %d", migrations[len(migrations)-1].Version, version)
	}
	st.Close()

	// A second open against the same file must not re-apply migrations.
	st, err = Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer st.Close()
	again, err := st.SchemaVersion()
	if err != nil {
		t.Fatalf("schema version after reopen: %v", err)
	}
	if again != version {
		t.Fatalf("expected version %d after reopen, got %d", version, again)
	}
}
