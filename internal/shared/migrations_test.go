package shared

import (
	"strings"
	"testing"
)

func TestMigrationRunner(t *testing.T) {
	t.Run("loadMigrations Pairs Up And Down", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}
		if len(migrations) == 0 {
			t.Fatal("expected at least one migration")
		}

		prev := -1
		for _, m := range migrations {
			if m.Version <= prev {
				t.Errorf("migrations out of order: %d after %d", m.Version, prev)
			}
			prev = m.Version

			if m.Up == "" || m.Down == "" {
				t.Errorf("migration %d missing a script half", m.Version)
			}
		}
	})

	t.Run("Apply Then Rollback", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		if _, err := db.Exec("SELECT 1 FROM kv LIMIT 1"); err != nil {
			t.Errorf("kv table should exist after migrations: %v", err)
		}

		var applied int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied); err != nil {
			t.Fatalf("failed to query schema_migrations: %v", err)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("rollback failed: %v", err)
		}

		var remaining int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&remaining); err != nil {
			t.Fatalf("failed to query schema_migrations: %v", err)
		}
		if remaining != applied-1 {
			t.Errorf("expected %d applied after rollback, got %d", applied-1, remaining)
		}
	})

	t.Run("Rollback On Empty Schema Fails", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		migrations, _ := loadMigrations()
		for range migrations {
			if err := RollbackMigration(db); err != nil {
				t.Fatalf("rollback failed: %v", err)
			}
		}

		if err := RollbackMigration(db); err == nil {
			t.Error("expected rollback to fail with nothing applied")
		}
	})

	t.Run("Rerun Is A No-Op", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("first run failed: %v", err)
		}
		if err := RunMigrations(db); err != nil {
			t.Fatalf("second run failed: %v", err)
		}

		migrations, _ := loadMigrations()
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("failed to query schema_migrations: %v", err)
		}
		if count != len(migrations) {
			t.Errorf("expected %d applied migrations, got %d", len(migrations), count)
		}
	})
}

func TestStripComments(t *testing.T) {
	in := "CREATE TABLE kv ( -- the only table\n  key TEXT PRIMARY KEY\n-- trailing note\n)"
	out := stripComments(in)

	if strings.Contains(out, "--") {
		t.Errorf("comments survived stripping: %q", out)
	}
	if !strings.Contains(out, "key TEXT PRIMARY KEY") {
		t.Errorf("statement body lost: %q", out)
	}
}
