package shared

import (
	"errors"
	"testing"
)

func TestMigrationRunner(t *testing.T) {
	t.Run("parseMigrationName", func(t *testing.T) {
		tc := []struct {
			name      string
			version   int
			label     string
			direction string
			ok        bool
		}{
			{name: "0001_create_events_up.sql", version: 1, label: "create_events", direction: "up", ok: true},
			{name: "0002_add_index_down.sql", version: 2, label: "add_index", direction: "down", ok: true},
			{name: "0003_sideways.sql", ok: false},
			{name: "readme.txt", ok: false},
			{name: "abc_create_up.sql", ok: false},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				version, label, direction, ok := parseMigrationName(tt.name)
				if ok != tt.ok {
					t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
				}
				if !ok {
					return
				}
				if version != tt.version || label != tt.label || direction != tt.direction {
					t.Errorf("got (%d, %s, %s), want (%d, %s, %s)", version, label, direction, tt.version, tt.label, tt.direction)
				}
			})
		}
	})

	t.Run("loadMigrations", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}

		if len(migrations) == 0 {
			t.Fatal("expected at least one migration")
		}

		for i := 1; i < len(migrations); i++ {
			if migrations[i].Version <= migrations[i-1].Version {
				t.Errorf("migrations not sorted: version %d comes after %d", migrations[i].Version, migrations[i-1].Version)
			}
		}

		for _, m := range migrations {
			if m.Up == "" {
				t.Errorf("migration version %d missing up SQL", m.Version)
			}
			if m.Down == "" {
				t.Errorf("migration version %d missing down SQL", m.Version)
			}
		}
	})

	t.Run("RunMigrations And Rollback", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(1)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		if _, err := db.Exec("SELECT 1 FROM events LIMIT 1"); err != nil {
			t.Errorf("events table should exist after migrations: %v", err)
		}

		var seq int
		if err := db.QueryRow("SELECT value FROM events_sequence WHERE id = 1").Scan(&seq); err != nil {
			t.Fatalf("events_sequence should be seeded: %v", err)
		}
		if seq != 0 {
			t.Errorf("expected sequence to start at 0, got %d", seq)
		}

		if err := RunMigrations(db); err != nil {
			t.Fatalf("running migrations twice should be a no-op: %v", err)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback migration: %v", err)
		}

		if _, err := db.Exec("SELECT 1 FROM events LIMIT 1"); err == nil {
			t.Error("events table should not exist after rollback")
		}

		if err := RollbackMigration(db); err == nil {
			t.Error("expected error when nothing is left to roll back")
		}
	})

	t.Run("OpenDatabase", func(t *testing.T) {
		_, err := OpenDatabase(DatabaseConfig{Enabled: false, Path: ":memory:"})
		if !errors.Is(err, ErrDatabaseDisabled) {
			t.Errorf("expected ErrDatabaseDisabled, got %v", err)
		}

		db, err := OpenDatabase(DatabaseConfig{Enabled: true, Path: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := db.Exec("SELECT 1 FROM events LIMIT 1"); err != nil {
			t.Errorf("events table should exist: %v", err)
		}
	})
}
