package db_test

import (
	"context"
	"testing"
	"testing/fstest"

	dbfs "github.com/garnizeh/boards/db"
	"github.com/garnizeh/boards/internal/db"
)

func tableExists(t *testing.T, d *db.DB, name string) bool {
	t.Helper()
	var count int
	if err := d.QueryRow(context.Background(), `SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&count); err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}

	return count == 1
}

func TestMigrate_Idempotent(t *testing.T) {
	tests := []struct {
		app    string
		tables []string
	}{
		{app: "quiz", tables: []string{"users", "quizzes", "attempts"}},
		{app: "jobboard", tables: []string{"users", "otp", "candidate_profiles", "companies", "jobs", "applications"}},
	}

	for _, tt := range tests {
		t.Run(tt.app, func(t *testing.T) {
			ctx := context.Background()
			d, err := db.New(ctx, ":memory:", nil)
			if err != nil {
				t.Fatalf("failed to open in-memory db: %v", err)
			}
			defer d.Close()

			dir, ok := dbfs.Dir(tt.app)
			if !ok {
				t.Fatalf("no migrations dir for %s", tt.app)
			}

			if err := db.Migrate(ctx, d, dbfs.Migrations, dir); err != nil {
				t.Fatalf("migrate failed: %v", err)
			}
			if err := db.Migrate(ctx, d, dbfs.Migrations, dir); err != nil {
				t.Fatalf("second migrate failed: %v", err)
			}

			var count int
			if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations`).Scan(&count); err != nil {
				t.Fatalf("scan schema_migrations count: %v", err)
			}
			if count < 1 {
				t.Fatalf("expected at least 1 migration recorded, got %d", count)
			}

			for _, name := range tt.tables {
				if !tableExists(t, d, name) {
					t.Fatalf("expected table %s to exist", name)
				}
			}
		})
	}
}

func TestMigrate_FailedFileIsNotRecorded(t *testing.T) {
	ctx := context.Background()
	d, err := db.New(ctx, ":memory:", nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer d.Close()

	fsys := fstest.MapFS{
		"m/0001_ok.sql":     {Data: []byte(`CREATE TABLE a (id INTEGER PRIMARY KEY);`)},
		"m/0002_broken.sql": {Data: []byte(`CREATE TABLE b (id INTEGER PRIMARY KEY); THIS IS NOT SQL;`)},
		"m/README.md":       {Data: []byte(`ignored`)},
	}

	if err := db.Migrate(ctx, d, fsys, "m"); err == nil {
		t.Fatalf("expected migrate to fail on broken file")
	}

	if !tableExists(t, d, "a") {
		t.Fatalf("expected first migration to be applied")
	}
	if tableExists(t, d, "b") {
		t.Fatalf("expected broken migration to be rolled back")
	}

	var count int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations WHERE version = '0002_broken'`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected broken migration not to be recorded")
	}
}

func TestMigrate_MissingDir(t *testing.T) {
	ctx := context.Background()
	d, err := db.New(ctx, ":memory:", nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer d.Close()

	if err := db.Migrate(ctx, d, fstest.MapFS{}, "nope"); err == nil {
		t.Fatalf("expected error for missing migrations dir")
	}
}
