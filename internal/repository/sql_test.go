package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *SQLStore {
	t.Helper()
	store, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return store
}

func TestSQLStore_Get(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	ctx := context.Background()
	if err := store.Set(ctx, "learned_ids", "[1,2,3]"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	tests := []struct {
		name    string
		key     string
		want    string
		wantErr error
	}{
		{
			name: "existing key",
			key:  "learned_ids",
			want: "[1,2,3]",
		},
		{
			name:    "missing key",
			key:     "nope",
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Get(ctx, tt.key)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Get() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("Get() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSQLStore_SetOverwrites(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	ctx := context.Background()
	for _, v := range []string{"[]", "[4]", "[4,9]"} {
		if err := store.Set(ctx, "learned_ids", v); err != nil {
			t.Fatalf("Set(%q) error = %v", v, err)
		}
	}

	got, err := store.Get(ctx, "learned_ids")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "[4,9]" {
		t.Errorf("Get() = %q, want %q", got, "[4,9]")
	}
}

func TestOpenSQLite_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "progress.db")
	ctx := context.Background()

	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	if err := store.Set(ctx, "learned_ids", "[7]"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	store.Close()

	// Reopening runs the migrations again, which must be a no-op
	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("second OpenSQLite() error = %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, "learned_ids")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "[7]" {
		t.Errorf("Get() = %q, want %q", got, "[7]")
	}
}

func TestMigrate_UnsupportedDriver(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	if err := Migrate(store.db.DB, "mysql"); err == nil {
		t.Error("Migrate() with unknown driver should have failed")
	}
}
