package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateSQLMigrationSanitizesName(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateSQLMigration(dir, "Add Waffle-Cone Toppings!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(path, "_add_waffle_cone_toppings.sql") {
		t.Fatalf("unexpected filename: %s", path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read skeleton: %v", err)
	}
	if !strings.Contains(string(b), "-- +goose Up") || !strings.Contains(string(b), "-- +goose Down") {
		t.Fatalf("skeleton missing goose sections: %s", b)
	}

	if err := ValidateDir(dir); err != nil {
		t.Fatalf("generated migration should validate: %v", err)
	}
}

func TestCreateSQLMigrationRejectsEmptyName(t *testing.T) {
	if _, err := CreateSQLMigration(t.TempDir(), "!!!"); err == nil {
		t.Fatal("expected error for unusable name")
	}
}

func TestValidateDirFlagsBadFilename(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "add_flavors.sql")
	if err := os.WriteFile(bad, []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected error for unversioned filename")
	}
}

func TestValidateDirFlagsMissingDownSection(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "20260815093000_add_sundae_sizes.sql")
	if err := os.WriteFile(name, []byte("-- +goose Up\nALTER TABLE menu_items ADD COLUMN size text;\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected error for missing Down section")
	}
}
