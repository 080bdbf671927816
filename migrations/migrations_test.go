package migrations

import (
	"strings"
	"testing"

	"github.com/healthify/portal/internal/platform/db"
)

func TestEmbeddedMigrationsLoad(t *testing.T) {
	migrations, err := db.NewMigrator(nil, FS, "").LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}
	if len(migrations) != 5 {
		t.Fatalf("expected 5 migrations, got %d", len(migrations))
	}
	for i, m := range migrations {
		if m.Version != i+1 {
			t.Errorf("migration %s: expected version %d, got %d", m.Name, i+1, m.Version)
		}
	}
}

func TestSchemaCoversBackendTables(t *testing.T) {
	var all strings.Builder
	migrations, _ := db.NewMigrator(nil, FS, "").LoadMigrations()
	for _, m := range migrations {
		all.WriteString(m.SQL)
	}
	sql := all.String()
	for _, table := range []string{"patients", "practitioners", "appointments", "profiles"} {
		if !strings.Contains(sql, "CREATE TABLE IF NOT EXISTS "+table) {
			t.Errorf("missing table %s", table)
		}
		if !strings.Contains(sql, "ALTER TABLE "+table+" ENABLE ROW LEVEL SECURITY") {
			t.Errorf("row level security not enabled on %s", table)
		}
	}
	if !strings.Contains(sql, "last_login") {
		t.Error("profiles should track last_login")
	}
}

func loadSQL(t *testing.T, name string) string {
	t.Helper()
	migrations, err := db.NewMigrator(nil, FS, "").LoadMigrations()
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range migrations {
		if m.Name == name {
			return m.SQL
		}
	}
	t.Fatalf("migration %s not found", name)
	return ""
}

func TestRowLevelSecurity_UsesCurrentClaims(t *testing.T) {
	sql := loadSQL(t, "005_row_level_security.sql")
	if !strings.Contains(sql, "current_setting('request.jwt.claims', true)") {
		t.Error("policies should read the request.jwt.claims setting")
	}
	// Every policy goes through request_user_id().
	if n := strings.Count(sql, "current_setting('request.jwt.claim.sub', true)"); n != 1 {
		t.Errorf("expected the legacy claim only as a fallback, found it %d times", n)
	}
	if n := strings.Count(sql, "request_user_id()"); n < 5 {
		t.Errorf("expected policies to use request_user_id(), found %d uses", n)
	}
}

func TestRowLevelSecurity_ProfilesLinkIsServiceOnly(t *testing.T) {
	sql := loadSQL(t, "005_row_level_security.sql")
	for _, want := range []string{
		"CREATE POLICY profiles_select_self ON profiles FOR SELECT",
		"CREATE POLICY profiles_update_self ON profiles FOR UPDATE",
		"REVOKE INSERT, UPDATE, DELETE ON profiles FROM authenticated",
		"GRANT UPDATE (full_name, avatar_url, last_login) ON profiles TO authenticated",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("expected %q", want)
		}
	}
	if strings.Contains(sql, "CREATE POLICY profiles_self") {
		t.Error("profiles must not have an all-commands self policy")
	}
	_, grant, _ := strings.Cut(sql, "GRANT UPDATE (")
	grant, _, _ = strings.Cut(grant, ")")
	for _, col := range []string{"fhir_resource_id", "role", "subscription"} {
		if strings.Contains(grant, col) {
			t.Errorf("users must not be able to update %s", col)
		}
	}
}
