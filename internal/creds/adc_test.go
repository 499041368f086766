// Where: internal/creds/adc_test.go
// What: Tests for credentials file resolution.
// Why: Ensure the documented precedence order holds.
package creds

import (
	"os"
	"path/filepath"
	"testing"
)

func writeKey(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	payload := `{"type":"service_account","client_email":"svc@acme.iam.gserviceaccount.com","project_id":"acme-search"}`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write key: %v", err)
	}
	return path
}

func TestResolvePrefersConfigPath(t *testing.T) {
	dir := t.TempDir()
	configured := writeKey(t, dir, "configured.json")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", writeKey(t, dir, "env.json"))

	res := Resolve(configured)
	if res.Source != SourceConfig {
		t.Fatalf("unexpected source: %s", res.Source)
	}
	if res.Path != configured || !res.Exists {
		t.Fatalf("unexpected resolution: %#v", res)
	}
}

func TestResolveFallsBackToEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := writeKey(t, dir, "env.json")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", envPath)

	res := Resolve("")
	if res.Source != SourceEnv || res.Path != envPath || !res.Exists {
		t.Fatalf("unexpected resolution: %#v", res)
	}
}

func TestResolveMissingFileReportsNotExists(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	res := Resolve(filepath.Join(t.TempDir(), "nope.json"))
	if res.Source != SourceConfig || res.Exists {
		t.Fatalf("unexpected resolution: %#v", res)
	}
}

func TestReadKeyFile(t *testing.T) {
	path := writeKey(t, t.TempDir(), "key.json")

	key, err := ReadKeyFile(path)
	if err != nil {
		t.Fatalf("read key file: %v", err)
	}
	if key.Type != "service_account" {
		t.Fatalf("unexpected type: %s", key.Type)
	}
	if key.EffectiveProject() != "acme-search" {
		t.Fatalf("unexpected project: %s", key.EffectiveProject())
	}
}

func TestEffectiveProjectFallsBackToQuotaProject(t *testing.T) {
	key := KeyFile{QuotaProjectID: "quota-proj"}
	if key.EffectiveProject() != "quota-proj" {
		t.Fatalf("unexpected project: %s", key.EffectiveProject())
	}
}

func TestMask(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"short", "********"},
		{"ya29.A0ARrdaM-abcdef1234", "ya29…1234"},
	}
	for _, tc := range cases {
		if got := Mask(tc.in); got != tc.want {
			t.Fatalf("Mask(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
