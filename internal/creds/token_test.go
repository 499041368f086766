// Where: internal/creds/token_test.go
// What: Tests for token minting failure surface.
// Why: A broken cloud session must fail fast and name the login command.
package creds

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMintFailsWithLoginHintOnGarbageKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.json")
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatalf("write key: %v", err)
	}

	_, err := NewMinter().Mint(context.Background(), Resolution{Path: path, Source: SourceConfig, Exists: true})
	if err == nil {
		t.Fatal("expected error for garbage credentials")
	}
	if !strings.Contains(err.Error(), "gcloud auth application-default login") {
		t.Fatalf("error does not mention login command: %v", err)
	}
}
