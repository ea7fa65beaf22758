package workflows

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/triplo-webui/internal/audit"
	"github.com/PolarWolf314/triplo-webui/internal/configs"
)

// testSettings returns file-backed settings rooted in a fresh temp directory.
func testSettings(t *testing.T) *configs.Settings {
	t.Helper()
	dir := t.TempDir()
	return &configs.Settings{
		AuthFile:   filepath.Join(dir, "webui-auth.json"),
		KeyFile:    filepath.Join(dir, "webui-auth.key"),
		KeyBackend: configs.KeyBackendFile,
		AuditLog:   filepath.Join(dir, "webui-auth-audit.jsonl"),
	}
}

func writeAuthFile(t *testing.T, s *configs.Settings, content string) {
	t.Helper()
	if err := os.WriteFile(s.AuthFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write auth file: %v", err)
	}
}

func auditOps(t *testing.T, s *configs.Settings) []string {
	t.Helper()
	entries, err := audit.ReadEntries(s.AuditLog)
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}
	var ops []string
	for _, e := range entries {
		ops = append(ops, e.Operation)
	}
	return ops
}
