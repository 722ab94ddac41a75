package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteConfig writes a minimal config file rooted in a temp directory and
// returns its path.
func WriteConfig(t *testing.T) string {
	t.Helper()

	base := t.TempDir()
	content := strings.Join([]string{
		"[paths]",
		`state_dir = "` + filepath.Join(base, "state") + `"`,
		`log_dir = "` + filepath.Join(base, "logs") + `"`,
		"",
	}, "\n")

	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	return path
}
