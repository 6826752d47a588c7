// Package testutil provides shared test helpers for config files and import fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestTokenSecret is long enough to pass config validation.
const TestTokenSecret = "test-token-secret-0123456789abcdef"

// SetupTestConfig writes a config file pointing the client at serverURL and returns its path.
// Secrets are included so that the file is usable by the server as well.
func SetupTestConfig(t *testing.T, tmpDir, serverURL string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(tmpDir, 0755))

	configContent := fmt.Sprintf(`server:
  port: 18080
  api_key: test-api-key
  public_base_url: http://localhost:18080
client:
  server_url: %s
  timeout_seconds: 5
  retry_attempts: 0
token:
  secret: %s
notification:
  timezone: Asia/Tokyo
  tolerance_minutes: 30
line:
  channel_secret: test-channel-secret
  channel_token: test-channel-token
log:
  level: debug
  format: console
`, serverURL, TestTokenSecret)

	configPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	return configPath
}

// WriteImportFile writes a YAML memo import file with one memo per title and returns its path.
func WriteImportFile(t *testing.T, tmpDir string, userID int64, titles ...string) string {
	t.Helper()

	content := "memos:\n"
	for i, title := range titles {
		content += fmt.Sprintf(`  - user_id: %d
    title: %s
    body: Body of %s.
    source_ref: fixture#%d
    quizzes:
      - type: cloze
        stem: Body of ___.
        answer: %s
`, userID, title, title, i+1, title)
	}

	path := filepath.Join(tmpDir, "memos.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
