package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mime2lynx.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Empty(t, cfg.Inputs())
	assert.Empty(t, cfg.Prefer())
	assert.Empty(t, cfg.Exec())
	assert.Empty(t, cfg.Logfile())
}

func TestLoadValues(t *testing.T) {
	path := writeConfig(t, `
input = ["/usr/share/applications/mimeinfo.cache"]
prefer = ["image/gif:mpv++", "text/html:lynx--"]
logfile = "/tmp/mime2lynx.log"

[exec]
feh = "feh --scale-down -- %s"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"/usr/share/applications/mimeinfo.cache"}, cfg.Inputs())
	assert.Equal(t, []string{"image/gif:mpv++", "text/html:lynx--"}, cfg.Prefer())
	assert.Equal(t, "/tmp/mime2lynx.log", cfg.Logfile())
	assert.Equal(t, map[string]string{"feh": "feh --scale-down -- %s"}, cfg.Exec())
}

func TestLoadMalformed(t *testing.T) {
	path := writeConfig(t, "prefer = [unclosed")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestOsScopeWins(t *testing.T) {
	path := writeConfig(t, fmt.Sprintf(`
prefer = ["fallback+"]

[os.%s]
prefer = ["scoped+"]
`, runtime.GOOS))
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"scoped+"}, cfg.Prefer())
}

func TestHostScopeWinsOverOs(t *testing.T) {
	host, err := os.Hostname()
	require.NoError(t, err)
	host = strings.ToLower(host)
	if strings.Contains(host, ".") {
		t.Skipf("hostname %q would need quoted TOML keys", host)
	}

	path := writeConfig(t, fmt.Sprintf(`
prefer = ["fallback+"]

[os.%s]
prefer = ["os+"]

[host.%s]
prefer = ["host+"]
`, runtime.GOOS, host))
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"host+"}, cfg.Prefer())
}
