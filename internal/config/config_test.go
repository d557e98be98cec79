package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "fixtures", cfg.Fixtures)
	assert.Equal(t, "output", cfg.Output)
	assert.Equal(t, DefaultTarget, cfg.Target)
	assert.True(t, cfg.Browser.Headless)
	assert.True(t, cfg.History.Enabled)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "vizsnap.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultTarget, cfg.Target)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vizsnap.yaml")
	raw := `
fixtures: demos
output: shots
target: quicksort.html
browser:
  headless: false
  navigation_timeout: 20s
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "demos", cfg.Fixtures)
	assert.Equal(t, "shots", cfg.Output)
	assert.Equal(t, "quicksort.html", cfg.Target)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, 20*time.Second, cfg.Browser.GetNavigationTimeout())
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vizsnap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fixtures: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("VIZSNAP_TARGET overrides the configured target", func(t *testing.T) {
		t.Setenv("VIZSNAP_TARGET", "heap_toy.html")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "heap_toy.html", cfg.Target)
	})

	t.Run("unset env leaves the default", func(t *testing.T) {
		t.Setenv("VIZSNAP_TARGET", "")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, DefaultTarget, cfg.Target)
	})

	t.Run("folder and ledger overrides", func(t *testing.T) {
		t.Setenv("VIZSNAP_FIXTURES", "/srv/fixtures")
		t.Setenv("VIZSNAP_OUTPUT", "/srv/output")
		t.Setenv("VIZSNAP_DB", "/srv/vizsnap.db")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "/srv/fixtures", cfg.Fixtures)
		assert.Equal(t, "/srv/output", cfg.Output)
		assert.Equal(t, "/srv/vizsnap.db", cfg.History.DatabasePath)
	})
}

func TestDurationGetters(t *testing.T) {
	b := BrowserConfig{
		DefaultTimeout:    "5s",
		NavigationTimeout: "12s",
		ScreenshotTimeout: "3s",
		SettleDelay:       "750ms",
	}
	assert.Equal(t, 5*time.Second, b.GetDefaultTimeout())
	assert.Equal(t, 12*time.Second, b.GetNavigationTimeout())
	assert.Equal(t, 3*time.Second, b.GetScreenshotTimeout())
	assert.Equal(t, 750*time.Millisecond, b.GetSettleDelay())

	// Garbage falls back to the built-in budgets.
	bad := BrowserConfig{DefaultTimeout: "soon", NavigationTimeout: "", ScreenshotTimeout: "x", SettleDelay: "?"}
	assert.Equal(t, 10*time.Second, bad.GetDefaultTimeout())
	assert.Equal(t, 15*time.Second, bad.GetNavigationTimeout())
	assert.Equal(t, 8*time.Second, bad.GetScreenshotTimeout())
	assert.Equal(t, time.Second, bad.GetSettleDelay())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "vizsnap.yaml")

	cfg := DefaultConfig()
	cfg.Target = "avl_tree.html"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "avl_tree.html", loaded.Target)
	assert.Equal(t, cfg.Browser, loaded.Browser)
}
