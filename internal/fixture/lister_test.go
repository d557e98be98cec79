package fixture_test

import (
	"os"
	"path/filepath"
	"testing"

	"vizsnap/internal/fixture"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a.html", "<html></html>")
	writeFixture(t, dir, "b.html", "<html></html>")
	writeFixture(t, dir, "c.txt", "not a fixture")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.html"), 0o755))

	l := fixture.List(dir, "b.html")
	require.False(t, l.Unavailable)

	if diff := cmp.Diff([]string{"a.html", "b.html"}, l.Fixtures); diff != "" {
		t.Errorf("unexpected fixtures (-want +got):\n%s", diff)
	}

	assert.False(t, l.IsTarget("a.html"))
	assert.True(t, l.IsTarget("b.html"))
	assert.False(t, l.IsTarget("c.txt"), "non-fixture entries are never flagged")
}

func TestListUnavailable(t *testing.T) {
	l := fixture.List(filepath.Join(t.TempDir(), "nope"), "demo1.html")

	assert.True(t, l.Unavailable)
	assert.Error(t, l.Reason)
	assert.Empty(t, l.Fixtures)
	// Target is still carried for reporting.
	assert.Equal(t, "demo1.html", l.Target)
}

func TestListingPreview(t *testing.T) {
	dir := t.TempDir()
	names := []string{"a.html", "b.html", "c.html", "d.html", "e.html"}
	for _, n := range names {
		writeFixture(t, dir, n, "<html></html>")
	}

	l := fixture.List(dir, "")

	preview, remaining := l.Preview(3)
	assert.Len(t, preview, 3)
	assert.Equal(t, 2, remaining)

	preview, remaining = l.Preview(10)
	assert.Len(t, preview, 5)
	assert.Zero(t, remaining)
}

func TestListingEmptyTargetNeverFlags(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a.html", "<html></html>")

	l := fixture.List(dir, "")
	assert.False(t, l.IsTarget("a.html"))
	assert.False(t, l.IsTarget(""))
}

func TestTitle(t *testing.T) {
	dir := t.TempDir()

	t.Run("extracts the title text", func(t *testing.T) {
		writeFixture(t, dir, "sort.html",
			`<html><head><title>Bubble Sort Visualizer</title></head><body></body></html>`)
		assert.Equal(t, "Bubble Sort Visualizer", fixture.Title(filepath.Join(dir, "sort.html")))
	})

	t.Run("missing title yields empty string", func(t *testing.T) {
		writeFixture(t, dir, "bare.html", `<html><body><p>hi</p></body></html>`)
		assert.Empty(t, fixture.Title(filepath.Join(dir, "bare.html")))
	})

	t.Run("unreadable file yields empty string", func(t *testing.T) {
		assert.Empty(t, fixture.Title(filepath.Join(dir, "missing.html")))
	})
}
