// Package fixture resolves demo fixture files to browser-addressable URLs
// and enumerates the fixtures folder for operator orientation.
package fixture

import (
	"os"
	"path/filepath"
	"strings"
)

// Ext is the file extension that marks a directory entry as a fixture.
const Ext = ".html"

// Resolver translates fixture names into file:// URLs and answers
// existence checks. It performs no browser I/O and no mutation.
type Resolver struct {
	dir string
}

// NewResolver returns a Resolver bound to the given fixtures folder.
func NewResolver(dir string) *Resolver {
	return &Resolver{dir: dir}
}

// Dir returns the fixtures folder the resolver is bound to.
func (r *Resolver) Dir() string { return r.dir }

// Path returns the host filesystem path of the named fixture.
func (r *Resolver) Path(name string) string {
	return filepath.Join(r.dir, name)
}

// Address returns a fully qualified file:// URL for the named fixture.
// Separators are normalised to forward slashes so the URL is valid for a
// browser navigation call on any host OS. Existence is checked separately;
// this is pure path construction and always succeeds.
func (r *Resolver) Address(name string) string {
	abs, err := filepath.Abs(r.Path(name))
	if err != nil {
		abs = r.Path(name)
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		// Windows drive paths (C:/...) need a leading slash after file://.
		p = "/" + p
	}
	return "file://" + p
}

// Exists reports whether the named fixture is present on disk. A missing
// fixture is a normal outcome for the caller to handle, so this never
// returns an error.
func (r *Resolver) Exists(name string) bool {
	info, err := os.Stat(r.Path(name))
	return err == nil && !info.IsDir()
}
