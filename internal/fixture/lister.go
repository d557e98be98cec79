package fixture

import (
	"os"
	"strings"

	"golang.org/x/net/html"
)

// Listing is the result of enumerating a fixtures folder. A read failure
// is reported through the Unavailable variant rather than a returned
// error, so diagnostic callers swallow it deliberately instead of by
// accident.
type Listing struct {
	// Unavailable is set when the folder could not be read; Reason holds
	// the underlying failure. Fixtures is empty in that case.
	Unavailable bool
	Reason      error

	// Fixtures are the entry names ending in Ext, in directory-listing
	// order. No sort guarantee beyond what the filesystem read provides.
	Fixtures []string

	// Target is the currently configured capture target.
	Target string
}

// List enumerates the fixtures in dir, flagging target. It never returns
// an error; a missing or unreadable folder yields the unavailable variant.
func List(dir, target string) Listing {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Listing{Unavailable: true, Reason: err, Target: target}
	}

	l := Listing{Target: target}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Ext) {
			continue
		}
		l.Fixtures = append(l.Fixtures, entry.Name())
	}
	return l
}

// Preview returns the first n fixtures and the count of remaining entries.
func (l Listing) Preview(n int) ([]string, int) {
	if n >= len(l.Fixtures) {
		return l.Fixtures, 0
	}
	return l.Fixtures[:n], len(l.Fixtures) - n
}

// IsTarget reports whether name matches the configured capture target.
func (l Listing) IsTarget(name string) bool {
	return name != "" && name == l.Target
}

// Title extracts the <title> text of the HTML file at path, best effort.
// An empty string means no readable title; callers fall back to the bare
// filename. Fixtures are opaque inputs, so this is the only DOM detail
// the harness ever looks at, and only as a listing aid.
func Title(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return ""
	}
	return findTitle(doc)
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
			return strings.TrimSpace(n.FirstChild.Data)
		}
		return ""
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}
