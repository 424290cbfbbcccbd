// Package catalog enumerates the array files a user can browse and tracks
// which one is selected.
//
// Two strategies exist: Flat lists one directory (or explicit names given
// on the command line), Tree shows a recursive directory tree. Both report
// selection changes through TakeChange, and both suppress changes raised
// while they rebuild themselves in Refresh.
package catalog

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"npybrowse/internal/config"
)

// Entry is one browsable file.
type Entry struct {
	Path  string
	Label string
}

// Row is an entry as displayed, with tree placement.
type Row struct {
	Entry
	Depth int
	IsDir bool
	Open  bool
}

// Catalog is the part of a strategy the UI drives.
type Catalog interface {
	Root() string
	Filter() *Filter
	Rows() []Row
	Cursor() int
	Move(delta int)
	Select(path string) bool
	Selected() (Entry, bool)
	Refresh() error
	// TakeChange reports whether the selection changed since the last
	// call, and clears the flag.
	TakeChange() bool
}

// Filter matches file names against an extension.
type Filter struct {
	ext string
	g   glob.Glob
}

// NewFilter compiles a filter for ext. A missing leading dot is added and
// an empty ext means the default extension.
func NewFilter(ext string) (*Filter, error) {
	ext = config.NormalizeExt(ext)
	g, err := glob.Compile("*" + glob.QuoteMeta(ext))
	if err != nil {
		return nil, fmt.Errorf("compile filter for %q: %w", ext, err)
	}
	return &Filter{ext: ext, g: g}, nil
}

func (f *Filter) Ext() string { return f.ext }

// Match reports whether a base name passes the filter.
func (f *Filter) Match(name string) bool {
	return f.g.Match(name)
}

// Pattern is the glob the filter uses, for display.
func (f *Filter) Pattern() string { return "*" + f.ext }

// Stem strips the extension from name when present.
func (f *Filter) Stem(name string) string {
	return strings.TrimSuffix(name, f.ext)
}

// changes implements the suppressible selection-changed flag shared by
// both strategies.
type changes struct {
	changed  bool
	suppress bool
}

func (c *changes) mark() {
	if !c.suppress {
		c.changed = true
	}
}

func (c *changes) TakeChange() bool {
	ch := c.changed
	c.changed = false
	return ch
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func absPath(p string) string {
	if a, err := filepath.Abs(p); err == nil {
		return a
	}
	return p
}
