package catalog

import (
	"os"
	"path/filepath"
	"sort"
)

// DefaultFirst is the flat default-selection policy: when nothing was
// picked explicitly, the first entry counts as selected.
func DefaultFirst(entries []Entry) (Entry, bool) {
	if len(entries) == 0 {
		return Entry{}, false
	}
	return entries[0], true
}

// Flat lists the matching files of one directory, or a fixed set of names.
//
// Refresh only appends: a label already listed is never added twice and
// entries are not dropped when their file disappears.
type Flat struct {
	changes

	root   string
	filter *Filter
	names  []string

	entries []Entry
	cursor  int // -1 until something is picked explicitly
}

// NewFlat lists root (or names, when given) and returns the catalog.
func NewFlat(root string, filter *Filter, names []string) (*Flat, error) {
	c := &Flat{
		root:   root,
		filter: filter,
		names:  append([]string(nil), names...),
		cursor: -1,
	}
	if err := c.Refresh(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Flat) Root() string { return c.root }

func (c *Flat) Filter() *Filter { return c.filter }

// Entries returns the listed entries in display order.
func (c *Flat) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

func (c *Flat) Rows() []Row {
	rows := make([]Row, len(c.entries))
	for i, e := range c.entries {
		rows[i] = Row{Entry: e}
	}
	return rows
}

// Cursor is the index of the selected entry, applying DefaultFirst.
func (c *Flat) Cursor() int {
	if c.cursor < 0 && len(c.entries) > 0 {
		return 0
	}
	return c.cursor
}

func (c *Flat) Move(delta int) {
	if len(c.entries) == 0 {
		return
	}
	cur := c.Cursor()
	next := cur + delta
	if next < 0 {
		next = 0
	}
	if next >= len(c.entries) {
		next = len(c.entries) - 1
	}
	explicit := c.cursor >= 0
	c.cursor = next
	if next != cur || !explicit {
		c.mark()
	}
}

// Select picks the entry with the given path.
func (c *Flat) Select(path string) bool {
	for i, e := range c.entries {
		if e.Path == path {
			if i != c.cursor {
				c.cursor = i
				c.mark()
			}
			return true
		}
	}
	return false
}

func (c *Flat) Selected() (Entry, bool) {
	if c.cursor >= 0 && c.cursor < len(c.entries) {
		return c.entries[c.cursor], true
	}
	return DefaultFirst(c.entries)
}

// Refresh appends files that appeared since the last listing.
func (c *Flat) Refresh() error {
	c.suppress = true
	defer func() { c.suppress = false }()

	names := c.names
	if len(names) == 0 {
		listed, err := c.list()
		if err != nil {
			return err
		}
		names = listed
	}
	seen := make(map[string]bool, len(c.entries))
	for _, e := range c.entries {
		seen[e.Label] = true
	}
	for _, n := range names {
		label := c.filter.Stem(n)
		if seen[label] {
			continue
		}
		seen[label] = true
		c.entries = append(c.entries, Entry{Label: label, Path: c.pathFor(label)})
	}
	return nil
}

// pathFor rebuilds the file path of a label by appending the extension.
func (c *Flat) pathFor(label string) string {
	p := label + c.filter.Ext()
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.root, p)
}

func (c *Flat) list() ([]string, error) {
	dir, err := os.ReadDir(c.root)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range dir {
		if e.IsDir() || !c.filter.Match(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out, nil
}
