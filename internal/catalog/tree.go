package catalog

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

type node struct {
	name     string
	path     string
	dir      bool
	open     bool
	depth    int
	parent   *node
	children []*node
}

// Tree is a live directory tree of matching files.
//
// Directories holding no matching file at any depth are pruned. Only files
// can be selected; the selection is an absolute path.
type Tree struct {
	changes

	root   *node
	filter *Filter

	visible  []*node
	cursor   int
	selected string
}

// NewTree builds the tree rooted at root.
func NewTree(root string, filter *Filter) (*Tree, error) {
	root = absPath(root)
	t := &Tree{
		root:   &node{name: filepath.Base(root), path: root, dir: true, open: true, depth: -1},
		filter: filter,
	}
	if err := t.Refresh(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tree) Root() string { return t.root.path }

func (t *Tree) Filter() *Filter { return t.filter }

func (t *Tree) Rows() []Row {
	rows := make([]Row, len(t.visible))
	for i, n := range t.visible {
		rows[i] = Row{
			Entry: Entry{Path: n.path, Label: n.name},
			Depth: n.depth,
			IsDir: n.dir,
			Open:  n.open,
		}
	}
	return rows
}

func (t *Tree) Cursor() int { return t.cursor }

// Move shifts the cursor; landing on a file selects it.
func (t *Tree) Move(delta int) {
	if len(t.visible) == 0 {
		return
	}
	t.cursor += delta
	if t.cursor < 0 {
		t.cursor = 0
	}
	if t.cursor >= len(t.visible) {
		t.cursor = len(t.visible) - 1
	}
	t.selectCursor()
}

func (t *Tree) selectCursor() {
	n := t.visible[t.cursor]
	if n.dir || n.path == t.selected {
		return
	}
	t.selected = n.path
	t.mark()
}

// Toggle opens or closes the directory under the cursor, or selects the
// file under it.
func (t *Tree) Toggle() {
	if len(t.visible) == 0 {
		return
	}
	n := t.visible[t.cursor]
	if !n.dir {
		t.selectCursor()
		return
	}
	n.open = !n.open
	t.flatten()
}

// Expand opens the directory under the cursor.
func (t *Tree) Expand() {
	if len(t.visible) == 0 {
		return
	}
	if n := t.visible[t.cursor]; n.dir && !n.open {
		n.open = true
		t.flatten()
	}
}

// Collapse closes the directory under the cursor, or moves to the parent
// directory when the cursor is on a file or a closed directory.
func (t *Tree) Collapse() {
	if len(t.visible) == 0 {
		return
	}
	n := t.visible[t.cursor]
	if n.dir && n.open {
		n.open = false
		t.flatten()
		return
	}
	if n.parent != nil && n.parent != t.root {
		for i, v := range t.visible {
			if v == n.parent {
				t.cursor = i
				return
			}
		}
	}
}

// Select moves the cursor to path, opening its ancestors.
func (t *Tree) Select(path string) bool {
	n := t.find(path)
	if n == nil || n.dir {
		return false
	}
	for p := n.parent; p != nil; p = p.parent {
		p.open = true
	}
	t.flatten()
	for i, v := range t.visible {
		if v == n {
			t.cursor = i
		}
	}
	if t.selected != path {
		t.selected = path
		t.mark()
	}
	return true
}

func (t *Tree) Selected() (Entry, bool) {
	if t.selected == "" {
		return Entry{}, false
	}
	return Entry{Path: t.selected, Label: filepath.Base(t.selected)}, true
}

// Refresh rereads the filesystem. Open directories stay open and the
// selection survives when its file still exists. No selection change is
// reported for anything that happens during the rebuild.
func (t *Tree) Refresh() error {
	t.suppress = true
	defer func() { t.suppress = false }()

	open := map[string]bool{}
	t.walk(t.root, func(n *node) {
		if n.dir && n.open {
			open[n.path] = true
		}
	})
	var cursorPath string
	if t.cursor < len(t.visible) {
		cursorPath = t.visible[t.cursor].path
	}

	fresh := &node{name: t.root.name, path: t.root.path, dir: true, open: true, depth: -1}
	if _, err := t.build(fresh); err != nil {
		return err
	}
	t.walk(fresh, func(n *node) {
		if n.dir && open[n.path] {
			n.open = true
		}
	})
	t.root = fresh

	sel := t.selected
	t.selected = ""
	if sel != "" {
		t.Select(sel)
	}
	t.flatten()
	t.cursor = 0
	target := cursorPath
	if t.selected != "" {
		target = t.selected
	}
	for i, v := range t.visible {
		if v.path == target {
			t.cursor = i
			break
		}
	}
	return nil
}

// build fills dir's children and reports whether any match lies below it.
func (t *Tree) build(dir *node) (bool, error) {
	entries, err := os.ReadDir(dir.path)
	if err != nil {
		// unreadable subdirectories are left out, an unreadable root is fatal
		if dir.depth >= 0 {
			return false, nil
		}
		return false, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return entries[i].Name() < entries[j].Name()
	})
	dir.children = dir.children[:0]
	found := false
	for _, e := range entries {
		if isHidden(e.Name()) {
			continue
		}
		child := &node{
			name:   e.Name(),
			path:   filepath.Join(dir.path, e.Name()),
			dir:    e.IsDir(),
			depth:  dir.depth + 1,
			parent: dir,
		}
		if child.dir {
			ok, _ := t.build(child)
			if !ok {
				continue
			}
		} else if !t.filter.Match(e.Name()) {
			continue
		}
		dir.children = append(dir.children, child)
		found = true
	}
	return found, nil
}

func (t *Tree) flatten() {
	t.visible = t.visible[:0]
	var add func(n *node)
	add = func(n *node) {
		for _, c := range n.children {
			t.visible = append(t.visible, c)
			if c.dir && c.open {
				add(c)
			}
		}
	}
	add(t.root)
	if t.cursor >= len(t.visible) {
		t.cursor = max(0, len(t.visible)-1)
	}
}

func (t *Tree) walk(n *node, fn func(*node)) {
	fn(n)
	for _, c := range n.children {
		t.walk(c, fn)
	}
}

func (t *Tree) find(path string) *node {
	var found *node
	t.walk(t.root, func(n *node) {
		if found == nil && n.path == path {
			found = n
		}
	})
	return found
}

// ResolveRoot picks the folder the tree is rooted at: folder itself when it
// directly holds a matching file, otherwise the directory of the first match
// found walking subdirectories in lexical order, otherwise folder.
func ResolveRoot(folder string, filter *Filter) (string, error) {
	if folder == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		folder = cwd
	}
	folder = absPath(folder)
	entries, err := os.ReadDir(folder)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if !e.IsDir() && !isHidden(e.Name()) && filter.Match(e.Name()) {
			return folder, nil
		}
	}
	found := ""
	err = filepath.WalkDir(folder, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p != folder && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if filter.Match(d.Name()) && !isHidden(d.Name()) {
			found = filepath.Dir(p)
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return folder, nil
	}
	return found, nil
}
