// Package config holds the run options assembled from the command line.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Mode selects the catalog strategy.
type Mode int

const (
	// ModeTree browses a recursive directory tree.
	ModeTree Mode = iota
	// ModeFlat browses a flat list of files in one directory.
	ModeFlat
)

func (m Mode) String() string {
	if m == ModeFlat {
		return "flat"
	}
	return "tree"
}

// DefaultExt is used when no extension filter is given.
const DefaultExt = ".npy"

// Options configures one run of the browser.
type Options struct {
	Mode Mode
	// Root is the folder to browse; empty means the working directory.
	Root string
	// Ext is the extension filter, always with a leading dot once normalized.
	Ext string
	// Names are explicit file stems for flat mode.
	Names []string

	LogFile string
	Debug   bool
	Watch   bool
	SaveDir string
}

// Default returns options with every field at its default.
func Default() Options {
	return Options{
		Mode:    ModeTree,
		Ext:     DefaultExt,
		LogFile: filepath.Join(os.TempDir(), "npybrowse.log"),
		Watch:   true,
		SaveDir: ".",
	}
}

// NormalizeExt trims the filter and adds the leading dot.
func NormalizeExt(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" || ext == "." {
		return DefaultExt
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Normalize fills in derived fields and checks the root.
func (o *Options) Normalize() error {
	o.Ext = NormalizeExt(o.Ext)
	if o.SaveDir == "" {
		o.SaveDir = "."
	}
	if o.Root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve working directory: %w", err)
		}
		o.Root = cwd
		return nil
	}
	abs, err := filepath.Abs(o.Root)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", o.Root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("folder %s: %w", o.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", o.Root)
	}
	o.Root = abs
	return nil
}
