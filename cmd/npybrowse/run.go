package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"npybrowse/internal/catalog"
	"npybrowse/internal/config"
	"npybrowse/internal/log"
	"npybrowse/internal/plot"
	"npybrowse/internal/tui"
	"npybrowse/internal/watch"
)

func run(opts config.Options) error {
	if err := opts.Normalize(); err != nil {
		return err
	}
	closeLog, err := setupLogging(opts)
	if err != nil {
		return err
	}
	defer closeLog()

	filter, err := catalog.NewFilter(opts.Ext)
	if err != nil {
		return err
	}
	cat, rules, err := openCatalog(opts, filter)
	if err != nil {
		return err
	}
	log.LogWithFields(log.F("mode", opts.Mode.String()), log.F("root", cat.Root()), log.F("ext", filter.Ext())).Info("Starting browser")

	var changes <-chan watch.Change
	if opts.Watch {
		w, err := startWatcher(cat.Root(), filter, opts.Mode == config.ModeTree)
		if err != nil {
			log.Warnf("Live refresh disabled: %v", err)
		} else {
			defer w.Stop()
			changes = w.Changes()
		}
	}

	m := tui.New(tui.Config{
		Catalog: cat,
		Rules:   rules,
		SaveDir: opts.SaveDir,
		Changes: changes,
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

func setupLogging(opts config.Options) (func(), error) {
	log.SetDebug(opts.Debug)
	if opts.LogFile == "" {
		return func() {}, nil
	}
	f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return func() { f.Close() }, nil
}

func openCatalog(opts config.Options, filter *catalog.Filter) (catalog.Catalog, plot.Rules, error) {
	if opts.Mode == config.ModeFlat {
		flat, err := catalog.NewFlat(opts.Root, filter, opts.Names)
		return flat, plot.FlatRules, err
	}
	root, err := catalog.ResolveRoot(opts.Root, filter)
	if err != nil {
		return nil, plot.TreeRules, err
	}
	tree, err := catalog.NewTree(root, filter)
	return tree, plot.TreeRules, err
}

func startWatcher(root string, filter *catalog.Filter, recursive bool) (*watch.Watcher, error) {
	w, err := watch.New(filter.Match, recursive)
	if err != nil {
		return nil, err
	}
	if err := w.Add(root); err != nil {
		w.Stop()
		return nil, err
	}
	if err := w.Start(); err != nil {
		w.Stop()
		return nil, err
	}
	return w, nil
}
