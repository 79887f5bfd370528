// Package source provides statute sources for the evaluation engine.
//
// A statute source loads statute definitions and can watch for changes.
// This package provides file-based and in-memory implementations.
//
// # File Source
//
// The file source loads statutes from YAML files on disk:
//
//	src := source.NewFileSource("statutes/", logger)
//	statutes, err := src.Load(ctx)
//
// # Hot-Reload
//
// File sources support hot-reload through an fsnotify watcher with
// debouncing:
//
//	watcher, err := source.NewFileWatcher(source.DefaultFileWatcherConfig("statutes/"), logger)
//	go watcher.Watch(ctx, func() error {
//	    statutes, err := src.Load(ctx)
//	    ...
//	})
//
// # In-Memory Source
//
// The in-memory source is useful for testing:
//
//	src := source.NewMemorySource(statutes...)
package source
