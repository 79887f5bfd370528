package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tribunal-hq/minos/pkg/statute/ast"
)

// FileSource loads statutes from YAML files on disk.
type FileSource struct {
	path   string
	logger *slog.Logger
}

// NewFileSource creates a new file-based statute source.
// The path can be either a single file or a directory.
// If it's a directory, all .yaml and .yml files will be loaded.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{
		path:   path,
		logger: logger.With("component", "statute.source"),
	}
}

// Load loads all statutes from the configured path.
func (s *FileSource) Load(ctx context.Context) ([]*ast.Statute, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %q: %w", s.path, err)
	}

	var statutes []*ast.Statute
	if info.IsDir() {
		statutes, err = s.loadDirectory(ctx)
	} else {
		statutes, err = s.loadFile(ctx, s.path)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("loaded statutes from source",
		"path", s.path,
		"statute_count", len(statutes),
	)

	return statutes, nil
}

// loadDirectory loads all statute files from a directory.
func (s *FileSource) loadDirectory(ctx context.Context) ([]*ast.Statute, error) {
	var statutes []*ast.Statute

	err := filepath.Walk(s.path, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		loaded, err := s.loadFile(ctx, path)
		if err != nil {
			s.logger.Warn("failed to load statute file, skipping",
				"path", path,
				"error", err,
			)
			return nil // Skip invalid files
		}

		statutes = append(statutes, loaded...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %q: %w", s.path, err)
	}

	return statutes, nil
}

// loadFile loads a single statute file.
func (s *FileSource) loadFile(ctx context.Context, path string) ([]*ast.Statute, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}

	statutes, err := ParseStatutes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse statute file %q: %w", path, err)
	}

	s.logger.Debug("loaded statute file",
		"path", path,
		"statute_count", len(statutes),
	)

	return statutes, nil
}
