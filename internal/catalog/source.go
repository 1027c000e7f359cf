package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"fairweather/internal/types"
)

// Source supplies raw activity definitions.
type Source interface {
	// Name identifies the source in logs and metrics ("file", "s3", "postgres").
	Name() string
	Load(ctx context.Context) ([]types.ActivityDefinition, error)
}

// Load reads definitions from src and builds the catalog.
func Load(ctx context.Context, src Source, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	defs, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: loading from %s: %w", src.Name(), err)
	}

	c, err := New(defs, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("activity catalog loaded",
		"source", src.Name(),
		"activities", c.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return c, nil
}

// FileSource reads a YAML or JSON catalog from the local filesystem.
// A ".zst" suffix marks zstd-compressed content.
type FileSource struct {
	Path string
}

// NewFileSource creates a FileSource for the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Name implements Source.
func (s *FileSource) Name() string { return "file" }

// Load implements Source.
func (s *FileSource) Load(_ context.Context) ([]types.ActivityDefinition, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalCatalog, fmt.Sprintf("cannot open catalog file %s", s.Path), err)
	}
	defer f.Close()

	return decodeBlob(s.Path, f)
}

// StaticSource serves definitions already held in memory.
type StaticSource []types.ActivityDefinition

// Name implements Source.
func (StaticSource) Name() string { return "static" }

// Load implements Source.
func (s StaticSource) Load(_ context.Context) ([]types.ActivityDefinition, error) {
	out := make([]types.ActivityDefinition, len(s))
	copy(out, s)
	return out, nil
}
