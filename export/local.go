package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type LocalWriterConfig struct {
	Dir string
}

type localWriter struct {
	dir string
}

// NewLocalWriter stores reports under a directory on the local
// filesystem, creating it if needed.
func NewLocalWriter(cfg LocalWriterConfig) (Writer, error) {
	if cfg.Dir == "" {
		return nil, errors.New("invalid local writer configuration: directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory %s: %w", cfg.Dir, err)
	}
	return &localWriter{dir: cfg.Dir}, nil
}

func (w *localWriter) Write(ctx context.Context, key string, contentType string, reader io.Reader) (*WriteResult, error) {
	path, err := w.resolve(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory for key %s: %w", key, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file for key %s: %w", key, err)
	}
	if _, err := io.Copy(file, reader); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write file for key %s: %w", key, err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file for key %s: %w", key, err)
	}

	location := path
	if abs, err := filepath.Abs(path); err == nil {
		location = abs
	}
	return &WriteResult{Key: key, Location: location}, nil
}

func (w *localWriter) Remove(ctx context.Context, key string) error {
	path, err := w.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove file for key %s: %w", key, err)
	}
	return nil
}

// resolve maps a key onto the managed directory. Keys may carry
// subdirectories but must not escape the root.
func (w *localWriter) resolve(key string) (string, error) {
	if key == "" {
		return "", errors.New("key is required")
	}
	cleaned := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("key %q escapes the export directory", key)
	}
	return filepath.Join(w.dir, cleaned), nil
}
