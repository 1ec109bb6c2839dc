package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"docintel/internal/port"
)

// localSink writes report artifacts to a directory on the local filesystem.
type localSink struct {
	dir string
}

// NewLocalSink creates a filesystem-backed report sink rooted at dir.
func NewLocalSink(dir string) port.ReportSink {
	if dir == "" {
		dir = "."
	}
	return &localSink{dir: dir}
}

func (s *localSink) Write(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return path, nil
}
