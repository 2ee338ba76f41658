package tables

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSource reads tables from a local directory.
type FileSource struct {
	Dir string
}

// NewFileSource creates a source rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

// Name implements Source.
func (s *FileSource) Name() string {
	return "file:" + s.Dir
}

// Rows implements Source. A missing file wraps fs.ErrNotExist.
func (s *FileSource) Rows(ctx context.Context, t Table) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(s.Dir, t.File)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ParseRows(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// DirSink writes reports as files in a directory.
type DirSink struct {
	Dir string
}

// NewDirSink creates a sink rooted at dir.
func NewDirSink(dir string) *DirSink {
	return &DirSink{Dir: dir}
}

// Name describes the sink for logs.
func (s *DirSink) Name() string {
	return "dir:" + s.Dir
}

// Write implements Sink. The directory is created if needed.
func (s *DirSink) Write(ctx context.Context, name string, lines []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", s.Dir, err)
	}
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, Render(lines), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
