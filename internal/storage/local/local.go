package local

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"finvoice/internal/domain"
	"finvoice/internal/port"
)

type localStorage struct {
	baseDir    string
	uploadsDir string
	rendersDir string
}

// New creates a disk-backed ObjectStorage rooted at baseDir. Keys are
// slash-separated relative paths; the first segment selects the area
// (uploads or renders).
func New(baseDir, uploadsDir, rendersDir string) (port.ObjectStorage, error) {
	for _, dir := range []string{uploadsDir, rendersDir} {
		if err := os.MkdirAll(filepath.Join(baseDir, dir), 0o755); err != nil {
			return nil, fmt.Errorf("local storage init: %w", err)
		}
	}
	return &localStorage{
		baseDir:    baseDir,
		uploadsDir: uploadsDir,
		rendersDir: rendersDir,
	}, nil
}

// resolve maps a key to an absolute path under baseDir, rejecting keys that
// escape it.
func (s *localStorage) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("local storage: invalid key %q", key)
	}
	return filepath.Join(s.baseDir, clean), nil
}

func (s *localStorage) Save(ctx context.Context, input port.SaveInput) (string, error) {
	path, err := s.resolve(input.Key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("local storage save: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("local storage save: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, input.Body); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("local storage save: %w", err)
	}
	return input.Key, nil
}

func (s *localStorage) Read(ctx context.Context, key string) ([]byte, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNoRenderedDocument
		}
		return nil, fmt.Errorf("local storage read: %w", err)
	}
	return data, nil
}

func (s *localStorage) Delete(ctx context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("local storage delete: %w", err)
	}
	return nil
}

func (s *localStorage) Usage(ctx context.Context) (*domain.StorageUsage, error) {
	usage := &domain.StorageUsage{}

	measure := func(dir string) (int64, int, error) {
		var bytes int64
		var count int
		root := filepath.Join(s.baseDir, dir)
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			bytes += info.Size()
			count++
			return nil
		})
		if err != nil {
			if os.IsNotExist(err) {
				return 0, 0, nil
			}
			return 0, 0, err
		}
		return bytes, count, nil
	}

	uploadsBytes, uploadsCount, err := measure(s.uploadsDir)
	if err != nil {
		return nil, fmt.Errorf("local storage usage: %w", err)
	}
	rendersBytes, rendersCount, err := measure(s.rendersDir)
	if err != nil {
		return nil, fmt.Errorf("local storage usage: %w", err)
	}

	usage.UploadsBytes = uploadsBytes
	usage.RendersBytes = rendersBytes
	usage.TotalBytes = uploadsBytes + rendersBytes
	usage.FileCount = uploadsCount + rendersCount
	return usage, nil
}
