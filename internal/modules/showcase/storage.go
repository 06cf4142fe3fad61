package showcase

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStore persists slide images and resolves their public URLs.
type ImageStore interface {
	// Save writes the image under a generated name and returns it.
	Save(name string, r io.Reader) (string, error)
	Delete(name string) error
	PublicURL(name string) string
}

// DiskStore keeps images in a local directory served as static files.
type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *DiskStore) Save(name string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	stored := uuid.New().String() + ext
	f, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write image: %w", err)
	}
	return stored, nil
}

func (s *DiskStore) Delete(name string) error {
	// The stored name is always a generated UUID + extension, never a path.
	if name == "" || strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("invalid image name %q", name)
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *DiskStore) PublicURL(name string) string {
	return s.baseURL + "/uploads/" + name
}

// Dir is the directory static file serving should point at.
func (s *DiskStore) Dir() string { return s.dir }
