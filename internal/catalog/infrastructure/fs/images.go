package fs

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ImageStore serves product images from a local directory as base64.
type ImageStore struct {
	dir string
}

func NewImageStore(dir string) *ImageStore {
	return &ImageStore{dir: dir}
}

// InlineBase64 returns the raw base64 encoding of the image, the form product
// listings carry in their image_data field.
func (s *ImageStore) InlineBase64(filename string) (string, error) {
	raw, err := s.read(filename)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DataURI returns the image as a data: URI usable directly in an img src.
func (s *ImageStore) DataURI(filename string) (string, error) {
	raw, err := s.read(filename)
	if err != nil {
		return "", err
	}
	return "data:" + mimeFor(filename) + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}

func (s *ImageStore) read(filename string) ([]byte, error) {
	if filename == "" {
		return nil, fmt.Errorf("empty image filename")
	}
	// Only the base name is honored, the directory is fixed.
	name := filepath.Base(filename)
	if name == "." || name == ".." {
		return nil, fmt.Errorf("invalid image filename %q", filename)
	}

	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", name, err)
	}
	return raw, nil
}

func mimeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
