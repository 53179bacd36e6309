// Package blob stores uploaded images and hands back a URL for them.
package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"snapbook/internal/validate"
)

// LocalStore writes objects under Dir and serves them from URLPrefix.
type LocalStore struct {
	Dir       string
	URLPrefix string
}

func NewLocal(dir string) *LocalStore {
	return &LocalStore{Dir: dir, URLPrefix: "/media"}
}

// objectKey builds "<folder>/<uuid><ext>" for the content type.
func objectKey(contentType, folder string) (string, error) {
	ext, ok := validate.ImageType(contentType)
	if !ok {
		return "", fmt.Errorf("blob: unsupported content type %q", contentType)
	}
	folder = strings.Trim(filepath.ToSlash(filepath.Clean("/"+folder)), "/")
	if folder == "" {
		return uuid.NewString() + ext, nil
	}
	return folder + "/" + uuid.NewString() + ext, nil
}

func (s *LocalStore) Put(_ context.Context, r io.Reader, size int64, contentType, folder string) (string, error) {
	key, err := objectKey(contentType, folder)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	n, err := io.Copy(f, io.LimitReader(r, size+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n != size {
		err = fmt.Errorf("blob: wrote %d bytes, expected %d", n, size)
	}
	if err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return strings.TrimRight(s.URLPrefix, "/") + "/" + key, nil
}
