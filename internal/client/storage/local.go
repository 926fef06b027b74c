package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/teacherlms/internal/filex"
)

// LocalStore keeps blobs under root/<categoryID>/<uuid>-<name>.
type LocalStore struct {
	root string
}

// NewLocalStore creates root if needed.
func NewLocalStore(root string) (*LocalStore, error) {
	abs, err := filex.EnsureDir(root)
	if err != nil {
		return nil, fmt.Errorf("blob dir: %w", err)
	}
	return &LocalStore{root: abs}, nil
}

func (s *LocalStore) Put(ctx context.Context, categoryID, name, _ string, r io.Reader, _ int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, filepath.Base(categoryID))
	if _, err := filex.EnsureDir(dir); err != nil {
		return "", err
	}

	path, err := filex.SaveAs(dir, uuid.NewString()+"-"+filepath.Base(name), r)
	if err != nil {
		return "", err
	}

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String(), nil
}

func (s *LocalStore) Open(_ context.Context, u *url.URL) (io.ReadCloser, error) {
	f, err := os.Open(filepath.FromSlash(u.Path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrBlobNotFound, u.Path)
		}
		return nil, fmt.Errorf("open %s: %w", u.Path, err)
	}
	return f, nil
}

func (s *LocalStore) Link(_ context.Context, u *url.URL) (string, error) {
	if _, err := os.Stat(filepath.FromSlash(u.Path)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrBlobNotFound, u.Path)
		}
		return "", err
	}
	return u.String(), nil
}
