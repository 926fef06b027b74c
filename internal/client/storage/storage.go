// Package storage keeps the bytes of uploaded files. The content records on
// the server only carry a URL; this package writes blobs somewhere durable on
// upload and turns those URLs back into bytes or browsable links later.
//
// Supported schemes:
//
//	file://   LocalStore, a directory on this machine
//	s3://     S3Store, an S3-compatible bucket
//	http(s):// HTTPFetcher, links created by someone else
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
)

var (
	ErrBlobNotFound      = errors.New("blob not found")
	ErrUnsupportedScheme = errors.New("unsupported url scheme")
)

// Uploader stores a new blob and returns its durable URL.
type Uploader interface {
	Put(ctx context.Context, categoryID, name, contentType string, r io.Reader, size int64) (string, error)
}

// Backend serves blobs of one URL scheme.
type Backend interface {
	Open(ctx context.Context, u *url.URL) (io.ReadCloser, error)
	Link(ctx context.Context, u *url.URL) (string, error)
}

// Resolver writes through the configured Uploader and dispatches reads to the
// Backend registered for the URL scheme.
type Resolver struct {
	uploader Uploader
	backends map[string]Backend
}

func NewResolver(uploader Uploader) *Resolver {
	return &Resolver{
		uploader: uploader,
		backends: make(map[string]Backend),
	}
}

// Register binds b to every given scheme. Later registrations win.
func (r *Resolver) Register(b Backend, schemes ...string) {
	for _, s := range schemes {
		r.backends[strings.ToLower(s)] = b
	}
}

func (r *Resolver) Put(ctx context.Context, categoryID, name, contentType string, rd io.Reader, size int64) (string, error) {
	if r.uploader == nil {
		return "", errors.New("no upload backend configured")
	}
	return r.uploader.Put(ctx, categoryID, name, contentType, rd, size)
}

func (r *Resolver) Open(ctx context.Context, raw string) (io.ReadCloser, error) {
	u, b, err := r.backend(raw)
	if err != nil {
		return nil, err
	}
	return b.Open(ctx, u)
}

func (r *Resolver) Link(ctx context.Context, raw string) (string, error) {
	u, b, err := r.backend(raw)
	if err != nil {
		return "", err
	}
	return b.Link(ctx, u)
}

func (r *Resolver) backend(raw string) (*url.URL, Backend, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, nil, fmt.Errorf("parse url %q: %w", raw, err)
	}
	b, ok := r.backends[strings.ToLower(u.Scheme)]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	return u, b, nil
}
