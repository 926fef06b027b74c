package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/teacherlms/internal/client/client"
	"github.com/dmitrijs2005/teacherlms/internal/client/models"
	"github.com/dmitrijs2005/teacherlms/internal/filex"
	"github.com/dmitrijs2005/teacherlms/internal/pdfx"
)

// ErrDownloadUnavailable means the bytes behind a content URL could not be
// fetched or saved.
var ErrDownloadUnavailable = errors.New("download unavailable")

// BlobStore is where uploaded bytes live. *storage.Resolver implements it.
type BlobStore interface {
	Put(ctx context.Context, categoryID, name, contentType string, r io.Reader, size int64) (string, error)
	Open(ctx context.Context, raw string) (io.ReadCloser, error)
	Link(ctx context.Context, raw string) (string, error)
}

// Source is an open upload. *os.File satisfies it.
type Source interface {
	io.Reader
	io.ReaderAt
	io.Closer
}

// UploadFile describes one file to upload. MIME may be empty, it is then
// taken from the extension or sniffed from the content.
type UploadFile struct {
	Name string
	MIME string
	Size int64
	Open func() (Source, error)
}

// FileFromPath describes a regular file on disk.
func FileFromPath(path string) (UploadFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return UploadFile{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return UploadFile{}, fmt.Errorf("%s is not a regular file", path)
	}

	return UploadFile{
		Name: filepath.Base(path),
		Size: info.Size(),
		Open: func() (Source, error) { return os.Open(path) },
	}, nil
}

// Describe builds the description stored with an upload:
// "Uploaded: <name> (<KB> KB)", plus the page count when known.
func Describe(name string, size int64, pages int) string {
	d := fmt.Sprintf("Uploaded: %s (%.2f KB)", name, float64(size)/1024)
	switch {
	case pages == 1:
		d += ", 1 page"
	case pages > 1:
		d += fmt.Sprintf(", %d pages", pages)
	}
	return d
}

type ContentService interface {
	List(ctx context.Context, categoryID string) ([]models.Content, error)
	Upload(ctx context.Context, categoryID string, f UploadFile) (models.Content, error)
	Delete(ctx context.Context, id string) error
	Download(ctx context.Context, item models.Content, dir string) (string, error)
	Link(ctx context.Context, item models.Content) (string, error)
}

type contentService struct {
	client client.Client
	blobs  BlobStore
}

func NewContentService(client client.Client, blobs BlobStore) ContentService {
	return &contentService{client: client, blobs: blobs}
}

func (s *contentService) List(ctx context.Context, categoryID string) ([]models.Content, error) {
	items, err := s.client.ListContent(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("error listing content of %s: %w", categoryID, err)
	}
	return items, nil
}

// Upload stores the bytes of f in the blob store and registers a content
// record pointing at them.
func (s *contentService) Upload(ctx context.Context, categoryID string, f UploadFile) (models.Content, error) {
	if f.Open == nil {
		return models.Content{}, fmt.Errorf("upload %s: no data", f.Name)
	}

	src, err := f.Open()
	if err != nil {
		return models.Content{}, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer src.Close()

	mt := DetectMIME(f, src)
	ct := models.InferContentType(mt, f.Name)

	pages := 0
	if ct == models.ContentTypePDF {
		// an unreadable PDF is still uploaded, just without a page count
		if n, err := pdfx.PageCount(src, f.Size); err == nil {
			pages = n
		}
	}

	raw, err := s.blobs.Put(ctx, categoryID, f.Name, mt, src, f.Size)
	if err != nil {
		return models.Content{}, fmt.Errorf("storing %s: %w", f.Name, err)
	}

	item, err := s.client.CreateContent(ctx, categoryID, models.NewContent{
		Title:       f.Name,
		Type:        ct,
		URL:         raw,
		Description: Describe(f.Name, f.Size, pages),
	})
	if err != nil {
		return models.Content{}, fmt.Errorf("error creating content %s: %w", f.Name, err)
	}
	return item, nil
}

func (s *contentService) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteContent(ctx, id); err != nil {
		return fmt.Errorf("error deleting content %s: %w", id, err)
	}
	return nil
}

// Download saves the item under its title in dir and returns the path. Any
// failure to fetch or save is reported as ErrDownloadUnavailable.
func (s *contentService) Download(ctx context.Context, item models.Content, dir string) (string, error) {
	rc, err := s.blobs.Open(ctx, item.URL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %s: %v", ErrDownloadUnavailable, item.Title, err)
	}
	defer rc.Close()

	path, err := filex.SaveAs(dir, item.Title, rc)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrDownloadUnavailable, item.Title, err)
	}
	return path, nil
}

// Link returns a URL a browser can open for item.
func (s *contentService) Link(ctx context.Context, item models.Content) (string, error) {
	link, err := s.blobs.Link(ctx, item.URL)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrDownloadUnavailable, item.Title, err)
	}
	return link, nil
}
