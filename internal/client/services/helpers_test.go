package services

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/teacherlms/internal/client/session"
	"github.com/dmitrijs2005/teacherlms/internal/client/storage"

	_ "modernc.org/sqlite"
)

func openSession(t *testing.T) *session.Store {
	t.Helper()
	s, err := session.Open(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// memBlobs keeps blobs in a map under mem://<category>/<name>.
type memBlobs struct {
	data    map[string][]byte
	mime    map[string]string
	putErr  error
	openErr error
}

func newMemBlobs() *memBlobs {
	return &memBlobs{data: map[string][]byte{}, mime: map[string]string{}}
}

func (m *memBlobs) Put(_ context.Context, categoryID, name, contentType string, r io.Reader, _ int64) (string, error) {
	if m.putErr != nil {
		return "", m.putErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	raw := "mem://" + categoryID + "/" + name
	m.data[raw] = b
	m.mime[raw] = contentType
	return raw, nil
}

func (m *memBlobs) Open(_ context.Context, raw string) (io.ReadCloser, error) {
	if m.openErr != nil {
		return nil, m.openErr
	}
	b, ok := m.data[raw]
	if !ok {
		return nil, storage.ErrBlobNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *memBlobs) Link(_ context.Context, raw string) (string, error) {
	if _, ok := m.data[raw]; !ok {
		return "", storage.ErrBlobNotFound
	}
	return "https://view.local/" + strings.TrimPrefix(raw, "mem://"), nil
}

type byteSource struct {
	*bytes.Reader
}

func (byteSource) Close() error { return nil }

func memFile(name string, data []byte) UploadFile {
	return UploadFile{
		Name: name,
		Size: int64(len(data)),
		Open: func() (Source, error) { return byteSource{bytes.NewReader(data)}, nil },
	}
}
