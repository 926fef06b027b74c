package views

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/teacherlms/internal/client/client/clienttest"
	"github.com/dmitrijs2005/teacherlms/internal/client/services"
	"github.com/dmitrijs2005/teacherlms/internal/client/session"
	"github.com/dmitrijs2005/teacherlms/internal/client/storage"
	"github.com/dmitrijs2005/teacherlms/internal/logging"

	_ "modernc.org/sqlite"
)

type env struct {
	fake    *clienttest.Fake
	store   *session.Store
	auth    services.AuthService
	cats    services.CategoryService
	content services.ContentService
	log     logging.Logger
	blobDir string
}

func newEnv(t *testing.T) *env {
	t.Helper()

	store, err := session.Open(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	blobDir := t.TempDir()
	local, err := storage.NewLocalStore(blobDir)
	require.NoError(t, err)
	blobs := storage.NewResolver(local)
	blobs.Register(local, "file")

	fake := clienttest.New()
	return &env{
		fake:    fake,
		store:   store,
		auth:    services.NewAuthService(fake, store),
		cats:    services.NewCategoryService(fake),
		content: services.NewContentService(fake, blobs),
		log:     logging.Nop(),
		blobDir: blobDir,
	}
}

func (e *env) login(t *testing.T, email string) {
	t.Helper()
	require.NoError(t, e.store.Set(context.Background(), "tok", email))
}

func yes(string) bool { return true }
func no(string) bool  { return false }
