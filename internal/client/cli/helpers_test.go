package cli

import (
	"bytes"
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/teacherlms/internal/client/client/clienttest"
	"github.com/dmitrijs2005/teacherlms/internal/client/config"
	"github.com/dmitrijs2005/teacherlms/internal/client/session"
	"github.com/dmitrijs2005/teacherlms/internal/client/storage"
	"github.com/dmitrijs2005/teacherlms/internal/client/views"
	"github.com/dmitrijs2005/teacherlms/internal/logging"

	_ "modernc.org/sqlite"
)

var fixedNow = time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)

type testApp struct {
	*App
	fake   *clienttest.Fake
	store  *session.Store
	buf    *bytes.Buffer
	opened []string

	dbPath string
	blobs  *storage.Resolver
}

func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "session.db")
	store, err := session.Open(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	local, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	blobs := storage.NewResolver(local)
	blobs.Register(local, "file")

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DownloadDir = t.TempDir()
	cfg.BulkDelay = 0

	fake := clienttest.New()
	fake.Now = func() time.Time { return fixedNow }

	buf := &bytes.Buffer{}
	ta := &testApp{
		App:    newApp(cfg, logging.Nop(), store, fake, blobs, strings.NewReader(input), buf),
		fake:   fake,
		store:  store,
		buf:    buf,
		dbPath: dbPath,
		blobs:  blobs,
	}
	ta.stub(ta.App)

	old := passwordFromTerminal
	passwordFromTerminal = func() bool { return false }
	t.Cleanup(func() { passwordFromTerminal = old })

	return ta
}

func (ta *testApp) stub(a *App) {
	a.opener = views.OpenerFunc(func(_ context.Context, link string) error {
		ta.opened = append(ta.opened, link)
		return nil
	})
	a.now = func() time.Time { return fixedNow }
}

// fork returns a second App over the same fake, session file, input and
// output. Closing it leaves ta usable.
func (ta *testApp) fork(t *testing.T) *App {
	t.Helper()
	store, err := session.Open(context.Background(), ta.dbPath)
	require.NoError(t, err)
	a := newApp(ta.config, logging.Nop(), store, ta.fake, ta.blobs, ta.reader, ta.buf)
	ta.stub(a)
	return a
}

func (ta *testApp) signIn(t *testing.T) {
	t.Helper()
	require.NoError(t, ta.store.Set(context.Background(), "tok", "teacher@example.com"))
}

func (ta *testApp) output() string {
	s := ta.buf.String()
	ta.buf.Reset()
	return s
}

// blobFile writes body to a file and returns its file:// URL.
func blobFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
