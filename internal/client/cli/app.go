package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/teacherlms/internal/client/client"
	"github.com/dmitrijs2005/teacherlms/internal/client/config"
	"github.com/dmitrijs2005/teacherlms/internal/client/router"
	"github.com/dmitrijs2005/teacherlms/internal/client/services"
	"github.com/dmitrijs2005/teacherlms/internal/client/session"
	"github.com/dmitrijs2005/teacherlms/internal/client/storage"
	"github.com/dmitrijs2005/teacherlms/internal/client/views"
	"github.com/dmitrijs2005/teacherlms/internal/filex"
	"github.com/dmitrijs2005/teacherlms/internal/logging"

	_ "modernc.org/sqlite"
)

// App is one running client: the session, the API services, the view of
// every page and the current location.
type App struct {
	config *config.Config
	log    logging.Logger

	store   *session.Store
	auth    services.AuthService
	cats    services.CategoryService
	content services.ContentService

	routes    *router.Router
	guard     *views.Guard
	sidebar   *views.Sidebar
	dashboard *views.Dashboard
	opener    views.Opener

	reader    *bufio.Reader
	out       io.Writer
	assumeYes bool
	now       func() time.Time

	location string
	category *views.CategoryView
}

// NewApp opens the session database, builds the blob store for the
// configured backend and connects the API client. The caller must Close the
// returned App.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	log := logging.New(c.LogBackend, c.LogLevel, os.Stderr)

	dbPath, err := filex.ExpandHome(c.SessionDB)
	if err != nil {
		return nil, err
	}
	if _, err := filex.EnsureDir(filepath.Dir(dbPath)); err != nil {
		return nil, err
	}

	downloads, err := filex.EnsureDir(c.DownloadDir)
	if err != nil {
		return nil, fmt.Errorf("download dir: %w", err)
	}
	resolved := *c
	resolved.DownloadDir = downloads

	store, err := session.Open(ctx, dbPath)
	if err != nil {
		log.Error(ctx, "error initializing session database", "path", dbPath, "error", err)
		return nil, err
	}

	blobs, err := newBlobStore(ctx, &resolved)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	api := client.NewHTTPClient(c.APIURL, store,
		client.WithHTTPClient(&http.Client{Timeout: c.RequestTimeout}),
		client.WithLogger(log),
		client.WithUnauthorizedHook(func(ctx context.Context) {
			if err := store.Clear(ctx); err != nil {
				log.Error(ctx, "clearing session failed", "error", err)
			}
		}),
	)

	return newApp(&resolved, log, store, api, blobs, in, out), nil
}

func newApp(c *config.Config, log logging.Logger, store *session.Store, api client.Client, blobs services.BlobStore, in io.Reader, out io.Writer) *App {
	auth := services.NewAuthService(api, store)
	cats := services.NewCategoryService(api)
	content := services.NewContentService(api, blobs)

	guard := views.NewGuard(auth, log)
	guard.OnVerify(func() { fmt.Fprintln(out, views.VerifyingMessage) })

	return &App{
		config:    c,
		log:       log,
		store:     store,
		auth:      auth,
		cats:      cats,
		content:   content,
		routes:    router.New(),
		guard:     guard,
		sidebar:   views.NewSidebar(cats, auth, log),
		dashboard: views.NewDashboard(cats, content, auth, log),
		opener:    views.SystemOpener{},
		reader:    bufio.NewReader(in),
		out:       out,
		now:       time.Now,
		location:  router.HomePath,
	}
}

// newBlobStore returns a resolver that uploads through the configured backend
// and reads file://, http(s):// and, when configured, s3:// URLs. Blob
// downloads are bounded by the caller's context only, not by the API timeout.
func newBlobStore(ctx context.Context, c *config.Config) (*storage.Resolver, error) {
	local, err := storage.NewLocalStore(c.BlobDir)
	if err != nil {
		return nil, err
	}

	var r *storage.Resolver
	switch c.Storage {
	case config.StorageS3:
		s3store, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:    c.S3Bucket,
			Region:    c.S3Region,
			Endpoint:  c.S3Endpoint,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
		})
		if err != nil {
			return nil, err
		}
		r = storage.NewResolver(s3store)
		r.Register(s3store, "s3")
	default:
		r = storage.NewResolver(local)
	}

	r.Register(local, "file")
	r.Register(storage.NewHTTPFetcher(&http.Client{}), "http", "https")
	return r, nil
}

// Close releases the session database.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

// Location is the page the client is on.
func (a *App) Location() string {
	return a.location
}

func (a *App) categoryOptions() views.CategoryOptions {
	return views.CategoryOptions{
		DownloadDir: a.config.DownloadDir,
		BulkDelay:   a.config.BulkDelay,
		Opener:      a.opener,
	}
}

// confirm asks a yes/no question unless the App was told to assume yes.
func (a *App) confirm(prompt string) bool {
	if a.assumeYes {
		return true
	}
	ok, err := getConfirm(a.reader, prompt, a.out)
	if err != nil {
		a.log.Warn(context.Background(), "reading confirmation failed", "error", err)
		return false
	}
	return ok
}

// expired moves the client to the login page when err means the session was
// rejected. The session itself was already cleared by the API client.
func (a *App) expired(ctx context.Context, err error) bool {
	if !errors.Is(err, client.ErrUnauthorized) {
		return false
	}
	fmt.Fprintln(a.out, views.MsgSessionExpired)
	a.category = nil
	a.location = router.LoginPath
	renderLogin(a.out)
	return true
}
