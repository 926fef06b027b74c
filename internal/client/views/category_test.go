package views

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/teacherlms/internal/client/client"
	"github.com/dmitrijs2005/teacherlms/internal/client/models"
	"github.com/dmitrijs2005/teacherlms/internal/client/router"
	"github.com/dmitrijs2005/teacherlms/internal/client/services"
)

type recordingOpener struct {
	urls []string
	err  error
}

func (o *recordingOpener) Open(_ context.Context, url string) error {
	o.urls = append(o.urls, url)
	return o.err
}

func newCategoryView(t *testing.T, e *env, id string) *CategoryView {
	t.Helper()
	return NewCategoryView(id, e.cats, e.content, e.log, CategoryOptions{
		DownloadDir: t.TempDir(),
		BulkDelay:   DefaultBulkDelay,
		Opener:      &recordingOpener{},
	})
}

func seedMixed(e *env, categoryID string) {
	now := time.Now()
	e.fake.AddContent(categoryID, item("photo.png", models.ContentTypeImage, now))
	e.fake.AddContent(categoryID, item("clip.mp4", models.ContentTypeVideo, now))
	e.fake.AddContent(categoryID, item("notes.pdf", models.ContentTypePDF, now))
	e.fake.AddContent(categoryID, item("deck.pptx", models.ContentTypePPT, now))
	e.fake.AddContent(categoryID, item("essay.docx", models.ContentTypeDocument, now))
	e.fake.AddContent(categoryID, item("photo2.jpg", models.ContentTypeImage, now))
}

func TestCategoryView_Load(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	c := e.fake.AddCategory("Math")
	seedMixed(e, c.ID)

	v := newCategoryView(t, e, c.ID)
	assert.Equal(t, Loading, v.Phase())

	redirect, err := v.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, redirect)
	assert.Equal(t, Loaded, v.Phase())
	assert.Equal(t, c, v.Category())
	assert.Len(t, v.Items(), 6)
}

func TestCategoryView_LoadMissingRedirects(t *testing.T) {
	for name, getErr := range map[string]error{
		"not found": nil,
		"forbidden": client.ErrNotFound,
		"server":    &client.APIError{Status: 500},
	} {
		t.Run(name, func(t *testing.T) {
			e := newEnv(t)
			if getErr != nil {
				e.fake.Errs["GetCategory"] = getErr
			}
			v := newCategoryView(t, e, "missing")

			redirect, err := v.Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, router.DashboardPath, redirect)
			assert.Zero(t, e.fake.CallCount("ListContent"))
		})
	}
}

func TestCategoryView_LoadNetworkErrorStays(t *testing.T) {
	e := newEnv(t)
	e.fake.Errs["GetCategory"] = client.ErrUnavailable
	v := newCategoryView(t, e, "c1")

	redirect, err := v.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, redirect)
	assert.Equal(t, Unavailable, v.Phase())
	assert.Empty(t, v.Items())

	delete(e.fake.Errs, "GetCategory")
	_, err = v.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Loaded, v.Phase())
}

func TestCategoryView_LoadContentFailureLeavesEmpty(t *testing.T) {
	e := newEnv(t)
	c := e.fake.AddCategory("Math")
	seedMixed(e, c.ID)
	e.fake.Errs["ListContent"] = &client.APIError{Status: 500}
	v := newCategoryView(t, e, c.ID)

	redirect, err := v.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, redirect)
	assert.Empty(t, v.Items())
}

func TestCategoryView_LoadUnauthorized(t *testing.T) {
	e := newEnv(t)
	e.fake.Errs["GetCategory"] = client.ErrUnauthorized
	v := newCategoryView(t, e, "c1")

	_, err := v.Load(context.Background())
	assert.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestCategoryView_FilterAndCounts(t *testing.T) {
	e := newEnv(t)
	c := e.fake.AddCategory("Math")
	seedMixed(e, c.ID)
	v := newCategoryView(t, e, c.ID)
	_, err := v.Load(context.Background())
	require.NoError(t, err)
	calls := len(e.fake.Calls)

	assert.Equal(t, 6, v.Count(models.FilterAll))
	sum := 0
	for _, ct := range models.ContentTypes {
		sum += v.Count(models.Filter(ct))
	}
	assert.Equal(t, 6, sum)
	assert.Equal(t, 2, v.Count(models.Filter(models.ContentTypeImage)))

	v.SetFilter(models.Filter(models.ContentTypeImage))
	assert.Len(t, v.Visible(), 2)
	for _, it := range v.Visible() {
		assert.Equal(t, models.ContentTypeImage, it.Type)
	}

	v.SetFilter(models.FilterAll)
	assert.Len(t, v.Visible(), 6)

	// filtering never hits the server
	assert.Equal(t, calls, len(e.fake.Calls))
}

func TestCategoryView_Selection(t *testing.T) {
	e := newEnv(t)
	c := e.fake.AddCategory("Math")
	seedMixed(e, c.ID)
	v := newCategoryView(t, e, c.ID)
	_, err := v.Load(context.Background())
	require.NoError(t, err)

	v.ToggleSelectionMode()
	assert.True(t, v.Selecting())

	v.SetFilter(models.Filter(models.ContentTypeImage))
	v.SelectAll()
	assert.Equal(t, 2, v.SelectedCount())
	for _, it := range v.Selected() {
		assert.Equal(t, models.ContentTypeImage, it.Type)
	}

	first := v.Items()[0].ID
	v.ToggleSelect(first)
	assert.False(t, v.IsSelected(first))
	v.ToggleSelect(first)
	assert.True(t, v.IsSelected(first))

	v.ToggleSelect("does-not-exist")
	assert.Equal(t, 2, v.SelectedCount())

	v.DeselectAll()
	assert.Zero(t, v.SelectedCount())

	v.SelectAll()
	v.ToggleSelectionMode()
	assert.False(t, v.Selecting())
	assert.Zero(t, v.SelectedCount())

	v.ToggleSelectionMode()
	assert.Zero(t, v.SelectedCount())
}

func TestCategoryView_Delete(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	c := e.fake.AddCategory("Math")
	seedMixed(e, c.ID)
	v := newCategoryView(t, e, c.ID)
	_, err := v.Load(ctx)
	require.NoError(t, err)
	id := v.Items()[0].ID

	var asked string
	deleted, err := v.Delete(ctx, id, func(p string) bool { asked = p; return false })
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, ConfirmDeleteContent, asked)
	assert.Zero(t, e.fake.CallCount("DeleteContent"))

	deleted, err = v.Delete(ctx, id, yes)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Len(t, v.Items(), 5)
}

func TestCategoryView_BulkDelete(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	c := e.fake.AddCategory("Math")
	seedMixed(e, c.ID)
	v := newCategoryView(t, e, c.ID)
	_, err := v.Load(ctx)
	require.NoError(t, err)

	v.ToggleSelectionMode()
	v.SelectAll()
	failing := v.Items()[1].ID
	e.fake.ErrsByID["DeleteContent:"+failing] = client.ErrUnavailable

	var asked string
	res, confirmed, err := v.BulkDelete(ctx, func(p string) bool { asked = p; return true })
	require.NoError(t, err)
	assert.True(t, confirmed)
	assert.Equal(t, "Are you sure you want to delete 6 items?", asked)
	assert.Equal(t, 6, e.fake.CallCount("DeleteContent"))
	assert.Equal(t, 5, res.Succeeded())
	require.Len(t, res.Failed(), 1)
	assert.Equal(t, failing, res.Failed()[0].ID)

	assert.False(t, v.Selecting())
	assert.Zero(t, v.SelectedCount())
	require.Len(t, v.Items(), 1)
	assert.Equal(t, failing, v.Items()[0].ID)
}

func TestCategoryView_BulkDeleteDeclined(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	c := e.fake.AddCategory("Math")
	seedMixed(e, c.ID)
	v := newCategoryView(t, e, c.ID)
	_, _ = v.Load(ctx)

	_, confirmed, err := v.BulkDelete(ctx, yes)
	require.NoError(t, err)
	assert.False(t, confirmed, "empty selection asks nothing")

	v.ToggleSelectionMode()
	v.SelectAll()
	_, confirmed, err = v.BulkDelete(ctx, no)
	require.NoError(t, err)
	assert.False(t, confirmed)
	assert.Zero(t, e.fake.CallCount("DeleteContent"))
	assert.True(t, v.Selecting())
	assert.Equal(t, 6, v.SelectedCount())
}

func uploadFixture(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestCategoryView_UploadAndDownload(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	c := e.fake.AddCategory("Math")
	v := newCategoryView(t, e, c.ID)
	_, err := v.Load(ctx)
	require.NoError(t, err)

	src := t.TempDir()
	res, err := v.UploadPaths(ctx, []string{
		uploadFixture(t, src, "syllabus.pdf", "not really a pdf"),
		filepath.Join(src, "missing.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Succeeded())
	assert.Len(t, res.Failed(), 1)

	require.Len(t, v.Items(), 1)
	up := v.Items()[0]
	assert.Equal(t, "syllabus.pdf", up.Title)
	assert.Equal(t, models.ContentTypePDF, up.Type)
	assert.Equal(t, "Uploaded: syllabus.pdf (0.02 KB)", up.Description)
	assert.Equal(t, 1, v.Count(models.Filter(models.ContentTypePDF)))

	sum, err := NewDashboard(e.cats, e.content, e.auth, e.log).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Stats.TotalFiles)
	assert.Equal(t, 1, sum.Stats.PDFs)

	path, err := v.DownloadOne(ctx, up)
	require.NoError(t, err)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "not really a pdf", string(b))
	assert.Equal(t, "syllabus.pdf", filepath.Base(path))
}

func TestCategoryView_UploadReloadsOnceAfterFailures(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	c := e.fake.AddCategory("Math")
	v := newCategoryView(t, e, c.ID)
	_, _ = v.Load(ctx)

	src := t.TempDir()
	e.fake.ErrsByID["CreateContent:b.txt"] = client.ErrUnavailable
	before := e.fake.CallCount("ListContent")

	res, err := v.UploadPaths(ctx, []string{
		uploadFixture(t, src, "a.txt", "a"),
		uploadFixture(t, src, "b.txt", "b"),
		uploadFixture(t, src, "c.txt", "c"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Succeeded())
	assert.Equal(t, 3, e.fake.CallCount("CreateContent"))
	assert.Equal(t, before+1, e.fake.CallCount("ListContent"))
	assert.Len(t, v.Items(), 2)
}

func TestCategoryView_UploadDir(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	c := e.fake.AddCategory("Math")
	v := newCategoryView(t, e, c.ID)
	_, _ = v.Load(ctx)

	dir := t.TempDir()
	uploadFixture(t, dir, "b.png", "b")
	uploadFixture(t, dir, "a.docx", "a")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o700))
	uploadFixture(t, filepath.Join(dir, "nested"), "skip.txt", "x")

	res, err := v.UploadDir(ctx, dir)
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "a.docx", res.Items[0].Title)
	assert.Equal(t, "b.png", res.Items[1].Title)

	_, err = v.UploadDir(ctx, filepath.Join(dir, "nope"))
	assert.Error(t, err)
}

func TestCategoryView_DownloadOneUnavailable(t *testing.T) {
	e := newEnv(t)
	v := newCategoryView(t, e, "c1")

	_, err := v.DownloadOne(context.Background(), models.Content{ID: "x", Title: "gone.pdf", URL: "blob:http://localhost/abc"})
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrDownloadUnavailable)
	assert.Equal(t, MsgDownloadUnavailable, DownloadMessage(err))
}

func TestCategoryView_BulkDownload(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	c := e.fake.AddCategory("Math")
	v := newCategoryView(t, e, c.ID)
	_, _ = v.Load(ctx)

	src := t.TempDir()
	_, err := v.UploadPaths(ctx, []string{
		uploadFixture(t, src, "one.txt", "1"),
		uploadFixture(t, src, "two.txt", "2"),
		uploadFixture(t, src, "three.txt", "3"),
	})
	require.NoError(t, err)
	e.fake.AddContent(c.ID, models.Content{Title: "ghost.txt", URL: "file:///nonexistent/ghost.txt"})
	_, _ = v.Load(ctx)

	var slept []time.Duration
	v.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	v.ToggleSelectionMode()
	v.SelectAll()
	res, err := v.BulkDownload(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Succeeded())
	require.Len(t, res.Failed(), 1)
	assert.Equal(t, "ghost.txt", res.Failed()[0].Title)
	assert.Equal(t, []time.Duration{DefaultBulkDelay, DefaultBulkDelay, DefaultBulkDelay}, slept)
	assert.False(t, v.Selecting())
	assert.Zero(t, v.SelectedCount())
}

func TestCategoryView_BulkDownloadCancelled(t *testing.T) {
	e := newEnv(t)
	c := e.fake.AddCategory("Math")
	seedMixed(e, c.ID)
	v := newCategoryView(t, e, c.ID)
	_, _ = v.Load(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v.ToggleSelectionMode()
	v.SelectAll()
	_, err := v.BulkDownload(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, v.Selecting())
}

func TestCategoryView_OpenExternal(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	c := e.fake.AddCategory("Math")
	opener := &recordingOpener{}
	v := NewCategoryView(c.ID, e.cats, e.content, e.log, CategoryOptions{DownloadDir: t.TempDir(), Opener: opener})
	_, _ = v.Load(ctx)

	_, err := v.UploadPaths(ctx, []string{uploadFixture(t, t.TempDir(), "a.png", "png")})
	require.NoError(t, err)

	link, err := v.OpenExternal(ctx, v.Items()[0])
	require.NoError(t, err)
	assert.Equal(t, []string{link}, opener.urls)
	assert.Equal(t, v.Items()[0].URL, link)

	opener.err = errors.New("no display")
	_, err = v.OpenExternal(ctx, v.Items()[0])
	assert.Error(t, err)

	_, err = v.OpenExternal(ctx, models.Content{URL: "ftp://x/y"})
	assert.ErrorIs(t, err, services.ErrDownloadUnavailable)
}

func TestOpenCommand(t *testing.T) {
	name, args := openCommand("darwin", "https://x")
	assert.Equal(t, "open", name)
	assert.Equal(t, []string{"https://x"}, args)

	name, _ = openCommand("windows", "https://x")
	assert.Equal(t, "rundll32", name)

	name, _ = openCommand("linux", "https://x")
	assert.Equal(t, "xdg-open", name)
}

func TestSystemOpener_StartsDetached(t *testing.T) {
	old := commandFn
	t.Cleanup(func() { commandFn = old })

	var launched []string
	commandFn = func(name string, args ...string) *exec.Cmd {
		launched = append([]string{name}, args...)
		// the test binary with no tests to run exits right away
		return exec.Command(os.Args[0], "-test.run=^$")
	}

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, SystemOpener{}.Open(ctx, "https://cdn.example.com/a.pdf"))
	cancel()
	assert.Contains(t, launched, "https://cdn.example.com/a.pdf")

	launched = nil
	err := SystemOpener{}.Open(ctx, "https://cdn.example.com/b.pdf")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, launched)

	commandFn = func(string, ...string) *exec.Cmd {
		return exec.Command(filepath.Join(t.TempDir(), "no-such-handler"))
	}
	err = SystemOpener{}.Open(context.Background(), "https://cdn.example.com/c.pdf")
	assert.ErrorContains(t, err, "start ")
}

func TestConfirmDeleteItems(t *testing.T) {
	assert.Equal(t, "Are you sure you want to delete 3 items?", ConfirmDeleteItems(3))
}
