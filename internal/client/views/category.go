package views

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/dmitrijs2005/teacherlms/internal/client/client"
	"github.com/dmitrijs2005/teacherlms/internal/client/models"
	"github.com/dmitrijs2005/teacherlms/internal/client/router"
	"github.com/dmitrijs2005/teacherlms/internal/client/services"
	"github.com/dmitrijs2005/teacherlms/internal/logging"
)

const (
	ConfirmDeleteContent = "Are you sure you want to delete this content?"

	// DefaultBulkDelay spaces out bulk downloads.
	DefaultBulkDelay = 300 * time.Millisecond
)

// ConfirmDeleteItems is the bulk delete question for n items.
func ConfirmDeleteItems(n int) string {
	return fmt.Sprintf("Are you sure you want to delete %d items?", n)
}

// Phase is the loading state of a CategoryView.
type Phase int

const (
	Loading Phase = iota
	Loaded
	// Unavailable is a category that could not be fetched; the page stays
	// with no items until the next reload.
	Unavailable
)

// CategoryOptions configures a CategoryView.
type CategoryOptions struct {
	DownloadDir string
	BulkDelay   time.Duration
	Opener      Opener
}

// CategoryView is the page of one category: its items, the active filter and
// the selection used by bulk actions.
type CategoryView struct {
	id       string
	cats     services.CategoryService
	content  services.ContentService
	log      logging.Logger
	opts     CategoryOptions
	sleep    func(ctx context.Context, d time.Duration) error
	category models.Category
	items    []models.Content
	phase    Phase
	filter   models.Filter

	selecting bool
	selected  map[string]struct{}
}

func NewCategoryView(id string, cats services.CategoryService, content services.ContentService, log logging.Logger, opts CategoryOptions) *CategoryView {
	if opts.Opener == nil {
		opts.Opener = SystemOpener{}
	}
	return &CategoryView{
		id:       id,
		cats:     cats,
		content:  content,
		log:      log.With("category", id),
		opts:     opts,
		sleep:    sleepCtx,
		phase:    Loading,
		filter:   models.FilterAll,
		selected: make(map[string]struct{}),
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (v *CategoryView) ID() string                { return v.id }
func (v *CategoryView) Phase() Phase              { return v.phase }
func (v *CategoryView) Category() models.Category { return v.category }
func (v *CategoryView) Items() []models.Content   { return v.items }
func (v *CategoryView) Filter() models.Filter     { return v.filter }
func (v *CategoryView) Selecting() bool           { return v.selecting }
func (v *CategoryView) SetFilter(f models.Filter) { v.filter = f }
func (v *CategoryView) IsSelected(id string) bool { _, ok := v.selected[id]; return ok }
func (v *CategoryView) SelectedCount() int        { return len(v.selected) }

// Load fetches the category and its items. A category the server refuses or
// does not know yields the dashboard as redirect. A failed content fetch
// leaves the list empty. ErrUnauthorized and context errors are returned.
func (v *CategoryView) Load(ctx context.Context) (redirect string, err error) {
	v.phase = Loading
	next := Loaded
	defer func() { v.phase = next }()

	cat, err := v.cats.Get(ctx, v.id)
	if err != nil {
		if fatal(err) {
			return "", err
		}
		if errors.Is(err, client.ErrUnavailable) {
			v.log.Error(ctx, "fetching category failed", "error", err)
			v.items = nil
			next = Unavailable
			return "", nil
		}
		v.log.Warn(ctx, "category not available", "error", err)
		return router.DashboardPath, nil
	}
	v.category = cat

	items, err := v.content.List(ctx, v.id)
	if err != nil {
		if fatal(err) {
			return "", err
		}
		v.log.Error(ctx, "fetching content failed", "error", err)
		items = nil
	}
	v.items = items
	v.pruneSelection()
	return "", nil
}

// Visible returns the items passing the active filter.
func (v *CategoryView) Visible() []models.Content {
	out := make([]models.Content, 0, len(v.items))
	for _, it := range v.items {
		if v.filter.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

// Count returns how many loaded items pass f.
func (v *CategoryView) Count(f models.Filter) int {
	n := 0
	for _, it := range v.items {
		if f.Match(it) {
			n++
		}
	}
	return n
}

// Find looks up a loaded item by id.
func (v *CategoryView) Find(id string) (models.Content, bool) {
	for _, it := range v.items {
		if it.ID == id {
			return it, true
		}
	}
	return models.Content{}, false
}

// Upload sends files one after another and reloads the list once at the end,
// whatever the individual outcomes.
func (v *CategoryView) Upload(ctx context.Context, files []services.UploadFile) (BatchResult, error) {
	var res BatchResult
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		item, err := v.content.Upload(ctx, v.id, f)
		if err != nil {
			v.log.Error(ctx, "upload failed", "file", f.Name, "error", err)
			if errors.Is(err, client.ErrUnauthorized) {
				res.add(ItemResult{Title: f.Name, Err: err})
				return res, err
			}
		} else {
			v.log.Info(ctx, "uploaded", "file", f.Name, "id", item.ID, "type", item.Type)
		}
		res.add(ItemResult{ID: item.ID, Title: f.Name, Path: item.URL, Err: err})
	}

	_, err := v.Load(ctx)
	return res, err
}

// UploadPaths is the file picker entry point: explicit paths on disk.
func (v *CategoryView) UploadPaths(ctx context.Context, paths []string) (BatchResult, error) {
	var files []services.UploadFile
	var res BatchResult
	for _, p := range paths {
		f, err := services.FileFromPath(p)
		if err != nil {
			v.log.Error(ctx, "skipping file", "path", p, "error", err)
			res.add(ItemResult{Title: filepath.Base(p), Err: err})
			continue
		}
		files = append(files, f)
	}

	up, err := v.Upload(ctx, files)
	res.Items = append(res.Items, up.Items...)
	return res, err
}

// UploadDir is the drop entry point: every regular file directly inside dir,
// in name order. Subdirectories are not descended into.
func (v *CategoryView) UploadDir(ctx context.Context, dir string) (BatchResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return BatchResult{}, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	return v.UploadPaths(ctx, paths)
}

// Delete removes one item after confirmation and reloads on success.
func (v *CategoryView) Delete(ctx context.Context, id string, confirm Confirm) (bool, error) {
	if confirm == nil || !confirm(ConfirmDeleteContent) {
		return false, nil
	}

	if err := v.content.Delete(ctx, id); err != nil {
		v.log.Error(ctx, "deleting content failed", "id", id, "error", err)
		return false, err
	}
	v.log.Info(ctx, "content deleted", "id", id)

	_, err := v.Load(ctx)
	return true, err
}

// ToggleSelectionMode flips selection mode. The selection is emptied either
// way.
func (v *CategoryView) ToggleSelectionMode() {
	v.selecting = !v.selecting
	v.selected = make(map[string]struct{})
}

func (v *CategoryView) ToggleSelect(id string) {
	if _, ok := v.selected[id]; ok {
		delete(v.selected, id)
		return
	}
	if _, ok := v.Find(id); ok {
		v.selected[id] = struct{}{}
	}
}

// SelectAll selects exactly the items passing the active filter.
func (v *CategoryView) SelectAll() {
	v.selected = make(map[string]struct{})
	for _, it := range v.Visible() {
		v.selected[it.ID] = struct{}{}
	}
}

func (v *CategoryView) DeselectAll() {
	v.selected = make(map[string]struct{})
}

// Selected returns the selected items in list order.
func (v *CategoryView) Selected() []models.Content {
	var out []models.Content
	for _, it := range v.items {
		if _, ok := v.selected[it.ID]; ok {
			out = append(out, it)
		}
	}
	return out
}

func (v *CategoryView) pruneSelection() {
	for id := range v.selected {
		if _, ok := v.Find(id); !ok {
			delete(v.selected, id)
		}
	}
}

func (v *CategoryView) exitSelection() {
	v.selecting = false
	v.selected = make(map[string]struct{})
}

// DownloadOne saves item into the download directory. Failures wrap
// services.ErrDownloadUnavailable.
func (v *CategoryView) DownloadOne(ctx context.Context, item models.Content) (string, error) {
	path, err := v.content.Download(ctx, item, v.opts.DownloadDir)
	if err != nil {
		v.log.Error(ctx, "download failed", "id", item.ID, "error", err)
		return "", err
	}
	v.log.Info(ctx, "downloaded", "id", item.ID, "path", path)
	return path, nil
}

// BulkDownload downloads the selection one item at a time with a pause
// between items, then leaves selection mode whatever the outcomes.
func (v *CategoryView) BulkDownload(ctx context.Context) (BatchResult, error) {
	defer v.exitSelection()

	var res BatchResult
	for i, it := range v.Selected() {
		if i > 0 {
			if err := v.sleep(ctx, v.opts.BulkDelay); err != nil {
				return res, err
			}
		}
		path, err := v.DownloadOne(ctx, it)
		res.add(ItemResult{ID: it.ID, Title: it.Title, Path: path, Err: err})
	}
	return res, nil
}

// BulkDelete deletes the selection after one confirmation. Every id gets its
// own request; failures do not stop the batch. Afterwards selection mode is
// off and the list is reloaded. The bool reports whether the user confirmed.
func (v *CategoryView) BulkDelete(ctx context.Context, confirm Confirm) (BatchResult, bool, error) {
	items := v.Selected()
	if len(items) == 0 {
		return BatchResult{}, false, nil
	}
	if confirm == nil || !confirm(ConfirmDeleteItems(len(items))) {
		return BatchResult{}, false, nil
	}

	var res BatchResult
	for _, it := range items {
		err := v.content.Delete(ctx, it.ID)
		if err != nil {
			v.log.Error(ctx, "deleting content failed", "id", it.ID, "error", err)
		}
		res.add(ItemResult{ID: it.ID, Title: it.Title, Err: err})
	}

	v.exitSelection()
	_, err := v.Load(ctx)
	return res, true, err
}

// OpenExternal opens item with the system's default handler.
func (v *CategoryView) OpenExternal(ctx context.Context, item models.Content) (string, error) {
	link, err := v.content.Link(ctx, item)
	if err != nil {
		v.log.Error(ctx, "resolving link failed", "id", item.ID, "error", err)
		return "", err
	}
	if err := v.opts.Opener.Open(ctx, link); err != nil {
		return link, fmt.Errorf("open %s: %w", link, err)
	}
	return link, nil
}
