package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/teacherlms/internal/client/models"
	"github.com/dmitrijs2005/teacherlms/internal/client/router"
	"github.com/dmitrijs2005/teacherlms/internal/client/views"
)

var (
	errSectionUnavailable = errors.New("section is not available")
	errNoSuchItem         = errors.New("no such item")
	errNoSection          = errors.New("no section open")
	errNotSignedIn        = errors.New("not signed in")
)

// List prints the open section with its filter tabs.
func (a *App) List(ctx context.Context) error {
	v, ok := a.inCategory()
	if !ok {
		return nil
	}
	renderCategory(a.out, v)
	return nil
}

// Reload fetches the open page again, auth check included.
func (a *App) Reload(ctx context.Context) error {
	return a.Navigate(ctx, a.location)
}

// Filter switches the active tab. It never contacts the server.
func (a *App) Filter(ctx context.Context, name string) error {
	v, ok := a.inCategory()
	if !ok {
		return nil
	}
	f, ok := models.ParseFilter(name)
	if !ok {
		fmt.Fprintf(a.out, "Unknown filter %q. Use all, images, pdfs, ppts, videos or documents.\n", name)
		return nil
	}
	v.SetFilter(f)
	renderCategory(a.out, v)
	return nil
}

// Upload sends the files at paths to the open section.
func (a *App) Upload(ctx context.Context, paths []string) error {
	v, ok := a.inCategory()
	if !ok {
		return nil
	}
	if len(paths) == 0 {
		fmt.Fprintln(a.out, "Usage: upload <file> [file...]")
		return nil
	}
	res, err := v.UploadPaths(ctx, paths)
	return a.afterUpload(ctx, v, res, err)
}

// Drop uploads every regular file directly inside dir.
func (a *App) Drop(ctx context.Context, dir string) error {
	v, ok := a.inCategory()
	if !ok {
		return nil
	}
	res, err := v.UploadDir(ctx, dir)
	return a.afterUpload(ctx, v, res, err)
}

func (a *App) afterUpload(ctx context.Context, v *views.CategoryView, res views.BatchResult, err error) error {
	renderBatch(a.out, "Uploaded", res)
	if err != nil {
		if !a.expired(ctx, err) {
			fmt.Fprintln(a.out, err)
		}
		return err
	}
	renderCategory(a.out, v)
	return nil
}

// Download saves one item of the open section into the download directory.
func (a *App) Download(ctx context.Context, id string) error {
	v, item, err := a.findItem(id)
	if err != nil {
		return err
	}
	path, err := v.DownloadOne(ctx, item)
	if err != nil {
		fmt.Fprintln(a.out, views.DownloadMessage(err))
		return err
	}
	fmt.Fprintf(a.out, "Saved %s\n", path)
	return nil
}

// Remove deletes one item after confirmation.
func (a *App) Remove(ctx context.Context, id string) error {
	v, _, err := a.findItem(id)
	if err != nil {
		return err
	}
	deleted, err := v.Delete(ctx, id, a.confirm)
	if err != nil {
		if !a.expired(ctx, err) {
			fmt.Fprintln(a.out, "Failed to delete content")
		}
		return err
	}
	if deleted {
		renderCategory(a.out, v)
	}
	return nil
}

// OpenItem hands a browsable link of the item to the system opener.
func (a *App) OpenItem(ctx context.Context, id string) error {
	v, item, err := a.findItem(id)
	if err != nil {
		return err
	}
	link, err := v.OpenExternal(ctx, item)
	if err != nil {
		if link == "" {
			fmt.Fprintln(a.out, views.DownloadMessage(err))
		} else {
			fmt.Fprintf(a.out, "Could not launch a viewer. Open it yourself: %s\n", link)
		}
		return err
	}
	fmt.Fprintf(a.out, "Opened %s\n", item.Title)
	return nil
}

// Select drives selection mode:
//
//	select            toggle selection mode (clears the selection)
//	select all        select every item passing the filter
//	select none       clear the selection
//	select <id>...    toggle the given items
func (a *App) Select(ctx context.Context, args []string) error {
	v, ok := a.inCategory()
	if !ok {
		return nil
	}

	if len(args) == 0 {
		v.ToggleSelectionMode()
		renderCategory(a.out, v)
		return nil
	}
	if !v.Selecting() {
		fmt.Fprintln(a.out, "Selection mode is off. Type 'select' to turn it on.")
		return nil
	}

	switch strings.ToLower(args[0]) {
	case "all":
		v.SelectAll()
	case "none":
		v.DeselectAll()
	default:
		for _, id := range args {
			if _, found := v.Find(id); !found {
				fmt.Fprintf(a.out, "No such item: %s\n", id)
				continue
			}
			v.ToggleSelect(id)
		}
	}
	renderCategory(a.out, v)
	return nil
}

// BulkDownload downloads the selection and leaves selection mode.
func (a *App) BulkDownload(ctx context.Context) error {
	v, ok := a.selection()
	if !ok {
		return nil
	}
	res, err := v.BulkDownload(ctx)
	renderBatch(a.out, "Downloaded", res)
	if len(res.Failed()) > 0 {
		fmt.Fprintln(a.out, views.MsgDownloadUnavailable)
	}
	return err
}

// BulkDelete deletes the selection after one confirmation.
func (a *App) BulkDelete(ctx context.Context) error {
	v, ok := a.selection()
	if !ok {
		return nil
	}
	res, confirmed, err := v.BulkDelete(ctx, a.confirm)
	if !confirmed {
		return nil
	}
	renderBatch(a.out, "Deleted", res)
	if err != nil {
		a.expired(ctx, err)
		return err
	}
	renderCategory(a.out, v)
	return nil
}

func (a *App) selection() (*views.CategoryView, bool) {
	v, ok := a.inCategory()
	if !ok {
		return nil, false
	}
	if !v.Selecting() || v.SelectedCount() == 0 {
		fmt.Fprintln(a.out, "Nothing selected. Use 'select' and 'select <id>' first.")
		return nil, false
	}
	return v, true
}

func (a *App) findItem(id string) (*views.CategoryView, models.Content, error) {
	v, ok := a.inCategory()
	if !ok {
		return nil, models.Content{}, errNoSection
	}
	item, found := v.Find(id)
	if !found {
		fmt.Fprintf(a.out, "No such item: %s\n", id)
		return nil, models.Content{}, fmt.Errorf("%w: %s", errNoSuchItem, id)
	}
	return v, item, nil
}

// openCategory enters section id without printing the page, for one-shot
// commands that act on it.
func (a *App) openCategory(ctx context.Context, id string) error {
	route, err := a.enter(ctx, router.CategoryPath(id))
	if err != nil {
		a.expired(ctx, err)
		return err
	}
	if route.Name == router.Login {
		renderLogin(a.out)
		return errNotSignedIn
	}
	if route.Name != router.Category || a.category == nil {
		if err := a.render(ctx, route); err != nil {
			return err
		}
		return fmt.Errorf("%w: %s", errSectionUnavailable, id)
	}
	return nil
}

// selectOnly turns selection mode on and selects exactly ids.
func (a *App) selectOnly(ids []string) error {
	v, ok := a.inCategory()
	if !ok {
		return errNoSection
	}
	if !v.Selecting() {
		v.ToggleSelectionMode()
	}
	v.DeselectAll()
	for _, id := range ids {
		if _, found := v.Find(id); !found {
			fmt.Fprintf(a.out, "No such item: %s\n", id)
			return fmt.Errorf("%w: %s", errNoSuchItem, id)
		}
		if !v.IsSelected(id) {
			v.ToggleSelect(id)
		}
	}
	return nil
}
