package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/teacherlms/internal/client/router"
	"github.com/dmitrijs2005/teacherlms/internal/client/views"
)

// showDashboard fetches and prints the dashboard with the sidebar.
func (a *App) showDashboard(ctx context.Context) error {
	a.refreshSidebar(ctx)
	renderSidebar(a.out, a.sidebar.Categories(), "")

	fmt.Fprintln(a.out, "Loading dashboard...")
	sum, err := a.dashboard.Load(ctx)
	if err != nil {
		a.expired(ctx, err)
		return err
	}
	fmt.Fprintln(a.out)
	renderDashboard(a.out, sum, a.now())
	return nil
}

// refreshSidebar reloads the section list. A failure leaves the list empty;
// a rejected session is handled by the page load that follows.
func (a *App) refreshSidebar(ctx context.Context) {
	_ = a.sidebar.Refresh(ctx)
}

// Categories prints the section list.
func (a *App) Categories(ctx context.Context) error {
	if err := a.sidebar.Refresh(ctx); err != nil {
		if a.expired(ctx, err) {
			return err
		}
		fmt.Fprintln(a.out, "Failed to load sections")
		return err
	}
	renderSidebar(a.out, a.sidebar.Categories(), a.currentCategory())
	return nil
}

// AddCategory creates a section named name. An empty name is rejected
// without contacting the server.
func (a *App) AddCategory(ctx context.Context, name string) error {
	c, err := a.sidebar.Create(ctx, strings.TrimSpace(name))
	if err != nil {
		if a.expired(ctx, err) {
			return err
		}
		fmt.Fprintln(a.out, views.CreateCategoryMessage(err))
		return err
	}
	fmt.Fprintf(a.out, "Created section %s (%s)\n", c.Name, c.ID)
	renderSidebar(a.out, a.sidebar.Categories(), "")
	return nil
}

// DeleteCategory removes a section after confirmation. Deleting the section
// being viewed moves the client to the dashboard.
func (a *App) DeleteCategory(ctx context.Context, id string) error {
	redirect, err := a.sidebar.Delete(ctx, id, a.location, a.confirm)
	if err != nil {
		if a.expired(ctx, err) {
			return err
		}
		fmt.Fprintln(a.out, "Failed to delete section")
		return err
	}
	if redirect != "" {
		return a.Navigate(ctx, redirect)
	}
	renderSidebar(a.out, a.sidebar.Categories(), a.currentCategory())
	return nil
}

// Open moves to the page of section id.
func (a *App) Open(ctx context.Context, id string) error {
	if id == "" || id == ".." {
		return a.Navigate(ctx, router.DashboardPath)
	}
	return a.Navigate(ctx, router.CategoryPath(id))
}

func (a *App) currentCategory() string {
	if a.category == nil {
		return ""
	}
	return a.category.ID()
}
