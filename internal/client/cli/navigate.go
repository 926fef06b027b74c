package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/teacherlms/internal/client/router"
	"github.com/dmitrijs2005/teacherlms/internal/client/views"
)

// maxRedirects bounds a chain of view redirects.
const maxRedirects = 3

// Navigate moves the client to location and renders the page there.
func (a *App) Navigate(ctx context.Context, location string) error {
	route, err := a.enter(ctx, location)
	if err != nil {
		a.expired(ctx, err)
		return err
	}
	return a.render(ctx, route)
}

// enter resolves location and loads the page without printing it. Protected
// routes pass through the auth check every time; a refused check lands on
// the login page. A page that redirects (a missing category) is followed.
func (a *App) enter(ctx context.Context, location string) (router.Route, error) {
	for i := 0; ; i++ {
		route := a.routes.Navigate(ctx, location, a.guard.Allowed)
		if err := ctx.Err(); err != nil {
			return route, err
		}

		redirect, err := a.load(ctx, route)
		if err != nil {
			return route, err
		}
		if redirect == "" || i == maxRedirects {
			a.location = route.Path
			return route, nil
		}
		a.log.Info(ctx, "redirecting", "from", route.Path, "to", redirect)
		location = redirect
	}
}

// load prepares the state of route. Only the category page keeps state
// between commands; the dashboard is fetched when rendered.
func (a *App) load(ctx context.Context, route router.Route) (string, error) {
	if route.Name != router.Category {
		a.category = nil
		return "", nil
	}

	view := views.NewCategoryView(route.CategoryID(), a.cats, a.content, a.log, a.categoryOptions())
	redirect, err := view.Load(ctx)
	if err != nil {
		return "", err
	}
	if redirect != "" {
		a.category = nil
		return redirect, nil
	}
	a.category = view
	return "", nil
}

func (a *App) render(ctx context.Context, route router.Route) error {
	switch route.Name {
	case router.Login:
		renderLogin(a.out)
	case router.Dashboard:
		return a.showDashboard(ctx)
	case router.Category:
		a.refreshSidebar(ctx)
		renderSidebar(a.out, a.sidebar.Categories(), route.CategoryID())
		renderCategory(a.out, a.category)
	default:
		renderHome(a.out)
	}
	return nil
}

// inCategory returns the open category page, or reports that none is open.
func (a *App) inCategory() (*views.CategoryView, bool) {
	if a.category == nil {
		fmt.Fprintln(a.out, "Open a section first: cd <section id>")
		return nil, false
	}
	return a.category, true
}

// visit is Navigate for one-shot commands: landing on the login page instead
// of a protected location is an error.
func (a *App) visit(ctx context.Context, location string) error {
	if err := a.Navigate(ctx, location); err != nil {
		return err
	}
	if a.routes.Resolve(location).Protected && a.location == router.LoginPath {
		return errNotSignedIn
	}
	return nil
}

// signedIn runs the auth check without rendering a page.
func (a *App) signedIn(ctx context.Context) error {
	route, err := a.enter(ctx, router.DashboardPath)
	if err != nil {
		return err
	}
	if route.Name == router.Login {
		renderLogin(a.out)
		return errNotSignedIn
	}
	return nil
}
