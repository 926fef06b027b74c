package views

import (
	"context"

	"github.com/dmitrijs2005/teacherlms/internal/client/models"
	"github.com/dmitrijs2005/teacherlms/internal/client/router"
	"github.com/dmitrijs2005/teacherlms/internal/client/services"
	"github.com/dmitrijs2005/teacherlms/internal/logging"
)

const ConfirmDeleteCategory = "Are you sure you want to delete this category and all its content?"

// Sidebar keeps its own copy of the category list, fetched independently of
// the other views.
type Sidebar struct {
	categories services.CategoryService
	auth       services.AuthService
	log        logging.Logger
	routes     *router.Router

	items []models.Category
}

func NewSidebar(categories services.CategoryService, auth services.AuthService, log logging.Logger) *Sidebar {
	return &Sidebar{categories: categories, auth: auth, log: log, routes: router.New()}
}

// Refresh reloads the category list. On failure the list becomes empty and
// the error is logged and returned.
func (s *Sidebar) Refresh(ctx context.Context) error {
	items, err := s.categories.List(ctx)
	if err != nil {
		s.log.Error(ctx, "fetching categories failed", "error", err)
		s.items = nil
		return err
	}
	s.items = items
	return nil
}

// Categories returns the list fetched by the last Refresh.
func (s *Sidebar) Categories() []models.Category {
	return s.items
}

// Create adds a category and refreshes the list. Use CreateCategoryMessage to
// turn the error into display text.
func (s *Sidebar) Create(ctx context.Context, name string) (models.Category, error) {
	c, err := s.categories.Create(ctx, name)
	if err != nil {
		s.log.Warn(ctx, "creating category failed", "name", name, "error", err)
		return models.Category{}, err
	}
	s.log.Info(ctx, "category created", "id", c.ID, "name", c.Name)

	_ = s.Refresh(ctx)
	return c, nil
}

// Delete removes category id after confirmation. current is the location
// being viewed; when it shows the deleted category the returned redirect is
// the dashboard. The list is refreshed after every confirmed attempt.
func (s *Sidebar) Delete(ctx context.Context, id, current string, confirm Confirm) (redirect string, err error) {
	if confirm == nil || !confirm(ConfirmDeleteCategory) {
		return "", nil
	}

	err = s.categories.Delete(ctx, id)
	if err != nil {
		s.log.Error(ctx, "deleting category failed", "id", id, "error", err)
	} else {
		s.log.Info(ctx, "category deleted", "id", id)
		r := s.routes.Resolve(current)
		if r.Name == router.Category && r.CategoryID() == id {
			redirect = router.DashboardPath
		}
	}

	_ = s.Refresh(ctx)
	return redirect, err
}

// SignOut logs out on the server if possible and always clears the local
// session. The returned location is the login page.
func (s *Sidebar) SignOut(ctx context.Context) string {
	if err := s.auth.Logout(ctx); err != nil {
		s.log.Error(ctx, "clearing session failed", "error", err)
	}
	s.items = nil
	return router.LoginPath
}
