// Package clienttest provides an in-memory client.Client for tests.
package clienttest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/teacherlms/internal/client/client"
	"github.com/dmitrijs2005/teacherlms/internal/client/models"
)

// Fake is an in-memory LMS backend. Errors set in Errs are returned by the
// method with the same name ("ListContent", "DeleteContent", ...). ErrsByID
// narrows an error to one id argument, keyed "Method:id".
type Fake struct {
	mu sync.Mutex

	Token string
	User  models.User

	Categories []models.Category
	Content    map[string][]models.Content

	Errs     map[string]error
	ErrsByID map[string]error

	Calls []string
	Now   func() time.Time

	seq int
}

var _ client.Client = (*Fake)(nil)

func New() *Fake {
	return &Fake{
		Token:    "token",
		User:     models.User{Email: "teacher@example.com"},
		Content:  make(map[string][]models.Content),
		Errs:     make(map[string]error),
		ErrsByID: make(map[string]error),
		Now:      time.Now,
	}
}

// AddCategory seeds a category and returns it.
func (f *Fake) AddCategory(name string) models.Category {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := models.Category{ID: f.nextID("c"), Name: name}
	f.Categories = append(f.Categories, c)
	return c
}

// AddContent seeds a content item and returns it.
func (f *Fake) AddContent(categoryID string, c models.Content) models.Content {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == "" {
		c.ID = f.nextID("i")
	}
	f.Content[categoryID] = append(f.Content[categoryID], c)
	return c
}

// CallCount returns how many times method was called.
func (f *Fake) CallCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == method {
			n++
		}
	}
	return n
}

func (f *Fake) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s%d", prefix, f.seq)
}

func (f *Fake) call(method, id string) error {
	f.Calls = append(f.Calls, method)
	if err := f.ErrsByID[method+":"+id]; err != nil {
		return err
	}
	return f.Errs[method]
}

func (f *Fake) Login(_ context.Context, email string, password []byte) (string, models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("Login", email); err != nil {
		return "", models.User{}, err
	}
	return f.Token, f.User, nil
}

func (f *Fake) Verify(context.Context) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("Verify", ""); err != nil {
		return models.User{}, err
	}
	return f.User, nil
}

func (f *Fake) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.call("Logout", "")
}

func (f *Fake) ListCategories(context.Context) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("ListCategories", ""); err != nil {
		return nil, err
	}
	return append([]models.Category(nil), f.Categories...), nil
}

func (f *Fake) CreateCategory(_ context.Context, name string) (models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("CreateCategory", name); err != nil {
		return models.Category{}, err
	}
	c := models.Category{ID: f.nextID("c"), Name: name}
	f.Categories = append(f.Categories, c)
	return c, nil
}

func (f *Fake) GetCategory(_ context.Context, id string) (models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("GetCategory", id); err != nil {
		return models.Category{}, err
	}
	for _, c := range f.Categories {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Category{}, client.ErrNotFound
}

func (f *Fake) DeleteCategory(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("DeleteCategory", id); err != nil {
		return err
	}
	for i, c := range f.Categories {
		if c.ID == id {
			f.Categories = append(f.Categories[:i], f.Categories[i+1:]...)
			delete(f.Content, id)
			return nil
		}
	}
	return client.ErrNotFound
}

func (f *Fake) ListContent(_ context.Context, categoryID string) ([]models.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("ListContent", categoryID); err != nil {
		return nil, err
	}
	return append([]models.Content(nil), f.Content[categoryID]...), nil
}

func (f *Fake) CreateContent(_ context.Context, categoryID string, nc models.NewContent) (models.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("CreateContent", nc.Title); err != nil {
		return models.Content{}, err
	}
	c := models.Content{
		ID:          f.nextID("i"),
		Title:       nc.Title,
		Type:        nc.Type,
		URL:         nc.URL,
		Description: nc.Description,
		CreatedAt:   f.Now(),
	}
	f.Content[categoryID] = append(f.Content[categoryID], c)
	return c, nil
}

func (f *Fake) DeleteContent(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("DeleteContent", id); err != nil {
		return err
	}
	for cat, items := range f.Content {
		for i, c := range items {
			if c.ID == id {
				f.Content[cat] = append(items[:i], items[i+1:]...)
				return nil
			}
		}
	}
	return client.ErrNotFound
}
