package client

import (
	"context"

	"github.com/dmitrijs2005/teacherlms/internal/client/models"
)

// Client is the LMS REST API as seen by the views.
type Client interface {
	Login(ctx context.Context, email string, password []byte) (token string, user models.User, err error)
	Verify(ctx context.Context) (models.User, error)
	Logout(ctx context.Context) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, name string) (models.Category, error)
	GetCategory(ctx context.Context, id string) (models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	ListContent(ctx context.Context, categoryID string) ([]models.Content, error)
	CreateContent(ctx context.Context, categoryID string, c models.NewContent) (models.Content, error)
	DeleteContent(ctx context.Context, id string) error
}

// TokenSource yields the bearer token to attach to a request. An empty token
// means the request is sent without an Authorization header.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
