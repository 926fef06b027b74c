package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/teacherlms/internal/client/client"
	"github.com/dmitrijs2005/teacherlms/internal/client/models"
	"github.com/dmitrijs2005/teacherlms/internal/common"
)

type CategoryService interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id string) (models.Category, error)
	Create(ctx context.Context, name string) (models.Category, error)
	Delete(ctx context.Context, id string) error
}

type categoryService struct {
	client client.Client
}

func NewCategoryService(client client.Client) CategoryService {
	return &categoryService{client: client}
}

func (s *categoryService) List(ctx context.Context) ([]models.Category, error) {
	items, err := s.client.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	return items, nil
}

func (s *categoryService) Get(ctx context.Context, id string) (models.Category, error) {
	c, err := s.client.GetCategory(ctx, id)
	if err != nil {
		return models.Category{}, fmt.Errorf("error retrieving category %s: %w", id, err)
	}
	return c, nil
}

// Create trims name and rejects it when empty without calling the server.
func (s *categoryService) Create(ctx context.Context, name string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, common.ErrEmptyCategoryName
	}

	c, err := s.client.CreateCategory(ctx, name)
	if err != nil {
		return models.Category{}, fmt.Errorf("error creating category: %w", err)
	}
	return c, nil
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("error deleting category %s: %w", id, err)
	}
	return nil
}
