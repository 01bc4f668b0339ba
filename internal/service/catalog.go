package service

import (
	"context"
	"fmt"
	"strings"

	"restaurante-backend/internal/domain"
	"restaurante-backend/internal/repository"
)

// Catalog services: products, categories and extras. Reads are public;
// writes require the administrator role.

type ProductsServiceInterface interface {
	List(ctx context.Context, f repository.ProductFilter) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, actor *domain.User, req domain.ProductCreate) (*domain.Product, error)
	Update(ctx context.Context, actor *domain.User, id int64, upd domain.ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, actor *domain.User, id int64) error
}

type ProductsService struct {
	products repository.ProductsRepositoryInterface
}

func NewProductsService(products repository.ProductsRepositoryInterface) ProductsServiceInterface {
	return &ProductsService{products: products}
}

func (s *ProductsService) List(ctx context.Context, f repository.ProductFilter) ([]domain.Product, error) {
	return s.products.List(ctx, f)
}

func (s *ProductsService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *ProductsService) Create(ctx context.Context, actor *domain.User, req domain.ProductCreate) (*domain.Product, error) {
	if !isAdmin(actor) {
		return nil, fmt.Errorf("creating products: %w", domain.ErrForbidden)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("product name is required: %w", domain.ErrInvalidRequest)
	}
	if req.Price < 0 || req.Stock < 0 {
		return nil, fmt.Errorf("price and stock must be non-negative: %w", domain.ErrInvalidRequest)
	}
	return s.products.Create(ctx, req)
}

func (s *ProductsService) Update(ctx context.Context, actor *domain.User, id int64, upd domain.ProductUpdate) (*domain.Product, error) {
	if !isAdmin(actor) {
		return nil, fmt.Errorf("updating products: %w", domain.ErrForbidden)
	}
	if upd.Price != nil && *upd.Price < 0 {
		return nil, fmt.Errorf("price must be non-negative: %w", domain.ErrInvalidRequest)
	}
	if upd.Stock != nil && *upd.Stock < 0 {
		return nil, fmt.Errorf("stock must be non-negative: %w", domain.ErrInvalidRequest)
	}
	return s.products.Update(ctx, id, upd)
}

func (s *ProductsService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if !isAdmin(actor) {
		return fmt.Errorf("deleting products: %w", domain.ErrForbidden)
	}
	return s.products.Delete(ctx, id)
}

type CategoriesServiceInterface interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id int64) (*domain.Category, error)
	Create(ctx context.Context, actor *domain.User, req domain.CategoryCreate) (*domain.Category, error)
	Update(ctx context.Context, actor *domain.User, id int64, upd domain.CategoryUpdate) (*domain.Category, error)
	Delete(ctx context.Context, actor *domain.User, id int64) error
}

type CategoriesService struct {
	categories repository.CategoriesRepositoryInterface
}

func NewCategoriesService(categories repository.CategoriesRepositoryInterface) CategoriesServiceInterface {
	return &CategoriesService{categories: categories}
}

func (s *CategoriesService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *CategoriesService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *CategoriesService) Create(ctx context.Context, actor *domain.User, req domain.CategoryCreate) (*domain.Category, error) {
	if !isAdmin(actor) {
		return nil, fmt.Errorf("creating categories: %w", domain.ErrForbidden)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("category name is required: %w", domain.ErrInvalidRequest)
	}
	return s.categories.Create(ctx, req)
}

func (s *CategoriesService) Update(ctx context.Context, actor *domain.User, id int64, upd domain.CategoryUpdate) (*domain.Category, error) {
	if !isAdmin(actor) {
		return nil, fmt.Errorf("updating categories: %w", domain.ErrForbidden)
	}
	return s.categories.Update(ctx, id, upd)
}

func (s *CategoriesService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if !isAdmin(actor) {
		return fmt.Errorf("deleting categories: %w", domain.ErrForbidden)
	}
	return s.categories.Delete(ctx, id)
}

var extraCategories = map[string]struct{}{
	"bebida":         {},
	"condimento":     {},
	"acompanamiento": {},
}

type ExtrasServiceInterface interface {
	List(ctx context.Context, f repository.ExtraFilter) ([]domain.Extra, error)
	Get(ctx context.Context, id int64) (*domain.Extra, error)
	Create(ctx context.Context, actor *domain.User, req domain.ExtraCreate) (*domain.Extra, error)
	Update(ctx context.Context, actor *domain.User, id int64, upd domain.ExtraUpdate) (*domain.Extra, error)
	Delete(ctx context.Context, actor *domain.User, id int64) error
}

type ExtrasService struct {
	extras repository.ExtrasRepositoryInterface
}

func NewExtrasService(extras repository.ExtrasRepositoryInterface) ExtrasServiceInterface {
	return &ExtrasService{extras: extras}
}

func (s *ExtrasService) List(ctx context.Context, f repository.ExtraFilter) ([]domain.Extra, error) {
	return s.extras.List(ctx, f)
}

func (s *ExtrasService) Get(ctx context.Context, id int64) (*domain.Extra, error) {
	return s.extras.GetByID(ctx, id)
}

func (s *ExtrasService) Create(ctx context.Context, actor *domain.User, req domain.ExtraCreate) (*domain.Extra, error) {
	if !isAdmin(actor) {
		return nil, fmt.Errorf("creating extras: %w", domain.ErrForbidden)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("extra name is required: %w", domain.ErrInvalidRequest)
	}
	if _, ok := extraCategories[req.Category]; !ok {
		return nil, fmt.Errorf("unknown extra category %q: %w", req.Category, domain.ErrInvalidRequest)
	}
	if req.Price < 0 || req.Stock < 0 {
		return nil, fmt.Errorf("price and stock must be non-negative: %w", domain.ErrInvalidRequest)
	}
	return s.extras.Create(ctx, req)
}

func (s *ExtrasService) Update(ctx context.Context, actor *domain.User, id int64, upd domain.ExtraUpdate) (*domain.Extra, error) {
	if !isAdmin(actor) {
		return nil, fmt.Errorf("updating extras: %w", domain.ErrForbidden)
	}
	if upd.Category != nil {
		if _, ok := extraCategories[*upd.Category]; !ok {
			return nil, fmt.Errorf("unknown extra category %q: %w", *upd.Category, domain.ErrInvalidRequest)
		}
	}
	return s.extras.Update(ctx, id, upd)
}

func (s *ExtrasService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if !isAdmin(actor) {
		return fmt.Errorf("deleting extras: %w", domain.ErrForbidden)
	}
	return s.extras.Delete(ctx, id)
}
