package service

import (
	"restaurante-backend/internal/auth"
	"restaurante-backend/internal/logger"
	"restaurante-backend/internal/repository"
)

// Notifier is the slice of the dispatcher the order flow needs: fire-and-forget
// event triggers that never block or fail the request path.
type Notifier interface {
	OrderCreated(orderID int64)
	StatusChanged(orderID int64, newStatus string)
	OrderReady(orderID int64)
}

type Service struct {
	Auth       AuthServiceInterface
	Users      UsersServiceInterface
	Orders     OrdersServiceInterface
	Carts      CartsServiceInterface
	Products   ProductsServiceInterface
	Categories CategoriesServiceInterface
	Tables     TablesServiceInterface
	Extras     ExtrasServiceInterface
	Reviews    ReviewsServiceInterface
	Favorites  FavoritesServiceInterface
}

type Repos struct {
	Users      repository.UsersRepositoryInterface
	Orders     repository.OrdersRepositoryInterface
	Carts      repository.CartsRepositoryInterface
	Products   repository.ProductsRepositoryInterface
	Categories repository.CategoriesRepositoryInterface
	Tables     repository.TablesRepositoryInterface
	Extras     repository.ExtrasRepositoryInterface
	Reviews    repository.ReviewsRepositoryInterface
	Favorites  repository.FavoritesRepositoryInterface
}

func New(lg *logger.Logger, repos Repos, tokens *auth.Manager, notifier Notifier) *Service {
	return &Service{
		Auth:       NewAuthService(lg, repos.Users, tokens),
		Users:      NewUsersService(lg, repos.Users),
		Orders:     NewOrdersService(lg, repos.Orders, notifier),
		Carts:      NewCartsService(repos.Carts),
		Products:   NewProductsService(repos.Products),
		Categories: NewCategoriesService(repos.Categories),
		Tables:     NewTablesService(repos.Tables),
		Extras:     NewExtrasService(repos.Extras),
		Reviews:    NewReviewsService(repos.Reviews),
		Favorites:  NewFavoritesService(repos.Favorites),
	}
}
