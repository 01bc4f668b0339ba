package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"restaurante-backend/internal/auth"
	"restaurante-backend/internal/connections/rabbitmq"
	"restaurante-backend/internal/logger"
	"restaurante-backend/internal/metrics"
	"restaurante-backend/internal/notify"
	"restaurante-backend/internal/service"
	"restaurante-backend/internal/ws"
)

type Handler struct {
	log        *logger.Logger
	svc        *service.Service
	tokens     *auth.Manager
	registry   *ws.Registry
	dispatcher *notify.Dispatcher
	db         *pgxpool.Pool
	rmq        *rabbitmq.Client
}

func NewHandler(lg *logger.Logger, svc *service.Service, tokens *auth.Manager,
	registry *ws.Registry, dispatcher *notify.Dispatcher,
	db *pgxpool.Pool, rmq *rabbitmq.Client) *Handler {
	return &Handler{
		log:        lg,
		svc:        svc,
		tokens:     tokens,
		registry:   registry,
		dispatcher: dispatcher,
		db:         db,
		rmq:        rmq,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", h.welcome)

	r.Post("/auth/register", h.register)
	r.Post("/auth/login", h.login)
	r.Get("/auth/me", h.requireUser(h.me))

	r.Route("/users", func(r chi.Router) {
		r.Get("/me", h.requireUser(h.me))
		r.Put("/me", h.requireUser(h.updateMe))
		r.Get("/", h.requireUser(h.listUsers))
		r.Put("/{id}", h.requireUser(h.updateUser))
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.listCategories)
		r.Get("/{id}", h.getCategory)
		r.Post("/", h.requireUser(h.createCategory))
		r.Put("/{id}", h.requireUser(h.updateCategory))
		r.Delete("/{id}", h.requireUser(h.deleteCategory))
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.Get("/{id}", h.getProduct)
		r.Get("/{id}/reviews", h.listProductReviews)
		r.Post("/", h.requireUser(h.createProduct))
		r.Put("/{id}", h.requireUser(h.updateProduct))
		r.Delete("/{id}", h.requireUser(h.deleteProduct))
	})

	r.Route("/tables", func(r chi.Router) {
		r.Get("/", h.listTables)
		r.Get("/available", h.listAvailableTables)
		r.Get("/status", h.requireUser(h.tableStatus))
		r.Get("/{id}", h.getTable)
		r.Post("/", h.requireUser(h.createTable))
		r.Put("/{id}", h.requireUser(h.updateTable))
		r.Patch("/{id}/position", h.requireUser(h.moveTable))
		r.Delete("/{id}", h.requireUser(h.deleteTable))
	})

	r.Route("/extras", func(r chi.Router) {
		r.Get("/", h.listExtras)
		r.Post("/", h.requireUser(h.createExtra))
		r.Get("/order/{id}/extras", h.requireUser(h.listOrderExtras))
		r.Post("/order/{id}/extras", h.requireUser(h.addOrderExtras))
		r.Delete("/order-extras/{id}", h.requireUser(h.removeOrderExtra))
		r.Get("/{id}", h.getExtra)
		r.Put("/{id}", h.requireUser(h.updateExtra))
		r.Delete("/{id}", h.requireUser(h.deleteExtra))
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.requireUser(h.getCart))
		r.Get("/summary", h.requireUser(h.cartSummary))
		r.Delete("/", h.requireUser(h.clearCart))
		r.Post("/items", h.requireUser(h.addCartItem))
		r.Put("/items/{id}", h.requireUser(h.updateCartItem))
		r.Delete("/items/{id}", h.requireUser(h.removeCartItem))
		r.Post("/checkout", h.requireUser(h.checkout))
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.requireUser(h.createOrder))
		r.Get("/", h.requireUser(h.listOrders))
		r.Get("/my-orders", h.requireUser(h.myOrders))
		r.Get("/{id}", h.requireUser(h.getOrder))
		r.Put("/{id}", h.requireUser(h.updateOrder))
		r.Patch("/{id}/status", h.requireUser(h.setOrderStatus))
		r.Delete("/{id}", h.requireUser(h.deleteOrder))
	})

	r.Route("/reviews", func(r chi.Router) {
		r.Post("/", h.requireUser(h.createReview))
		r.Delete("/{id}", h.requireUser(h.deleteReview))
	})

	r.Route("/favorites", func(r chi.Router) {
		r.Get("/", h.requireUser(h.listFavorites))
		r.Post("/{productID}", h.requireUser(h.addFavorite))
		r.Delete("/{productID}", h.requireUser(h.removeFavorite))
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Post("/order/{id}/status", h.requireUser(h.notifyOrderStatus))
		r.Post("/order/{id}/ready", h.requireUser(h.notifyOrderReady))
	})

	r.Get("/ws/orders", h.wsOrders)
	r.Get("/ws/client", h.wsClient)

	r.Get("/health", h.health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}
