package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/imarket-ke/imarket-backend/api/controllers"
	"github.com/imarket-ke/imarket-backend/api/middleware"
	"github.com/imarket-ke/imarket-backend/internal/activities"
	"github.com/imarket-ke/imarket-backend/internal/cart"
	"github.com/imarket-ke/imarket-backend/internal/catalog"
	checkoutsvc "github.com/imarket-ke/imarket-backend/internal/checkout"
	"github.com/imarket-ke/imarket-backend/internal/notifications"
	"github.com/imarket-ke/imarket-backend/internal/orders"
	"github.com/imarket-ke/imarket-backend/internal/profile"
	"github.com/imarket-ke/imarket-backend/internal/reviews"
	"github.com/imarket-ke/imarket-backend/pkg/config"
	"github.com/imarket-ke/imarket-backend/pkg/logger"
	"github.com/imarket-ke/imarket-backend/pkg/storage"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	Store         storage.Store
	Registry      *prometheus.Registry
	Catalog       catalog.Service
	Cart          cart.Service
	Checkout      checkoutsvc.Service
	Orders        orders.Service
	Tracker       *orders.Tracker
	Reviews       reviews.Service
	Notifications notifications.Service
	Activities    activities.Service
	Profile       profile.Service
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(d.Logger),
		middleware.RequestID(d.Logger),
		middleware.Logging(d.Logger),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(d.Config))
		r.Get("/ready", controllers.HealthReady(d.Config, d.Logger, d.Store))
	})

	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(d.Logger))

		r.Route("/shops/{shop}", func(r chi.Router) {
			r.Get("/suggestions", controllers.Suggest(d.Catalog, d.Logger))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.ListProducts(d.Catalog, d.Logger))
				r.Get("/{productID}", controllers.GetProduct(d.Catalog, d.Logger))
			})
			r.Route("/office-products", func(r chi.Router) {
				r.Get("/", controllers.ListOfficeProducts(d.Catalog, d.Logger))
			})
			r.Route("/cars", func(r chi.Router) {
				r.Get("/", controllers.ListCars(d.Catalog, d.Logger))
				r.Get("/{carKey}", controllers.GetCar(d.Catalog, d.Logger))
			})
			r.Route("/properties", func(r chi.Router) {
				r.Get("/", controllers.ListProperties(d.Catalog, d.Logger))
				r.Get("/{propertyID}", controllers.GetProperty(d.Catalog, d.Logger))
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.GetCart(d.Cart, d.Logger))
				r.Post("/items", controllers.AddCartItem(d.Cart, d.Logger))
				r.Put("/items/{productID}", controllers.UpdateCartItem(d.Cart, d.Logger))
				r.Delete("/items/{productID}", controllers.RemoveCartItem(d.Cart, d.Logger))
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/quote", controllers.CheckoutQuote(d.Checkout, d.Logger))
				r.Post("/", controllers.PlaceOrder(d.Checkout, d.Logger))
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(d.Orders, d.Logger))
			r.Get("/{orderID}", controllers.GetOrder(d.Orders, d.Logger))
			r.Post("/{orderID}/track", controllers.OpenTracking(d.Tracker, d.Logger))
			r.Delete("/tracking", controllers.CloseTracking(d.Tracker, d.Logger))
			r.Post("/{orderID}/advance", controllers.AdvanceOrder(d.Orders, d.Logger))
			r.Post("/{orderID}/finalize", controllers.FinalizeOrder(d.Orders, d.Tracker, d.Logger))
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", controllers.ListReviews(d.Reviews, d.Logger))
			r.Post("/", controllers.SubmitReview(d.Reviews, d.Logger))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(d.Notifications, d.Logger))
			r.Post("/{notificationID}/read", controllers.MarkNotificationRead(d.Notifications, d.Logger))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(d.Notifications, d.Logger))
		})

		r.Get("/activities", controllers.ListActivities(d.Activities, d.Logger))

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", controllers.GetProfile(d.Profile, d.Logger))
			r.Put("/", controllers.UpdateProfile(d.Profile, d.Logger))
		})

		r.Post("/logout", controllers.Logout(d.Store, d.Logger))
	})

	return r
}
