package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"

	"ecommerce-backend/internal/api/handlers"
	"ecommerce-backend/internal/api/middleware"
	"ecommerce-backend/internal/repository"
	"ecommerce-backend/internal/service"
	"ecommerce-backend/internal/views"
)

// NewRouter builds the HTTP router: JSON API under /api, server-rendered
// pages under /products and /carts, embedded static assets under /static.
func NewRouter(db *mongo.Database, log *slog.Logger) (http.Handler, error) {
	renderer, err := views.New()
	if err != nil {
		return nil, err
	}

	productRepo := repository.NewProductRepo(db)
	cartRepo := repository.NewCartRepo(db)

	productSvc := service.NewProductService(productRepo)
	cartSvc := service.NewCartService(cartRepo, productRepo)

	productHandler := handlers.NewProductHandler(productSvc, renderer, log)
	cartHandler := handlers.NewCartHandler(cartSvc, renderer, log)

	r := chi.NewRouter()
	r.Use(middleware.Logger(log))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/products/views", http.StatusFound)
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", productHandler.List)
		r.Post("/", productHandler.Create)
		r.Get("/{pid}", productHandler.GetByID)
	})

	r.Route("/api/carts", func(r chi.Router) {
		r.Get("/", cartHandler.ListAll)
		r.Post("/", cartHandler.Create)
		r.Get("/{cid}", cartHandler.GetByID)
		r.Put("/{cid}", cartHandler.ReplaceItems)
		r.Delete("/{cid}", cartHandler.Clear)
		r.Post("/{cid}/product/{pid}", cartHandler.AddProduct)
		r.Put("/{cid}/products/{pid}", cartHandler.SetQuantity)
		r.Delete("/{cid}/products/{pid}", cartHandler.RemoveProduct)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/views", productHandler.ListView)
		r.Get("/views/{pid}", productHandler.DetailView)
	})

	r.Get("/carts/views", cartHandler.RenderView)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(views.StaticFS()))))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r, nil
}
