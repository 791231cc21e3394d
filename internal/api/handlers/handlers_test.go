package handlers_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ecommerce-backend/internal/api/handlers"
	"ecommerce-backend/internal/models"
	"ecommerce-backend/internal/repository"
	"ecommerce-backend/internal/service"
	"ecommerce-backend/internal/views"
)

// In-memory stores backing the handler tests. Guarded by a mutex so the
// concurrent-request test can share them.

type stubProductRepo struct {
	mu       sync.Mutex
	products []models.Product
}

func (f *stubProductRepo) List(ctx context.Context, q models.ProductListQuery) ([]models.Product, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := []models.Product{}
	for _, p := range f.products {
		if q.Status != nil && p.Status != *q.Status {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		matched = append(matched, p)
	}
	if q.PriceSort != 0 {
		sort.SliceStable(matched, func(i, j int) bool {
			if q.PriceSort > 0 {
				return matched[i].Price < matched[j].Price
			}
			return matched[i].Price > matched[j].Price
		})
	}
	total := int64(len(matched))
	start := (q.Page - 1) * q.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *stubProductRepo) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.products {
		if f.products[i].ID == id {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *stubProductRepo) Create(ctx context.Context, p models.Product) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = primitive.NewObjectID()
	f.products = append(f.products, p)
	return p, nil
}

func (f *stubProductRepo) GetMany(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[primitive.ObjectID]models.Product{}
	for _, id := range ids {
		for _, p := range f.products {
			if p.ID == id {
				out[id] = p
			}
		}
	}
	return out, nil
}

type stubCartRepo struct {
	mu    sync.Mutex
	carts map[primitive.ObjectID]models.Cart
	clock time.Time
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{carts: map[primitive.ObjectID]models.Cart{}, clock: time.Now().UTC()}
}

func (r *stubCartRepo) Create(ctx context.Context) (models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clock = r.clock.Add(time.Second)
	cart := models.Cart{
		ID:        primitive.NewObjectID(),
		Products:  []models.CartItem{},
		CreatedAt: r.clock,
		UpdatedAt: r.clock,
	}
	r.carts[cart.ID] = cart
	return cart, nil
}

func (r *stubCartRepo) Get(ctx context.Context, id primitive.ObjectID) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := c
	out.Products = append([]models.CartItem{}, c.Products...)
	return &out, nil
}

func (r *stubCartRepo) ListAll(ctx context.Context) ([]models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Cart{}
	for _, c := range r.carts {
		out = append(out, c)
	}
	return out, nil
}

func (r *stubCartRepo) Latest(ctx context.Context) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *models.Cart
	for id := range r.carts {
		c := r.carts[id]
		if latest == nil || c.CreatedAt.After(latest.CreatedAt) {
			latest = &c
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	return latest, nil
}

func (r *stubCartRepo) Save(ctx context.Context, id primitive.ObjectID, items []models.CartItem) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c.Products = append([]models.CartItem{}, items...)
	r.clock = r.clock.Add(time.Second)
	c.UpdatedAt = r.clock
	r.carts[id] = c
	return &c, nil
}

func (r *stubCartRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.carts, id)
	return nil
}

type fixture struct {
	router   http.Handler
	products *stubProductRepo
	carts    *stubCartRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	renderer, err := views.New()
	if err != nil {
		t.Fatalf("views.New failed: %v", err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	products := &stubProductRepo{}
	carts := newStubCartRepo()

	productSvc := service.NewProductService(products)
	cartSvc := service.NewCartService(carts, products)

	ph := handlers.NewProductHandler(productSvc, renderer, log)
	ch := handlers.NewCartHandler(cartSvc, renderer, log)

	r := chi.NewRouter()
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", ph.List)
		r.Post("/", ph.Create)
		r.Get("/{pid}", ph.GetByID)
	})
	r.Route("/api/carts", func(r chi.Router) {
		r.Get("/", ch.ListAll)
		r.Post("/", ch.Create)
		r.Get("/{cid}", ch.GetByID)
		r.Put("/{cid}", ch.ReplaceItems)
		r.Delete("/{cid}", ch.Clear)
		r.Post("/{cid}/product/{pid}", ch.AddProduct)
		r.Put("/{cid}/products/{pid}", ch.SetQuantity)
		r.Delete("/{cid}/products/{pid}", ch.RemoveProduct)
	})
	r.Get("/products/views", ph.ListView)
	r.Get("/products/views/{pid}", ph.DetailView)
	r.Get("/carts/views", ch.RenderView)

	return &fixture{router: r, products: products, carts: carts}
}
