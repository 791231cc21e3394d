package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ecommerce-backend/internal/models"
	"ecommerce-backend/internal/repository"
)

const (
	defaultPageSize = 10
	defaultPage     = 1
)

// ProductRepo is the store surface the service needs (interface here so
// tests can substitute a fake).
type ProductRepo interface {
	List(ctx context.Context, q models.ProductListQuery) ([]models.Product, int64, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Create(ctx context.Context, p models.Product) (models.Product, error)
	GetMany(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error)
}

type ProductService struct {
	repo ProductRepo
}

func NewProductService(repo ProductRepo) *ProductService {
	return &ProductService{repo: repo}
}

// ListParams are the raw query parameters of a listing request.
type ListParams struct {
	Limit string
	Page  string
	Query string
	Sort  string
}

// List runs a filtered, sorted, paginated product query and computes the
// pagination metadata.
//
// Filter rules: query "true"/"false" filters on status, any other non-empty
// value filters on exact category, empty means no filter. Sort "asc"/"desc"
// orders by price; anything else leaves store-default (insertion) order.
func (s *ProductService) List(ctx context.Context, p ListParams) (models.ProductPage, error) {
	q := models.ProductListQuery{
		Page:  parsePositiveInt(p.Page, defaultPage),
		Limit: parsePositiveInt(p.Limit, defaultPageSize),
	}

	switch p.Query {
	case "":
	case "true", "false":
		status := p.Query == "true"
		q.Status = &status
	default:
		q.Category = p.Query
	}

	switch p.Sort {
	case "asc":
		q.PriceSort = 1
	case "desc":
		q.PriceSort = -1
	}

	docs, total, err := s.repo.List(ctx, q)
	if err != nil {
		return models.ProductPage{}, err
	}

	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	page := models.ProductPage{
		Docs:        docs,
		TotalPages:  totalPages,
		Page:        q.Page,
		HasPrevPage: q.Page > 1,
		HasNextPage: q.Page < totalPages,
	}
	if page.HasPrevPage {
		prev := q.Page - 1
		page.PrevPage = &prev
	}
	if page.HasNextPage {
		next := q.Page + 1
		page.NextPage = &next
	}
	return page, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		// an id that cannot be parsed can never resolve
		return nil, ErrProductNotFound
	}
	p, err := s.repo.Get(ctx, oid)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Create(ctx context.Context, in models.ProductInput) (models.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return models.Product{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Category) == "" {
		return models.Product{}, fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	if in.Price == nil {
		return models.Product{}, fmt.Errorf("%w: price is required", ErrInvalidInput)
	}
	if *in.Price < 0 {
		return models.Product{}, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if in.Stock < 0 {
		return models.Product{}, fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	}

	status := true
	if in.Status != nil {
		status = *in.Status
	}

	return s.repo.Create(ctx, models.Product{
		Name:     in.Name,
		Price:    *in.Price,
		Stock:    in.Stock,
		Category: in.Category,
		Status:   status,
	})
}

// PageLink rebuilds the caller's query string with the page substituted, so
// prev/next links preserve limit, query and sort.
func PageLink(base string, query url.Values, page int) string {
	q := url.Values{}
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("page", strconv.Itoa(page))
	return base + "?" + q.Encode()
}

func parsePositiveInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}
