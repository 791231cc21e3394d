package service

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ecommerce-backend/internal/models"
	"ecommerce-backend/internal/repository"
)

// CartRepo is the cart store surface the service needs.
type CartRepo interface {
	Create(ctx context.Context) (models.Cart, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Cart, error)
	ListAll(ctx context.Context) ([]models.Cart, error)
	Latest(ctx context.Context) (*models.Cart, error)
	Save(ctx context.Context, id primitive.ObjectID, items []models.CartItem) (*models.Cart, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type CartService struct {
	carts    CartRepo
	products ProductRepo
}

func NewCartService(carts CartRepo, products ProductRepo) *CartService {
	return &CartService{carts: carts, products: products}
}

// ListAll returns every cart with product references resolved.
func (s *CartService) ListAll(ctx context.Context) ([]models.PopulatedCart, error) {
	carts, err := s.carts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, carts)
}

func (s *CartService) Create(ctx context.Context) (models.Cart, error) {
	return s.carts.Create(ctx)
}

func (s *CartService) Get(ctx context.Context, cartID string) (*models.PopulatedCart, error) {
	cart, err := s.getCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	pop, err := s.populate(ctx, []models.Cart{*cart})
	if err != nil {
		return nil, err
	}
	return &pop[0], nil
}

// AddProduct adds a line item for the product, or increments the existing
// one. The product-existence check and the cart save are separate store
// calls; a product deleted in between still ends up referenced (accepted
// race, dangling references are tolerated downstream).
func (s *CartService) AddProduct(ctx context.Context, cartID, productID string) (*models.Cart, error) {
	pid, err := primitive.ObjectIDFromHex(strings.TrimSpace(productID))
	if err != nil {
		return nil, ErrProductNotFound
	}
	if _, err := s.products.Get(ctx, pid); err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	cart, err := s.getCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	items := cart.Products
	found := false
	for i := range items {
		if items[i].Product == pid {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		items = append(items, models.CartItem{Product: pid, Quantity: 1})
	}

	return s.save(ctx, cart.ID, items)
}

// RemoveProduct drops the line item for the product. A missing line item is
// a no-op, not an error.
func (s *CartService) RemoveProduct(ctx context.Context, cartID, productID string) (*models.Cart, error) {
	cart, err := s.getCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	pid := strings.TrimSpace(productID)
	items := make([]models.CartItem, 0, len(cart.Products))
	for _, it := range cart.Products {
		if it.Product.Hex() != pid {
			items = append(items, it)
		}
	}

	return s.save(ctx, cart.ID, items)
}

// SetQuantity sets the quantity of an existing line item. The cart is left
// untouched when the quantity is invalid or the line item is absent.
func (s *CartService) SetQuantity(ctx context.Context, cartID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be a positive integer", ErrInvalidInput)
	}

	cart, err := s.getCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	pid := strings.TrimSpace(productID)
	items := cart.Products
	found := false
	for i := range items {
		if items[i].Product.Hex() == pid {
			items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, ErrItemNotFound
	}

	return s.save(ctx, cart.ID, items)
}

// ReplaceItems swaps the cart's whole line-item list. Each input item gets
// the same validation as document creation: product reference required,
// quantity >= 1 defaulting to 1. Duplicate references collapse by summing so
// the one-item-per-product invariant holds.
func (s *CartService) ReplaceItems(ctx context.Context, cartID string, inputs []models.CartItemInput) (*models.Cart, error) {
	items := make([]models.CartItem, 0, len(inputs))
	index := make(map[primitive.ObjectID]int, len(inputs))

	for _, in := range inputs {
		pid, err := primitive.ObjectIDFromHex(strings.TrimSpace(in.Product))
		if err != nil {
			return nil, fmt.Errorf("%w: item product reference is required", ErrInvalidInput)
		}
		qty := 1
		if in.Quantity != nil {
			qty = *in.Quantity
		}
		if qty < 1 {
			return nil, fmt.Errorf("%w: item quantity must be at least 1", ErrInvalidInput)
		}
		if i, ok := index[pid]; ok {
			items[i].Quantity += qty
			continue
		}
		index[pid] = len(items)
		items = append(items, models.CartItem{Product: pid, Quantity: qty})
	}

	cart, err := s.getCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, cart.ID, items)
}

// Clear empties the line-item list; the cart document survives.
func (s *CartService) Clear(ctx context.Context, cartID string) (*models.Cart, error) {
	cart, err := s.getCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, cart.ID, []models.CartItem{})
}

// Delete removes the cart document entirely.
func (s *CartService) Delete(ctx context.Context, cartID string) error {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(cartID))
	if err != nil {
		return ErrCartNotFound
	}
	if err := s.carts.Delete(ctx, oid); err != nil {
		if err == repository.ErrNotFound {
			return ErrCartNotFound
		}
		return err
	}
	return nil
}

// View builds the rendered-page model for the most recently created cart.
// Missing products contribute price 0 to the subtotal.
func (s *CartService) View(ctx context.Context) (models.CartView, error) {
	cart, err := s.carts.Latest(ctx)
	if err != nil {
		if err == repository.ErrNotFound {
			return models.CartView{IsEmpty: true, Products: []models.PopulatedItem{}}, nil
		}
		return models.CartView{}, err
	}
	if len(cart.Products) == 0 {
		return models.CartView{IsEmpty: true, Products: []models.PopulatedItem{}}, nil
	}

	pop, err := s.populate(ctx, []models.Cart{*cart})
	if err != nil {
		return models.CartView{}, err
	}

	var subtotal float64
	for _, it := range pop[0].Products {
		if it.Product == nil {
			continue
		}
		subtotal += it.Product.Price * float64(it.Quantity)
	}

	return models.CartView{
		Products: pop[0].Products,
		Subtotal: subtotal,
		Total:    subtotal,
	}, nil
}

func (s *CartService) getCart(ctx context.Context, cartID string) (*models.Cart, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(cartID))
	if err != nil {
		return nil, ErrCartNotFound
	}
	cart, err := s.carts.Get(ctx, oid)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return cart, nil
}

func (s *CartService) save(ctx context.Context, id primitive.ObjectID, items []models.CartItem) (*models.Cart, error) {
	cart, err := s.carts.Save(ctx, id, items)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return cart, nil
}

// populate resolves every product reference across the given carts with one
// batch lookup. Dangling references resolve to nil.
func (s *CartService) populate(ctx context.Context, carts []models.Cart) ([]models.PopulatedCart, error) {
	seen := map[primitive.ObjectID]struct{}{}
	ids := []primitive.ObjectID{}
	for _, c := range carts {
		for _, it := range c.Products {
			if _, ok := seen[it.Product]; !ok {
				seen[it.Product] = struct{}{}
				ids = append(ids, it.Product)
			}
		}
	}

	resolved, err := s.products.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.PopulatedCart, 0, len(carts))
	for _, c := range carts {
		pc := models.PopulatedCart{
			ID:        c.ID,
			Products:  make([]models.PopulatedItem, 0, len(c.Products)),
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		}
		for _, it := range c.Products {
			item := models.PopulatedItem{Quantity: it.Quantity}
			if p, ok := resolved[it.Product]; ok {
				prod := p
				item.Product = &prod
			}
			pc.Products = append(pc.Products, item)
		}
		out = append(out, pc)
	}
	return out, nil
}
