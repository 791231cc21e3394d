package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecommerce-backend/internal/models"
)

type CartRepo struct {
	col *mongo.Collection
}

func NewCartRepo(db *mongo.Database) *CartRepo {
	return &CartRepo{col: db.Collection("carts")}
}

func (r *CartRepo) Create(ctx context.Context) (models.Cart, error) {
	now := time.Now().UTC()
	cart := models.Cart{
		Products:  []models.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := r.col.InsertOne(ctx, cart)
	if err != nil {
		return models.Cart{}, fmt.Errorf("insert cart: %w", err)
	}
	cart.ID = res.InsertedID.(primitive.ObjectID)
	return cart, nil
}

func (r *CartRepo) Get(ctx context.Context, id primitive.ObjectID) (*models.Cart, error) {
	var c models.Cart
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return &c, nil
}

func (r *CartRepo) ListAll(ctx context.Context) ([]models.Cart, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find carts: %w", err)
	}
	defer cur.Close(ctx)

	carts := []models.Cart{}
	if err := cur.All(ctx, &carts); err != nil {
		return nil, fmt.Errorf("decode carts: %w", err)
	}
	return carts, nil
}

// Latest returns the most recently created cart, or ErrNotFound when the
// collection is empty.
func (r *CartRepo) Latest(ctx context.Context) (*models.Cart, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var c models.Cart
	err := r.col.FindOne(ctx, bson.M{}, opts).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("latest cart: %w", err)
	}
	return &c, nil
}

// Save replaces the cart's whole line-item list in a single document write
// and returns the updated cart.
func (r *CartRepo) Save(ctx context.Context, id primitive.ObjectID, items []models.CartItem) (*models.Cart, error) {
	if items == nil {
		items = []models.CartItem{}
	}
	update := bson.M{"$set": bson.M{
		"products":  items,
		"updatedAt": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var c models.Cart
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return &c, nil
}

func (r *CartRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
