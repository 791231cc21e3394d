package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecommerce-backend/internal/models"
)

type ProductRepo struct {
	col *mongo.Collection
}

func NewProductRepo(db *mongo.Database) *ProductRepo {
	return &ProductRepo{col: db.Collection("products")}
}

// List returns one page of products plus the total number of matching
// documents. Sorting always carries _id as a secondary key so page boundaries
// stay stable when prices tie or no price sort was requested.
func (r *ProductRepo) List(ctx context.Context, q models.ProductListQuery) ([]models.Product, int64, error) {
	filter := bson.M{}
	if q.Status != nil {
		filter["status"] = *q.Status
	}
	if q.Category != "" {
		filter["category"] = q.Category
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	sort := bson.D{}
	if q.PriceSort != 0 {
		sort = append(sort, bson.E{Key: "price", Value: q.PriceSort})
	}
	sort = append(sort, bson.E{Key: "_id", Value: 1})

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64(q.Page-1) * int64(q.Limit)).
		SetLimit(int64(q.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find products: %w", err)
	}
	defer cur.Close(ctx)

	docs := []models.Product{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode products: %w", err)
	}
	return docs, total, nil
}

func (r *ProductRepo) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) Create(ctx context.Context, p models.Product) (models.Product, error) {
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return models.Product{}, fmt.Errorf("insert product: %w", err)
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return p, nil
}

// GetMany resolves a batch of product references in a single query. Ids that
// do not resolve are simply absent from the result map.
func (r *ProductRepo) GetMany(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	out := make(map[primitive.ObjectID]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find products by id: %w", err)
	}
	defer cur.Close(ctx)

	var docs []models.Product
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	for _, d := range docs {
		out[d.ID] = d
	}
	return out, nil
}
