package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Product struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Price    float64            `bson:"price" json:"price"`
	Stock    int                `bson:"stock" json:"stock"`
	Category string             `bson:"category" json:"category"`
	Status   bool               `bson:"status" json:"status"`
}

// ProductInput carries a create request after JSON decoding. Pointer fields
// distinguish "absent" from the zero value so validation can require them.
type ProductInput struct {
	Name     string
	Price    *float64
	Stock    int
	Category string
	Status   *bool
}

// ProductListQuery is the store-level query built by the service from raw
// request parameters.
type ProductListQuery struct {
	Status    *bool  // filter by status when set
	Category  string // exact category match when non-empty
	PriceSort int    // 1 ascending, -1 descending, 0 unspecified
	Page      int
	Limit     int
}

// ProductPage is one page of a listing plus the pagination metadata the API
// and the rendered views both expose.
type ProductPage struct {
	Docs        []Product
	TotalPages  int
	Page        int
	PrevPage    *int
	NextPage    *int
	HasPrevPage bool
	HasNextPage bool
}
