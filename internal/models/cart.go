package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one line item as stored: a weak reference to a product plus a
// quantity (>= 1). At most one line item per distinct product.
type CartItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Products  []CartItem         `bson:"products" json:"products"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PopulatedItem resolves the product reference to the full document. Product
// is nil when the reference dangles; totals treat that as price 0.
type PopulatedItem struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
}

type PopulatedCart struct {
	ID        primitive.ObjectID `json:"id"`
	Products  []PopulatedItem    `json:"products"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// CartItemInput is one entry of a ReplaceItems payload. Quantity defaults to
// 1 when absent.
type CartItemInput struct {
	Product  string `json:"product"`
	Quantity *int   `json:"quantity"`
}

// CartView is the data contract of the rendered cart page.
type CartView struct {
	IsEmpty  bool
	Products []PopulatedItem
	Subtotal float64
	Total    float64
}
