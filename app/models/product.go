package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry. Thumbnail and Images hold generated filenames
// relative to the product asset namespace; the serving base path is returned
// separately in API responses.
//
// Quantity and Stock are updated in lockstep on every update (stock mirrors
// quantity); create sets only quantity.
type Product struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Title            string              `bson:"title" json:"title"`
	Category         *primitive.ObjectID `bson:"category" json:"category"`
	Brand            *primitive.ObjectID `bson:"brand" json:"brand"`
	Price            float64             `bson:"price" json:"price"`
	Quantity         int                 `bson:"quantity" json:"quantity"`
	Stock            int                 `bson:"stock" json:"stock"`
	ShortDescription string              `bson:"short_description" json:"short_description"`
	Description      string              `bson:"description" json:"description"`
	Thumbnail        *string             `bson:"thumbnail" json:"thumbnail"`
	Images           []string            `bson:"images" json:"images"`
	Status           int                 `bson:"status" json:"status"`
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
}

// ProductView is a Product with its category and brand references resolved.
// The joined documents are absent when the reference does not resolve —
// a product survives the deletion of its category or brand.
type ProductView struct {
	Product      `bson:",inline"`
	CategoryData *Category `bson:"categoryData,omitempty" json:"categoryData,omitempty"`
	BrandData    *Brand    `bson:"brandData,omitempty" json:"brandData,omitempty"`
}
