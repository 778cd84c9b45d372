package migrations

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/vastra/pkg/migration"
)

func init() {
	migration.Register("20260301000000_product_reference_indexes", &ProductReferenceIndexes{})
	migration.Register("20260301000001_category_slug_unique", &CategorySlugUnique{})
	migration.Register("20260301000002_brand_slug_unique", &BrandSlugUnique{})
}

func dropIndex(ctx context.Context, db *mongo.Database, collection, name string) error {
	_, err := db.Collection(collection).Indexes().DropOne(ctx, name)
	return err
}

// -------- 0000: products --------

// ProductReferenceIndexes indexes the category and brand reference
// fields the lookup stages join on.
type ProductReferenceIndexes struct{}

func (m *ProductReferenceIndexes) Up(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("products").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_products_category"),
		},
		{
			Keys:    bson.D{{Key: "brand", Value: 1}},
			Options: options.Index().SetName("idx_products_brand"),
		},
	})
	return err
}

func (m *ProductReferenceIndexes) Down(ctx context.Context, db *mongo.Database) error {
	if err := dropIndex(ctx, db, "products", "idx_products_category"); err != nil {
		return err
	}
	return dropIndex(ctx, db, "products", "idx_products_brand")
}

// -------- 0001: categories --------

type CategorySlugUnique struct{}

func (m *CategorySlugUnique) Up(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("categories").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetName("idx_categories_slug").SetUnique(true),
	})
	return err
}

func (m *CategorySlugUnique) Down(ctx context.Context, db *mongo.Database) error {
	return dropIndex(ctx, db, "categories", "idx_categories_slug")
}

// -------- 0002: brands --------

type BrandSlugUnique struct{}

func (m *BrandSlugUnique) Up(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("brands").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetName("idx_brands_slug").SetUnique(true),
	})
	return err
}

func (m *BrandSlugUnique) Down(ctx context.Context, db *mongo.Database) error {
	return dropIndex(ctx, db, "brands", "idx_brands_slug")
}
