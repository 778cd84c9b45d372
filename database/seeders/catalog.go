package seeders

import (
	"context"
	"time"

	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/vastra/app/models"
)

func init() {
	Register("categories", SeedCategories)
	Register("brands", SeedBrands)
}

var seedCategories = []string{"Sarees", "Kurtis", "Lehengas", "Dupattas"}

var seedBrands = []string{"Fabindia", "Biba", "W for Woman", "Global Desi"}

// SeedCategories inserts the starter categories, skipping any slug that
// already exists so the seeder stays re-runnable.
func SeedCategories(ctx context.Context, db *mongo.Database) error {
	col := db.Collection("categories")
	for _, name := range seedCategories {
		sl := slug.Make(name)
		n, err := col.CountDocuments(ctx, bson.M{"slug": sl})
		if err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		_, err = col.InsertOne(ctx, models.Category{
			Name:      name,
			Slug:      sl,
			Status:    1,
			CreatedAt: time.Now(),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// SeedBrands inserts the starter brands with the same skip-if-present rule.
func SeedBrands(ctx context.Context, db *mongo.Database) error {
	col := db.Collection("brands")
	for _, name := range seedBrands {
		sl := slug.Make(name)
		n, err := col.CountDocuments(ctx, bson.M{"slug": sl})
		if err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		_, err = col.InsertOne(ctx, models.Brand{
			Name:      name,
			Slug:      sl,
			Status:    1,
			CreatedAt: time.Now(),
		})
		if err != nil {
			return err
		}
	}
	return nil
}
