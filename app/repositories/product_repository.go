package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/database"
	"github.com/shashiranjanraj/vastra/pkg/metrics"
)

// ProductRepository is the persistence boundary for product documents.
// List and FindByID resolve category/brand references for display;
// FindRaw returns the stored document untouched, which the update flow
// needs to decide which gallery files to drop.
type ProductRepository interface {
	List(ctx context.Context, q ListQuery) ([]models.ProductView, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.ProductView, error)
	FindRaw(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Insert(ctx context.Context, p *models.Product) error
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error)
	PushImages(ctx context.Context, id primitive.ObjectID, names []string) error
	PullImages(ctx context.Context, id primitive.ObjectID, names []string) error
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	Highlights(ctx context.Context) ([]models.ProductView, error)
	AssetNames(ctx context.Context) (map[string]struct{}, error)
}

type MongoProductRepository struct{}

func NewProductRepository() *MongoProductRepository {
	return &MongoProductRepository{}
}

// col resolves the collection at call time so the repository can be
// constructed before the database connection is up.
func (r *MongoProductRepository) col() *mongo.Collection {
	return database.Collection("products")
}

func lookupStage(from, local, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from":         from,
		"localField":   local,
		"foreignField": "_id",
		"as":           as,
	}}}
}

// unwindKeep flattens a single-element lookup result while keeping
// documents whose reference did not resolve.
func unwindKeep(path string) bson.D {
	return bson.D{{Key: "$unwind", Value: bson.M{
		"path":                       path,
		"preserveNullAndEmptyArrays": true,
	}}}
}

// List returns a page of products matching the query, ordered ascending
// by identifier, with category and brand resolved. Skip and limit are
// passed through unvalidated; a negative skip from bad input surfaces as
// a driver error.
func (r *MongoProductRepository) List(ctx context.Context, q ListQuery) ([]models.ProductView, error) {
	start := time.Now()
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: q.Filter()}},
		bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}},
		bson.D{{Key: "$skip", Value: q.Skip()}},
		bson.D{{Key: "$limit", Value: int64(q.Limit)}},
		lookupStage("categories", "category", "categoryData"),
		unwindKeep("$categoryData"),
		lookupStage("brands", "brand", "brandData"),
		unwindKeep("$brandData"),
	}
	cur, err := r.col().Aggregate(ctx, pipeline)
	metrics.ObserveQuery("products", "list", start)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	products := []models.ProductView{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID returns the joined product, or nil when the id does not exist.
func (r *MongoProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ProductView, error) {
	start := time.Now()
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": id}}},
		lookupStage("categories", "category", "categoryData"),
		unwindKeep("$categoryData"),
		lookupStage("brands", "brand", "brandData"),
		unwindKeep("$brandData"),
	}
	cur, err := r.col().Aggregate(ctx, pipeline)
	metrics.ObserveQuery("products", "find", start)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var views []models.ProductView
	if err := cur.All(ctx, &views); err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, nil
	}
	return &views[0], nil
}

// FindRaw fetches the stored document without joins. Returns nil when absent.
func (r *MongoProductRepository) FindRaw(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	start := time.Now()
	var p models.Product
	err := r.col().FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	metrics.ObserveQuery("products", "find", start)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MongoProductRepository) Insert(ctx context.Context, p *models.Product) error {
	start := time.Now()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	_, err := r.col().InsertOne(ctx, p)
	metrics.ObserveQuery("products", "insert", start)
	return err
}

// UpdateFields applies a $set of the given fields and reports how many
// documents matched.
func (r *MongoProductRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	start := time.Now()
	res, err := r.col().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	metrics.ObserveQuery("products", "update", start)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// PushImages appends names to the gallery array in order.
func (r *MongoProductRepository) PushImages(ctx context.Context, id primitive.ObjectID, names []string) error {
	start := time.Now()
	_, err := r.col().UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"images": bson.M{"$each": names}},
	})
	metrics.ObserveQuery("products", "update", start)
	return err
}

// PullImages removes every gallery entry whose value is in names.
func (r *MongoProductRepository) PullImages(ctx context.Context, id primitive.ObjectID, names []string) error {
	start := time.Now()
	_, err := r.col().UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$pull": bson.M{"images": bson.M{"$in": names}},
	})
	metrics.ObserveQuery("products", "update", start)
	return err
}

// Delete removes the document only. Asset files are left in place.
func (r *MongoProductRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	start := time.Now()
	res, err := r.col().DeleteOne(ctx, bson.M{"_id": id})
	metrics.ObserveQuery("products", "delete", start)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Highlights builds the fixed 2+2 curated view: the two newest products
// with a resolvable category, then of those the ones with a resolvable
// brand. Unwind without preserve gives inner-join semantics, so entries
// with dangling references drop out. The limits are policy, not input.
func (r *MongoProductRepository) Highlights(ctx context.Context) ([]models.ProductView, error) {
	start := time.Now()
	pipeline := mongo.Pipeline{
		lookupStage("categories", "category", "categoryData"),
		bson.D{{Key: "$unwind", Value: "$categoryData"}},
		bson.D{{Key: "$sort", Value: bson.M{"_id": -1}}},
		bson.D{{Key: "$limit", Value: 2}},

		lookupStage("brands", "brand", "brandData"),
		bson.D{{Key: "$unwind", Value: "$brandData"}},
		bson.D{{Key: "$sort", Value: bson.M{"_id": -1}}},
		bson.D{{Key: "$limit", Value: 2}},
	}
	cur, err := r.col().Aggregate(ctx, pipeline)
	metrics.ObserveQuery("products", "aggregate", start)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	views := []models.ProductView{}
	if err := cur.All(ctx, &views); err != nil {
		return nil, err
	}
	return views, nil
}

// AssetNames returns every filename any product currently references,
// thumbnails and gallery entries alike. The orphan sweep diffs this set
// against the files actually on disk.
func (r *MongoProductRepository) AssetNames(ctx context.Context) (map[string]struct{}, error) {
	start := time.Now()
	opts := options.Find().SetProjection(bson.M{"thumbnail": 1, "images": 1})
	cur, err := r.col().Find(ctx, bson.M{}, opts)
	metrics.ObserveQuery("products", "list", start)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	names := map[string]struct{}{}
	for cur.Next(ctx) {
		var doc struct {
			Thumbnail *string  `bson:"thumbnail"`
			Images    []string `bson:"images"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		if doc.Thumbnail != nil && *doc.Thumbnail != "" {
			names[*doc.Thumbnail] = struct{}{}
		}
		for _, img := range doc.Images {
			names[img] = struct{}{}
		}
	}
	return names, cur.Err()
}

var _ ProductRepository = (*MongoProductRepository)(nil)
