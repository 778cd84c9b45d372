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

type CategoryRepository interface {
	All(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	Insert(ctx context.Context, c *models.Category) error
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type MongoCategoryRepository struct{}

func NewCategoryRepository() *MongoCategoryRepository {
	return &MongoCategoryRepository{}
}

func (r *MongoCategoryRepository) col() *mongo.Collection {
	return database.Collection("categories")
}

func (r *MongoCategoryRepository) All(ctx context.Context) ([]models.Category, error) {
	start := time.Now()
	cur, err := r.col().Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}))
	metrics.ObserveQuery("categories", "list", start)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	categories := []models.Category{}
	if err := cur.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *MongoCategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	start := time.Now()
	var c models.Category
	err := r.col().FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	metrics.ObserveQuery("categories", "find", start)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MongoCategoryRepository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	start := time.Now()
	var c models.Category
	err := r.col().FindOne(ctx, bson.M{"slug": slug}).Decode(&c)
	metrics.ObserveQuery("categories", "find", start)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MongoCategoryRepository) Insert(ctx context.Context, c *models.Category) error {
	start := time.Now()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	_, err := r.col().InsertOne(ctx, c)
	metrics.ObserveQuery("categories", "insert", start)
	return err
}

func (r *MongoCategoryRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	start := time.Now()
	res, err := r.col().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	metrics.ObserveQuery("categories", "update", start)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *MongoCategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	start := time.Now()
	res, err := r.col().DeleteOne(ctx, bson.M{"_id": id})
	metrics.ObserveQuery("categories", "delete", start)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

var _ CategoryRepository = (*MongoCategoryRepository)(nil)
