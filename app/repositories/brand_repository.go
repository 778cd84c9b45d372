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

type BrandRepository interface {
	All(ctx context.Context) ([]models.Brand, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Brand, error)
	FindBySlug(ctx context.Context, slug string) (*models.Brand, error)
	Insert(ctx context.Context, b *models.Brand) error
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type MongoBrandRepository struct{}

func NewBrandRepository() *MongoBrandRepository {
	return &MongoBrandRepository{}
}

func (r *MongoBrandRepository) col() *mongo.Collection {
	return database.Collection("brands")
}

func (r *MongoBrandRepository) All(ctx context.Context) ([]models.Brand, error) {
	start := time.Now()
	cur, err := r.col().Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}))
	metrics.ObserveQuery("brands", "list", start)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	brands := []models.Brand{}
	if err := cur.All(ctx, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *MongoBrandRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Brand, error) {
	start := time.Now()
	var b models.Brand
	err := r.col().FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	metrics.ObserveQuery("brands", "find", start)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *MongoBrandRepository) FindBySlug(ctx context.Context, slug string) (*models.Brand, error) {
	start := time.Now()
	var b models.Brand
	err := r.col().FindOne(ctx, bson.M{"slug": slug}).Decode(&b)
	metrics.ObserveQuery("brands", "find", start)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *MongoBrandRepository) Insert(ctx context.Context, b *models.Brand) error {
	start := time.Now()
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	_, err := r.col().InsertOne(ctx, b)
	metrics.ObserveQuery("brands", "insert", start)
	return err
}

func (r *MongoBrandRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	start := time.Now()
	res, err := r.col().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	metrics.ObserveQuery("brands", "update", start)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *MongoBrandRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	start := time.Now()
	res, err := r.col().DeleteOne(ctx, bson.M{"_id": id})
	metrics.ObserveQuery("brands", "delete", start)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

var _ BrandRepository = (*MongoBrandRepository)(nil)
