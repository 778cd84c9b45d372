package services

import (
	"context"

	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/pkg/upload"
)

// CategoryInput is the field payload for category writes.
type CategoryInput struct {
	Name        string
	Description string
	Status      int
}

type CategoryService struct {
	repo      repositories.CategoryRepository
	namespace string
}

func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo, namespace: config.AssetNamespace()}
}

func (s *CategoryService) All(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.All(ctx)
	if err != nil {
		return nil, Internal(err)
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, Validation("invalid category id")
	}
	c, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, Internal(err)
	}
	if c == nil {
		return nil, NotFound("category not found")
	}
	return c, nil
}

// Create derives the slug from the name and rejects duplicates.
func (s *CategoryService) Create(ctx context.Context, in CategoryInput, files upload.Files) (*models.Category, error) {
	if in.Name == "" {
		return nil, Validation("name is required")
	}
	sl := slug.Make(in.Name)
	existing, err := s.repo.FindBySlug(ctx, sl)
	if err != nil {
		return nil, Internal(err)
	}
	if existing != nil {
		return nil, Validation("category already exists")
	}

	category := &models.Category{
		Name:        in.Name,
		Slug:        sl,
		Description: in.Description,
		Status:      in.Status,
	}
	if files.HasThumbnail() {
		image := files.Thumbnail
		category.Image = &image
	}
	if err := s.repo.Insert(ctx, category); err != nil {
		return nil, Internal(err)
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, in CategoryInput, files upload.Files) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Validation("invalid category id")
	}
	if in.Name == "" {
		return Validation("name is required")
	}

	fields := bson.M{
		"name":        in.Name,
		"slug":        slug.Make(in.Name),
		"description": in.Description,
		"status":      in.Status,
	}
	if files.HasThumbnail() {
		fields["image"] = files.Thumbnail
	}
	matched, err := s.repo.UpdateFields(ctx, oid, fields)
	if err != nil {
		return Internal(err)
	}
	if matched == 0 {
		return UpdateFailed("Updation failed")
	}
	return nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Validation("invalid category id")
	}
	deleted, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return Internal(err)
	}
	if deleted == 0 {
		return NotFound("category not found")
	}
	return nil
}
