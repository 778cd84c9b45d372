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

// BrandInput is the field payload for brand writes.
type BrandInput struct {
	Name        string
	Description string
	Status      int
}

type BrandService struct {
	repo      repositories.BrandRepository
	namespace string
}

func NewBrandService(repo repositories.BrandRepository) *BrandService {
	return &BrandService{repo: repo, namespace: config.AssetNamespace()}
}

func (s *BrandService) All(ctx context.Context) ([]models.Brand, error) {
	brands, err := s.repo.All(ctx)
	if err != nil {
		return nil, Internal(err)
	}
	return brands, nil
}

func (s *BrandService) Get(ctx context.Context, id string) (*models.Brand, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, Validation("invalid brand id")
	}
	b, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, Internal(err)
	}
	if b == nil {
		return nil, NotFound("brand not found")
	}
	return b, nil
}

func (s *BrandService) Create(ctx context.Context, in BrandInput, files upload.Files) (*models.Brand, error) {
	if in.Name == "" {
		return nil, Validation("name is required")
	}
	sl := slug.Make(in.Name)
	existing, err := s.repo.FindBySlug(ctx, sl)
	if err != nil {
		return nil, Internal(err)
	}
	if existing != nil {
		return nil, Validation("brand already exists")
	}

	brand := &models.Brand{
		Name:        in.Name,
		Slug:        sl,
		Description: in.Description,
		Status:      in.Status,
	}
	if files.HasThumbnail() {
		image := files.Thumbnail
		brand.Image = &image
	}
	if err := s.repo.Insert(ctx, brand); err != nil {
		return nil, Internal(err)
	}
	return brand, nil
}

func (s *BrandService) Update(ctx context.Context, id string, in BrandInput, files upload.Files) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Validation("invalid brand id")
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

func (s *BrandService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Validation("invalid brand id")
	}
	deleted, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return Internal(err)
	}
	if deleted == 0 {
		return NotFound("brand not found")
	}
	return nil
}
