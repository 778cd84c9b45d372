package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/pkg/cache"
	"github.com/shashiranjanraj/vastra/pkg/collection"
	"github.com/shashiranjanraj/vastra/pkg/event"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/metrics"
	"github.com/shashiranjanraj/vastra/pkg/storage"
	"github.com/shashiranjanraj/vastra/pkg/upload"
)

const (
	highlightsCacheKey = "catalog:highlights"
	productCachePrefix = "catalog:product:"
	cacheTTL           = 5 * time.Minute
)

// ProductInput carries the field payload of a create or update request.
// Update writes every field it carries, zero values included; an absent
// form field therefore clears the stored value. That mirrors how the
// catalog has always behaved and downstream clients depend on sending
// the full field set.
type ProductInput struct {
	Title            string
	Category         *primitive.ObjectID
	Brand            *primitive.ObjectID
	Price            float64
	Quantity         int
	ShortDescription string
	Description      string
}

// ProductService owns the product lifecycle: it keeps the document's
// thumbnail/images fields and the files behind them in step across
// create, update and delete. File operations are best effort — an
// individual delete failure is logged and absorbed, never surfaced.
type ProductService struct {
	repo      repositories.ProductRepository
	namespace string
}

func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{repo: repo, namespace: config.AssetNamespace()}
}

// Filepath returns the base URL under which product assets are served.
// Clients join it with a stored filename to build a full asset URL.
func (s *ProductService) Filepath() string {
	return storage.URL(s.namespace) + "/"
}

func (s *ProductService) List(ctx context.Context, q repositories.ListQuery) ([]models.ProductView, error) {
	products, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, Internal(err)
	}
	return products, nil
}

// Highlights serves the curated 2+2 view, cached briefly since it is
// the storefront's hottest read.
func (s *ProductService) Highlights(ctx context.Context) ([]models.ProductView, error) {
	var cached []models.ProductView
	if cache.Get(highlightsCacheKey, &cached) {
		metrics.RecordCacheHit("highlights")
		return cached, nil
	}
	metrics.RecordCacheMiss("highlights")

	views, err := s.repo.Highlights(ctx)
	if err != nil {
		return nil, Internal(err)
	}
	if err := cache.Set(highlightsCacheKey, views, cacheTTL); err != nil {
		logger.WithCtx(ctx).Warn("highlights cache write failed", "error", err)
	}
	return views, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.ProductView, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, Validation("invalid product id")
	}

	var cached models.ProductView
	if cache.Get(productCachePrefix+id, &cached) {
		metrics.RecordCacheHit("product")
		return &cached, nil
	}
	metrics.RecordCacheMiss("product")

	view, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, Internal(err)
	}
	if view == nil {
		return nil, NotFound("product not found")
	}
	if err := cache.Set(productCachePrefix+id, view, cacheTTL); err != nil {
		logger.WithCtx(ctx).Warn("product cache write failed", "error", err)
	}
	return view, nil
}

// Create inserts a new product referencing the already-staged upload
// files. Gallery order is preserved as uploaded.
func (s *ProductService) Create(ctx context.Context, in ProductInput, files upload.Files) (*models.Product, error) {
	if in.Title == "" {
		return nil, Validation("title is required")
	}

	product := &models.Product{
		Title:            in.Title,
		Category:         in.Category,
		Brand:            in.Brand,
		Price:            in.Price,
		Quantity:         in.Quantity,
		ShortDescription: in.ShortDescription,
		Description:      in.Description,
		Images:           []string{},
	}
	if files.HasThumbnail() {
		thumb := files.Thumbnail
		product.Thumbnail = &thumb
	}
	if len(files.Images) > 0 {
		product.Images = files.Images
	}

	if err := s.repo.Insert(ctx, product); err != nil {
		return nil, Internal(err)
	}

	event.Fire("product.created", product.ID.Hex())
	return product, nil
}

// Update reconciles a product against an incoming field payload and
// freshly staged files. Every gallery entry present before the update
// is treated as pending removal: its file is deleted and the entry
// pulled from the array, so the stored gallery after an update is
// exactly the set of newly uploaded images. Clients re-upload anything
// they want to keep.
//
// The field set, the push and the pull are separate writes on the same
// document with no lock between them; concurrent updates can interleave.
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput, files upload.Files) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Validation("invalid product id")
	}

	prior, err := s.repo.FindRaw(ctx, oid)
	if err != nil {
		return Internal(err)
	}
	if prior == nil {
		return NotFound("product not found")
	}

	imagesToRemove := s.imagesToRemove(prior)
	for _, name := range imagesToRemove {
		s.deleteAsset(ctx, name)
	}

	thumbnail := prior.Thumbnail
	if files.HasThumbnail() {
		if prior.Thumbnail != nil {
			s.deleteAsset(ctx, *prior.Thumbnail)
		}
		thumb := files.Thumbnail
		thumbnail = &thumb
	}

	matched, err := s.repo.UpdateFields(ctx, oid, bson.M{
		"title":             in.Title,
		"category":          in.Category,
		"brand":             in.Brand,
		"price":             in.Price,
		"quantity":          in.Quantity,
		"stock":             in.Quantity,
		"short_description": in.ShortDescription,
		"description":       in.Description,
		"thumbnail":         thumbnail,
	})
	if err != nil {
		return Internal(err)
	}

	if len(files.Images) > 0 {
		if err := s.repo.PushImages(ctx, oid, files.Images); err != nil {
			return Internal(err)
		}
	}
	if len(imagesToRemove) > 0 {
		if err := s.repo.PullImages(ctx, oid, imagesToRemove); err != nil {
			return Internal(err)
		}
	}

	if matched == 0 {
		return UpdateFailed("Updation failed")
	}

	event.Fire("product.updated", id)
	return nil
}

// Delete removes the document only; its asset files stay on disk and
// are picked up by the orphan sweep.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Validation("invalid product id")
	}
	deleted, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return Internal(err)
	}
	if deleted == 0 {
		return NotFound("product not found")
	}
	event.Fire("product.deleted", id)
	return nil
}

// imagesToRemove snapshots the prior gallery as the removal set. The
// whole list goes, unconditionally. Deduped so a name stored twice is
// deleted and pulled once.
func (s *ProductService) imagesToRemove(prior *models.Product) []string {
	if len(prior.Images) == 0 {
		return nil
	}
	return collection.Unique(prior.Images)
}

// deleteAsset is best effort: failures are logged and counted, never
// propagated, so a vanished file cannot block the document update.
func (s *ProductService) deleteAsset(ctx context.Context, name string) {
	path := s.namespace + "/" + name
	if storage.Missing(path) {
		return
	}
	err := storage.Delete(path)
	metrics.RecordAssetOp("delete", err)
	if err != nil {
		logger.WithCtx(ctx).Warn("asset delete failed", "file", path, "error", err)
	}
}
