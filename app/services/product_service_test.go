package services_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/cache"
	"github.com/shashiranjanraj/vastra/pkg/event"
	"github.com/shashiranjanraj/vastra/pkg/storage"
	"github.com/shashiranjanraj/vastra/pkg/upload"
)

// ─── Mock repository ──────────────────────────────────────────────────────────

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) List(ctx context.Context, q repositories.ListQuery) ([]models.ProductView, error) {
	args := m.Called(ctx, q)
	views, _ := args.Get(0).([]models.ProductView)
	return views, args.Error(1)
}

func (m *mockProductRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ProductView, error) {
	args := m.Called(ctx, id)
	view, _ := args.Get(0).(*models.ProductView)
	return view, args.Error(1)
}

func (m *mockProductRepo) FindRaw(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Product)
	return p, args.Error(1)
}

func (m *mockProductRepo) Insert(ctx context.Context, p *models.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProductRepo) PushImages(ctx context.Context, id primitive.ObjectID, names []string) error {
	args := m.Called(ctx, id, names)
	return args.Error(0)
}

func (m *mockProductRepo) PullImages(ctx context.Context, id primitive.ObjectID, names []string) error {
	args := m.Called(ctx, id, names)
	return args.Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProductRepo) Highlights(ctx context.Context) ([]models.ProductView, error) {
	args := m.Called(ctx)
	views, _ := args.Get(0).([]models.ProductView)
	return views, args.Error(1)
}

func (m *mockProductRepo) AssetNames(ctx context.Context) (map[string]struct{}, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).(map[string]struct{})
	return names, args.Error(1)
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

func setupDisk(t *testing.T) {
	t.Helper()
	storage.RegisterDisk("test", storage.NewLocalDisk(t.TempDir(), "http://localhost:8080/uploads"))
}

func stage(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, storage.Put("products/"+name, []byte("img")))
	}
}

func str(s string) *string { return &s }

// ─── Create ───────────────────────────────────────────────────────────────────

func TestCreate_RequiresTitle(t *testing.T) {
	setupDisk(t)
	svc := services.NewProductService(&mockProductRepo{})

	_, err := svc.Create(context.Background(), services.ProductInput{}, upload.Files{})
	require.Error(t, err)
	assert.Equal(t, services.KindValidation, services.KindOf(err))
}

func TestCreate_MapsFieldsAndStagedFiles(t *testing.T) {
	setupDisk(t)
	repo := &mockProductRepo{}
	svc := services.NewProductService(repo)

	category := primitive.NewObjectID()
	repo.On("Insert", mock.Anything, mock.Anything).Return(nil)

	product, err := svc.Create(context.Background(), services.ProductInput{
		Title:            "Blue Widget",
		Category:         &category,
		Price:            499.0,
		Quantity:         12,
		ShortDescription: "short",
		Description:      "long",
	}, upload.Files{
		Thumbnail: "thumb-1.jpg",
		Images:    []string{"a-1.jpg", "b-2.jpg"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Blue Widget", product.Title)
	assert.Equal(t, &category, product.Category)
	require.NotNil(t, product.Thumbnail)
	assert.Equal(t, "thumb-1.jpg", *product.Thumbnail)
	// Gallery order follows upload order.
	assert.Equal(t, []string{"a-1.jpg", "b-2.jpg"}, product.Images)
	assert.Equal(t, 12, product.Quantity)
	repo.AssertExpectations(t)
}

func TestCreate_WithoutFiles_EmptyGalleryNotNil(t *testing.T) {
	setupDisk(t)
	repo := &mockProductRepo{}
	svc := services.NewProductService(repo)

	repo.On("Insert", mock.Anything, mock.Anything).Return(nil)

	product, err := svc.Create(context.Background(), services.ProductInput{Title: "Bare"}, upload.Files{})
	require.NoError(t, err)
	assert.Nil(t, product.Thumbnail)
	assert.NotNil(t, product.Images)
	assert.Empty(t, product.Images)
}

// ─── Update ───────────────────────────────────────────────────────────────────

/// Every update clears the entire prior gallery: files deleted, entries
// pulled. This is long-standing behaviour clients rely on.
func TestUpdate_ClearsEntirePriorGallery(t *testing.T) {
	setupDisk(t)
	stage(t, "old-1.jpg", "old-2.jpg")

	repo := &mockProductRepo{}
	svc := services.NewProductService(repo)
	id := primitive.NewObjectID()

	prior := &models.Product{
		ID:        id,
		Title:     "Saree",
		Thumbnail: str("keep.jpg"),
		Images:    []string{"old-1.jpg", "old-2.jpg"},
	}
	repo.On("FindRaw", mock.Anything, id).Return(prior, nil)

	var setFields bson.M
	repo.On("UpdateFields", mock.Anything, id, mock.Anything).
		Run(func(args mock.Arguments) { setFields = args.Get(2).(bson.M) }).
		Return(int64(1), nil)
	repo.On("PullImages", mock.Anything, id, []string{"old-1.jpg", "old-2.jpg"}).Return(nil)

	err := svc.Update(context.Background(), id.Hex(), services.ProductInput{
		Title:    "Saree",
		Quantity: 7,
	}, upload.Files{})
	require.NoError(t, err)

	// Files are gone from the namespace.
	assert.True(t, storage.Missing("products/old-1.jpg"))
	assert.True(t, storage.Missing("products/old-2.jpg"))

	// No new images were uploaded, so nothing is pushed.
	repo.AssertNotCalled(t, "PushImages", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)

	// The thumbnail is retained and quantity mirrors into stock.
	assert.Equal(t, str("keep.jpg"), setFields["thumbnail"])
	assert.Equal(t, 7, setFields["quantity"])
	assert.Equal(t, 7, setFields["stock"])
}

func TestUpdate_NewThumbnailReplacesAndDeletesPrior(t *testing.T) {
	setupDisk(t)
	stage(t, "old-thumb.jpg")

	repo := &mockProductRepo{}
	svc := services.NewProductService(repo)
	id := primitive.NewObjectID()

	prior := &models.Product{ID: id, Thumbnail: str("old-thumb.jpg")}
	repo.On("FindRaw", mock.Anything, id).Return(prior, nil)

	var setFields bson.M
	repo.On("UpdateFields", mock.Anything, id, mock.Anything).
		Run(func(args mock.Arguments) { setFields = args.Get(2).(bson.M) }).
		Return(int64(1), nil)
	repo.On("PushImages", mock.Anything, id, []string{"new-1.jpg"}).Return(nil)

	err := svc.Update(context.Background(), id.Hex(), services.ProductInput{Title: "X"}, upload.Files{
		Thumbnail: "new-thumb.jpg",
		Images:    []string{"new-1.jpg"},
	})
	require.NoError(t, err)

	assert.True(t, storage.Missing("products/old-thumb.jpg"))
	assert.Equal(t, str("new-thumb.jpg"), setFields["thumbnail"])
	repo.AssertExpectations(t)
}

// A prior gallery entry whose file already vanished must not block the update.
func TestUpdate_MissingAssetFilesAreAbsorbed(t *testing.T) {
	setupDisk(t)

	repo := &mockProductRepo{}
	svc := services.NewProductService(repo)
	id := primitive.NewObjectID()

	prior := &models.Product{ID: id, Images: []string{"vanished.jpg"}}
	repo.On("FindRaw", mock.Anything, id).Return(prior, nil)
	repo.On("UpdateFields", mock.Anything, id, mock.Anything).Return(int64(1), nil)
	repo.On("PullImages", mock.Anything, id, []string{"vanished.jpg"}).Return(nil)

	err := svc.Update(context.Background(), id.Hex(), services.ProductInput{}, upload.Files{})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdate_ZeroMatchedIsUpdateFailed(t *testing.T) {
	setupDisk(t)

	repo := &mockProductRepo{}
	svc := services.NewProductService(repo)
	id := primitive.NewObjectID()

	prior := &models.Product{ID: id, Images: []string{"a.jpg"}}
	repo.On("FindRaw", mock.Anything, id).Return(prior, nil)
	repo.On("UpdateFields", mock.Anything, id, mock.Anything).Return(int64(0), nil)
	repo.On("PullImages", mock.Anything, id, []string{"a.jpg"}).Return(nil)

	err := svc.Update(context.Background(), id.Hex(), services.ProductInput{}, upload.Files{})
	require.Error(t, err)
	assert.Equal(t, services.KindUpdateFailed, services.KindOf(err))
	assert.Equal(t, "Updation failed", err.Error())

	// The pull still ran before the matched-count check.
	repo.AssertCalled(t, "PullImages", mock.Anything, id, []string{"a.jpg"})
}

func TestUpdate_NotFound(t *testing.T) {
	setupDisk(t)

	repo := &mockProductRepo{}
	svc := services.NewProductService(repo)
	id := primitive.NewObjectID()

	repo.On("FindRaw", mock.Anything, id).Return(nil, nil)

	err := svc.Update(context.Background(), id.Hex(), services.ProductInput{}, upload.Files{})
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
}

func TestUpdate_InvalidID(t *testing.T) {
	setupDisk(t)
	svc := services.NewProductService(&mockProductRepo{})

	err := svc.Update(context.Background(), "not-a-hex-id", services.ProductInput{}, upload.Files{})
	assert.Equal(t, services.KindValidation, services.KindOf(err))
}

// ─── Get / Delete ─────────────────────────────────────────────────────────────

func TestGet_InvalidID(t *testing.T) {
	setupDisk(t)
	svc := services.NewProductService(&mockProductRepo{})

	_, err := svc.Get(context.Background(), "zzz")
	assert.Equal(t, services.KindValidation, services.KindOf(err))
}

func TestGet_NotFound(t *testing.T) {
	setupDisk(t)
	repo := &mockProductRepo{}
	svc := services.NewProductService(repo)
	id := primitive.NewObjectID()

	repo.On("FindByID", mock.Anything, id).Return(nil, nil)

	_, err := svc.Get(context.Background(), id.Hex())
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
}

// Deleting a product leaves its asset files in place.
func TestDelete_LeavesAssetFiles(t *testing.T) {
	setupDisk(t)
	stage(t, "kept.jpg")

	repo := &mockProductRepo{}
	svc := services.NewProductService(repo)
	id := primitive.NewObjectID()

	repo.On("Delete", mock.Anything, id).Return(int64(1), nil)

	require.NoError(t, svc.Delete(context.Background(), id.Hex()))
	assert.True(t, storage.Exists("products/kept.jpg"))
}

func TestDelete_NotFound(t *testing.T) {
	setupDisk(t)
	repo := &mockProductRepo{}
	svc := services.NewProductService(repo)
	id := primitive.NewObjectID()

	repo.On("Delete", mock.Anything, id).Return(int64(0), nil)

	err := svc.Delete(context.Background(), id.Hex())
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
}

// ─── Highlights caching ───────────────────────────────────────────────────────

func TestHighlights_CachedAndInvalidatedOnWrite(t *testing.T) {
	setupDisk(t)

	mr := miniredis.RunT(t)
	cache.RDB = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.RDB = nil })

	event.Flush()
	t.Cleanup(event.Flush)
	services.RegisterCacheInvalidation()

	repo := &mockProductRepo{}
	svc := services.NewProductService(repo)

	views := []models.ProductView{{Product: models.Product{ID: primitive.NewObjectID(), Title: "Hot"}}}
	repo.On("Highlights", mock.Anything).Return(views, nil).Twice()

	// First call misses and fills the cache; second is served from it.
	got, err := svc.Highlights(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Hot", got[0].Title)

	_, err = svc.Highlights(context.Background())
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "Highlights", 1)

	// Any product write drops the cached view.
	event.Fire("product.created", "abc")
	_, err = svc.Highlights(context.Background())
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "Highlights", 2)
}
