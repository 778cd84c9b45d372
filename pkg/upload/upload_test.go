package upload_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vastra/pkg/storage"
	"github.com/shashiranjanraj/vastra/pkg/upload"
)

func TestGenerateFilename(t *testing.T) {
	name := upload.GenerateFilename("saree.jpg")
	assert.Regexp(t, regexp.MustCompile(`^saree-\d{13}\.jpg$`), name)
}

func TestGenerateFilename_NoExtension(t *testing.T) {
	name := upload.GenerateFilename("raw")
	assert.Regexp(t, regexp.MustCompile(`^raw-\d{13}$`), name)
}

func TestGenerateFilename_StripsPathComponents(t *testing.T) {
	name := upload.GenerateFilename("../../evil.png")
	assert.Regexp(t, regexp.MustCompile(`^evil-\d{13}\.png$`), name)
	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, "..")
}

func buildMultipart(t *testing.T, thumbnail string, images ...string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if thumbnail != "" {
		part, err := w.CreateFormFile("thumbnail", thumbnail)
		require.NoError(t, err)
		_, err = part.Write([]byte("thumb-bytes"))
		require.NoError(t, err)
	}
	for _, name := range images {
		part, err := w.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func setupDisk(t *testing.T) {
	t.Helper()
	storage.RegisterDisk("test", storage.NewLocalDisk(t.TempDir(), "http://localhost:8080/uploads"))
}

func TestSaveProductFiles_StagesThumbnailAndGallery(t *testing.T) {
	setupDisk(t)

	body, contentType := buildMultipart(t, "cover.jpg", "one.jpg", "two.jpg")
	r := httptest.NewRequest("POST", "/api/add-product", body)
	r.Header.Set("Content-Type", contentType)

	files, err := upload.SaveProductFiles(r, "products")
	require.NoError(t, err)

	assert.True(t, files.HasThumbnail())
	assert.True(t, strings.HasPrefix(files.Thumbnail, "cover-"))
	require.Len(t, files.Images, 2)
	assert.True(t, strings.HasPrefix(files.Images[0], "one-"))
	assert.True(t, strings.HasPrefix(files.Images[1], "two-"))

	// Every returned name refers to a file that is actually on disk.
	assert.True(t, storage.Exists("products/"+files.Thumbnail))
	for _, name := range files.Images {
		assert.True(t, storage.Exists("products/"+name))
	}
}

func TestSaveProductFiles_CapsGallerySize(t *testing.T) {
	setupDisk(t)

	names := make([]string, 0, upload.MaxImages+3)
	for i := 0; i < upload.MaxImages+3; i++ {
		names = append(names, fmt.Sprintf("img-%02d.jpg", i))
	}
	body, contentType := buildMultipart(t, "", names...)
	r := httptest.NewRequest("POST", "/api/add-product", body)
	r.Header.Set("Content-Type", contentType)

	files, err := upload.SaveProductFiles(r, "products")
	require.NoError(t, err)
	assert.Len(t, files.Images, upload.MaxImages)
	assert.False(t, files.HasThumbnail())
}

func TestSaveProductFiles_PlainFormPostHasNoFiles(t *testing.T) {
	setupDisk(t)

	r := httptest.NewRequest("POST", "/api/add-product", strings.NewReader("title=Saree"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	files, err := upload.SaveProductFiles(r, "products")
	require.NoError(t, err)
	assert.False(t, files.HasThumbnail())
	assert.Empty(t, files.Images)
}
