package storage_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vastra/pkg/storage"
)

func tempDisk(t *testing.T) storage.Disk {
	t.Helper()
	return storage.NewLocalDisk(t.TempDir(), "http://localhost:8080/uploads/")
}

func TestLocalDisk_PutGetRoundTrip(t *testing.T) {
	d := tempDisk(t)

	require.NoError(t, d.Put("products/a.jpg", []byte("payload")))
	assert.True(t, d.Exists("products/a.jpg"))
	assert.False(t, d.Missing("products/a.jpg"))

	got, err := d.Get("products/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)
}

func TestLocalDisk_PutStream(t *testing.T) {
	d := tempDisk(t)

	require.NoError(t, d.PutStream("products/b.jpg", bytes.NewReader([]byte("streamed"))))

	rc, err := d.GetStream("products/b.jpg")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "streamed", string(got))
}

func TestLocalDisk_DeleteIsIdempotent(t *testing.T) {
	d := tempDisk(t)

	require.NoError(t, d.Put("products/c.jpg", []byte("x")))
	require.NoError(t, d.Delete("products/c.jpg"))
	assert.True(t, d.Missing("products/c.jpg"))

	// Deleting an absent file is not an error.
	require.NoError(t, d.Delete("products/c.jpg"))
	require.NoError(t, d.Delete("products/never-existed.jpg"))
}

func TestLocalDisk_URLJoinsBase(t *testing.T) {
	d := tempDisk(t)

	// The trailing slash on the base and a leading slash on the path are
	// both normalized away.
	assert.Equal(t, "http://localhost:8080/uploads/products/a.jpg", d.URL("products/a.jpg"))
	assert.Equal(t, "http://localhost:8080/uploads/products/a.jpg", d.URL("/products/a.jpg"))
}

func TestLocalDisk_FilesListsDirectoryEntries(t *testing.T) {
	d := tempDisk(t)

	require.NoError(t, d.Put("products/a.jpg", []byte("1")))
	require.NoError(t, d.Put("products/b.jpg", []byte("2")))
	require.NoError(t, d.MakeDirectory("products/nested"))

	files, err := d.Files("products")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"products/a.jpg", "products/b.jpg"}, files)
}

func TestLocalDisk_MakeDirectoryIdempotent(t *testing.T) {
	d := tempDisk(t)

	require.NoError(t, d.MakeDirectory("products"))
	require.NoError(t, d.MakeDirectory("products"))
}

func TestLocalDisk_DeleteDirectory(t *testing.T) {
	d := tempDisk(t)

	require.NoError(t, d.Put("products/a.jpg", []byte("1")))
	require.NoError(t, d.DeleteDirectory("products"))
	assert.True(t, d.Missing("products/a.jpg"))
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"saree.jpg":            "saree.jpg",
		"../../etc/passwd":     "passwd",
		`..\..\windows\sys.dll`: "sys.dll",
		".hidden":              "hidden",
		"dir/inner/name.png":   "name.png",
	}
	for in, want := range cases {
		assert.Equal(t, want, storage.SanitizeFilename(in), "input %q", in)
	}
}
