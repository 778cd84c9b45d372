// Package storage is the filesystem layer behind Vastra's product assets.
//
// Two drivers are available:
//   - "local"  — local filesystem (default); files are served back under
//     the configured STORAGE_URL base path
//   - "s3"     — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Boot once (internal/server), then:
//
//	storage.Put("products/saree-1712000000000.jpg", data)
//	storage.Exists("products/saree-1712000000000.jpg")
//	storage.Delete("products/saree-1712000000000.jpg") // no-op when absent
package storage

import (
	"io"
	"strings"
)

// Disk is the driver interface. Every driver must implement this.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// GetStream returns a ReadCloser for the file. Caller must close it.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Missing is the inverse of Exists.
	Missing(path string) bool

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(path string) error

	// URL returns the public URL for path.
	URL(path string) string

	// Files lists non-recursive filenames directly inside directory.
	Files(directory string) ([]string, error)

	// MakeDirectory creates directory (and any parents). Idempotent.
	MakeDirectory(path string) error

	// DeleteDirectory removes directory and all its contents.
	DeleteDirectory(path string) error
}

// SanitizeFilename strips any path components from an uploaded filename so
// a crafted name like "../../etc/passwd" cannot escape the asset namespace.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimLeft(name, ".")
	return name
}
