package storage

import (
	"fmt"
	"io"
	"sync"

	"github.com/shashiranjanraj/vastra/config"
)

// ─── Manager ──────────────────────────────────────────────────────────────────

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the storage manager.
// Call once at application startup (internal/server).
func Connect() {
	managerMu.Lock()
	defaultDisk = config.StorageDefault()

	// Always boot local disk.
	disks["local"] = newLocalDisk()

	// Boot S3 disk only if bucket is configured.
	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			fmt.Printf("storage/s3: %v (disk disabled)\n", err)
		} else {
			disks["s3"] = d
		}
	}
	managerMu.Unlock()
}

// Use returns the named disk ("local" or "s3").
func Use(name string) Disk {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk plugs in a Disk implementation under name and makes it the
// default. Tests use this to point the default disk at a temp directory.
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	defaultDisk = name
	managerMu.Unlock()
}

// ─── Default disk helpers ─────────────────────────────────────────────────────
// These proxy to the default disk (STORAGE_DISK env var, default "local").

func defaultD() Disk {
	managerMu.RLock()
	name := defaultDisk
	managerMu.RUnlock()
	return Use(name)
}

// Put writes content to path on the default disk.
func Put(path string, content []byte) error { return defaultD().Put(path, content) }

// PutStream writes from r to path on the default disk.
func PutStream(path string, r io.Reader) error { return defaultD().PutStream(path, r) }

// Get returns file content from the default disk.
func Get(path string) ([]byte, error) { return defaultD().Get(path) }

// GetStream returns a ReadCloser from the default disk.
func GetStream(path string) (io.ReadCloser, error) { return defaultD().GetStream(path) }

// Exists reports whether path exists on the default disk.
func Exists(path string) bool { return defaultD().Exists(path) }

// Missing reports whether path is absent on the default disk.
func Missing(path string) bool { return defaultD().Missing(path) }

// Delete removes path from the default disk.
func Delete(path string) error { return defaultD().Delete(path) }

// URL returns the public URL for path on the default disk.
func URL(path string) string { return defaultD().URL(path) }

// Files lists files in directory (non-recursive) on the default disk.
func Files(directory string) ([]string, error) { return defaultD().Files(directory) }

// MakeDirectory creates directory on the default disk.
func MakeDirectory(path string) error { return defaultD().MakeDirectory(path) }

// DeleteDirectory removes directory and its contents on the default disk.
func DeleteDirectory(path string) error { return defaultD().DeleteDirectory(path) }
