package storage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shashiranjanraj/vastra/config"
)

// localDisk is the local-filesystem driver.
type localDisk struct {
	root    string // absolute root directory
	baseURL string // public URL prefix for URL()
}

func newLocalDisk() *localDisk {
	return NewLocalDisk(config.StorageLocalRoot(), config.StorageURL())
}

// NewLocalDisk builds a local driver rooted at root. Exported so tests can
// point a disk at t.TempDir() via RegisterDisk.
func NewLocalDisk(root, baseURL string) *localDisk {
	if !filepath.IsAbs(root) {
		cwd, _ := os.Getwd()
		root = filepath.Join(cwd, root)
	}
	return &localDisk{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (d *localDisk) abs(path string) string {
	return filepath.Join(d.root, filepath.FromSlash(path))
}

// ── Write ─────────────────────────────────────────────────────────────────────

func (d *localDisk) Put(path string, content []byte) error {
	return d.PutStream(path, bytes.NewReader(content))
}

func (d *localDisk) PutStream(path string, r io.Reader) error {
	full := d.abs(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("storage/local: mkdir: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("storage/local: create %s: %w", path, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("storage/local: write %s: %w", path, err)
	}
	return nil
}

// ── Read ──────────────────────────────────────────────────────────────────────

func (d *localDisk) Get(path string) ([]byte, error) {
	data, err := os.ReadFile(d.abs(path))
	if err != nil {
		return nil, fmt.Errorf("storage/local: get %s: %w", path, err)
	}
	return data, nil
}

func (d *localDisk) GetStream(path string) (io.ReadCloser, error) {
	f, err := os.Open(d.abs(path))
	if err != nil {
		return nil, fmt.Errorf("storage/local: open %s: %w", path, err)
	}
	return f, nil
}

// ── Metadata ──────────────────────────────────────────────────────────────────

func (d *localDisk) Exists(path string) bool {
	_, err := os.Stat(d.abs(path))
	return err == nil
}

func (d *localDisk) Missing(path string) bool { return !d.Exists(path) }

func (d *localDisk) URL(path string) string {
	return d.baseURL + "/" + strings.TrimLeft(filepath.ToSlash(path), "/")
}

// Root returns the absolute root directory (the /uploads file server mounts it).
func (d *localDisk) Root() string { return d.root }

// ── Delete ────────────────────────────────────────────────────────────────────

func (d *localDisk) Delete(path string) error {
	err := os.Remove(d.abs(path))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage/local: delete %s: %w", path, err)
	}
	return nil
}

// ── Directories ───────────────────────────────────────────────────────────────

func (d *localDisk) Files(directory string) ([]string, error) {
	absDir := d.abs(directory)
	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, fmt.Errorf("storage/local: files %s: %w", directory, err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() {
			out = append(out, filepath.ToSlash(filepath.Join(directory, e.Name())))
		}
	}
	return out, nil
}

func (d *localDisk) MakeDirectory(path string) error {
	// MkdirAll is idempotent, so there is no exists/create race here.
	if err := os.MkdirAll(d.abs(path), 0o755); err != nil {
		return fmt.Errorf("storage/local: mkdir %s: %w", path, err)
	}
	return nil
}

func (d *localDisk) DeleteDirectory(path string) error {
	if err := os.RemoveAll(d.abs(path)); err != nil {
		return fmt.Errorf("storage/local: rmdir %s: %w", path, err)
	}
	return nil
}
