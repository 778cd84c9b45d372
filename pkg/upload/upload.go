// Package upload receives multipart product assets and stages them on
// the configured disk under a namespace directory, assigning each file
// a timestamped name so concurrent uploads of the same original never
// collide.
package upload

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/shashiranjanraj/vastra/pkg/metrics"
	"github.com/shashiranjanraj/vastra/pkg/storage"
)

const (
	// MaxImages caps the gallery files accepted per request.
	MaxImages = 10

	maxMemory = 32 << 20
)

// Files holds the generated names of assets staged for one request.
type Files struct {
	Thumbnail string
	Images    []string
}

// HasThumbnail reports whether a thumbnail was part of the upload.
func (f Files) HasThumbnail() bool { return f.Thumbnail != "" }

// GenerateFilename derives the stored name from the client's original
// name: `<basename>-<unix millis><ext>`. The original is sanitized
// first so path fragments in a hostile filename cannot escape the
// namespace directory.
func GenerateFilename(original string) string {
	name := storage.SanitizeFilename(original)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s-%d%s", base, time.Now().UnixMilli(), ext)
}

// SaveProductFiles parses the request's multipart body and writes the
// optional `thumbnail` (first file only) and up to MaxImages `images`
// into the namespace directory. Gallery order follows the order the
// client sent the parts in. A write failure aborts the whole upload.
func SaveProductFiles(r *http.Request, namespace string) (Files, error) {
	var out Files

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		// Plain form posts carry no files; that is not an error here.
		if errors.Is(err, http.ErrNotMultipart) {
			return out, nil
		}
		return out, err
	}
	if r.MultipartForm == nil {
		return out, nil
	}

	if err := storage.MakeDirectory(namespace); err != nil {
		return out, err
	}

	if headers := r.MultipartForm.File["thumbnail"]; len(headers) > 0 {
		name, err := saveOne(headers[0], namespace)
		if err != nil {
			return out, err
		}
		out.Thumbnail = name
	}

	headers := r.MultipartForm.File["images"]
	if len(headers) > MaxImages {
		headers = headers[:MaxImages]
	}
	for _, h := range headers {
		name, err := saveOne(h, namespace)
		if err != nil {
			return out, err
		}
		out.Images = append(out.Images, name)
	}
	return out, nil
}

func saveOne(h *multipart.FileHeader, namespace string) (string, error) {
	src, err := h.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := GenerateFilename(h.Filename)
	err = storage.PutStream(namespace+"/"+name, src)
	metrics.RecordAssetOp("write", err)
	if err != nil {
		return "", err
	}
	return name, nil
}
