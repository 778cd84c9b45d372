package services

import (
	"github.com/shashiranjanraj/vastra/pkg/cache"
	"github.com/shashiranjanraj/vastra/pkg/event"
)

// RegisterCacheInvalidation subscribes the cached catalog views to
// product lifecycle events. Any write drops the highlights view; the
// per-product entry goes too when the payload carries the id.
func RegisterCacheInvalidation() {
	invalidate := func(payload interface{}) {
		keys := []string{highlightsCacheKey}
		if id, ok := payload.(string); ok && id != "" {
			keys = append(keys, productCachePrefix+id)
		}
		_ = cache.Del(keys...)
	}
	event.Listen("product.created", invalidate)
	event.Listen("product.updated", invalidate)
	event.Listen("product.deleted", invalidate)
}
