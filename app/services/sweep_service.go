package services

import (
	"context"
	"path"
	"sort"
	"sync"

	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/pkg/collection"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/storage"
	"github.com/shashiranjanraj/vastra/pkg/workerpool"
)

// SweepReport summarizes one orphan scan of the asset namespace.
type SweepReport struct {
	Scanned    int
	Referenced int
	Orphans    []string
}

// SweepService finds asset files no product references anymore.
// Product deletion never removes files and every update abandons the
// prior gallery on disk when its pull races a concurrent push, so
// orphans accumulate by design. The sweep only reports; it deletes
// nothing.
type SweepService struct {
	repo      repositories.ProductRepository
	namespace string
	workers   int
}

func NewSweepService(repo repositories.ProductRepository) *SweepService {
	return &SweepService{
		repo:      repo,
		namespace: config.AssetNamespace(),
		workers:   4,
	}
}

// Run lists the namespace, diffs it against the filenames products
// reference, and logs every orphan. Membership checks fan out over a
// worker pool since the disk behind the listing may be remote.
func (s *SweepService) Run(ctx context.Context) (*SweepReport, error) {
	referenced, err := s.repo.AssetNames(ctx)
	if err != nil {
		return nil, Internal(err)
	}

	files, err := storage.Files(s.namespace)
	if err != nil {
		return nil, Internal(err)
	}

	pool := workerpool.New(s.workers)
	defer pool.Shutdown()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		orphans []string
	)
	names := collection.Map(files, path.Base)
	candidates := collection.Filter(names, func(name string) bool {
		_, ok := referenced[name]
		return !ok
	})
	for _, name := range candidates {
		full := s.namespace + "/" + name
		wg.Add(1)
		err := pool.SubmitWait(func() {
			defer wg.Done()
			// Re-check before reporting: a product created after the
			// listing may have claimed the file.
			if storage.Missing(full) {
				return
			}
			mu.Lock()
			orphans = append(orphans, name)
			mu.Unlock()
		})
		if err != nil {
			wg.Done()
		}
	}
	wg.Wait()
	sort.Strings(orphans)

	for _, name := range orphans {
		logger.WithCtx(ctx).Warn("orphaned asset", "file", s.namespace+"/"+name)
	}
	logger.WithCtx(ctx).Info("asset sweep finished",
		"scanned", len(files),
		"referenced", len(referenced),
		"orphans", len(orphans),
	)

	return &SweepReport{
		Scanned:    len(files),
		Referenced: len(referenced),
		Orphans:    orphans,
	}, nil
}
