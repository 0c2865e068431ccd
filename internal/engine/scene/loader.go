package scene

import (
	"context"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/objscene/internal/logger"
	"github.com/Faultbox/objscene/pkg/obj"
)

// LoadMeshes parses and deindexes the given OBJ files concurrently using
// at most workers goroutines (GOMAXPROCS if workers <= 0). Duplicate paths
// are loaded once. The first error cancels the remaining loads.
func LoadMeshes(ctx context.Context, paths []string, workers int) (map[string]*obj.Mesh, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log := logger.Named("scene")

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	meshes := make(map[string]*obj.Mesh, len(paths))
	queued := make(map[string]bool, len(paths))

	for _, path := range paths {
		if queued[path] {
			continue
		}
		queued[path] = true

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			m, err := obj.Load(path)
			if err != nil {
				return err
			}
			log.Debug("mesh parsed",
				zap.String("path", path),
				zap.Int("vertices", m.VertexCount),
				zap.Duration("took", time.Since(start)),
			)

			mu.Lock()
			meshes[path] = m
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return meshes, nil
}
