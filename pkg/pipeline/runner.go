package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/formgrid/pkg/cache"
	"github.com/matzehuels/formgrid/pkg/layout"
	"github.com/matzehuels/formgrid/pkg/observability"
	"github.com/matzehuels/formgrid/pkg/render"
	"github.com/matzehuels/formgrid/pkg/render/nodelink"
)

// Runner renders snapshots through a cache.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can use the same Runner with different options as long as
// the cache is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// RenderWithCacheInfo renders s as markup and reports whether the result
// came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s layout.Snapshot, opts Options) (string, bool, error) {
	opts.SetRenderDefaults()
	r.applyLogger(&opts)

	f := render.NewFactory(opts.Registry)
	rd, err := f.New(opts.Renderer)
	if err != nil {
		return "", false, err
	}

	key := r.Keyer.ArtifactKey(cache.SnapshotHash(s), opts.ArtifactKeyOpts())
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			opts.Logger.Debug("artifact cache hit", "renderer", opts.Renderer)
			return string(data), true, nil
		}
	}

	hooks := observability.Render()
	hooks.OnRenderStart(rd.Name())
	start := time.Now()
	var out string
	if opts.Preview {
		out = rd.RenderPreview(s, opts.RenderOptions())
	} else {
		out = rd.RenderForm(s, opts.RenderOptions())
	}
	elapsed := time.Since(start)
	hooks.OnRenderComplete(rd.Name(), len(out), elapsed, nil)

	st := s.Tree().Stats()
	opts.Logger.Debug("rendered markup",
		"renderer", rd.Name(),
		"nodes", st.Total(),
		"bytes", len(out),
		"duration", elapsed)

	if err := r.Cache.Set(ctx, key, []byte(out), opts.ttl(cache.TTLArtifact)); err != nil {
		opts.Logger.Warn("cache write failed", "error", err)
	}
	return out, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, s layout.Snapshot, opts Options) (string, error) {
	out, _, err := r.RenderWithCacheInfo(ctx, s, opts)
	return out, err
}

// DiagramWithCacheInfo renders the structure diagram of s and reports
// whether it came from the cache.
func (r *Runner) DiagramWithCacheInfo(ctx context.Context, s layout.Snapshot, opts Options) ([]byte, bool, error) {
	opts.SetDiagramDefaults()
	r.applyLogger(&opts)
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, false, err
	}

	key := r.Keyer.DiagramKey(cache.SnapshotHash(s), opts.DiagramKeyOpts())
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			return data, true, nil
		}
	}

	dot := nodelink.ToDOT(s, nodelink.Options{Detailed: opts.Detailed, Registry: opts.Registry})
	data := []byte(dot)
	if opts.Format == FormatSVG {
		svg, err := nodelink.RenderSVG(ctx, dot)
		if err != nil {
			return nil, false, fmt.Errorf("diagram: %w", err)
		}
		data = svg
	}

	if err := r.Cache.Set(ctx, key, data, opts.ttl(cache.TTLDiagram)); err != nil {
		opts.Logger.Warn("cache write failed", "error", err)
	}
	return data, false, nil
}

// Diagram is a convenience wrapper that calls DiagramWithCacheInfo and discards the cache hit info.
func (r *Runner) Diagram(ctx context.Context, s layout.Snapshot, opts Options) ([]byte, error) {
	data, _, err := r.DiagramWithCacheInfo(ctx, s, opts)
	return data, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
