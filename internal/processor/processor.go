package processor

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/textchunk-mcp/internal/cache"
	"github.com/dshills/textchunk-mcp/internal/detector"
	"github.com/dshills/textchunk-mcp/internal/merger"
	"github.com/dshills/textchunk-mcp/internal/strategy"
	"github.com/dshills/textchunk-mcp/internal/validator"
	"github.com/dshills/textchunk-mcp/pkg/types"
)

// Request contains parameters for one chunking operation.
type Request struct {
	// Content is the decoded text blob to chunk. Encoding is the
	// caller's responsibility.
	Content string
	// ContentType, when set, bypasses detection and always wins.
	ContentType types.ContentType
	// Config overrides the default budget. Nil selects DefaultConfig.
	Config *types.ChunkingConfig
}

// Response contains the produced chunk sequence and run metadata.
type Response struct {
	Chunks []types.Chunk
	// ContentType is the type the run resolved to, supplied or detected.
	ContentType types.ContentType
	// Detected reports whether the type came from the detector.
	Detected bool
	CacheHit bool
	Duration time.Duration
}

// Processor orchestrates detection, strategy dispatch, validation,
// merging, and caching. It is the sole entry point collaborators use,
// and the only component permitted to touch the cache: strategies, the
// validator, and the merger know nothing about caching.
//
// The orchestration order is fixed for reproducibility:
// detect -> cache lookup -> split -> validate -> merge -> cache store.
type Processor struct {
	detector  *detector.Detector
	validator *validator.Validator
	merger    *merger.Merger

	cacheSize int
	cacheOnce sync.Once
	cache     *cache.Cache
}

// New creates a Processor. The cache is process-scoped and lazily
// initialized on first cached call; cacheSize bounds its entry count
// (<= 0 selects the default).
func New(cacheSize int) *Processor {
	return &Processor{
		detector:  detector.New(),
		validator: validator.New(),
		merger:    merger.New(),
		cacheSize: cacheSize,
	}
}

// ChunkContent runs one chunking operation. It fails with
// types.ErrEmptyContent on empty or whitespace-only input and
// types.ErrInvalidConfig when the supplied config violates its
// invariants; both are local to this call.
func (p *Processor) ChunkContent(req Request) (*Response, error) {
	start := time.Now()

	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("chunk content: %w", types.ErrEmptyContent)
	}

	config := types.DefaultConfig()
	if req.Config != nil {
		config = *req.Config
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("chunk content: %w", err)
	}

	ct := req.ContentType
	detected := false
	if ct == "" {
		ct = p.detector.Detect(req.Content)
		detected = true
	} else if err := ct.Validate(); err != nil {
		return nil, fmt.Errorf("chunk content: %w", err)
	}

	strat, err := strategy.ForContentType(ct)
	if err != nil {
		return nil, fmt.Errorf("chunk content: %w", err)
	}

	compute := func() ([]types.Chunk, error) {
		raw, err := strat.Split(req.Content, config)
		if err != nil {
			return nil, err
		}
		validated := p.validator.Validate(raw, config)
		return p.merger.Merge(validated, config), nil
	}

	var (
		chunks   []types.Chunk
		cacheHit bool
	)
	if config.EnableCaching {
		chunks, cacheHit, err = p.lazyCache().GetOrCompute(req.Content, config, compute)
	} else {
		chunks, err = compute()
	}
	if err != nil {
		return nil, fmt.Errorf("chunk content: %w", err)
	}

	return &Response{
		Chunks:      chunks,
		ContentType: ct,
		Detected:    detected,
		CacheHit:    cacheHit,
		Duration:    time.Since(start),
	}, nil
}

// ChunkBatch chunks independent requests concurrently with bounded
// parallelism. Results align with the request order; the first failure
// cancels outstanding work and is returned.
func (p *Processor) ChunkBatch(ctx context.Context, reqs []Request) ([]*Response, error) {
	responses := make([]*Response, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := range reqs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			resp, err := p.ChunkContent(reqs[i])
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			responses[i] = resp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return responses, nil
}

// DetectContentType exposes detection without chunking.
func (p *Processor) DetectContentType(content string) types.ContentType {
	return p.detector.Detect(content)
}

// ClearCache drops every memoized result.
func (p *Processor) ClearCache() {
	p.lazyCache().Clear()
}

// InvalidateCache drops the memoized result for one (content, config)
// pair, expired or not.
func (p *Processor) InvalidateCache(content string, config types.ChunkingConfig) {
	p.lazyCache().Invalidate(cache.NewKey(content, config))
}

// CacheLen reports how many results are currently memoized.
func (p *Processor) CacheLen() int {
	return p.lazyCache().Len()
}

func (p *Processor) lazyCache() *cache.Cache {
	p.cacheOnce.Do(func() {
		p.cache = cache.New(p.cacheSize)
	})
	return p.cache
}
