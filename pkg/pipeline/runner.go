package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cascadevis/cascade/pkg/cache"
	"github.com/cascadevis/cascade/pkg/chart"
	"github.com/cascadevis/cascade/pkg/observability"
	"github.com/cascadevis/cascade/pkg/render/waterfall/layout"
	"github.com/cascadevis/cascade/pkg/render/waterfall/sink"
)

// Runner encapsulates pipeline execution with artifact caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't store
// pipeline results. Multiple goroutines can safely share one Runner with
// different options.
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
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Result is the output of one pipeline run.
type Result struct {
	// Bars are the normalized, sequence-sorted bars.
	Bars []chart.Bar

	// Layout is the positioned chart.
	Layout *layout.Layout

	// Artifacts maps format name to rendered bytes.
	Artifacts map[string][]byte

	// TableHash identifies the input content.
	TableHash string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats captures per-stage timings.
type Stats struct {
	ParseTime  time.Duration `json:"parse_time"`
	LayoutTime time.Duration `json:"layout_time"`
	RenderTime time.Duration `json:"render_time"`
	BarCount   int           `json:"bar_count"`
}

// CacheInfo records which artifacts came from the cache.
type CacheInfo struct {
	RenderHits map[string]bool `json:"render_hits,omitempty"`
}

// Execute runs the complete parse → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	hooks := observability.Pipeline()
	result := &Result{
		TableHash: opts.TableHash(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse. Malformed input is normalized, never rejected; an
	// empty table yields nil bars and the placeholder rendering downstream.
	rows := 0
	if opts.Table != nil {
		rows = opts.Table.Rows()
	}
	hooks.OnParseStart(ctx, rows)
	parseStart := time.Now()
	result.Bars = chart.Parse(opts.Table, opts.Config.Palette())
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.BarCount = len(result.Bars)
	hooks.OnParseComplete(ctx, len(result.Bars), result.Stats.ParseTime)

	r.Logger.Info("parsed table",
		"rows", rows,
		"bars", len(result.Bars),
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	hooks.OnLayoutStart(ctx, len(result.Bars))
	layoutStart := time.Now()
	result.Layout = layout.Build(result.Bars, *opts.Config, opts.Width, opts.Height)
	result.Stats.LayoutTime = time.Since(layoutStart)
	hooks.OnLayoutComplete(ctx, result.Stats.LayoutTime)

	r.Logger.Info("computed layout",
		"bars", len(result.Layout.Bars),
		"bar_width", result.Layout.BarWidth,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	hooks.OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	artifacts, hits, err := r.RenderWithCacheInfo(ctx, result.Layout, result.TableHash, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHits = hits

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders the requested formats from a computed layout,
// consulting the artifact cache per format. It returns the artifacts plus a
// per-format cache hit map.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l *layout.Layout, tableHash string, opts Options) (map[string][]byte, map[string]bool, error) {
	cacheHooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	hits := make(map[string]bool, len(opts.Formats))

	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(tableHash, opts.ArtifactKeyOpts(format))

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				cacheHooks.OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				hits[format] = true
				continue
			}
			cacheHooks.OnCacheMiss(ctx, "artifact")
		}

		data, err := renderFormat(l, *opts.Config, format)
		if err != nil {
			return nil, nil, err
		}
		artifacts[format] = data
		hits[format] = false

		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			cacheHooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return artifacts, hits, nil
}

// Render is a convenience wrapper that discards cache hit info.
func (r *Runner) Render(ctx context.Context, l *layout.Layout, tableHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, tableHash, opts)
	return artifacts, err
}

func renderFormat(l *layout.Layout, cfg chart.Config, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(l, cfg), nil
	case FormatPNG:
		return sink.RenderPNG(l, cfg)
	case FormatPDF:
		return sink.RenderPDF(l, cfg)
	case FormatJSON:
		return sink.RenderJSON(l, cfg)
	default:
		return nil, ValidateFormat(format)
	}
}
