// Package pipeline provides the core chart rendering pipeline for cascade.
//
// This package implements the complete parse → layout → render pipeline used
// by both the CLI and the HTTP service. Centralizing it keeps behavior
// consistent across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: normalize the input table into typed, sequence-sorted bars
//  2. Layout: pack bars horizontally and fold the running total vertically
//  3. Render: execute the draw instructions into the requested formats
//
// Parse and layout are cheap pure functions and run on every update; only
// rendered artifacts are cached, keyed by the table content hash and the
// render options.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Table:   tbl,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"encoding/json"

	"github.com/cascadevis/cascade/pkg/cache"
	"github.com/cascadevis/cascade/pkg/chart"
	"github.com/cascadevis/cascade/pkg/errors"
	"github.com/cascadevis/cascade/pkg/table"
)

// Default viewport size in pixels.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidateFormat checks a single output format.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %s (must be svg, png, pdf, or json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Table is the input data. A nil or empty table renders the
	// placeholder state rather than failing.
	Table *table.Table `json:"table"`

	// Config holds the chart options; nil means defaults.
	Config *chart.Config `json:"config,omitempty"`

	// Viewport size in pixels. Zero means the default.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Formats to render. Empty means SVG only.
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses the artifact cache.
	Refresh bool `json:"refresh,omitempty"`
}

// ValidateAndSetDefaults validates options and fills in defaults in place.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "viewport size must not be negative")
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Config == nil {
		cfg := chart.DefaultConfig()
		o.Config = &cfg
	}
	o.Config.Clamp()
	return nil
}

// TableHash returns the content hash of the input table, used in artifact
// cache keys and API responses.
func (o *Options) TableHash() string {
	if o.Table == nil {
		return cache.Hash(nil)
	}
	data, _ := json.Marshal(o.Table)
	return cache.Hash(data)
}

// ArtifactKeyOpts builds the cache key options for one output format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	cfgData, _ := json.Marshal(o.Config)
	return cache.ArtifactKeyOpts{
		Format:     format,
		Width:      o.Width,
		Height:     o.Height,
		ConfigHash: cache.Hash(cfgData),
	}
}
