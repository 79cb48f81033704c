// Package sink provides output format renderers for waterfall charts.
//
// A sink executes the draw instructions built by [waterfall.BuildInstructions]
// against a concrete output format:
//
//   - SVG: standalone vector output with hover tooltips and pattern fills
//   - PNG: raster output via github.com/tdewolff/canvas
//   - PDF: print-ready output via the same canvas backend
//   - JSON: layout and instruction export for external tools
//
// All sinks are pure functions of the layout and chart options; nothing is
// cached or mutated between renders.
//
// To add a new output format, create a renderer function
// RenderFoo(l *layout.Layout, cfg chart.Config) ([]byte, error) that walks
// the instruction list, and register it in internal/cli/render.go for CLI
// support. svg.go is the reference implementation.
//
// [waterfall.BuildInstructions]: github.com/cascadevis/cascade/pkg/render/waterfall.BuildInstructions
package sink
