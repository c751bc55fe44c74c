// Package render provides visualization rendering for embedded graphs.
//
// # Overview
//
// This package contains generic format conversion. The [ringdot] subpackage
// draws a graph at its identifier-space positions so crossings can be
// inspected by eye.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [ringdot]: github.com/matzehuels/edgecross/pkg/render/ringdot
package render
