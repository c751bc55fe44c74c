// Package ringdot draws embedded graphs with Graphviz.
//
// Nodes are pinned at their identifier-space positions: ring nodes on a
// circle at the angle of their position, plane nodes at their coordinates.
// Edges are straight lines, so a ring drawing shows exactly the chords the
// crossing counter reasons about.
//
//	dot, err := ringdot.ToDOT(snap, ring, ringdot.Options{Highlight: true})
//	svg, err := ringdot.RenderSVG(ctx, dot)
//
// The generated DOT is meant for neato with pinned positions (pos="x,y!").
// [RenderSVG] renders it in process through [github.com/goccy/go-graphviz].
package ringdot

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/edgecross/pkg/crossings"
	"github.com/matzehuels/edgecross/pkg/graph"
	"github.com/matzehuels/edgecross/pkg/idspace"
)

// Default drawing sizes in inches.
const (
	DefaultRadius = 4.0
	DefaultScale  = 1.0
)

// Options configures the drawing.
type Options struct {
	// Highlight colors edges that take part in at least one crossing.
	Highlight bool

	// Radius of the ring in inches.
	Radius float64

	// Scale multiplies plane coordinates.
	Scale float64

	// Counting options used when Highlight is set.
	Crossings crossings.Options
}

func (o *Options) setDefaults() {
	if o.Radius <= 0 {
		o.Radius = DefaultRadius
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
}

// ToDOT converts snap to Graphviz DOT with node positions taken from emb.
// Only rings and two-dimensional spaces can be drawn; other embeddings fail
// with [crossings.UnsupportedEmbeddingError].
func ToDOT(snap *graph.Snapshot, emb idspace.Embedding, opts Options) (string, error) {
	opts.setDefaults()

	place, err := placer(emb, opts)
	if err != nil {
		return "", err
	}

	crossed := make(map[graph.Edge]int)
	if opts.Highlight {
		res, err := crossings.Count(snap.Edges(), emb, opts.Crossings)
		if err != nil {
			return "", fmt.Errorf("highlight crossings: %w", err)
		}
		for i, e := range res.Edges {
			crossed[e] = res.PerEdge[i]
		}
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fixedsize=true, width=0.35, fontsize=10];\n")
	buf.WriteString("  edge [color=\"#555555\"];\n")
	buf.WriteString("\n")

	for _, id := range snap.Nodes() {
		x, y, err := place(id)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&buf, "  n%d [label=\"%d\", pos=\"%s,%s!\"];\n", id, id, coord(x), coord(y))
	}

	buf.WriteString("\n")
	for _, e := range snap.Edges() {
		if n := crossed[e]; n > 0 {
			fmt.Fprintf(&buf, "  n%d -- n%d [color=\"#d62728\", penwidth=2, tooltip=\"%d crossings\"];\n", e.U, e.V, n)
			continue
		}
		fmt.Fprintf(&buf, "  n%d -- n%d;\n", e.U, e.V)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// placer returns a function mapping node ids to drawing coordinates.
func placer(emb idspace.Embedding, opts Options) (func(int64) (float64, float64, error), error) {
	switch emb.Kind() {
	case idspace.KindRing:
		ring, ok := emb.(*idspace.Ring)
		if !ok {
			break
		}
		return func(id int64) (float64, float64, error) {
			p, err := ring.Position(id)
			if err != nil {
				return 0, 0, err
			}
			theta := 2 * math.Pi * p / ring.Modulus
			return opts.Radius * math.Cos(theta), opts.Radius * math.Sin(theta), nil
		}, nil
	case idspace.KindPlane, idspace.KindMultiDimensional:
		space, ok := emb.(idspace.PointSpace)
		if !ok || emb.Dimensions() != 2 {
			break
		}
		return func(id int64) (float64, float64, error) {
			pt, err := space.Point(id)
			if err != nil {
				return 0, 0, err
			}
			return opts.Scale * pt[0], opts.Scale * pt[1], nil
		}, nil
	}
	return nil, &crossings.UnsupportedEmbeddingError{Kind: emb.Kind(), Dim: emb.Dimensions()}
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// RenderSVG renders DOT source to SVG with the neato engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's fixed-size svg element with one that
// scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
