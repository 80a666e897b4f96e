package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/sbhuiyan/kintree/pkg/tree"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes lifespan and status in node labels.
	// When false, only the person's name is shown.
	Detailed bool
}

// Node fill colors matching the canvas renderer's palette.
const (
	fillMale   = "#DBEAFE"
	fillFemale = "#FCE7F3"
)

// ToDOT converts a family graph to Graphviz DOT format for node-link
// visualization. The resulting DOT string can be rendered using [RenderSVG].
//
// Spouse pairs are joined by dashed undirected edges on the same rank, so
// couples sit side by side the way the canvas layout places them.
func ToDOT(d *tree.Data, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for i := range d.Nodes {
		n := &d.Nodes[i]
		label := fmtLabel(n, opts.Detailed)
		fill := fillMale
		if n.Gender == tree.GenderFemale {
			fill = fillFemale
		}
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q];\n", n.ID, label, fill)
	}

	buf.WriteString("\n")
	for _, e := range d.Edges {
		switch e.Type {
		case tree.EdgeSpouse:
			fmt.Fprintf(&buf, "  %q -> %q [dir=none, style=dashed, constraint=false];\n", e.From, e.To)
			fmt.Fprintf(&buf, "  {rank=same; %q; %q}\n", e.From, e.To)
		case tree.EdgeParent:
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *tree.Node, detailed bool) string {
	if !detailed {
		return n.Name
	}

	parts := []string{n.Name}
	if span := n.Lifespan(); span != "" {
		parts = append(parts, span)
	}
	if n.Status != "" {
		parts = append(parts, n.Status)
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

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
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root element so the viewBox starts at
// the origin and the pixel size matches it, which keeps downstream
// embedding predictable across Graphviz versions.
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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
