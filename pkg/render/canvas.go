package render

import (
	"image/color"
	"math"
	"strconv"

	"github.com/fogleman/gg"

	"github.com/sbhuiyan/kintree/pkg/layout"
	"github.com/sbhuiyan/kintree/pkg/tree"
	"github.com/sbhuiyan/kintree/pkg/view"
)

// Frame is everything needed to draw one interactive frame: the resolved
// layout, the raw edges for connector routing, the camera, and transient
// interaction state. It is a value snapshot, safe to capture per frame.
type Frame struct {
	Layout *layout.Result
	Edges  []tree.Edge
	Camera view.State

	Width  float64
	Height float64

	Options view.Options

	SelectedID    string
	HoveredID     string
	HighlightedID string
	PulsePhase    float64
}

// Renderer draws frames and exports. It only holds the font cache, so a
// single instance serves both the interactive loop and batch export.
type Renderer struct {
	fonts *fontSet
}

// New creates a renderer, locating a system font for node labels.
func New() *Renderer {
	return &Renderer{fonts: loadFonts()}
}

// chrome carries the interaction overlays applied on top of the base
// scene. A nil chrome renders the bare scene (the export path).
type chrome struct {
	selectedID    string
	hoveredID     string
	highlightedID string
	pulsePhase    float64
}

// DrawFrame renders one full frame into dc. The context is expected to be
// Frame.Width by Frame.Height pixels.
func (r *Renderer) DrawFrame(dc *gg.Context, f Frame) {
	r.drawBackground(dc, f.Width, f.Height)

	ch := &chrome{
		selectedID:    f.SelectedID,
		hoveredID:     f.HoveredID,
		highlightedID: f.HighlightedID,
		pulsePhase:    f.PulsePhase,
	}
	drop := math.Min(30, f.Layout.Design.GenerationGap/4)
	r.drawScene(dc, f.Layout, f.Edges, f.Camera, ch, drop)

	if f.Options.ShowGenerationLabels {
		r.drawGenerationLabels(dc, f.Layout, f.Camera, f.Height)
	}
}

func (r *Renderer) drawBackground(dc *gg.Context, w, h float64) {
	grad := gg.NewLinearGradient(0, 0, 0, h)
	grad.AddColorStop(0, hexColor(backgroundTop))
	grad.AddColorStop(1, hexColor(backgroundBottom))
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()
}

// drawScene renders connectors then nodes in world order, projecting every
// coordinate through cam. drop is the vertical run below a parent row
// before the elbow turns horizontal.
func (r *Renderer) drawScene(dc *gg.Context, l *layout.Result, edges []tree.Edge, cam view.State, ch *chrome, drop float64) {
	r.drawSpouseEdges(dc, l, edges, cam)
	r.drawParentEdges(dc, l, edges, cam, drop)

	l.Walk(func(n *layout.PositionedNode) {
		if n.Visible {
			r.drawNode(dc, l.Design, n, cam, ch)
		}
	})
}

// drawSpouseEdges draws a dashed horizontal connector between the facing
// edges of each spouse pair at mid-node height.
func (r *Renderer) drawSpouseEdges(dc *gg.Context, l *layout.Result, edges []tree.Edge, cam view.State) {
	s := cam.Scale
	for _, e := range edges {
		if e.Type != tree.EdgeSpouse {
			continue
		}
		a, b := l.Nodes[e.From], l.Nodes[e.To]
		if a == nil || b == nil || !a.Visible || !b.Visible {
			continue
		}
		if b.X < a.X {
			a, b = b, a
		}

		x1, y1 := project(cam, a.X+a.Width, a.CenterY())
		x2, y2 := project(cam, b.X, b.CenterY())

		setColor(dc, spouseLineColor, math.Min(a.Opacity, b.Opacity))
		dc.SetLineWidth(spouseLineWidth)
		dc.SetDash(6*s, 4*s)
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
		dc.SetDash()
	}
}

// drawParentEdges draws elbow connectors from each visible parent down to
// a shared horizontal rail, then to the top of the child. Connectors are
// grouped per child so both parents meet the same rail.
func (r *Renderer) drawParentEdges(dc *gg.Context, l *layout.Result, edges []tree.Edge, cam view.State, drop float64) {
	parents := make(map[string][]*layout.PositionedNode)
	order := make([]string, 0)
	for _, e := range edges {
		if e.Type != tree.EdgeParent {
			continue
		}
		p, c := l.Nodes[e.From], l.Nodes[e.To]
		if p == nil || c == nil || !p.Visible || !c.Visible {
			continue
		}
		if _, seen := parents[e.To]; !seen {
			order = append(order, e.To)
		}
		parents[e.To] = append(parents[e.To], p)
	}

	for _, childID := range order {
		child := l.Nodes[childID]
		group := parents[childID]

		bottom := 0.0
		sum := 0.0
		for _, p := range group {
			bottom = math.Max(bottom, p.Y+p.Height)
			sum += p.Opacity
		}
		railY := bottom + drop
		alpha := math.Min(sum/float64(len(group)), child.Opacity)

		setColor(dc, parentLineColor, alpha)
		dc.SetLineWidth(parentLineWidth)
		for _, p := range group {
			x1, y1 := project(cam, p.CenterX(), p.Y+p.Height)
			_, ry := project(cam, 0, railY)
			dc.MoveTo(x1, y1)
			dc.LineTo(x1, ry)
			dc.Stroke()
		}
		cx, ctop := project(cam, child.CenterX(), child.Y)
		_, ry := project(cam, 0, railY)
		minX, maxX := math.Inf(1), math.Inf(-1)
		for _, p := range group {
			px, _ := project(cam, p.CenterX(), 0)
			minX = math.Min(minX, math.Min(px, cx))
			maxX = math.Max(maxX, math.Max(px, cx))
		}
		dc.MoveTo(minX, ry)
		dc.LineTo(maxX, ry)
		dc.Stroke()
		dc.MoveTo(cx, ry)
		dc.LineTo(cx, ctop)
		dc.Stroke()
	}
}

// drawNode renders one node card: shadow, pulse glow, fill, border, and
// the two text lines.
func (r *Renderer) drawNode(dc *gg.Context, d layout.Design, n *layout.PositionedNode, cam view.State, ch *chrome) {
	s := cam.Scale
	x, y := project(cam, n.X, n.Y)
	w, h := n.Width*s, n.Height*s
	radius := d.NodeRadius * s

	hovered := ch != nil && ch.hoveredID == n.ID
	highlighted := ch != nil && ch.highlightedID == n.ID
	selected := ch != nil && ch.selectedID == n.ID

	if hovered || highlighted {
		grow := hoverScale
		gw, gh := w*grow, h*grow
		x -= (gw - w) / 2
		y -= (gh - h) / 2
		w, h = gw, gh
	}

	// Shadow.
	setColor(dc, shadowColor, shadowAlpha*n.Opacity)
	dc.DrawRoundedRectangle(x, y+shadowOffsetY*s, w, h, radius)
	dc.Fill()

	// Pulse glow behind the card.
	if highlighted {
		glow := (0.5 + 0.5*math.Sin(ch.pulsePhase)) * n.Opacity
		setColor(dc, pulseGlowColor, glow*0.6)
		dc.SetLineWidth(8)
		dc.DrawRoundedRectangle(x-4, y-4, w+8, h+8, radius+4)
		dc.Stroke()
	}

	bg, border := maleBG, maleBorder
	if n.Gender == tree.GenderFemale {
		bg, border = femaleBG, femaleBorder
	}

	setColor(dc, bg, n.Opacity)
	dc.DrawRoundedRectangle(x, y, w, h, radius)
	dc.Fill()

	borderColor, borderWidth := border, 2.0
	switch {
	case selected:
		borderColor, borderWidth = selectedBorder, selectedBorderWidth
	case n.DirectLineage:
		borderColor, borderWidth = lineageHighlightColor, 2.0
	}
	setColor(dc, borderColor, n.Opacity)
	dc.SetLineWidth(borderWidth)
	dc.DrawRoundedRectangle(x, y, w, h, radius)
	dc.Stroke()

	cx, cy := x+w/2, y+h/2

	name := truncateName(n.Name, n.Width, d.NameFontSize)
	dc.SetFontFace(r.fonts.face(d.NameFontSize * s))
	setColor(dc, textColor, n.Opacity)
	dc.DrawStringAnchored(name, cx, cy-8*s, 0.5, 0.5)

	if meta := n.Lifespan(); meta != "" {
		dc.SetFontFace(r.fonts.face(d.MetaFontSize * s))
		setColor(dc, metaColor, n.Opacity)
		dc.DrawStringAnchored(meta, cx, cy+10*s, 0.5, 0.5)
	}
}

// drawGenerationLabels renders a pinned pill per visible generation row at
// the left edge of the viewport, in screen space.
func (r *Renderer) drawGenerationLabels(dc *gg.Context, l *layout.Result, cam view.State, height float64) {
	dc.SetFontFace(r.fonts.face(generationLabelFontSize))
	for _, gen := range l.Generations {
		rowCenter := l.Design.GenerationY(gen) + l.Design.NodeHeight/2
		_, sy := project(cam, 0, rowCenter)
		if sy < -50 || sy > height+50 {
			continue
		}

		label := "Gen " + strconv.Itoa(gen+1)
		tw, th := dc.MeasureString(label)

		const padX, padY = 10.0, 6.0
		setColor(dc, "#ffffff", 0.9)
		dc.DrawRoundedRectangle(12, sy-th/2-padY, tw+padX*2, th+padY*2, 8)
		dc.Fill()
		setColor(dc, "#e2e8f0", 1)
		dc.SetLineWidth(1)
		dc.DrawRoundedRectangle(12, sy-th/2-padY, tw+padX*2, th+padY*2, 8)
		dc.Stroke()

		setColor(dc, generationLabelColor, 1)
		dc.DrawStringAnchored(label, 12+padX+tw/2, sy, 0.5, 0.5)
	}
}

// project maps a world point to screen space through the camera.
func project(cam view.State, wx, wy float64) (float64, float64) {
	return (wx + cam.OffsetX) * cam.Scale, (wy + cam.OffsetY) * cam.Scale
}

// truncateName fits a name into the node width, appending an ellipsis when
// it overflows. The budget uses an average glyph width heuristic so it
// matches across font fallbacks.
func truncateName(name string, nodeWidth, fontSize float64) string {
	maxChars := int(nodeWidth / (fontSize * 0.55))
	runes := []rune(name)
	if len(runes) <= maxChars {
		return name
	}
	if maxChars < 2 {
		maxChars = 2
	}
	return string(runes[:maxChars-1]) + "…"
}

// setColor sets the draw color from a hex string with an alpha multiplier.
func setColor(dc *gg.Context, hex string, alpha float64) {
	r, g, b := hexRGB(hex)
	dc.SetRGBA(r, g, b, alpha)
}

// hexColor parses "#rrggbb" into an opaque color.
func hexColor(hex string) color.RGBA {
	r, g, b := hexRGB(hex)
	return color.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 255}
}

// hexRGB parses "#rrggbb" into normalized components.
func hexRGB(hex string) (float64, float64, float64) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return float64(v>>16&0xff) / 255, float64(v>>8&0xff) / 255, float64(v&0xff) / 255
}
