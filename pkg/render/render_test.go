package render

import (
	"bytes"
	"testing"

	"github.com/fogleman/gg"

	"github.com/sbhuiyan/kintree/pkg/layout"
	"github.com/sbhuiyan/kintree/pkg/tree"
	"github.com/sbhuiyan/kintree/pkg/view"
)

func fixture(t *testing.T) (*layout.Result, []tree.Edge) {
	t.Helper()
	data := &tree.Data{
		Nodes: []tree.Node{
			{ID: "a", Name: "Abraham Lincoln-Oglethorpe III", Gender: tree.GenderMale, BirthYear: 1921, DeathYear: 1984},
			{ID: "b", Name: "Bea", Gender: tree.GenderFemale, BirthYear: 1925},
			{ID: "c", Name: "Cal", Gender: tree.GenderMale},
		},
		Edges: []tree.Edge{
			{From: "a", To: "b", Type: tree.EdgeSpouse},
			{From: "a", To: "c", Type: tree.EdgeParent},
			{From: "b", To: "c", Type: tree.EdgeParent},
		},
	}
	design, err := layout.DesignFor(layout.DeviceDesktop)
	if err != nil {
		t.Fatal(err)
	}
	return layout.Compute(data, design), data.Edges
}

func TestDrawFrame(t *testing.T) {
	l, edges := fixture(t)
	r := New()

	dc := gg.NewContext(800, 600)
	r.DrawFrame(dc, Frame{
		Layout:        l,
		Edges:         edges,
		Camera:        view.Fit(l.Bounds, 800, 600, l.Design),
		Width:         800,
		Height:        600,
		Options:       view.DefaultOptions(),
		SelectedID:    "a",
		HoveredID:     "b",
		HighlightedID: "c",
		PulsePhase:    1.2,
	})

	// The gradient background must have replaced the zero-value image.
	img := dc.Image()
	if _, _, _, alpha := img.At(400, 300).RGBA(); alpha == 0 {
		t.Error("frame center still transparent after draw")
	}
}

func TestExport_Dimensions(t *testing.T) {
	l, edges := fixture(t)
	r := New()

	img, err := r.Export(l, edges)
	if err != nil {
		t.Fatal(err)
	}

	wantW := int((l.Bounds.Width() + exportPadding*2) * exportScale)
	gotW := img.Bounds().Dx()
	if gotW < wantW || gotW > wantW+1 {
		t.Errorf("export width %d, want about %d", gotW, wantW)
	}

	// Export renders on white, not the viewport gradient.
	red, green, blue, _ := img.At(0, 0).RGBA()
	if red != 0xffff || green != 0xffff || blue != 0xffff {
		t.Errorf("export corner not white: %v %v %v", red, green, blue)
	}
}

func TestExport_Empty(t *testing.T) {
	design, _ := layout.DesignFor(layout.DeviceDesktop)
	empty := layout.Compute(&tree.Data{}, design)

	if _, err := New().Export(empty, nil); err == nil {
		t.Error("exporting an empty layout should fail")
	}
}

func TestEncodePNG(t *testing.T) {
	l, edges := fixture(t)
	data, err := New().ExportPNG(l, edges)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output missing PNG signature")
	}
}

func TestEncodePDF(t *testing.T) {
	l, edges := fixture(t)
	data, err := New().ExportPDF(l, edges)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-1.4")) {
		t.Error("output missing PDF header")
	}
	if !bytes.Contains(data, []byte("/DCTDecode")) {
		t.Error("PDF missing embedded JPEG stream")
	}
	if !bytes.HasSuffix(bytes.TrimRight(data, "\n"), []byte("%%EOF")) {
		t.Error("PDF missing trailer")
	}
}

func TestThumbnail(t *testing.T) {
	l, edges := fixture(t)
	img, err := New().Export(l, edges)
	if err != nil {
		t.Fatal(err)
	}

	thumb := Thumbnail(img, 200, 200)
	if thumb.Bounds().Dx() > 200 || thumb.Bounds().Dy() > 200 {
		t.Errorf("thumbnail %v exceeds 200x200", thumb.Bounds())
	}
}

func TestTruncateName(t *testing.T) {
	tests := []struct {
		name      string
		nodeWidth float64
		fontSize  float64
		want      string
	}{
		{"Al", 180, 15, "Al"},
		{"Abraham Lincoln-Oglethorpe III", 180, 15, "Abraham Lincoln-Ogle…"},
		{"Xi", 10, 15, "X…"},
	}
	for _, tt := range tests {
		if got := truncateName(tt.name, tt.nodeWidth, tt.fontSize); got != tt.want {
			t.Errorf("truncateName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestHexRGB(t *testing.T) {
	r, g, b := hexRGB("#ff8000")
	if r != 1 || g != 128.0/255 || b != 0 {
		t.Errorf("hexRGB parsed (%v,%v,%v)", r, g, b)
	}
	if r, g, b := hexRGB("bogus"); r != 0 || g != 0 || b != 0 {
		t.Error("invalid hex should parse to black")
	}
}
