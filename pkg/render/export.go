package render

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	kterrors "github.com/sbhuiyan/kintree/pkg/errors"
	"github.com/sbhuiyan/kintree/pkg/layout"
	"github.com/sbhuiyan/kintree/pkg/tree"
	"github.com/sbhuiyan/kintree/pkg/view"
)

// exportDrop is the vertical run below a parent row on the export path,
// where the tighter interactive elbow reads too cramped at 2x.
const exportDrop = 20.0

// Export renders the full layout at its natural bounds on a white
// background, at 2x resolution, without camera transform or interaction
// chrome. Visibility and opacity are honored as resolved, so a lineage
// focus exports the way it looks on screen.
func (r *Renderer) Export(l *layout.Result, edges []tree.Edge) (image.Image, error) {
	if len(l.Order) == 0 {
		return nil, kterrors.New(kterrors.ErrCodeInvalidInput, "nothing to export: layout is empty")
	}

	b := l.Bounds
	w := int(math.Ceil((b.Width() + exportPadding*2) * exportScale))
	h := int(math.Ceil((b.Height() + exportPadding*2) * exportScale))

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	cam := view.State{
		Scale:   exportScale,
		OffsetX: exportPadding - b.MinX,
		OffsetY: exportPadding - b.MinY,
	}
	r.drawScene(dc, l, edges, cam, nil, exportDrop)

	return dc.Image(), nil
}

// EncodePNG encodes an exported image as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, kterrors.Wrap(kterrors.ErrCodeInternal, err, "encoding PNG")
	}
	return buf.Bytes(), nil
}

// EncodePDF wraps an exported image in a single-page PDF sized to the
// image at 96 DPI. The page embeds the raster as a JPEG; there is no
// vector path.
func EncodePDF(img image.Image) ([]byte, error) {
	var jbuf bytes.Buffer
	if err := jpeg.Encode(&jbuf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, kterrors.Wrap(kterrors.ErrCodeInternal, err, "encoding PDF raster")
	}

	bounds := img.Bounds()
	pxW, pxH := bounds.Dx(), bounds.Dy()
	ptW := float64(pxW) * 72 / 96
	ptH := float64(pxH) * 72 / 96

	var buf bytes.Buffer
	offsets := make([]int, 0, 6)
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")
	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj("<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %.2f %.2f] /Contents 4 0 R /Resources << /XObject << /Im0 5 0 R >> >> >>", ptW, ptH))

	content := fmt.Sprintf("q\n%.2f 0 0 %.2f 0 0 cm\n/Im0 Do\nQ", ptW, ptH)
	obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))

	offsets = append(offsets, buf.Len())
	fmt.Fprintf(&buf, "5 0 obj\n<< /Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /DeviceRGB /BitsPerComponent 8 /Filter /DCTDecode /Length %d >>\nstream\n", pxW, pxH, jbuf.Len())
	buf.Write(jbuf.Bytes())
	buf.WriteString("\nendstream\nendobj\n")

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	return buf.Bytes(), nil
}

// Thumbnail scales an exported image down to fit within maxW by maxH,
// preserving aspect ratio.
func Thumbnail(img image.Image, maxW, maxH int) image.Image {
	return imaging.Fit(img, maxW, maxH, imaging.Lanczos)
}

// ExportPNG is a convenience wrapper combining Export and EncodePNG.
func (r *Renderer) ExportPNG(l *layout.Result, edges []tree.Edge) ([]byte, error) {
	img, err := r.Export(l, edges)
	if err != nil {
		return nil, err
	}
	return EncodePNG(img)
}

// ExportPDF is a convenience wrapper combining Export and EncodePDF.
func (r *Renderer) ExportPDF(l *layout.Result, edges []tree.Edge) ([]byte, error) {
	img, err := r.Export(l, edges)
	if err != nil {
		return nil, err
	}
	return EncodePDF(img)
}
