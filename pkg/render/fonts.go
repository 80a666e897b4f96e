package render

import (
	"math"
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// fontCandidates are tried in order; the first one present on the host
// wins. All are plain sans-serif faces that read well at small sizes.
var fontCandidates = []string{
	"DejaVuSans.ttf",
	"LiberationSans-Regular.ttf",
	"Arial.ttf",
	"Helvetica.ttf",
}

// fontSet lazily loads one TrueType font and caches faces per pixel size.
// Faces are keyed by the rounded size so zoom animations don't allocate a
// face per frame.
type fontSet struct {
	mu    sync.Mutex
	ttf   *truetype.Font
	faces map[int]font.Face
}

func loadFonts() *fontSet {
	fs := &fontSet{faces: make(map[int]font.Face)}
	for _, name := range fontCandidates {
		path, err := findfont.Find(name)
		if err != nil {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		ttf, err := truetype.Parse(data)
		if err != nil {
			continue
		}
		fs.ttf = ttf
		break
	}
	return fs
}

// face returns a font face for the given pixel size, falling back to the
// builtin bitmap face when no system font could be loaded.
func (fs *fontSet) face(size float64) font.Face {
	if fs.ttf == nil {
		return basicfont.Face7x13
	}

	key := int(math.Round(size))
	if key < 1 {
		key = 1
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	if f, ok := fs.faces[key]; ok {
		return f
	}
	f := truetype.NewFace(fs.ttf, &truetype.Options{Size: float64(key)})
	fs.faces[key] = f
	return f
}
