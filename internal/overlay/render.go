package overlay

import (
	"fmt"
	"image"

	"github.com/bryanchriswhite/FocusHint/internal/config"
	"github.com/bryanchriswhite/FocusHint/internal/hint"
)

// Render paints hints onto a transparent width×height frame and returns it
// as ARGB8888 in little-endian byte order (B, G, R, A per pixel), stride
// width*4, with premultiplied alpha.
//
// Labels are painted in sorted order, so the same inputs always produce the
// same bytes.
func Render(width, height int, hints hint.Map, style config.StyleConfig) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid frame size %dx%d", ErrRender, width, height)
	}
	if style.FontSize <= 0 {
		return nil, fmt.Errorf("%w: invalid font size %v", ErrRender, style.FontSize)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if len(hints) > 0 {
		face, err := loadFace(style.FontFamily, style.FontSize)
		if err != nil {
			return nil, err
		}
		defer face.Close()

		for _, label := range hints.Labels() {
			w := NewHintWidget(label, hints[label], face, style)
			if err := w.Render(img); err != nil {
				return nil, fmt.Errorf("%w: hint %q: %v", ErrRender, label, err)
			}
		}
	}

	return toARGB8888(img), nil
}

// toARGB8888 reorders image.RGBA's premultiplied R,G,B,A bytes to B,G,R,A.
func toARGB8888(img *image.RGBA) []byte {
	b := img.Bounds()
	out := make([]byte, b.Dx()*b.Dy()*4)
	for y := 0; y < b.Dy(); y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+b.Dx()*4]
		dst := out[y*b.Dx()*4:]
		for i := 0; i < len(src); i += 4 {
			dst[i+0] = src[i+2]
			dst[i+1] = src[i+1]
			dst[i+2] = src[i+0]
			dst[i+3] = src[i+3]
		}
	}
	return out
}
