package overlay

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/bryanchriswhite/FocusHint/internal/config"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// cornerRadius of hint boxes in pixels.
const cornerRadius = 5

// kappa places cubic Bézier control points for a quarter circle.
const kappa = 0.5522847498

// Widget is something drawn onto the overlay frame.
type Widget interface {
	// Render draws the widget onto img at its configured position.
	Render(img *image.RGBA) error
}

// HintWidget is one hint: a rounded box at the window's top-left corner with
// the label inside.
type HintWidget struct {
	label  string
	x, y   int
	face   font.Face
	size   float64
	margin float64
	bg     color.NRGBA
	fg     color.NRGBA
}

// NewHintWidget builds the widget for label over window w.
func NewHintWidget(label string, w *config.DesktopWindow, face font.Face, style config.StyleConfig) *HintWidget {
	return &HintWidget{
		label:  label,
		x:      w.Geometry.X,
		y:      w.Geometry.Y,
		face:   face,
		size:   style.FontSize,
		margin: style.FontSize * style.Margin,
		bg:     style.Background(w.Focused).NRGBA(),
		fg:     style.Foreground(w.Focused).NRGBA(),
	}
}

// ink returns the label's ink bounds relative to the dot.
func (w *HintWidget) ink() fixed.Rectangle26_6 {
	bounds, _ := font.BoundString(w.face, w.label)
	return bounds
}

// Size returns the box size: ink width or font size, plus the margin on
// both sides.
func (w *HintWidget) Size() (width, height float64) {
	b := w.ink()
	return fromFixed(b.Max.X-b.Min.X) + 2*w.margin, w.size + 2*w.margin
}

func (w *HintWidget) Render(img *image.RGBA) error {
	boxW, boxH := w.Size()
	fillRoundedRect(img, w.x, w.y, boxW, boxH, cornerRadius, w.bg)

	// Left-align the ink at the margin and center it vertically.
	b := w.ink()
	inkH := fromFixed(b.Max.Y - b.Min.Y)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(w.fg),
		Face: w.face,
		Dot: fixed.Point26_6{
			X: fixed.I(w.x) + toFixed(w.margin) - b.Min.X,
			Y: fixed.I(w.y) + toFixed((boxH-inkH)/2) - b.Min.Y,
		},
	}
	d.DrawString(w.label)
	return nil
}

// fillRoundedRect composites a w×h rounded rectangle with top-left corner
// (x, y) over dst.
func fillRoundedRect(dst *image.RGBA, x, y int, w, h, r float64, c color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	r = math.Min(r, math.Min(w, h)/2)

	mw, mh := int(math.Ceil(w)), int(math.Ceil(h))
	z := vector.NewRasterizer(mw, mh)
	fw, fh, fr := float32(w), float32(h), float32(r)
	k := float32(kappa) * fr

	z.MoveTo(fr, 0)
	z.LineTo(fw-fr, 0)
	z.CubeTo(fw-fr+k, 0, fw, fr-k, fw, fr)
	z.LineTo(fw, fh-fr)
	z.CubeTo(fw, fh-fr+k, fw-fr+k, fh, fw-fr, fh)
	z.LineTo(fr, fh)
	z.CubeTo(fr-k, fh, 0, fh-fr+k, 0, fh-fr)
	z.LineTo(0, fr)
	z.CubeTo(0, fr-k, fr-k, 0, fr, 0)
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, mw, mh))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	r0 := image.Rect(x, y, x+mw, y+mh)
	draw.DrawMask(dst, r0, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
