package folio

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/log"
)

const (
	OGWidth  = 1200
	OGHeight = 630

	jpegQuality = 80
	// text is drawn at 1/ogTextScale and scaled up with the rest of the card.
	ogTextScale = 3
)

var (
	ogBackground = color.RGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}
	ogAccent     = color.RGBA{R: 0x60, G: 0xa5, B: 0xfa, A: 0xff}
	ogText       = color.RGBA{R: 0xf9, G: 0xfa, B: 0xfb, A: 0xff}
	ogShade      = color.RGBA{A: 0x99}
)

// OGImage renders the Open Graph card served at /og-image.jpg. The result is
// computed once and reused.
type OGImage struct {
	source string

	mu   sync.Mutex
	data []byte
}

// NewOGImage returns a renderer that uses the image at source as the card
// background. An empty source renders a plain card.
func NewOGImage(source string) *OGImage {
	return &OGImage{source: source}
}

// Bytes returns the JPEG-encoded card for p.
func (o *OGImage) Bytes(p content.Profile) ([]byte, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.data != nil {
		return o.data, nil
	}

	var bg image.Image
	if o.source != "" {
		img, err := decodeImageFile(o.source)
		if err != nil {
			log.S().Warnw("og image source unusable, using plain card", "path", o.source, "error", err)
		} else {
			bg = img
		}
	}
	b, err := renderOGImage(bg, p)
	if err != nil {
		return nil, err
	}
	o.data = b
	return b, nil
}

func decodeImageFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return nil, fmt.Errorf("not an image: %s", mime.String())
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// renderOGImage draws the card: bg scaled to cover the canvas, or a plain
// fill when bg is nil, with the name and role in the lower left corner.
func renderOGImage(bg image.Image, p content.Profile) ([]byte, error) {
	dst := image.NewRGBA(image.Rect(0, 0, OGWidth, OGHeight))
	if bg != nil {
		cover(dst, bg)
		draw.Draw(dst, dst.Bounds(), image.NewUniform(ogShade), image.Point{}, draw.Over)
	} else {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(ogBackground), image.Point{}, draw.Src)
	}
	draw.Draw(dst, image.Rect(0, OGHeight-12, OGWidth, OGHeight), image.NewUniform(ogAccent), image.Point{}, draw.Src)

	text := image.NewRGBA(image.Rect(0, 0, OGWidth/ogTextScale, OGHeight/ogTextScale))
	d := &font.Drawer{
		Dst:  text,
		Src:  image.NewUniform(ogText),
		Face: basicfont.Face7x13,
	}
	d.Dot = fixed.P(20, text.Bounds().Dy()-40)
	d.DrawString(p.Name)
	d.Dot = fixed.P(20, text.Bounds().Dy()-22)
	d.DrawString(p.Role)
	draw.CatmullRom.Scale(dst, dst.Bounds(), text, text.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// cover scales src to fill dst, cropping the overflowing dimension evenly.
func cover(dst *image.RGBA, src image.Image) {
	sb := src.Bounds()
	db := dst.Bounds()
	sw, sh := sb.Dx(), sb.Dy()
	if sw == 0 || sh == 0 {
		return
	}
	crop := sb
	if sw*db.Dy() > sh*db.Dx() {
		w := sh * db.Dx() / db.Dy()
		crop.Min.X = sb.Min.X + (sw-w)/2
		crop.Max.X = crop.Min.X + w
	} else {
		h := sw * db.Dy() / db.Dx()
		crop.Min.Y = sb.Min.Y + (sh-h)/2
		crop.Max.Y = crop.Min.Y + h
	}
	draw.CatmullRom.Scale(dst, db, src, crop, draw.Src, nil)
}
