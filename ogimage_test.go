package folio

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/eringen/folio/content"
)

func decodeOG(t *testing.T, b []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("decode jpeg: %v", err)
	}
	if got := img.Bounds(); got.Dx() != OGWidth || got.Dy() != OGHeight {
		t.Fatalf("size = %dx%d, want %dx%d", got.Dx(), got.Dy(), OGWidth, OGHeight)
	}
	return img
}

func TestOGImagePlainCard(t *testing.T) {
	o := NewOGImage("")
	b, err := o.Bytes(content.Profile{Name: "Jane Doe", Role: "Engineer"})
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	decodeOG(t, b)

	again, _ := o.Bytes(content.Profile{Name: "Someone Else"})
	if !bytes.Equal(b, again) {
		t.Error("card should be computed once")
	}
}

func TestOGImageFromSource(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 400))
	for y := 0; y < 400; y++ {
		for x := 0; x < 400; x++ {
			src.Set(x, y, color.RGBA{R: 0xff, A: 0xff})
		}
	}
	path := filepath.Join(t.TempDir(), "source.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	b, err := NewOGImage(path).Bytes(content.Profile{Name: "Jane"})
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	img := decodeOG(t, b)

	// The top-left corner is the shaded source, so red dominates.
	r, g, _, _ := img.At(5, 5).RGBA()
	if r <= g {
		t.Errorf("expected the source to show through, got r=%d g=%d", r, g)
	}
}

func TestOGImageMissingSourceFallsBack(t *testing.T) {
	b, err := NewOGImage(filepath.Join(t.TempDir(), "missing.png")).Bytes(content.Profile{Name: "Jane"})
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	decodeOG(t, b)
}

func TestDecodeImageFileRejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.png")
	if err := os.WriteFile(path, []byte("just some text"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := decodeImageFile(path); err == nil {
		t.Fatal("expected text file to be rejected")
	}
	b, err := NewOGImage(path).Bytes(content.Profile{Name: "Jane"})
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	decodeOG(t, b)
}

func TestCoverCropsToAspect(t *testing.T) {
	// Wide source: left half blue, right half green. Cover keeps the centre.
	src := image.NewRGBA(image.Rect(0, 0, 400, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 400; x++ {
			c := color.RGBA{B: 0xff, A: 0xff}
			if x >= 200 {
				c = color.RGBA{G: 0xff, A: 0xff}
			}
			src.Set(x, y, c)
		}
	}
	dst := image.NewRGBA(image.Rect(0, 0, 120, 63))
	cover(dst, src)

	left := dst.RGBAAt(2, 30)
	right := dst.RGBAAt(117, 30)
	if left.B < 0x80 || right.G < 0x80 {
		t.Errorf("unexpected crop: left=%v right=%v", left, right)
	}
}
