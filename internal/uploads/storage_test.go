package uploads

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, "http://localhost:8080")
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}

	url, err := store.SaveImage(bytes.NewReader(pngBytes(t, 40, 30)), "ceiling-photo.png")
	if err != nil {
		t.Fatalf("SaveImage error: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:8080/uploads/") {
		t.Fatalf("unexpected url %q", url)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Fatalf("stored object must be jpeg, got %q", url)
	}
	if !strings.Contains(url, "ceiling-photo") {
		t.Fatalf("expected slug trace in url, got %q", url)
	}

	name := url[strings.LastIndex(url, "/")+1:]
	if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
}

func TestSaveImageCyrillicName(t *testing.T) {
	store, err := NewStore(t.TempDir(), "http://localhost:8080")
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}
	url, err := store.SaveImage(bytes.NewReader(pngBytes(t, 10, 10)), "стеля.png")
	if err != nil {
		t.Fatalf("SaveImage error: %v", err)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestSaveImageResizesWideOriginals(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, "http://localhost:8080")
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}

	url, err := store.SaveImage(bytes.NewReader(pngBytes(t, 2000, 20)), "wide.png")
	if err != nil {
		t.Fatalf("SaveImage error: %v", err)
	}

	name := url[strings.LastIndex(url, "/")+1:]
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("open stored file: %v", err)
	}
	defer f.Close()

	img, err := jpeg.Decode(f)
	if err != nil {
		t.Fatalf("decode stored file: %v", err)
	}
	if img.Bounds().Dx() != maxImageWidth {
		t.Fatalf("expected width %d, got %d", maxImageWidth, img.Bounds().Dx())
	}
}

func TestSaveImageUnsupportedFormat(t *testing.T) {
	store, err := NewStore(t.TempDir(), "http://localhost:8080")
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}
	if _, err := store.SaveImage(bytes.NewReader([]byte("GIF89a")), "anim.gif"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
