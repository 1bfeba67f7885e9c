package uploads

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"

	"github.com/khudyi/premium-steli/internal/utils"
)

const maxImageWidth = 1600

var ErrUnsupportedFormat = errors.New("unsupported image format")

// Store writes uploaded images onto disk and hands back stable public
// URLs. Once written an object is never touched again: uploads that end
// up unreferenced (cancelled drafts, failed batches) stay on disk, there
// is no garbage collection.
type Store struct {
	dir     string
	baseURL string
}

func NewStore(dir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// SaveImage decodes, downsizes and stores a single image, returning its
// public URL. Wide originals are scaled down to maxImageWidth and
// everything is re-encoded as JPEG, so the gallery serves uniformly
// sized assets regardless of what the admin picked.
func (s *Store) SaveImage(r io.Reader, originalName string) (string, error) {
	img, err := decode(r, originalName)
	if err != nil {
		return "", err
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = resize.Resize(maxImageWidth, 0, img, resize.Lanczos3)
	}

	name := objectName(originalName)
	path := filepath.Join(s.dir, name)

	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: 85}); err != nil {
		os.Remove(path)
		return "", err
	}

	return s.baseURL + "/uploads/" + name, nil
}

func decode(r io.Reader, originalName string) (image.Image, error) {
	switch strings.ToLower(filepath.Ext(originalName)) {
	case ".png":
		return png.Decode(r)
	case ".jpg", ".jpeg":
		return jpeg.Decode(r)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// objectName builds a collision-free file name, keeping a slugified
// trace of the original for operator friendliness. Cyrillic-only names
// slug to nothing, hence the fallback to the bare uuid.
func objectName(originalName string) string {
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	slug := utils.Slugify(base)
	id := uuid.New().String()
	if slug == "" {
		return fmt.Sprintf("%s.jpg", id)
	}
	return fmt.Sprintf("%s_%s.jpg", id, slug)
}
