package source

import (
	"image"
	"os"

	"github.com/disintegration/imaging"

	// Extra decode formats beyond the stdlib jpeg/png/gif.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/picket-studio/picket/pkg/errors"
)

// Load opens and decodes an image file. If maxWidth and maxHeight are both
// positive, the image is downscaled to fit within those bounds using Lanczos
// resampling while preserving aspect ratio; images already within the bounds
// are returned at their original size.
func Load(path string, maxWidth, maxHeight int) (image.Image, error) {
	if err := errors.ValidateImagePath(path); err != nil {
		return nil, err
	}

	img, err := imaging.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "image not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "failed to decode image: %s", path)
	}

	if maxWidth > 0 && maxHeight > 0 {
		b := img.Bounds()
		if b.Dx() > maxWidth || b.Dy() > maxHeight {
			img = imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
		}
	}

	return img, nil
}

// toNRGBA normalizes any decoded image to NRGBA for direct pixel access.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}
