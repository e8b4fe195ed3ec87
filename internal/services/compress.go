package services

import (
	"bytes"

	"github.com/disintegration/imaging"
)

const (
	maxImageDimension = 1600
	jpegQuality       = 80
)

// CompressImage re-encodes an uploaded image: orient by EXIF, fit
// inside 1600x1600 without enlarging, JPEG quality 80. When the
// re-encoded bytes come out larger than the original, the original is
// kept as-is.
func CompressImage(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxImageDimension || bounds.Dy() > maxImageDimension {
		img = imaging.Fit(img, maxImageDimension, maxImageDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, err
	}

	if buf.Len() < len(data) {
		return buf.Bytes(), nil
	}
	return data, nil
}
