// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging validates and normalizes uploaded creatives before they are
// forwarded to the backend: format check, size cap, EXIF orientation fix and
// downscaling of oversized images. Everything happens in memory.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/venuedesk/admin-go/internal/util"
)

// Validation failures.
var (
	ErrTooLarge    = errors.New("image exceeds the maximum upload size")
	ErrUnsupported = errors.New("unsupported image format")
)

// Options bounds what an uploaded creative may be.
type Options struct {
	MaxBytes int64 // hard cap on the encoded input
	MaxWidth int   // wider images are scaled down, 0 disables
	Quality  int   // JPEG quality for re-encoding, defaults to 90
}

// Creative is a validated, normalized image ready for multipart upload.
type Creative struct {
	Data     []byte
	Filename string
	MimeType string
	Width    int
	Height   int
}

// Prepare reads, validates and normalizes one uploaded image.
func Prepare(r io.Reader, filename string, opts Options) (*Creative, error) {
	if opts.Quality <= 0 {
		opts.Quality = 90
	}

	data, err := readCapped(r, opts.MaxBytes)
	if err != nil {
		return nil, err
	}

	format := detectFormat(data)
	if format == "" {
		return nil, ErrUnsupported
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))

	if opts.MaxWidth > 0 && img.Bounds().Dx() > opts.MaxWidth {
		img = imaging.Resize(img, opts.MaxWidth, 0, imaging.Lanczos)
	}

	encoded, outFormat, err := encodeImage(img, format, opts.Quality)
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}

	bounds := img.Bounds()
	return &Creative{
		Data:     encoded,
		Filename: normalizeFilename(filename, outFormat),
		MimeType: "image/" + outFormat,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
	}, nil
}

// readCapped reads at most maxBytes; anything beyond is an error rather than
// a truncation.
func readCapped(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}

// readExifOrientation returns the EXIF orientation tag, 1 when absent.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// encodeImage re-encodes the normalized image. WebP input is written out as
// JPEG since pure Go has no WebP encoder.
func encodeImage(img image.Image, format string, quality int) ([]byte, string, error) {
	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "png", nil
	case "gif":
		if err := gif.Encode(&buf, img, nil); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "gif", nil
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "jpeg", nil
	}
}

// detectFormat sniffs the image format. TIFF is rejected outright
// (CVE-2023-36308 in disintegration/imaging).
func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}

// normalizeFilename swaps the extension to match the output format and strips
// any directory components.
func normalizeFilename(filename, format string) string {
	base, err := util.SanitizeFilename(filename)
	if err != nil {
		base = "upload"
	}
	ext := "." + format
	if format == "jpeg" {
		ext = ".jpg"
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}
