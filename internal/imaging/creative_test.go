// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func testImage(t *testing.T, width, height int, encode func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func encodePNG(buf *bytes.Buffer, img image.Image) error { return png.Encode(buf, img) }

func encodeJPEG(buf *bytes.Buffer, img image.Image) error {
	return jpeg.Encode(buf, img, &jpeg.Options{Quality: 90})
}

func TestPreparePassesThroughSmallPNG(t *testing.T) {
	data := testImage(t, 100, 50, encodePNG)

	c, err := Prepare(bytes.NewReader(data), "banner.png", Options{MaxBytes: 1 << 20, MaxWidth: 2560})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if c.Width != 100 || c.Height != 50 {
		t.Errorf("dimensions = %dx%d", c.Width, c.Height)
	}
	if c.MimeType != "image/png" {
		t.Errorf("mime = %q", c.MimeType)
	}
	if c.Filename != "banner.png" {
		t.Errorf("filename = %q", c.Filename)
	}
}

func TestPrepareDownscalesWideImage(t *testing.T) {
	data := testImage(t, 400, 200, encodeJPEG)

	c, err := Prepare(bytes.NewReader(data), "wide.jpg", Options{MaxWidth: 200})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if c.Width != 200 {
		t.Errorf("width = %d, want 200", c.Width)
	}
	if c.Height != 100 {
		t.Errorf("height = %d, want 100 (aspect preserved)", c.Height)
	}
}

func TestPrepareRejectsOversizedUpload(t *testing.T) {
	data := testImage(t, 200, 200, encodePNG)

	_, err := Prepare(bytes.NewReader(data), "big.png", Options{MaxBytes: 10})
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("err = %v, want ErrTooLarge", err)
	}
}

func TestPrepareRejectsNonImage(t *testing.T) {
	_, err := Prepare(strings.NewReader("<html>not an image</html>"), "page.html", Options{})
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
}

func TestNormalizeFilenameStripsPath(t *testing.T) {
	if got := normalizeFilename("../../etc/passwd.png", "png"); got != "passwd.png" {
		t.Errorf("normalizeFilename = %q", got)
	}
	if got := normalizeFilename("photo.webp", "jpeg"); got != "photo.jpg" {
		t.Errorf("webp output should become .jpg, got %q", got)
	}
}
