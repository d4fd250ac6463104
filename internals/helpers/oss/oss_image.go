// internals/helpers/oss/oss_image.go
package helper

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"golang.org/x/image/draw"
)

/* =======================================================================
   Konfigurasi WebP
======================================================================= */

type WebPOptions struct {
	MaxW    int     // batas lebar (resize keep-aspect)
	MaxH    int     // batas tinggi
	Quality float32 // quality encode
	ThumbW  int     // lebar thumbnail (0 = tanpa thumbnail)
}

func defaultWebPOptions() WebPOptions {
	return WebPOptions{
		MaxW:    1600,
		MaxH:    1600,
		Quality: 80,
		ThumbW:  480,
	}
}

/* =======================================================================
   Decode gambar (jpeg/png/webp) dari []byte dengan sniff sederhana
======================================================================= */

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return jpeg.Decode(bytes.NewReader(all))
	case ".png":
		return png.Decode(bytes.NewReader(all))
	case ".webp":
		return webp.Decode(bytes.NewReader(all))
	}
	// fallback: coba satu per satu
	if img, err := jpeg.Decode(bytes.NewReader(all)); err == nil {
		return img, nil
	}
	if img, err := png.Decode(bytes.NewReader(all)); err == nil {
		return img, nil
	}
	if img, err := webp.Decode(bytes.NewReader(all)); err == nil {
		return img, nil
	}
	return nil, fmt.Errorf("format tidak didukung (pakai jpg/png/webp)")
}

func downscaleIfNeeded(src image.Image, maxW, maxH int) image.Image {
	if maxW <= 0 && maxH <= 0 {
		return src
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if (maxW > 0 && w > maxW) || (maxH > 0 && h > maxH) {
		scale := 1.0
		if maxW > 0 {
			scale = math.Min(scale, float64(maxW)/float64(w))
		}
		if maxH > 0 {
			scale = math.Min(scale, float64(maxH)/float64(h))
		}
		nw := int(math.Round(float64(w) * scale))
		nh := int(math.Round(float64(h) * scale))
		if nw < 1 {
			nw = 1
		}
		if nh < 1 {
			nh = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		return dst
	}
	return src
}

// ConvertToWebP: baca → decode → resize (opsional) → encode webp
func ConvertToWebP(file multipart.File, filename string) ([]byte, error) {
	opts := defaultWebPOptions()
	all, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	img, err := decodeImage(all, filename)
	if err != nil {
		return nil, err
	}

	img = downscaleIfNeeded(img, opts.MaxW, opts.MaxH)

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: opts.Quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

/* =======================================================================
   Upload image ke OSS (re-encode WebP) + optional thumbnail
======================================================================= */

// UploadAsWebP: recompress ke webp, upload, return (publicURL, thumbnailURL, error).
// Thumbnail pakai imaging.Resize (Lanczos) supaya hasilnya tajam di kartu list.
func (s *OSSService) UploadAsWebP(ctx context.Context, fh *multipart.FileHeader, keyPrefix string) (string, string, error) {
	if fh == nil {
		return "", "", fmt.Errorf("nil file header")
	}
	if fh.Size > maxUploadSize {
		return "", "", fmt.Errorf("file too large (max %d bytes)", maxUploadSize)
	}
	opt := defaultWebPOptions()

	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	all, err := io.ReadAll(src)
	if err != nil {
		return "", "", err
	}

	img, err := decodeImage(all, fh.Filename)
	if err != nil {
		return "", "", fiber.NewError(fiber.StatusUnsupportedMediaType, "Unsupported image format (pakai jpg/png/webp)")
	}

	main := downscaleIfNeeded(img, opt.MaxW, opt.MaxH)
	mainBuf := new(bytes.Buffer)
	if err := webp.Encode(mainBuf, main, &webp.Options{Lossless: false, Quality: opt.Quality}); err != nil {
		return "", "", err
	}

	// ganti ekstensi jadi .webp
	base := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
	key := s.buildObjectKey(base + ".webp")
	if keyPrefix != "" {
		key = strings.Trim(keyPrefix, "/") + "/" + key
	}

	putOpts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType("image/webp"),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.Bucket.PutObject(key, bytes.NewReader(mainBuf.Bytes()), putOpts...); err != nil {
		return "", "", err
	}

	thumbURL := ""
	if opt.ThumbW > 0 && main.Bounds().Dx() > opt.ThumbW {
		thumb := imaging.Resize(main, opt.ThumbW, 0, imaging.Lanczos)
		thumbBuf := new(bytes.Buffer)
		if err := webp.Encode(thumbBuf, thumb, &webp.Options{Lossless: false, Quality: opt.Quality}); err == nil {
			thumbKey := strings.TrimSuffix(key, ".webp") + "_thumb.webp"
			if err := s.Bucket.PutObject(thumbKey, bytes.NewReader(thumbBuf.Bytes()), putOpts...); err == nil {
				thumbURL = s.PublicURL(thumbKey)
			}
		}
	}

	return s.PublicURL(key), thumbURL, nil
}

// GetImageFile util untuk ambil file multipart dari beberapa nama field umum.
func GetImageFile(c *fiber.Ctx, fieldNames ...string) (*multipart.FileHeader, error) {
	if len(fieldNames) == 0 {
		fieldNames = []string{"image", "file", "photo"}
	}
	for _, name := range fieldNames {
		if fh, err := c.FormFile(name); err == nil && fh != nil {
			return fh, nil
		}
	}
	return nil, fiber.NewError(fiber.StatusBadRequest, "File gambar tidak ditemukan")
}
