package valueobjects

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"os"

	_ "golang.org/x/image/webp"
)

type ImageFormat string

const (
	JPEG ImageFormat = "jpeg"
	PNG  ImageFormat = "png"
	GIF  ImageFormat = "gif"
	WEBP ImageFormat = "webp"
)

type MimeType string

const (
	MimeTypePNG  MimeType = "image/png"
	MimeTypeJPEG MimeType = "image/jpeg"
	MimeTypeGIF  MimeType = "image/gif"
	MimeTypeWEBP MimeType = "image/webp"
)

// ImageData is an encoded image together with its detected container format.
type ImageData struct {
	data   []byte
	format ImageFormat
}

func NewImageData(data []byte) (*ImageData, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("image data cannot be empty")
	}

	format, err := detectFormat(data)
	if err != nil {
		return nil, fmt.Errorf("unsupported image format: %w", err)
	}

	return &ImageData{
		data:   data,
		format: format,
	}, nil
}

// LoadImageFile reads path and validates that it holds a decodable image.
func LoadImageFile(path string) (*ImageData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", path, err)
	}

	img, err := NewImageData(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

func (i *ImageData) Data() []byte {
	return i.data
}

func (i *ImageData) Format() ImageFormat {
	return i.format
}

func (i *ImageData) MimeType() MimeType {
	switch i.format {
	case PNG:
		return MimeTypePNG
	case GIF:
		return MimeTypeGIF
	case WEBP:
		return MimeTypeWEBP
	default:
		return MimeTypeJPEG
	}
}

func (i *ImageData) IsJPEG() bool {
	return i.format == JPEG
}

func (i *ImageData) IsPNG() bool {
	return i.format == PNG
}

// Normalize re-encodes the image as an opaque 8-bit RGB PNG.
// Alpha is dropped, not composited. No resizing or orientation handling.
func (i *ImageData) Normalize() (*ImageData, error) {
	img, err := i.decodeRGB()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode to PNG: %w", err)
	}

	return &ImageData{
		data:   buf.Bytes(),
		format: PNG,
	}, nil
}

// ToJPEG decodes the image, flattens it to RGB and encodes it as JPEG.
// Unlike Normalize it always re-encodes, even when the source is already JPEG.
func (i *ImageData) ToJPEG(quality int) (*ImageData, error) {
	img, err := i.decodeRGB()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	opts := &jpeg.Options{Quality: quality}
	if err := jpeg.Encode(&buf, img, opts); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	return &ImageData{
		data:   buf.Bytes(),
		format: JPEG,
	}, nil
}

func (i *ImageData) decodeRGB() (*image.RGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(i.data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return toRGB(img), nil
}

// toRGB copies src into a fully opaque RGBA image, keeping the
// unpremultiplied colour of each pixel.
func toRGB(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			dst.SetRGBA(x-b.Min.X, y-b.Min.Y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return dst
}

func detectFormat(data []byte) (ImageFormat, error) {
	reader := bytes.NewReader(data)
	_, format, err := image.DecodeConfig(reader)
	if err != nil {
		return "", err
	}

	switch format {
	case "jpeg":
		return JPEG, nil
	case "png":
		return PNG, nil
	case "gif":
		return GIF, nil
	case "webp":
		return WEBP, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}
