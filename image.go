package folio

import (
	"encoding/base64"
	"fmt"
	"slices"
	"strings"
)

// ImageSize selects the resolution tier of a generated image.
type ImageSize string

const (
	ImageSize1K ImageSize = "1K"
	ImageSize2K ImageSize = "2K"
	ImageSize4K ImageSize = "4K"
)

// ImageSizes lists every supported size in ascending order.
var ImageSizes = []ImageSize{ImageSize1K, ImageSize2K, ImageSize4K}

// HighQuality reports whether the size is served by the high-capability
// image model with an explicit size parameter.
func (s ImageSize) HighQuality() bool {
	return s == ImageSize2K || s == ImageSize4K
}

// ParseImageSize parses "1K", "2K" or "4K" (case-insensitive).
func ParseImageSize(s string) (ImageSize, error) {
	size := ImageSize(strings.ToUpper(strings.TrimSpace(s)))
	for _, v := range ImageSizes {
		if v == size {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown image size %q: %w", s, ErrValidation)
}

// AspectRatio is passed verbatim to the image model.
type AspectRatio string

const (
	AspectRatio1x1  AspectRatio = "1:1"
	AspectRatio2x3  AspectRatio = "2:3"
	AspectRatio3x2  AspectRatio = "3:2"
	AspectRatio3x4  AspectRatio = "3:4"
	AspectRatio4x3  AspectRatio = "4:3"
	AspectRatio9x16 AspectRatio = "9:16"
	AspectRatio16x9 AspectRatio = "16:9"
	AspectRatio21x9 AspectRatio = "21:9"
)

// AspectRatios lists every supported ratio.
var AspectRatios = []AspectRatio{
	AspectRatio1x1, AspectRatio2x3, AspectRatio3x2, AspectRatio3x4,
	AspectRatio4x3, AspectRatio9x16, AspectRatio16x9, AspectRatio21x9,
}

// ParseAspectRatio parses one of the supported ratio strings.
func ParseAspectRatio(s string) (AspectRatio, error) {
	ratio := AspectRatio(strings.TrimSpace(s))
	for _, v := range AspectRatios {
		if v == ratio {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown aspect ratio %q: %w", s, ErrValidation)
}

// ImageRequest carries the inputs of an image generation.
type ImageRequest struct {
	Prompt string
	Size   ImageSize
	Ratio  AspectRatio
}

// Validate checks that the prompt is non-empty and size and ratio are known.
func (r ImageRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return fmt.Errorf("prompt is empty: %w", ErrValidation)
	}
	if !slices.Contains(ImageSizes, r.Size) {
		return fmt.Errorf("unknown image size %q: %w", r.Size, ErrValidation)
	}
	if !slices.Contains(AspectRatios, r.Ratio) {
		return fmt.Errorf("unknown aspect ratio %q: %w", r.Ratio, ErrValidation)
	}
	return nil
}

// PNGDataURI encodes image bytes as a data:image/png;base64 URI.
func PNGDataURI(data []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI splits a base64 data URI into its MIME type and decoded
// bytes. A bare base64 string without prefix is accepted as image/png.
func DecodeDataURI(uri string) (mimeType string, data []byte, err error) {
	mimeType = "image/png"
	payload := strings.TrimSpace(uri)
	if rest, ok := strings.CutPrefix(payload, "data:"); ok {
		header, body, found := strings.Cut(rest, ",")
		if !found {
			return "", nil, fmt.Errorf("data URI has no payload: %w", ErrValidation)
		}
		meta, isBase64 := strings.CutSuffix(header, ";base64")
		if !isBase64 {
			return "", nil, fmt.Errorf("data URI is not base64 encoded: %w", ErrValidation)
		}
		if meta != "" {
			mimeType = meta
		}
		payload = body
	}
	if payload == "" {
		return "", nil, fmt.Errorf("image payload is empty: %w", ErrValidation)
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode image payload: %v: %w", err, ErrValidation)
	}
	return mimeType, data, nil
}
