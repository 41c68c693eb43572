// Package imaging converts uploaded images into a backend-compatible encoding.
package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"sort"
	"strings"

	_ "image/gif" // register decoder for gif uploads

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/config"
	"github.com/fraudshield/go-fraud-screening-pipeline/internal/logger"
)

// ImageData is a base64-encoded image with its MIME type
type ImageData struct {
	Base64   string `json:"base64" validate:"required"`
	MimeType string `json:"mimeType" validate:"required"`
}

// supportedMimeTypes is the fixed allow-list of encodings the scoring backend
// accepts. After normalization completes an image's MIME type is one of these
// or the original unconverted type (best-effort contract).
var supportedMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/gif":  true,
	"image/webp": true,
}

// acceptedInputMimeTypes lists what uploads may declare. HEIC/HEIF variants
// are accepted on input and converted when possible.
var acceptedInputMimeTypes = map[string]bool{
	"image/png":           true,
	"image/jpeg":          true,
	"image/jpg":           true,
	"image/gif":           true,
	"image/webp":          true,
	"image/heic":          true,
	"image/heif":          true,
	"image/heic-sequence": true,
}

// SupportedMimeTypes returns the backend allow-list, sorted
func SupportedMimeTypes() []string {
	return sortedKeys(supportedMimeTypes)
}

// AcceptedMimeTypes returns the upload allow-list, sorted
func AcceptedMimeTypes() []string {
	return sortedKeys(acceptedInputMimeTypes)
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Normalizer performs best-effort conversion of uploads to a supported encoding
type Normalizer struct {
	cfg config.ImageConfig
}

// NewNormalizer creates a normalizer with the given image constraints
func NewNormalizer(cfg config.ImageConfig) *Normalizer {
	return &Normalizer{cfg: cfg}
}

// IsSupported reports whether a MIME type is in the backend allow-list
func (n *Normalizer) IsSupported(mimeType string) bool {
	return supportedMimeTypes[strings.ToLower(strings.TrimSpace(mimeType))]
}

// IsAcceptedUpload reports whether a MIME type may be submitted at all
func (n *Normalizer) IsAcceptedUpload(mimeType string) bool {
	return acceptedInputMimeTypes[strings.ToLower(strings.TrimSpace(mimeType))]
}

// ValidateSize checks the decoded payload against the configured ceiling
func (n *Normalizer) ValidateSize(img ImageData) error {
	size := decodedSize(img.Base64)
	if size > n.cfg.MaxSizeBytes {
		return fmt.Errorf("image size %d bytes exceeds limit of %d bytes", size, n.cfg.MaxSizeBytes)
	}
	return nil
}

// Normalize converts the image to a supported encoding when needed and
// compresses large payloads. Normalization is best-effort: on any conversion
// failure the original image data is returned unchanged and the failure is
// logged, because downstream scoring tolerates unnormalized images and a
// screening request must not fail over a transcoding problem.
func (n *Normalizer) Normalize(ctx context.Context, img ImageData) ImageData {
	mimeType := strings.ToLower(strings.TrimSpace(img.MimeType))

	if n.IsSupported(mimeType) {
		if decodedSize(img.Base64) <= n.cfg.CompressionThreshold {
			return img
		}
		return n.compress(ctx, img)
	}

	converted, err := n.convertToPNG(img)
	if err != nil {
		logger.WarnCtx(ctx, "Image conversion failed, passing original through",
			"mime_type", img.MimeType,
			"error", err,
		)
		return img
	}

	logger.InfoCtx(ctx, "Image converted to supported encoding",
		"from_mime_type", img.MimeType,
		"to_mime_type", converted.MimeType,
	)

	if decodedSize(converted.Base64) > n.cfg.CompressionThreshold {
		return n.compress(ctx, converted)
	}
	return converted
}

// convertToPNG re-encodes the image as PNG via the registered stdlib decoders
func (n *Normalizer) convertToPNG(img ImageData) (ImageData, error) {
	raw, err := base64.StdEncoding.DecodeString(img.Base64)
	if err != nil {
		return ImageData{}, fmt.Errorf("invalid base64 payload: %w", err)
	}

	decoded, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return ImageData{}, fmt.Errorf("failed to decode %s image: %w", img.MimeType, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, decoded); err != nil {
		return ImageData{}, fmt.Errorf("failed to encode %s image as png: %w", format, err)
	}

	return ImageData{
		Base64:   base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType: "image/png",
	}, nil
}

// compress re-encodes a large image as JPEG at the configured quality.
// Failure falls back to the uncompressed input, same best-effort contract as
// conversion.
func (n *Normalizer) compress(ctx context.Context, img ImageData) ImageData {
	raw, err := base64.StdEncoding.DecodeString(img.Base64)
	if err != nil {
		logger.WarnCtx(ctx, "Image compression skipped, invalid base64", "error", err)
		return img
	}

	decoded, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		logger.WarnCtx(ctx, "Image compression skipped, decode failed",
			"mime_type", img.MimeType,
			"error", err,
		)
		return img
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, decoded, &jpeg.Options{Quality: n.cfg.CompressionQuality}); err != nil {
		logger.WarnCtx(ctx, "Image compression skipped, encode failed", "error", err)
		return img
	}

	// Compression that grows the payload is pointless
	if int64(buf.Len()) >= int64(len(raw)) {
		return img
	}

	logger.DebugCtx(ctx, "Image compressed",
		"original_bytes", len(raw),
		"compressed_bytes", buf.Len(),
	)

	return ImageData{
		Base64:   base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType: "image/jpeg",
	}
}

// decodedSize returns the byte size of the decoded base64 payload without
// decoding it
func decodedSize(b64 string) int64 {
	padding := int64(0)
	if strings.HasSuffix(b64, "==") {
		padding = 2
	} else if strings.HasSuffix(b64, "=") {
		padding = 1
	}
	return int64(len(b64))*3/4 - padding
}
