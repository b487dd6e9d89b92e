package favicon

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"net/url"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	errNotImage   = errors.New("not an image")
	errBadDataURI = errors.New("malformed data URI")

	icoMagic = []byte{0x00, 0x00, 0x01, 0x00}
)

// validateImage accepts bodies that decode with a registered image format,
// ICO files by their header, and SVG documents.
func validateImage(body []byte, contentType string) error {
	if len(body) == 0 {
		return errNotImage
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(body)); err == nil {
		return nil
	}
	if isICO(body) || isSVG(body, contentType) {
		return nil
	}
	return errNotImage
}

// isICO checks the ICONDIR header: reserved 0, type 1, at least one image.
func isICO(body []byte) bool {
	return len(body) >= 6 &&
		bytes.HasPrefix(body, icoMagic) &&
		(body[4] != 0 || body[5] != 0)
}

func isSVG(body []byte, contentType string) bool {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType == "image/svg+xml" {
		return true
	}
	head := strings.TrimSpace(string(body[:min(len(body), 512)]))
	if strings.HasPrefix(head, "<svg") {
		return true
	}
	return strings.HasPrefix(head, "<?xml") && strings.Contains(head, "<svg")
}

// decodeDataURI splits an RFC 2397 data URI into its payload and media type.
func decodeDataURI(uri string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, "", errBadDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", errBadDataURI
	}

	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %w", errBadDataURI, err)
		}
		return data, mediaType, nil
	}

	text, err := url.PathUnescape(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", errBadDataURI, err)
	}
	return []byte(text), mediaType, nil
}
