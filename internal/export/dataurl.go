package export

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"SignPad/internal/render"
	"SignPad/internal/state"
)

// ErrBadDataURL is returned for strings that are not base64 image data URLs.
var ErrBadDataURL = errors.New("not a base64 image data URL")

// DataURL encodes the bitmap as a PNG data URL.
func DataURL(r *render.Raster) (string, error) {
	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeDataURL decodes a PNG or JPEG data URL.
func DecodeDataURL(url string) (image.Image, error) {
	rest, ok := strings.CutPrefix(url, "data:")
	if !ok {
		return nil, ErrBadDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasPrefix(meta, "image/") || !strings.HasSuffix(meta, ";base64") {
		return nil, ErrBadDataURL
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDataURL, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// ReadHistory loads serialized history from a file.
func ReadHistory(path string) (state.History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return state.ParseHistory(string(data))
}

// WriteHistory stores serialized history in a file.
func WriteHistory(path string, h state.History) error {
	text, err := h.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}
