package pictureutil

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// MIME types understood by the data URL helpers.
const (
	MIMEPNG  = "image/png"
	MIMEJPEG = "image/jpeg"
)

// ErrDataURL is returned for malformed data URLs.
var ErrDataURL = errors.New("pictureutil: malformed data URL")

// IsDataURL reports whether s looks like a data URL.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// EncodeDataURL returns "data:<mime>;base64,<payload>".
func EncodeDataURL(mime string, data []byte) string {
	var b strings.Builder
	b.Grow(len("data:;base64,") + len(mime) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString("data:")
	b.WriteString(mime)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}

// DecodeDataURL splits a base64 data URL into its MIME type and payload.
// Only base64 payloads are supported.
func DecodeDataURL(s string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrDataURL
	}
	mime, enc, _ := strings.Cut(meta, ";")
	if enc != "base64" {
		return "", nil, fmt.Errorf("%w: unsupported encoding %q", ErrDataURL, enc)
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrDataURL, err)
	}
	return mime, data, nil
}
