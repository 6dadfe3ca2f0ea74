package picmix

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/phanxgames/picmix/pictureutil"
)

// Decoder turns a picture source into a drawable image.
type Decoder interface {
	Decode(ctx context.Context, url string) (image.Image, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(ctx context.Context, url string) (image.Image, error)

// Decode calls f(ctx, url).
func (f DecoderFunc) Decode(ctx context.Context, url string) (image.Image, error) {
	return f(ctx, url)
}

// SourceDecoder decodes base64 data URLs, http(s) URLs and local files
// (optionally prefixed with file://). PNG, JPEG, GIF, BMP and WebP are
// recognized.
type SourceDecoder struct {
	// Client fetches http(s) sources. Nil means http.DefaultClient.
	Client *http.Client
}

// Decode implements Decoder.
func (d SourceDecoder) Decode(ctx context.Context, url string) (image.Image, error) {
	var (
		r   io.Reader
		err error
	)
	switch {
	case pictureutil.IsDataURL(url):
		var data []byte
		if _, data, err = pictureutil.DecodeDataURL(url); err != nil {
			return nil, err
		}
		r = bytes.NewReader(data)
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		body, err := d.fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		defer body.Close()
		r = body
	default:
		path := strings.TrimPrefix(url, "file://")
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", shortURL(url), err)
	}
	return img, nil
}

func (d SourceDecoder) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: %s", url, resp.Status)
	}
	return resp.Body, nil
}

// shortURL keeps data URLs out of error messages and logs.
func shortURL(url string) string {
	if pictureutil.IsDataURL(url) {
		if meta, _, ok := strings.Cut(url, ","); ok {
			return meta + ",..."
		}
	}
	return url
}
