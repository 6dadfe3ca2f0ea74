package picmix

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/bmp"

	"github.com/phanxgames/picmix/pictureutil"
)

// defaultJPEGQuality applies when a quality outside (0, 1] is requested.
const defaultJPEGQuality = 92

// Encoder writes a flattened image in an export format.
type Encoder interface {
	Encode(ctx context.Context, w io.Writer, img image.Image, format Format, quality float64) error
}

// StdEncoder encodes PNG, JPEG and BMP.
type StdEncoder struct{}

// Encode implements Encoder. Quality in (0, 1] maps to JPEG quality 1..100;
// other formats ignore it.
func (StdEncoder) Encode(ctx context.Context, w io.Writer, img image.Image, format Format, quality float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality(quality)})
	case FormatBMP:
		return bmp.Encode(w, img)
	default:
		return newError(ErrCodeUnsupported, "cannot encode %q", format)
	}
}

func jpegQuality(q float64) int {
	if q <= 0 || q > 1 {
		return defaultJPEGQuality
	}
	return max(1, int(math.Round(q*100)))
}

// SaveOptions override the configured save section for one call. Zero
// fields fall back to Config.Save.
type SaveOptions struct {
	Format  Format
	Quality float64
	// Dir overrides Config.Save.Dir for the temp file.
	Dir string
	// NoTempFile skips writing the temp file.
	NoTempFile bool
}

// SaveResult is one export of the flattened scene.
type SaveResult struct {
	// Image is a copy of the flattened raster.
	Image *image.RGBA
	// Data is the encoded file.
	Data []byte
	// Base64 is Data as a data URL.
	Base64 string
	// TempFilePath is where Data was written, empty with NoTempFile.
	TempFilePath string
	Format       Format
	// Width and Height are the canvas size in canvas units.
	Width, Height float64
}

// Save flattens the scene onto the result layer, encodes it and writes it
// to a timestamped temp file. The result layer is cleared whatever the
// outcome.
func (m *Mixer) Save(ctx context.Context, opts SaveOptions) (*SaveResult, error) {
	format := opts.Format
	if format == "" {
		format = m.cfg.Save.Format
	}
	quality := opts.Quality
	if quality == 0 {
		quality = m.cfg.Save.Quality
	}

	result := m.layers[LayerResult]
	defer result.Clear()
	m.flatten()

	img := cloneRGBA(result.Image())
	var buf bytes.Buffer
	if err := m.encoder.Encode(ctx, &buf, img, format, quality); err != nil {
		if Is(err, ErrCodeUnsupported) {
			return nil, err
		}
		return nil, wrapError(ErrCodeEncodeFailure, err, "encode %s", format)
	}

	res := &SaveResult{
		Image:  img,
		Data:   buf.Bytes(),
		Base64: pictureutil.EncodeDataURL(string(format), buf.Bytes()),
		Format: format,
		Width:  m.width,
		Height: m.height,
	}
	if !opts.NoTempFile {
		dir := opts.Dir
		if dir == "" {
			dir = m.cfg.Save.Dir
		}
		path, err := m.writeTemp(dir, format, res.Data)
		if err != nil {
			return nil, wrapError(ErrCodeEncodeFailure, err, "write temp file")
		}
		res.TempFilePath = path
	}
	m.log.Debug("saved", "format", format, "bytes", len(res.Data), "path", res.TempFilePath)
	return res, nil
}

// writeTemp writes data to a new timestamped file in dir (os.TempDir() when
// empty) and returns its path.
func (m *Mixer) writeTemp(dir string, format Format, data []byte) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	stamp := m.clock.Now().Format("20060102_150405")
	f, err := os.CreateTemp(dir, "picmix_"+stamp+"_*"+format.Ext())
	if err != nil {
		return "", fmt.Errorf("create temp in %s: %w", dir, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", f.Name(), err)
	}
	return f.Name(), f.Close()
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
