package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phanxgames/picmix"
)

// composeOpts holds the command-line flags for the compose command.
type composeOpts struct {
	out     string  // output file; empty writes a temp file in the save dir
	width   float64 // canvas width
	height  float64 // canvas height
	format  string  // export format; empty infers from --out, then config
	quality float64 // JPEG quality in (0, 1]
}

func (c *CLI) composeCommand() *cobra.Command {
	opts := composeOpts{width: defaultWidth, height: defaultHeight}

	cmd := &cobra.Command{
		Use:   "compose <image>...",
		Short: "Fit images onto a canvas and export the result",
		Long:  `Compose adds each image the way a tap on "add" would: fitted into the configured fraction of the canvas and centered. The flattened canvas is then exported.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompose(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file (default: temp file in the save dir)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "canvas width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "canvas height")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "export format: png, jpeg or bmp")
	cmd.Flags().Float64VarP(&opts.quality, "quality", "q", 0, "JPEG quality in (0, 1]")

	return cmd
}

func (c *CLI) runCompose(ctx context.Context, stdout io.Writer, images []string, opts composeOpts) error {
	logger := loggerFromContext(ctx)
	count := newTally(logger, "picture")

	save, err := saveOptions(opts.out, opts.format, opts.quality)
	if err != nil {
		return err
	}
	m, err := c.newMixer(ctx, opts.width, opts.height)
	if err != nil {
		return err
	}
	for _, src := range images {
		p, err := m.Add(ctx, src)
		if err != nil {
			return err
		}
		logger.Debug("added", "src", src, "id", p.ID, "width", p.Width, "height", p.Height)
		count.add()
	}

	res, err := m.Save(ctx, save)
	if err != nil {
		return err
	}
	path := res.TempFilePath
	if opts.out != "" {
		if err := writeFile(opts.out, res.Data); err != nil {
			return err
		}
		path = opts.out
	}
	count.done("composed")
	fmt.Fprintln(stdout, path)
	return nil
}

// saveOptions builds the save options for an explicit output file. The
// format comes from the flag, then the file extension, then the config.
func saveOptions(out, format string, quality float64) (picmix.SaveOptions, error) {
	opts := picmix.SaveOptions{Quality: quality, NoTempFile: out != ""}
	switch {
	case format != "":
		f, err := picmix.ParseFormat(format)
		if err != nil {
			return opts, err
		}
		opts.Format = f
	case out != "":
		if f, err := picmix.ParseFormat(filepath.Ext(out)); err == nil {
			opts.Format = f
		}
	}
	return opts, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
