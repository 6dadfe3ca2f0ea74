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

type runOpts struct {
	outDir string
	width  float64
	height float64
}

func (c *CLI) runCommand() *cobra.Command {
	opts := runOpts{outDir: ".", width: defaultWidth, height: defaultHeight}

	cmd := &cobra.Command{
		Use:   "run <script.json>",
		Short: "Play a gesture script and export its save steps",
		Long: `Run plays a JSON gesture script against a fresh canvas. Each save step
writes <index>_<label>.<ext> into the output directory. A canvas size in the
script wins over --width and --height.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScript(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "out-dir", "o", opts.outDir, "directory for saved images")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "canvas width when the script has none")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "canvas height when the script has none")

	return cmd
}

func (c *CLI) runScript(ctx context.Context, stdout io.Writer, path string, opts runOpts) error {
	logger := loggerFromContext(ctx)
	count := newTally(logger, "image")

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	script, err := picmix.LoadScript(data)
	if err != nil {
		return err
	}
	w, h := opts.width, opts.height
	if script.Width > 0 && script.Height > 0 {
		w, h = script.Width, script.Height
	}

	runner := picmix.NewRunner(script)
	runner.SetSaveOptions(picmix.SaveOptions{NoTempFile: true})
	m, err := c.newMixer(ctx, w, h, picmix.WithClock(runner.Clock()))
	if err != nil {
		return err
	}

	outs, err := runner.Run(ctx, m)
	if err != nil {
		return err
	}
	for i, out := range outs {
		name := fmt.Sprintf("%02d_%s%s", i, out.Label, out.Result.Format.Ext())
		dst := filepath.Join(opts.outDir, name)
		if err := writeFile(dst, out.Result.Data); err != nil {
			return err
		}
		logger.Debug("wrote", "path", dst, "bytes", len(out.Result.Data))
		count.add()
		fmt.Fprintln(stdout, dst)
	}
	logger.Debug("script done", "steps", len(script.Steps))
	count.done("saved")
	return nil
}
