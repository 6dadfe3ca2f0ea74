package cli

import (
	"github.com/spf13/cobra"

	"github.com/phanxgames/picmix/viewer"
)

type viewOpts struct {
	width  float64
	height float64
	grid   float64
	hud    bool
}

func (c *CLI) viewCommand() *cobra.Command {
	opts := viewOpts{width: defaultWidth, height: defaultHeight, grid: 25}

	cmd := &cobra.Command{
		Use:   "view [image]...",
		Short: "Open the interactive viewer",
		Long: `View opens a window on a canvas preloaded with the given images. Drag
pictures to move them and their corners to resize them. S saves, R rotates
and Delete removes the selected picture when allow_rotate and allow_remove
are set, F toggles the HUD and Escape quits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			m, err := c.newMixer(ctx, opts.width, opts.height)
			if err != nil {
				return err
			}
			v := viewer.New(m, viewer.Options{
				Title:    appName,
				ShowHUD:  opts.hud,
				GridCell: opts.grid,
				Logger:   logger,
			})
			defer v.Close()

			if err := m.Load(ctx); err != nil {
				return err
			}
			for _, src := range args {
				if _, err := m.Add(ctx, src); err != nil {
					return err
				}
			}
			return viewer.Run(ctx, v)
		},
	}

	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "canvas width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "canvas height")
	cmd.Flags().Float64Var(&opts.grid, "grid", opts.grid, "background grid cell size, 0 for none")
	cmd.Flags().BoolVar(&opts.hud, "hud", false, "show the FPS HUD")

	return cmd
}
