// Package cli implements the picmix command-line interface.
//
// # Commands
//
//   - compose: fit images onto a canvas and export the flattened result
//   - run: play a JSON gesture script and export its save steps
//   - view: open the interactive viewer
//   - config: print the resolved configuration as TOML
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/picmix"
)

const appName = "picmix"

// Default canvas size in canvas units.
const (
	defaultWidth  = 750
	defaultHeight = 750
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogError = log.ErrorLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. Debug level also reports callers.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	c.Logger.SetReportCaller(level <= log.DebugLevel)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Picmix composes pictures on a canvas",
		Long:         `Picmix lays pictures out on a fixed canvas, lets you move, resize and rotate them with touch gestures and exports the flattened result.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "TOML configuration file")

	root.AddCommand(c.composeCommand())
	root.AddCommand(c.runCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.configCommand())

	return root
}

// loadConfig resolves defaults, the --config file and PICMIX_* overrides.
func (c *CLI) loadConfig() (picmix.Config, error) {
	return picmix.LoadConfig(c.configPath)
}

// newMixer builds a mixer from the resolved configuration using the
// context's logger, which also traces scene changes.
func (c *CLI) newMixer(ctx context.Context, w, h float64, opts ...picmix.Option) (*picmix.Mixer, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	logger := loggerFromContext(ctx)
	opts = append([]picmix.Option{picmix.WithLogger(logger)}, opts...)
	m, err := picmix.NewMixer(w, h, cfg, opts...)
	if err != nil {
		return nil, err
	}
	traceScene(logger, m)
	return m, nil
}
