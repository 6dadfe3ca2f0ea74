package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/phanxgames/picmix"
	"github.com/phanxgames/picmix/internal/cli"
)

// Exit codes. Bad input (config, script, format) is told apart from
// failures while decoding or encoding pictures.
const (
	exitOK          = 0
	exitFailure     = 1
	exitBadInput    = 2
	exitInterrupted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var verbose, quiet bool

	c := cli.New(stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SilenceErrors = true
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output, including every scene change")
	root.PersistentFlags().BoolVar(&quiet, "quiet", false, "log errors only")

	attachLogger := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		switch {
		case verbose:
			c.SetLogLevel(cli.LogDebug)
		case quiet:
			c.SetLogLevel(cli.LogError)
		}
		return attachLogger(cmd, args)
	}

	err := root.ExecuteContext(ctx)
	code := exitCode(err)
	if code != exitOK && code != exitInterrupted {
		fmt.Fprintf(stderr, "picmix: %v\n", err)
	}
	return code
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	}
	switch picmix.CodeOf(err) {
	case picmix.ErrCodeInvalidConfig, picmix.ErrCodeInvalidScript, picmix.ErrCodeUnsupported:
		return exitBadInput
	}
	return exitFailure
}
