package terminal

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/debt-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/debt-atlas/pkg/runtime/terminal/export"
)

// CLI represents the command-line interface
type CLI struct {
	reporter *export.Reporter
	logger   zerolog.Logger
	output   io.Writer
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Logger zerolog.Logger
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		reporter: export.NewReporter(opts.Output),
		logger:   opts.Logger,
		output:   opts.Output,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debtatlas",
		Short: "PPG bilateral debt analysis tool",
	}

	cmd.AddCommand(commands.NewFetchCmd(cli.logger))
	cmd.AddCommand(commands.NewReportCmd(cli.reporter))
	cmd.AddCommand(commands.NewCountriesCmd(cli.output))

	return cmd
}
