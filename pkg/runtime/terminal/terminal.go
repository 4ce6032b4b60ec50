package terminal

import (
	"io"
	"os"

	"github.com/costguard/costguard/pkg/runtime/terminal/commands"
	"github.com/costguard/costguard/pkg/runtime/terminal/export"
	"github.com/costguard/costguard/pkg/services/report"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	reports report.Controller
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Reports report.Controller
	Output  io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{reports: opts.Reports}
	cli.rootCmd = cli.newRootCmd(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd(output io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "costguard",
		Short: "Usage and commitment reporting tool",
	}

	cmd.AddCommand(commands.NewReportCmd(cli.reports, NewReporter(output), export.NewReporter(output)))

	return cmd
}
