// Package commands implements the hooks CLI on top of cobra.
package commands

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-hooks/internal/cli/config"
	"github.com/goliatone/go-hooks/pkg/prompt"
	"github.com/goliatone/go-hooks/pkg/repository"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// app carries state shared by subcommands for one invocation.
type app struct {
	configFile string
	sources    []string
	template   string
	noColor    bool
	output     string

	cfg    *config.Config
	logger *zap.Logger
	driver prompt.Driver
	repo   *repository.Repository
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{})
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hooks",
		Short: "Browse WordPress-style hook documentation",
		Long: `hooks loads hook documentation files (JSON or YAML, either a bare list
or a container with a docLinkTemplate) and lets you list, search and link
to individual hooks.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: ./hooks.yaml or ./.hooks.yaml)")
	flags.StringArrayVarP(&a.sources, "source", "s", nil, "hooks file or directory to load (repeatable)")
	flags.StringVar(&a.template, "template", "", "doc link template for sources that do not declare one")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	flags.StringVarP(&a.output, "output", "o", "", "output format: text or json")

	rootCmd.AddCommand(newListCommand(a))
	rootCmd.AddCommand(newFindCommand(a))
	rootCmd.AddCommand(newFilterCommand(a))
	rootCmd.AddCommand(newLinkCommand(a))
	rootCmd.AddCommand(newPickCommand(a))
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		// Skips config loading.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			titleColor := color.New(color.FgCyan, color.Bold)
			out := cmd.OutOrStdout()

			rows := [][2]string{
				{"hooks version", Version},
				{"Git commit", GitCommit},
				{"Build date", BuildDate},
				{"Go version", runtime.Version()},
			}
			for _, row := range rows {
				titleColor.Fprintf(out, "%s: ", row[0])
				fmt.Fprintln(out, row[1])
			}
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
