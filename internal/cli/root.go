package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/harun/toolbelt/internal/logger"
	"github.com/harun/toolbelt/pkg/coretools"
	"github.com/harun/toolbelt/pkg/toolbelt"
)

const version = "0.1.0"

var (
	logLevel  string
	workspace string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "toolbelt",
	Short: "Toolbelt - schema-described tool registry and runner",
	Long: `Toolbelt registers functions as named, schema-described tools and
executes them by name. This CLI lists the registered tools in raw or
vendor function-calling formats and runs individual tools with JSON
arguments.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Setup(logger.Config{Level: logLevel, Pretty: true})

		root := workspace
		if root == "" {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			root = wd
		}
		return coretools.Register(toolbelt.Default(), coretools.Options{WorkspaceRoot: root})
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&workspace, "workspace", "", "workspace root for the core tools (default: working directory)")
}
