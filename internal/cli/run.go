package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/harun/toolbelt/pkg/toolbelt"
)

var (
	runArgs string
	runSync bool
)

var runCmd = &cobra.Command{
	Use:   "run <tool>",
	Short: "Run a tool and print its result envelope",
	Long: `Run a registered tool by qualified ("group.name") or bare name with
JSON arguments. The result envelope is printed as JSON; a failure
envelope exits with status 1.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runArgs, "args", "{}", "tool arguments as a JSON object")
	runCmd.Flags().BoolVar(&runSync, "sync", false, "use the blocking entry point")
}

func runRun(cmd *cobra.Command, args []string) error {
	name := args[0]

	toolArgs, err := parseArgs(runArgs)
	if err != nil {
		return err
	}

	sessionID := uuid.NewString()
	runLog := log.With().Str("session_id", sessionID).Logger()
	runLog.Debug().Str("tool", name).Bool("sync", runSync).Msg("Running tool")

	var result toolbelt.Result
	if runSync {
		result = toolbelt.ExecuteSync(name, toolArgs)
	} else {
		result = toolbelt.Execute(cmd.Context(), name, toolArgs)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}

	if !result.Success {
		os.Exit(1)
	}
	return nil
}

func parseArgs(raw string) (map[string]any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("--args must be a JSON object: %w", err)
	}
	return parsed, nil
}
