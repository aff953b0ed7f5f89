package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harun/toolbelt/pkg/apiformat"
	"github.com/harun/toolbelt/pkg/toolbelt"
)

var (
	listGroups []string
	listFormat string
	listStrict bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered tools",
	Long: `List the registered tools as JSON. The raw format prints the stable
enumeration surface (name, description, parameters); the openai and
anthropic formats print vendor function-calling descriptors.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringSliceVar(&listGroups, "group", nil, "restrict to the given groups (repeatable)")
	listCmd.Flags().StringVar(&listFormat, "format", "raw", "output format: raw, openai, anthropic")
	listCmd.Flags().BoolVar(&listStrict, "strict", false, "request strict schema adherence (openai format)")
}

func runList(cmd *cobra.Command, args []string) error {
	tools := toolbelt.ListTools(listGroups...)

	var payload any
	switch listFormat {
	case "raw":
		type entry struct {
			Name        string         `json:"name"`
			Description string         `json:"description"`
			Parameters  map[string]any `json:"parameters"`
		}
		entries := make([]entry, 0, len(tools))
		for _, tool := range tools {
			entries = append(entries, entry{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters.JSONSchema(),
			})
		}
		payload = entries
	case "openai":
		payload = apiformat.OpenAITools(tools, listStrict)
	case "anthropic":
		payload = apiformat.AnthropicTools(tools)
	default:
		return fmt.Errorf("unknown format %q (want raw, openai or anthropic)", listFormat)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
