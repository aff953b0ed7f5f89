// Package apiformat converts the toolbelt enumeration surface into
// vendor-specific function-calling descriptors. It is a pure data
// transform; no network calls are made here.
package apiformat

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"

	"github.com/harun/toolbelt/pkg/toolbelt"
)

// OpenAITools renders tools as chat-completion tool params. With strict
// set, the function definitions request strict schema adherence; the
// toolbelt schemas already reject unknown properties, which strict mode
// requires.
func OpenAITools(tools []toolbelt.ToolInfo, strict bool) []openai.ChatCompletionToolParam {
	out := make([]openai.ChatCompletionToolParam, 0, len(tools))
	for _, tool := range tools {
		fn := openai.FunctionDefinitionParam{
			Name:       tool.Name,
			Parameters: openai.FunctionParameters(tool.Parameters.JSONSchema()),
		}
		if tool.Description != "" {
			fn.Description = openai.String(tool.Description)
		}
		if strict {
			fn.Strict = openai.Bool(true)
		}
		out = append(out, openai.ChatCompletionToolParam{
			Type:     "function",
			Function: fn,
		})
	}
	return out
}

// AnthropicTools renders tools as Messages API tool params.
func AnthropicTools(tools []toolbelt.ToolInfo) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, tool := range tools {
		doc := tool.Parameters.JSONSchema()

		param := anthropic.ToolParam{
			Name: tool.Name,
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: doc["properties"],
			},
		}
		if tool.Description != "" {
			param.Description = anthropic.String(tool.Description)
		}
		if required, ok := doc["required"].([]string); ok {
			param.InputSchema.Required = required
		}

		out = append(out, anthropic.ToolUnionParam{OfTool: &param})
	}
	return out
}
