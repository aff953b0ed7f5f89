// Package coretools registers baseline filesystem and shell tools. It is
// also the reference consumer of the toolbelt registration surface.
package coretools

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/harun/toolbelt/pkg/schema"
	"github.com/harun/toolbelt/pkg/toolbelt"
)

// Options configures core tool registration.
type Options struct {
	// WorkspaceRoot confines all file paths. Defaults to the current
	// working directory.
	WorkspaceRoot string
}

const (
	// GroupFS holds the filesystem tools.
	GroupFS = "fs"
	// GroupShell holds the command execution tool.
	GroupShell = "shell"
)

// Register installs the core tools into the given toolbelt.
func Register(belt *toolbelt.Toolbelt, opts Options) error {
	if belt == nil {
		return errors.New("toolbelt is required")
	}
	if opts.WorkspaceRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve workspace root: %w", err)
		}
		opts.WorkspaceRoot = wd
	}

	defs := []toolbelt.Definition{
		readFileTool(opts),
		writeFileTool(opts),
		listDirTool(opts),
		execTool(opts),
	}

	for _, def := range defs {
		if err := belt.Register(def); err != nil {
			return fmt.Errorf("register tool %s: %w", def.Name, err)
		}
	}
	return nil
}

func readFileTool(opts Options) toolbelt.Definition {
	return toolbelt.Definition{
		Name:        "read_file",
		Group:       GroupFS,
		Description: "Read a file from the workspace.",
		Parameters: []schema.Parameter{
			{Name: "path", Type: schema.Type{Kind: schema.KindString}, Description: "Relative file path", Required: true},
			{Name: "max_bytes", Type: schema.Type{Kind: schema.KindInteger}, Description: "Maximum bytes to read", Default: int64(200000)},
		},
		Blocking: func(args map[string]any) (any, error) {
			pathValue, _ := args["path"].(string)
			target, err := resolvePath(opts.WorkspaceRoot, pathValue)
			if err != nil {
				return nil, err
			}

			maxBytes := int64(200000)
			if n, ok := asInt64(args["max_bytes"]); ok && n > 0 {
				maxBytes = n
			}

			data, err := os.ReadFile(target)
			if err != nil {
				return nil, err
			}
			truncated := false
			if int64(len(data)) > maxBytes {
				data = data[:maxBytes]
				truncated = true
			}

			return map[string]any{
				"path":      pathValue,
				"content":   string(data),
				"truncated": truncated,
				"bytes":     len(data),
			}, nil
		},
	}
}

func writeFileTool(opts Options) toolbelt.Definition {
	return toolbelt.Definition{
		Name:        "write_file",
		Group:       GroupFS,
		Description: "Write content to a file in the workspace.",
		Parameters: []schema.Parameter{
			{Name: "path", Type: schema.Type{Kind: schema.KindString}, Description: "Relative file path", Required: true},
			{Name: "content", Type: schema.Type{Kind: schema.KindString}, Description: "File content", Required: true},
			{Name: "append", Type: schema.Type{Kind: schema.KindBoolean}, Description: "Append instead of truncating", Default: false},
		},
		Blocking: func(args map[string]any) (any, error) {
			pathValue, _ := args["path"].(string)
			target, err := resolvePath(opts.WorkspaceRoot, pathValue)
			if err != nil {
				return nil, err
			}
			content, _ := args["content"].(string)
			appendMode, _ := args["append"].(bool)

			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return nil, err
			}

			flag := os.O_CREATE | os.O_WRONLY
			if appendMode {
				flag |= os.O_APPEND
			} else {
				flag |= os.O_TRUNC
			}
			f, err := os.OpenFile(target, flag, 0644)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			if _, err := f.WriteString(content); err != nil {
				return nil, err
			}

			return map[string]any{
				"path":   pathValue,
				"bytes":  len(content),
				"append": appendMode,
			}, nil
		},
	}
}

func listDirTool(opts Options) toolbelt.Definition {
	return toolbelt.Definition{
		Name:        "list_dir",
		Group:       GroupFS,
		Description: "List entries of a workspace directory.",
		Parameters: []schema.Parameter{
			{Name: "path", Type: schema.Type{Kind: schema.KindString}, Description: "Relative directory path", Default: "."},
		},
		Blocking: func(args map[string]any) (any, error) {
			pathValue, _ := args["path"].(string)
			target, err := resolvePath(opts.WorkspaceRoot, pathValue)
			if err != nil {
				return nil, err
			}

			entries, err := os.ReadDir(target)
			if err != nil {
				return nil, err
			}

			names := make([]string, 0, len(entries))
			for _, entry := range entries {
				name := entry.Name()
				if entry.IsDir() {
					name += string(filepath.Separator)
				}
				names = append(names, name)
			}
			sort.Strings(names)

			return map[string]any{
				"path":    pathValue,
				"entries": names,
			}, nil
		},
	}
}

func execTool(opts Options) toolbelt.Definition {
	return toolbelt.Definition{
		Name:        "exec",
		Group:       GroupShell,
		Description: "Execute a command inside the workspace.",
		Parameters: []schema.Parameter{
			{Name: "command", Type: schema.Type{Kind: schema.KindString}, Description: "Command to execute", Required: true},
			{Name: "args", Type: schema.Type{Kind: schema.KindArray, Elem: &schema.Type{Kind: schema.KindString}}, Description: "Command arguments", Required: false},
			{Name: "timeout", Type: schema.Type{Kind: schema.KindNumber}, Description: "Timeout in seconds", Default: float64(30)},
		},
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			command, _ := args["command"].(string)
			if command == "" {
				return nil, fmt.Errorf("command is required")
			}

			var cmdArgs []string
			if raw, ok := args["args"].([]any); ok {
				for _, item := range raw {
					if s, ok := item.(string); ok {
						cmdArgs = append(cmdArgs, s)
					}
				}
			}

			timeout := 30 * time.Second
			if secs, ok := asFloat64(args["timeout"]); ok && secs > 0 {
				timeout = time.Duration(secs * float64(time.Second))
			}
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			cmd := exec.CommandContext(ctx, command, cmdArgs...)
			cmd.Dir = opts.WorkspaceRoot
			output, err := cmd.CombinedOutput()

			exitCode := 0
			if err != nil {
				var exitErr *exec.ExitError
				if errors.As(err, &exitErr) {
					exitCode = exitErr.ExitCode()
				} else {
					return nil, err
				}
			}

			return map[string]any{
				"command":   command,
				"output":    string(output),
				"exit_code": exitCode,
			}, nil
		},
	}
}

// asInt64 normalizes the numeric shapes an argument bag can carry: Go
// ints from in-process callers, float64 from decoded JSON, int64 from
// schema defaults.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// resolvePath confines a user-supplied path to the workspace root.
func resolvePath(root string, pathValue string) (string, error) {
	pathValue = strings.TrimSpace(pathValue)
	if pathValue == "" {
		return "", fmt.Errorf("path is required")
	}

	candidate := pathValue
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(root, candidate)
	}
	candidate = filepath.Clean(candidate)

	rel, err := filepath.Rel(root, candidate)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes the workspace", pathValue)
	}
	return candidate, nil
}
