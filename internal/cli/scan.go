package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wipal/openfang/internal/openclaw"
)

func newScanCmd() *cobra.Command {
	var (
		sourceDir string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Preview what an OpenClaw workspace holds without migrating",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source := sourceDir
			if source == "" {
				detected, ok := openclaw.DetectHome()
				if !ok {
					return errors.New("no OpenClaw installation found; pass --source")
				}
				source = detected
			}

			result := openclaw.Scan(source)
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			printScan(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceDir, "source", "", "OpenClaw workspace to scan (default: auto-detect)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the scan result as JSON")

	return cmd
}

func printScan(result openclaw.ScanResult) {
	fmt.Printf("OpenClaw workspace: %s\n", result.Path)
	fmt.Printf("  config: %v\n", result.HasConfig)
	fmt.Printf("  memory: %v\n", result.HasMemory)

	fmt.Printf("  agents (%d):\n", len(result.Agents))
	for _, a := range result.Agents {
		extras := []string{fmt.Sprintf("%d tools", a.ToolCount)}
		if a.HasMemory {
			extras = append(extras, "memory")
		}
		if a.HasSessions {
			extras = append(extras, "sessions")
		}
		if a.HasWorkspace {
			extras = append(extras, "workspace")
		}
		model := a.Model
		if model == "" {
			model = "(default model)"
		} else if a.Provider != "" {
			model = a.Provider + "/" + a.Model
		}
		fmt.Printf("    %s  %s  [%s]\n", a.Name, model, strings.Join(extras, ", "))
	}

	if len(result.Channels) > 0 {
		fmt.Printf("  channels: %s\n", strings.Join(result.Channels, ", "))
	}
	if len(result.Skills) > 0 {
		fmt.Printf("  skills: %s\n", strings.Join(result.Skills, ", "))
	}
}
