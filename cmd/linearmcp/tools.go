package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"linearmcp/internal/tools"
)

func toolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tools the server exposes",
		Args:  cobra.NoArgs,
		RunE:  runTools,
	}
	cmd.Flags().String("prefix", "", "tool name prefix to apply")
	return cmd
}

func runTools(cmd *cobra.Command, args []string) error {
	prefix, err := cmd.Flags().GetString("prefix")
	if err != nil {
		return err
	}

	for _, d := range tools.BuildToolTable(prefix) {
		required := ""
		if len(d.Required) > 0 {
			required = " (requires " + strings.Join(d.Required, ", ") + ")"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n    %s%s\n", d.Name, d.Description, required)
	}
	return nil
}
