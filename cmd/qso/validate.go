package main

import (
	"fmt"

	"github.com/aretw0/qso/pkg/table"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the protocol for consistency",
	Long: `Compiles the protocol and reports rules whose transition leaves another phase,
phases unreachable from the initial phase and phases that can never be left.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		eng, err := newEngine(cfg, newLogger(cfg))
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		issues := table.Check(eng.Graph(), eng.Table())
		out := cmd.OutOrStdout()
		if len(issues) == 0 {
			fmt.Fprintf(out, "Protocol %s is valid! ✅\n", eng.Protocol().Name)
			return nil
		}
		for _, issue := range issues {
			fmt.Fprintf(out, "  - %s\n", issue)
		}
		return fmt.Errorf("validation failed: %d issue(s) in protocol %s", len(issues), eng.Protocol().Name)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
