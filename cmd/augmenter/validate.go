package main

import (
	"fmt"

	"github.com/aretw0/augmenter/internal/demo"
	"github.com/aretw0/augmenter/pkg/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Check type configuration files against the demo types",
	Long: `Decodes each file, applies it over the demo declarations and builds the result,
reporting unknown type names, unknown fields and malformed rules.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var failed int
		for _, path := range args {
			if err := validateFile(path); err != nil {
				failed++
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files invalid", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// validateFile checks path on its own, against a fresh configuration.
func validateFile(path string) error {
	cfg := config.New()
	demo.Declare(cfg, nil)
	if err := cfg.LoadFile(path); err != nil {
		return err
	}
	return cfg.Build()
}
