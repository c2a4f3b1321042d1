package main

import (
	"fmt"

	"github.com/aretw0/augmenter/internal/presentation/graph"
	"github.com/aretw0/augmenter/internal/presentation/markdown"
	"github.com/aretw0/augmenter/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the effective configuration of every declared type",
	Long: `Prints each declared type with the fields and augmentations applied to it, inherited ones
included. --format mermaid outputs a diagram (graph TD) of inheritance and nesting instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		e, err := newEnv(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer e.close()

		eng, err := e.engine()
		if err != nil {
			return err
		}
		configs := eng.Describe()

		switch format {
		case "mermaid":
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(configs))
			return nil
		case "markdown", "md":
			render, err := tui.NewRenderer(0)
			if err != nil {
				return err
			}
			out, err := render(markdown.Describe(configs))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		default:
			return fmt.Errorf("unknown format %q (want markdown or mermaid)", format)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringP("format", "f", "markdown", "Output format (markdown, mermaid)")
}
