package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/augmenter"
	"github.com/aretw0/augmenter/internal/demo"
	"github.com/aretw0/augmenter/pkg/domain"
	"github.com/spf13/cobra"
)

var shapeCmd = &cobra.Command{
	Use:       "shape [products|orders]",
	Short:     "Print a demo collection shaped as JSON",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"products", "orders"},
	RunE: func(cmd *cobra.Command, args []string) error {
		currency, _ := cmd.Flags().GetString("currency")
		admin, _ := cmd.Flags().GetBool("admin")

		e, err := newEnv(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer e.close()

		eng, err := e.engine()
		if err != nil {
			return err
		}

		catalog := demo.NewCatalog()
		var value any
		switch args[0] {
		case "products":
			value = catalog.Products()
		case "orders":
			value = catalog.Orders()
		default:
			return fmt.Errorf("unknown collection %q", args[0])
		}

		out, err := eng.Augment(cmd.Context(), value, augmenter.WithState(func(_ context.Context, s domain.State) error {
			if currency != "" {
				s[demo.StateCurrency] = currency
			}
			s[demo.StateAdmin] = admin
			return nil
		}))
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	rootCmd.AddCommand(shapeCmd)
	shapeCmd.Flags().String("currency", "", "Currency for prices (overrides the tenant state)")
	shapeCmd.Flags().Bool("admin", false, "Include admin-only keys")
}
