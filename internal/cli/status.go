package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check API server connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			health, err := apiClient.Health(context.Background())
			if err != nil {
				return fmt.Errorf("server unreachable: %w", err)
			}

			fmt.Printf("Server status: %s", health.Status)
			if health.Version != "" {
				fmt.Printf(" (version %s)", health.Version)
			}
			fmt.Println()
			return nil
		},
	}
}

func newPlansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List plan tiers with quotas and prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := apiClient.Plans(context.Background())
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(plans)
			}

			t := NewTable("PLAN", "PRICE (AED)", "RESUMES", "COVER LETTERS", "INTERVIEWS")
			for _, p := range plans {
				price := "-"
				if p.PriceAED > 0 {
					price = fmt.Sprintf("%.0f / %s", p.PriceAED, p.BillingInterval)
				}
				t.AddRow(p.Type, price,
					fmt.Sprintf("%d", p.Resumes),
					fmt.Sprintf("%d", p.CoverLetters),
					fmt.Sprintf("%d", p.Interviews))
			}
			t.Render()
			return nil
		},
	}
}
