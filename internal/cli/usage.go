package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newUsageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Show this month's AI usage against your plan quota",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := apiClient.Usage(context.Background())
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(summary)
			}

			fmt.Printf("Plan: %s (%d/%d)\n\n", summary.PlanType, summary.Month, summary.Year)

			t := NewTable("CATEGORY", "USED", "QUOTA", "REMAINING", "NEAR LIMIT")
			for _, cu := range summary.Categories {
				near := ""
				if cu.NearLimit {
					near = "yes"
				}
				t.AddRow(cu.Category,
					strconv.Itoa(cu.Used),
					strconv.Itoa(cu.Quota),
					strconv.Itoa(cu.Remaining),
					near)
			}
			t.Render()
			return nil
		},
	}

	cmd.AddCommand(newUsageNearLimitCmd())
	cmd.AddCommand(newUsageResetCmd())

	return cmd
}

func newUsageNearLimitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "near-limit",
		Short: "List users close to their quota (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries, err := apiClient.NearLimit(context.Background())
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(summaries)
			}

			t := NewTable("USER", "PLAN", "CATEGORY", "USED", "QUOTA")
			for _, s := range summaries {
				for _, cu := range s.Categories {
					if !cu.NearLimit {
						continue
					}
					t.AddRow(strconv.FormatInt(s.UserID, 10), s.PlanType, cu.Category,
						strconv.Itoa(cu.Used), strconv.Itoa(cu.Quota))
				}
			}
			t.Render()
			return nil
		},
	}
}

func newUsageResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <user-id>",
		Short: "Reset a user's current-month usage (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id: %s", args[0])
			}

			if err := apiClient.ResetUsage(context.Background(), userID); err != nil {
				return err
			}

			fmt.Printf("Usage reset for user %d\n", userID)
			return nil
		},
	}
}
