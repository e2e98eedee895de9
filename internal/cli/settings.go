package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage runtime settings (admin)",
	}

	cmd.AddCommand(newSettingsListCmd())
	cmd.AddCommand(newSettingsSetCmd())
	cmd.AddCommand(newSettingsInitCmd())

	return cmd
}

func newSettingsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all stored settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := apiClient.Settings(context.Background())
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(settings)
			}

			t := NewTable("KEY", "VALUE", "UPDATED BY", "UPDATED AT")
			for _, s := range settings {
				t.AddRow(s.Key, s.Value,
					strconv.FormatInt(s.UpdatedBy, 10),
					s.UpdatedAt.Format("2006-01-02 15:04"))
			}
			t.Render()
			return nil
		},
	}
}

func newSettingsSetCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Update one setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.SetSetting(context.Background(), args[0], args[1], description); err != nil {
				return err
			}

			fmt.Printf("Set %s = %s\n", args[0], args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "setting description")

	return cmd
}

func newSettingsInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Reset every setting to its shipped default",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.InitializeSettings(context.Background()); err != nil {
				return err
			}

			fmt.Println("Settings reset to shipped defaults")
			return nil
		},
	}
}
