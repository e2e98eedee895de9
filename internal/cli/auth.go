package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands",
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthRegisterCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthWhoamiCmd())

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = promptInput("Email: ")
			}
			if password == "" {
				password = promptPassword("Password: ")
			}

			resp, err := apiClient.Login(context.Background(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			viper.Set("auth.token", resp.AccessToken)
			viper.Set("auth.refresh_token", resp.RefreshToken)
			if resp.User != nil {
				viper.Set("auth.email", resp.User.Email)
			}

			if err := writeConfig(); err != nil {
				return fmt.Errorf("failed to save credentials: %w", err)
			}

			name := email
			if resp.User != nil && resp.User.FullName != nil {
				name = *resp.User.FullName
			}
			fmt.Printf("Logged in as %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")

	return cmd
}

func newAuthRegisterCmd() *cobra.Command {
	var email, password, fullName string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = promptInput("Email: ")
			}
			if fullName == "" {
				fullName = promptInput("Full name: ")
			}
			if password == "" {
				password = promptPassword("Password: ")
				confirm := promptPassword("Confirm password: ")
				if password != confirm {
					return fmt.Errorf("passwords do not match")
				}
			}

			resp, err := apiClient.Register(context.Background(), email, password, fullName)
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			viper.Set("auth.token", resp.AccessToken)
			viper.Set("auth.refresh_token", resp.RefreshToken)
			viper.Set("auth.email", email)

			if err := writeConfig(); err != nil {
				return fmt.Errorf("failed to save credentials: %w", err)
			}

			fmt.Printf("Registered and logged in as %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&fullName, "full-name", "", "full name")

	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set("auth.token", "")
			viper.Set("auth.refresh_token", "")
			viper.Set("auth.email", "")

			if err := writeConfig(); err != nil {
				return err
			}

			fmt.Println("Logged out")
			return nil
		},
	}
}

func newAuthWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated account",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := apiClient.Me(context.Background())
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(u)
			}

			fmt.Printf("ID:    %d\n", u.ID)
			fmt.Printf("Email: %s\n", u.Email)
			if u.FullName != nil {
				fmt.Printf("Name:  %s\n", *u.FullName)
			}
			fmt.Printf("Role:  %s\n", u.Role)
			return nil
		},
	}
}

func promptInput(label string) string {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func promptPassword(label string) string {
	fmt.Print(label)
	pw, _ := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	return string(pw)
}
