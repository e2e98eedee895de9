package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Lazycharm/Careerpilot-sub001/pkg/client"
)

var (
	cfgFile      string
	outputFormat string
	serverURL    string
	apiClient    *client.Client
)

var rootCmd = &cobra.Command{
	Use:   "careerpilot",
	Short: "CareerPilot CLI - AI-assisted job application toolkit",
	Long: `CareerPilot CLI provides command-line access to the CareerPilot platform
for generating cover letters, tailoring resumes, preparing for interviews,
and administering runtime settings and usage quotas.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip client init for config commands
		if cmd.Parent() != nil && cmd.Parent().Name() == "config" {
			return nil
		}
		if cmd.Name() == "login" || cmd.Name() == "register" || cmd.Name() == "status" || cmd.Name() == "plans" {
			return initClient()
		}
		return initAuthenticatedClient()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.careerpilot/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format: table, json, yaml")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server URL (overrides config)")

	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("server_url", rootCmd.PersistentFlags().Lookup("server"))

	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newUsageCmd())
	rootCmd.AddCommand(newSettingsCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newPlansCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return
		}
		configDir := home + "/.careerpilot"
		_ = os.MkdirAll(configDir, 0700)
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("CAREERPILOT")
	viper.AutomaticEnv()

	viper.SetDefault("server_url", "http://localhost:8080")
	viper.SetDefault("output", "table")

	_ = viper.ReadInConfig()
}

func initClient() error {
	url := viper.GetString("server_url")
	if serverURL != "" {
		url = serverURL
	}

	apiClient = client.NewClient(client.Config{
		BaseURL: url,
	})
	return nil
}

func initAuthenticatedClient() error {
	if err := initClient(); err != nil {
		return err
	}

	token := viper.GetString("auth.token")
	if token == "" {
		return fmt.Errorf("not authenticated. Run 'careerpilot auth login' first")
	}

	apiClient.SetToken(token)
	return nil
}

func getOutputFormat() string {
	if outputFormat != "" && outputFormat != "table" {
		return outputFormat
	}
	return viper.GetString("output")
}
