package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/luminesce-sdk/cmd/luminesce/commands"
	"github.com/fivetwenty-io/luminesce-sdk/internal/constants"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "luminesce",
	Short: "Luminesce API CLI",
	Long: `A command-line interface for the Luminesce API.

Credentials are read from a secrets.json file (see --secrets) and from
FBN_* environment variables, which take precedence over the file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("secrets", "s", "", "secrets file (default is ./"+constants.DefaultSecretsFile+" if present)")
	rootCmd.PersistentFlags().StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Int("concurrency", 1, "number of API clients constructed at once")
	rootCmd.PersistentFlags().Float64("rate-limit", 0, "maximum requests per second (0 is unlimited)")

	// Bind flags to viper
	_ = viper.BindPFlag("secrets", rootCmd.PersistentFlags().Lookup("secrets"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("concurrency", rootCmd.PersistentFlags().Lookup("concurrency"))
	_ = viper.BindPFlag("rate-limit", rootCmd.PersistentFlags().Lookup("rate-limit"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewAPIsCommand())
	rootCmd.AddCommand(commands.NewTokenCommand())
	rootCmd.AddCommand(commands.NewSQLCommand())
	rootCmd.AddCommand(commands.NewBackgroundCommand())
	rootCmd.AddCommand(commands.NewCatalogCommand())
}

func initConfig() {
	// LUMINESCE_OUTPUT, LUMINESCE_VERBOSE, ...
	viper.SetEnvPrefix("LUMINESCE")
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
