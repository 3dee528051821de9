package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonwraymond/toolcatalog/config"
)

var rootCmd = &cobra.Command{
	Use:           "toolcatalog",
	Short:         "Sync and inspect a remote tool catalog",
	Long:          "toolcatalog reads the tools and tool_stats tables of a remote store, normalizes them and prints catalog, ranking and health views.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .toolcatalog.yaml)")
	pf.String("env-file", ".env", "dotenv file loaded before reading the environment")
	pf.String("backend", "", "store backend: postgres or rest")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.Bool("json", false, "print JSON instead of text")

	_ = viper.BindPFlag("backend", pf.Lookup("backend"))
	_ = viper.BindPFlag("observe.logging.level", pf.Lookup("log-level"))
}

func initConfig() {
	if envFile, _ := rootCmd.PersistentFlags().GetString("env-file"); envFile != "" {
		// A missing file is fine; the process environment still applies.
		_ = godotenv.Load(envFile)
	}

	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".toolcatalog")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	config.BindEnv(viper.GetViper())

	// No config file is fine; defaults and the environment apply.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "config:", err)
		}
	}
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}
