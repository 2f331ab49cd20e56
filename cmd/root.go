// Package cmd implements the CLI commands for hwscrape using Cobra.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "hwscrape",
	Short: "hwscrape turns course homework pages into question-level sections",
	Long: `hwscrape fetches numbered homework pages from course sites, splits each
page into heading-delimited sections, renders their content as Markdown and
emits the sections as JSON (or a Markdown/PDF handout).

Usage:
  hwscrape scrape [flags]
  hwscrape preview <url>`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. An interrupt cancels the running scan.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.hwscrape.yaml if present)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only report errors")
	rootCmd.PersistentFlags().String("cookie", "", "Session cookie sent with every request, as name=value")

	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("cookie", rootCmd.PersistentFlags().Lookup("cookie"))
}

// initConfig layers the optional config file and HWSCRAPE_* environment
// variables under the command-line flags.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(".hwscrape")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("hwscrape")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}
}
