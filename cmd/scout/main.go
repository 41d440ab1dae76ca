// Package main is the entry point for the scout CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scout/pkg/config"
	"scout/pkg/version"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "scout",
	Short: "scout - web search provider settings",
	Long: `scout manages web-search provider settings: pick a provider
(Tavily, Linkup, SearXNG or Jina), enter its credentials, and tune
categories, source preferences, recency, result count and search depth.

Run "scout settings" for the interactive panel or "scout serve" for
the HTTP settings API.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if configPath != "" {
			os.Setenv(config.ConfigPathEnv, configPath)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.GetFullVersion())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
