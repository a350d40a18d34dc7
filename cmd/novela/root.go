package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagBaseURL   string
	flagUserAgent string
)

var rootCmd = &cobra.Command{
	Use:   "novela",
	Short: "Scrape, verify and upload web novels",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "https://novelasligera.com", "source site base URL")
	rootCmd.PersistentFlags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
