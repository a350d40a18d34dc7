package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kogaraashi-py/Foreign-Library/scraper"
)

var (
	flagStart  int
	flagEnd    int
	flagOutput string
	flagDelay  time.Duration
)

func init() {
	scrapeCmd := &cobra.Command{
		Use:   "scrape <novel-slug>",
		Short: "Download a novel's metadata and chapters into {output}/{slug}.json",
		Args:  cobra.ExactArgs(1),
		RunE:  runScrape,
	}

	scrapeCmd.Flags().IntVar(&flagStart, "start", 1, "first chapter ordinal")
	scrapeCmd.Flags().IntVar(&flagEnd, "end", 0, "last chapter ordinal (0 = all)")
	scrapeCmd.Flags().StringVar(&flagOutput, "output", "output", "output directory")
	scrapeCmd.Flags().DurationVar(&flagDelay, "delay", time.Second, "delay between chapter requests")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	slug := args[0]

	fetcher := scraper.NewFetcher(flagUserAgent, 0)
	s := scraper.New(fetcher, flagBaseURL, flagDelay)

	fmt.Printf("Scraping %s (chapters %d-%d)\n", slug, flagStart, flagEnd)

	result, err := s.Scrape(cmd.Context(), slug, flagStart, flagEnd)
	if err != nil {
		return err
	}

	if err := s.DownloadCover(result, flagOutput); err != nil {
		fmt.Printf("Cover not downloaded: %v\n", err)
	}

	jsonPath, err := result.WriteJSON(flagOutput, slug)
	if err != nil {
		return err
	}

	fmt.Printf("Novel: %s\n", result.Novel.Name)
	fmt.Printf("Author: %s\n", result.Novel.Author)
	fmt.Printf("Chapters downloaded: %d\n", len(result.Novel.Chapters))
	if len(result.Skipped) > 0 {
		fmt.Printf("Chapters skipped: %d\n", len(result.Skipped))
		for _, s := range result.Skipped {
			fmt.Printf("  - chapter %d: %s\n", s.Number, s.Reason)
		}
	}
	fmt.Printf("Saved: %s\n", jsonPath)
	return nil
}
