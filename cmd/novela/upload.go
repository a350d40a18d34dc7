package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"

	"github.com/Kogaraashi-py/Foreign-Library/importer"
)

var flagAPIURL string

func init() {
	uploadCmd := &cobra.Command{
		Use:   "upload <file.json>",
		Short: "Post a scraped JSON file to the import endpoint",
		Args:  cobra.ExactArgs(1),
		RunE:  runUpload,
	}

	uploadCmd.Flags().StringVar(&flagAPIURL, "url", "http://localhost:8000/admin/import-novel", "import endpoint URL")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(_ *cobra.Command, args []string) error {
	jsonPath := args[0]

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return err
	}

	var sub importer.Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	resolveImagePath(&sub, jsonPath)

	fmt.Printf("Uploading %q (%d chapters) to %s\n", sub.Name, len(sub.Chapters), flagAPIURL)

	client := resty.New().SetTimeout(5 * time.Minute)
	var result importer.Response
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(&sub).
		SetResult(&result).
		Post(flagAPIURL)
	if err != nil {
		return fmt.Errorf("posting to %s: %w", flagAPIURL, err)
	}
	if resp.IsError() {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode(), resp.String())
	}

	fmt.Printf("Novel ID: %d\n", result.NovelID)
	fmt.Printf("Message: %s\n", result.Message)
	fmt.Printf("Alternate names created: %d\n", result.Stats.AlternativeNamesCreated)
	fmt.Printf("Genres created: %d, associated: %d\n", result.Stats.GenresCreated, result.Stats.GenresAssociated)
	fmt.Printf("Chapters created: %d, updated: %d\n", result.Stats.ChaptersCreated, result.Stats.ChaptersUpdated)
	fmt.Printf("Cover uploaded: %v\n", result.Stats.CoverUploaded)
	return nil
}

// resolveImagePath makes the submission's cover path absolute so the server
// can read it; an unreadable path is nulled out instead of failing later.
func resolveImagePath(sub *importer.Submission, jsonPath string) {
	if sub.ImagePath == nil || *sub.ImagePath == "" {
		return
	}

	p := *sub.ImagePath
	if !filepath.IsAbs(p) {
		p = filepath.Join(filepath.Dir(jsonPath), filepath.Base(p))
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}

	if _, err := os.Stat(p); err != nil {
		fmt.Printf("Cover image not found, skipping: %s\n", p)
		sub.ImagePath = nil
		return
	}
	sub.ImagePath = &p
}
