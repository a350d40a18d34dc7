package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/Kogaraashi-py/Foreign-Library/importer"
	"github.com/Kogaraashi-py/Foreign-Library/textutil"
)

func init() {
	verifyCmd := &cobra.Command{
		Use:   "verify <file.json>",
		Short: "Check a scraped JSON file before uploading it",
		Args:  cobra.ExactArgs(1),
		RunE:  runVerify,
	}
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	var sub importer.Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	problems := verifySubmission(&sub)
	warnings := verifyWarnings(&sub)

	fmt.Printf("Verifying: %s\n", args[0])
	fmt.Printf("Novel: %s, %d chapters\n", sub.Name, len(sub.Chapters))

	for _, w := range warnings {
		fmt.Printf("  ! %s\n", w)
	}
	if len(problems) == 0 {
		fmt.Println("OK - ready to upload")
		return nil
	}
	for _, p := range problems {
		fmt.Printf("  - %s\n", p)
	}
	return fmt.Errorf("%d problem(s) found", len(problems))
}

// verifySubmission returns every defect that should block an upload:
// missing required fields (top-level and per chapter), and ordinals that are
// not sorted, unique and contiguous.
func verifySubmission(sub *importer.Submission) []string {
	var problems []string

	if sub.Name == "" {
		problems = append(problems, "missing required field: name")
	}
	if sub.Author == "" {
		problems = append(problems, "missing required field: author")
	}
	if sub.SourceURL == "" {
		problems = append(problems, "missing required field: source_url")
	}
	if len(sub.Chapters) == 0 {
		problems = append(problems, "no chapters present")
	}

	for i, ch := range sub.Chapters {
		if ch.Title == "" {
			problems = append(problems, fmt.Sprintf("chapter %d: empty title", i+1))
		}
		if ch.Content == "" {
			problems = append(problems, fmt.Sprintf("chapter %d: empty content", i+1))
		}
		if ch.OrderNumber < 1 {
			problems = append(problems, fmt.Sprintf("chapter %d: missing order_number", i+1))
		}
		if ch.SourceURL == nil || *ch.SourceURL == "" {
			problems = append(problems, fmt.Sprintf("chapter %d: missing source_url", i+1))
		}
	}

	for i := 1; i < len(sub.Chapters); i++ {
		prev, cur := sub.Chapters[i-1].OrderNumber, sub.Chapters[i].OrderNumber
		if cur <= prev {
			problems = append(problems, fmt.Sprintf("ordinals not sorted/unique at position %d (%d after %d)", i+1, cur, prev))
		} else if cur != prev+1 {
			problems = append(problems, fmt.Sprintf("ordinal gap between %d and %d", prev, cur))
		}
	}

	return problems
}

// verifyWarnings flags quality issues that do not block an upload: chapters
// below the scraper's acceptance length and boilerplate lines that slipped
// through the content cleaning.
func verifyWarnings(sub *importer.Submission) []string {
	var warnings []string

	for i, ch := range sub.Chapters {
		if n := utf8.RuneCountInString(ch.Content); n > 0 && n < 500 {
			warnings = append(warnings, fmt.Sprintf("chapter %d: content shorter than 500 characters (%d)", i+1, n))
		}
		for _, line := range strings.Split(ch.Content, "\n") {
			if line != "" && textutil.IsSpam(line) {
				warnings = append(warnings, fmt.Sprintf("chapter %d: possible spam line: %q", i+1, line))
			}
		}
	}

	return warnings
}
