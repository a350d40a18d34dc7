package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kogaraashi-py/Foreign-Library/importer"
)

func chapters(ordinals ...int) []importer.SubmittedChapter {
	src := "https://novelasligera.com/novela-capitulo-1/"
	out := make([]importer.SubmittedChapter, 0, len(ordinals))
	for _, n := range ordinals {
		out = append(out, importer.SubmittedChapter{
			Title:       "Capítulo",
			Content:     strings.Repeat("Una línea de narrativa suficientemente larga. ", 12),
			OrderNumber: n,
			SourceURL:   &src,
		})
	}
	return out
}

func validSubmission(ordinals ...int) *importer.Submission {
	return &importer.Submission{
		Name:      "Novela",
		Author:    "Autora",
		SourceURL: "https://novelasligera.com/novela/prueba/",
		Chapters:  chapters(ordinals...),
	}
}

func TestVerifySubmissionClean(t *testing.T) {
	sub := validSubmission(1, 2, 3)
	assert.Empty(t, verifySubmission(sub))
	assert.Empty(t, verifyWarnings(sub))
}

func TestVerifySubmissionMissingFields(t *testing.T) {
	problems := verifySubmission(&importer.Submission{})
	assert.Contains(t, problems, "missing required field: name")
	assert.Contains(t, problems, "missing required field: author")
	assert.Contains(t, problems, "missing required field: source_url")
	assert.Contains(t, problems, "no chapters present")
}

func TestVerifySubmissionMissingChapterFields(t *testing.T) {
	sub := validSubmission(1)
	sub.Chapters[0] = importer.SubmittedChapter{}

	problems := verifySubmission(sub)
	assert.Contains(t, problems, "chapter 1: empty title")
	assert.Contains(t, problems, "chapter 1: empty content")
	assert.Contains(t, problems, "chapter 1: missing order_number")
	assert.Contains(t, problems, "chapter 1: missing source_url")

	empty := ""
	sub = validSubmission(1)
	sub.Chapters[0].SourceURL = &empty
	assert.Contains(t, verifySubmission(sub), "chapter 1: missing source_url")
}

func TestVerifySubmissionOrdinalDefects(t *testing.T) {
	sub := validSubmission(1, 3)
	problems := verifySubmission(sub)
	assert.Len(t, problems, 1)
	assert.Contains(t, problems[0], "ordinal gap")

	sub.Chapters = chapters(2, 1)
	problems = verifySubmission(sub)
	assert.Len(t, problems, 1)
	assert.Contains(t, problems[0], "not sorted/unique")

	sub.Chapters = chapters(1, 1)
	problems = verifySubmission(sub)
	assert.Len(t, problems, 1)
	assert.Contains(t, problems[0], "not sorted/unique")
}

func TestVerifyWarningsShortChapter(t *testing.T) {
	sub := validSubmission(1)
	sub.Chapters[0].Content = "Un capítulo demasiado corto."

	warnings := verifyWarnings(sub)
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "shorter than 500 characters")

	// A short chapter is a warning, never a blocking problem.
	assert.Empty(t, verifySubmission(sub))
}

func TestVerifyWarningsSpamLine(t *testing.T) {
	sub := validSubmission(1)
	sub.Chapters[0].Content += "\nInvitame un cafe para apoyar la traduccion"

	warnings := verifyWarnings(sub)
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "possible spam line")
}
