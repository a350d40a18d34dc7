package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kogaraashi-py/Foreign-Library/scraper"
)

func TestSubmissionFromResult(t *testing.T) {
	rating := 8.7
	imagePath := "output/prueba/cover.jpg"
	chapterURL := "https://novelasligera.com/prueba-capitulo-1/"

	result := &scraper.Result{
		Novel: scraper.ScrapedNovel{
			Name:             "Novela de Prueba",
			Author:           "Autora",
			Description:      "Una sinopsis.",
			Rating:           &rating,
			Status:           "ongoing",
			SourceURL:        "https://novelasligera.com/novela/prueba/",
			ImagePath:        &imagePath,
			AlternativeNames: []string{"Test Novel"},
			Genres:           []string{"fantasía"},
			Chapters: []scraper.ScrapedChapter{
				{Title: "Capítulo 1", Content: "contenido", OrderNumber: 1, SourceURL: &chapterURL},
			},
		},
	}

	sub := SubmissionFromResult(result)

	assert.Equal(t, "Novela de Prueba", sub.Name)
	assert.Equal(t, "Autora", sub.Author)
	require.NotNil(t, sub.Rating)
	assert.InDelta(t, 8.7, *sub.Rating, 0.001)
	assert.Equal(t, []string{"Test Novel"}, sub.AlternativeNames)
	assert.Equal(t, []string{"fantasía"}, sub.Genres)
	require.NotNil(t, sub.ImagePath)
	assert.Equal(t, imagePath, *sub.ImagePath)

	require.Len(t, sub.Chapters, 1)
	assert.Equal(t, "Capítulo 1", sub.Chapters[0].Title)
	assert.Equal(t, 1, sub.Chapters[0].OrderNumber)
	require.NotNil(t, sub.Chapters[0].SourceURL)
	assert.Equal(t, chapterURL, *sub.Chapters[0].SourceURL)

	require.NoError(t, sub.Validate())
}

func TestEnqueueForRetryGivesUp(t *testing.T) {
	// At the retry cap the job is dropped without touching the queue, so no
	// redis client is needed.
	w := &Worker{}
	job := ScrapeJob{Slug: "prueba", Retries: maxRetries - 1}

	require.NoError(t, w.enqueueForRetry(job))
}
