package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/semaphore"

	"github.com/Kogaraashi-py/Foreign-Library/importer"
	"github.com/Kogaraashi-py/Foreign-Library/scraper"
)

const (
	scrapeQueueKey = "scrape_queue"
	retryQueueKey  = "scrape_retry_queue"
	maxRetries     = 5
	maxConcurrent  = 2
)

// ScrapeJob asks for one novel to be scraped and imported.
type ScrapeJob struct {
	Slug    string `json:"slug"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Retries int    `json:"retries"`
}

// Worker consumes scrape jobs from redis, runs the scrape orchestrator and
// feeds the result into the importer. Chapter pacing stays sequential within
// a run; the semaphore only bounds how many runs are in flight.
type Worker struct {
	Scraper   *scraper.Scraper
	Importer  *importer.Importer
	Redis     *redis.Client
	WorkDir   string
	semaphore *semaphore.Weighted
}

func NewWorker(s *scraper.Scraper, imp *importer.Importer, rdb *redis.Client, workDir string) *Worker {
	if s == nil {
		log.Fatal("Scraper cannot be nil")
	}
	return &Worker{
		Scraper:   s,
		Importer:  imp,
		Redis:     rdb,
		WorkDir:   workDir,
		semaphore: semaphore.NewWeighted(maxConcurrent),
	}
}

func (w *Worker) Start(ctx context.Context) {
	if w.Redis == nil {
		log.Fatal("Redis client is nil. Worker not properly initialized.")
	}

	go w.processQueue(ctx, scrapeQueueKey, 5*time.Second)
	go w.processQueue(ctx, retryQueueKey, 30*time.Second)
}

func (w *Worker) EnqueueScrape(slug string, start, end int) error {
	job, err := json.Marshal(ScrapeJob{Slug: slug, Start: start, End: end})
	if err != nil {
		return fmt.Errorf("marshalling scrape job: %w", err)
	}
	return w.enqueue(scrapeQueueKey, string(job))
}

func (w *Worker) processQueue(ctx context.Context, queueKey string, popTimeout time.Duration) {
	for {
		select {
		case <-ctx.Done():
			log.Printf("Stopping %s processing", queueKey)
			return
		default:
			result, err := w.Redis.BLPop(ctx, popTimeout, queueKey).Result()
			if err == redis.Nil {
				continue
			} else if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("Error popping from %s queue: %v", queueKey, err)
				continue
			}

			if err := w.processJob(ctx, result[1]); err != nil {
				log.Printf("Error processing %s job: %v", queueKey, err)
			}
		}
	}
}

func (w *Worker) processJob(ctx context.Context, jobData string) error {
	var job ScrapeJob
	if err := json.Unmarshal([]byte(jobData), &job); err != nil {
		return fmt.Errorf("unmarshalling scrape job: %w", err)
	}

	if err := w.semaphore.Acquire(ctx, 1); err != nil {
		return err
	}
	defer w.semaphore.Release(1)

	log.Printf("Scraping novel: %s (chapters %d-%d)", job.Slug, job.Start, job.End)

	result, err := w.Scraper.Scrape(ctx, job.Slug, job.Start, job.End)
	if err != nil {
		log.Printf("Error scraping novel %s: %v", job.Slug, err)
		return w.enqueueForRetry(job)
	}

	outDir := filepath.Join(w.WorkDir, job.Slug)
	if err := w.Scraper.DownloadCover(result, outDir); err != nil {
		// A missing cover never blocks the import.
		log.Printf("Cover download failed for %s: %v", job.Slug, err)
	}
	if _, err := result.WriteJSON(outDir, job.Slug); err != nil {
		log.Printf("Could not persist scrape result for %s: %v", job.Slug, err)
	}

	sub := SubmissionFromResult(result)
	resp, err := w.Importer.Import(ctx, sub)
	if err != nil {
		if errors.Is(err, importer.ErrConflict) {
			// Retrying an import of an existing name can never succeed.
			log.Printf("Novel %s already imported: %v", job.Slug, err)
			return nil
		}
		log.Printf("Error importing novel %s: %v", job.Slug, err)
		return w.enqueueForRetry(job)
	}

	log.Printf("Imported novel %d: %s", resp.NovelID, resp.Message)
	return nil
}

// SubmissionFromResult reshapes a scrape result into the import wire format.
func SubmissionFromResult(result *scraper.Result) *importer.Submission {
	novel := result.Novel
	sub := &importer.Submission{
		Name:             novel.Name,
		Author:           novel.Author,
		Description:      novel.Description,
		Rating:           novel.Rating,
		Status:           novel.Status,
		SourceURL:        novel.SourceURL,
		ImagePath:        novel.ImagePath,
		AlternativeNames: novel.AlternativeNames,
		Genres:           novel.Genres,
	}
	for _, ch := range novel.Chapters {
		sub.Chapters = append(sub.Chapters, importer.SubmittedChapter{
			Title:       ch.Title,
			Content:     ch.Content,
			OrderNumber: ch.OrderNumber,
			SourceURL:   ch.SourceURL,
		})
	}
	return sub
}

func (w *Worker) enqueueForRetry(job ScrapeJob) error {
	job.Retries++
	if job.Retries >= maxRetries {
		log.Printf("Giving up on novel %s after %d attempts", job.Slug, job.Retries)
		return nil
	}
	log.Printf("Retrying novel %s (attempt %d)", job.Slug, job.Retries)

	jobData, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshalling retry job: %w", err)
	}
	return w.enqueue(retryQueueKey, string(jobData))
}

func (w *Worker) enqueue(queueKey string, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := w.Redis.RPush(ctx, queueKey, value).Err(); err != nil {
		return fmt.Errorf("enqueueing to %s: %w", queueKey, err)
	}
	return nil
}
