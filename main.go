package main

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"

	"github.com/Kogaraashi-py/Foreign-Library/config"
	"github.com/Kogaraashi-py/Foreign-Library/db"
	handlers "github.com/Kogaraashi-py/Foreign-Library/handler"
	"github.com/Kogaraashi-py/Foreign-Library/images"
	"github.com/Kogaraashi-py/Foreign-Library/importer"
	"github.com/Kogaraashi-py/Foreign-Library/scraper"
	"github.com/Kogaraashi-py/Foreign-Library/worker"
)

func main() {
	cfg := config.LoadConfig()

	database, err := db.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	var store images.Store
	if cfg.S3AccessKey != "" {
		store, err = images.NewS3Store(cfg)
		if err != nil {
			log.Fatalf("failed to initialize S3 store: %v", err)
		}
	} else {
		store, err = images.NewDirStore(cfg.UploadDir)
		if err != nil {
			log.Fatalf("failed to prepare upload directory: %v", err)
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURL,
	})

	imp := importer.New(database, store)
	fetcher := scraper.NewFetcher(cfg.UserAgent, 0)
	scr := scraper.New(fetcher, cfg.SourceBaseURL, cfg.RequestDelay)

	w := worker.NewWorker(scr, imp, rdb, cfg.OutputDir)
	go w.Start(context.Background())

	e := echo.New()
	novelHandler := &handlers.NovelHandler{DB: database, Importer: imp}

	e.POST("/admin/import-novel", novelHandler.ImportNovel)
	e.DELETE("/novels/:id", novelHandler.DeleteNovel)
	e.Static("/static/novels", cfg.UploadDir)

	e.POST("/scrape", func(c echo.Context) error {
		slug := c.FormValue("slug")
		if slug == "" {
			return c.String(http.StatusBadRequest, "slug is required")
		}
		start, _ := strconv.Atoi(c.FormValue("start"))
		end, _ := strconv.Atoi(c.FormValue("end"))
		if start == 0 {
			start = 1
		}
		if err := w.EnqueueScrape(slug, start, end); err != nil {
			return c.String(http.StatusInternalServerError, "Failed to enqueue novel")
		}
		return c.String(http.StatusOK, "Novel queued for scraping")
	})

	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
