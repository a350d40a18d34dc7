package importer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/Kogaraashi-py/Foreign-Library/images"
	"github.com/Kogaraashi-py/Foreign-Library/models"
)

// chapterBatchSize bounds the size of each chapter sub-transaction so a
// large import does not hold one enormous transaction open.
const chapterBatchSize = 50

// Importer reconciles an import submission against the catalog. Re-running
// chapter and genre steps is safe; the novel record itself is guarded by the
// name conflict check.
type Importer struct {
	DB    *gorm.DB
	Store images.Store
}

func New(db *gorm.DB, store images.Store) *Importer {
	return &Importer{DB: db, Store: store}
}

// Import runs the multi-entity import. A name conflict is the only error
// that aborts before any write; every later step is additive, and a cover
// failure only surfaces as Stats.CoverUploaded == false.
func (imp *Importer) Import(ctx context.Context, sub *Submission) (*Response, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	db := imp.DB.WithContext(ctx)

	var existing models.Novel
	err := db.Where("name = ?", sub.Name).First(&existing).Error
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: novel %q (ID %d)", ErrConflict, sub.Name, existing.ID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("checking novel name: %w", err)
	}

	novel := models.Novel{
		Name:        sub.Name,
		Author:      sub.Author,
		Description: sub.Description,
		Rating:      sub.Rating,
		Status:      sub.Status,
		SourceURL:   sub.SourceURL,
	}
	if err := db.Create(&novel).Error; err != nil {
		// The store's uniqueness constraint is the arbiter under concurrent
		// imports of the same name.
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: novel %q", ErrConflict, sub.Name)
		}
		return nil, fmt.Errorf("creating novel: %w", err)
	}
	log.Printf("Novel created with ID %d", novel.ID)

	var stats Stats
	stats.CoverUploaded = imp.processCover(db, &novel, sub.ImagePath)

	for _, name := range sub.AlternativeNames {
		if err := db.Create(&models.NovelName{NovelID: novel.ID, Name: name}).Error; err != nil {
			return nil, fmt.Errorf("creating alternate name %q: %w", name, err)
		}
		stats.AlternativeNamesCreated++
	}

	created, associated, err := imp.AssociateGenres(ctx, novel.ID, sub.Genres)
	if err != nil {
		return nil, err
	}
	stats.GenresCreated = created
	stats.GenresAssociated = associated

	stats.ChaptersCreated, stats.ChaptersUpdated, err = imp.UpsertChapters(ctx, novel.ID, sub.Chapters)
	if err != nil {
		return nil, err
	}

	return &Response{
		Success: true,
		NovelID: novel.ID,
		Message: importMessage(novel.Name, stats),
		Stats:   stats,
	}, nil
}

// processCover is best-effort: a missing file, a broken image or a failed
// upload leaves the novel coverless and returns false, never an error.
func (imp *Importer) processCover(db *gorm.DB, novel *models.Novel, imagePath *string) bool {
	if imagePath == nil || *imagePath == "" {
		return false
	}

	f, err := os.Open(*imagePath)
	if err != nil {
		log.Printf("Cover skipped for novel %d: %v", novel.ID, err)
		return false
	}
	defer f.Close()

	data, err := images.Transcode(f)
	if err != nil {
		log.Printf("Cover skipped for novel %d: %v", novel.ID, err)
		return false
	}

	filename := fmt.Sprintf("%d%s", novel.ID, images.Ext)
	publicPath, err := imp.Store.Put(filename, data)
	if err != nil {
		log.Printf("Cover skipped for novel %d: %v", novel.ID, err)
		return false
	}

	novel.CoverPath = &publicPath
	if err := db.Model(novel).Update("cover_path", publicPath).Error; err != nil {
		log.Printf("Cover path not recorded for novel %d: %v", novel.ID, err)
		return false
	}
	return true
}

// AssociateGenres resolves-or-creates each genre by its normalized name and
// each novel/genre association, skipping ones that already exist. Safe to
// re-invoke with the same input.
func (imp *Importer) AssociateGenres(ctx context.Context, novelID uint, genres []string) (created, associated int, err error) {
	db := imp.DB.WithContext(ctx)

	for _, raw := range genres {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}

		var genre models.Genre
		err := db.Where("name = ?", name).First(&genre).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			genre = models.Genre{Name: name}
			if err := db.Create(&genre).Error; err != nil {
				return created, associated, fmt.Errorf("creating genre %q: %w", name, err)
			}
			created++
		} else if err != nil {
			return created, associated, fmt.Errorf("resolving genre %q: %w", name, err)
		}

		var assoc models.NovelGenre
		err = db.Where("novel_id = ? AND genre_id = ?", novelID, genre.ID).First(&assoc).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&models.NovelGenre{NovelID: novelID, GenreID: genre.ID}).Error; err != nil {
				return created, associated, fmt.Errorf("associating genre %q: %w", name, err)
			}
			associated++
		} else if err != nil {
			return created, associated, fmt.Errorf("checking genre association %q: %w", name, err)
		}
	}
	return created, associated, nil
}

// UpsertChapters creates or updates chapters keyed by (novel, ordinal),
// committing in batches to bound transaction size. Earlier batches stay
// committed if a later one fails; re-running the same input is harmless, so
// the step is at-least-once per chapter.
func (imp *Importer) UpsertChapters(ctx context.Context, novelID uint, chapters []SubmittedChapter) (created, updated int, err error) {
	db := imp.DB.WithContext(ctx)

	for offset := 0; offset < len(chapters); offset += chapterBatchSize {
		end := offset + chapterBatchSize
		if end > len(chapters) {
			end = len(chapters)
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			for _, ch := range chapters[offset:end] {
				result := tx.Model(&models.Chapter{}).
					Where("novel_id = ? AND order_number = ?", novelID, ch.OrderNumber).
					Updates(map[string]interface{}{
						"title":      ch.Title,
						"content":    ch.Content,
						"source_url": ch.SourceURL,
					})
				if result.Error != nil {
					return result.Error
				}

				if result.RowsAffected == 0 {
					chapter := models.Chapter{
						NovelID:     novelID,
						OrderNumber: ch.OrderNumber,
						Title:       ch.Title,
						Content:     ch.Content,
						SourceURL:   ch.SourceURL,
					}
					if err := tx.Create(&chapter).Error; err != nil {
						return err
					}
					created++
				} else {
					updated++
				}
			}
			return nil
		})
		if err != nil {
			return created, updated, fmt.Errorf("upserting chapters %d-%d: %w", offset, end, err)
		}
		log.Printf("%d chapters processed for novel %d", end, novelID)
	}
	return created, updated, nil
}

func importMessage(name string, stats Stats) string {
	switch {
	case stats.ChaptersUpdated > 0 && stats.ChaptersCreated == 0:
		return fmt.Sprintf("Novel %q already had these chapters, contents updated", name)
	case stats.ChaptersCreated > 0 && stats.ChaptersUpdated > 0:
		return fmt.Sprintf("Novel %q partially updated", name)
	default:
		return fmt.Sprintf("Novel %q imported successfully", name)
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
