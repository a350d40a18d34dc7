package importer

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Kogaraashi-py/Foreign-Library/db"
	"github.com/Kogaraashi-py/Foreign-Library/images"
	"github.com/Kogaraashi-py/Foreign-Library/models"
)

func testImporter(t *testing.T) (*Importer, *gorm.DB, string) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "catalog.db")), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	coverDir := t.TempDir()
	store, err := images.NewDirStore(coverDir)
	require.NoError(t, err)

	return New(gdb, store), gdb, coverDir
}

func sampleSubmission() *Submission {
	src1 := "https://novelasligera.com/novela-capitulo-1/"
	src2 := "https://novelasligera.com/novela-capitulo-2/"
	return &Submission{
		Name:      "El Villano Que Quiere Vivir",
		Author:    "Jee Gab Song",
		SourceURL: "https://novelasligera.com/novela/el-villano/",
		Genres:    []string{"fantasía", "acción"},
		Chapters: []SubmittedChapter{
			{Title: "Capítulo 1", Content: "contenido uno", OrderNumber: 1, SourceURL: &src1},
			{Title: "Capítulo 2", Content: "contenido dos", OrderNumber: 2, SourceURL: &src2},
		},
	}
}

func TestImportFresh(t *testing.T) {
	imp, gdb, _ := testImporter(t)

	sub := sampleSubmission()
	sub.AlternativeNames = []string{"The Villain Wants to Live", "TVWL"}

	resp, err := imp.Import(context.Background(), sub)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.NotZero(t, resp.NovelID)
	assert.Contains(t, resp.Message, "imported successfully")
	assert.Equal(t, Stats{
		AlternativeNamesCreated: 2,
		GenresCreated:           2,
		GenresAssociated:        2,
		ChaptersCreated:         2,
	}, resp.Stats)

	var novel models.Novel
	require.NoError(t, gdb.Preload("Chapters").Preload("Names").First(&novel, resp.NovelID).Error)
	assert.Equal(t, "El Villano Que Quiere Vivir", novel.Name)
	assert.Equal(t, models.StatusOngoing, novel.Status)
	assert.Len(t, novel.Chapters, 2)
	assert.Len(t, novel.Names, 2)
	assert.Nil(t, novel.CoverPath)
}

func TestImportNameConflict(t *testing.T) {
	imp, _, _ := testImporter(t)

	_, err := imp.Import(context.Background(), sampleSubmission())
	require.NoError(t, err)

	_, err = imp.Import(context.Background(), sampleSubmission())
	require.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "El Villano Que Quiere Vivir")

	// The losing import must not have written anything.
	var count int64
	require.NoError(t, imp.DB.Model(&models.Novel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestImportValidation(t *testing.T) {
	imp, _, _ := testImporter(t)
	ctx := context.Background()

	sub := sampleSubmission()
	sub.Name = ""
	_, err := imp.Import(ctx, sub)
	assert.ErrorIs(t, err, ErrValidation)

	sub = sampleSubmission()
	bad := 11.0
	sub.Rating = &bad
	_, err = imp.Import(ctx, sub)
	assert.ErrorIs(t, err, ErrValidation)

	sub = sampleSubmission()
	sub.Status = "publicando"
	_, err = imp.Import(ctx, sub)
	assert.ErrorIs(t, err, ErrValidation)

	sub = sampleSubmission()
	sub.Chapters[1].OrderNumber = 0
	_, err = imp.Import(ctx, sub)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestStatusDefaultsToOngoing(t *testing.T) {
	sub := sampleSubmission()
	sub.Status = ""
	require.NoError(t, sub.Validate())
	assert.Equal(t, models.StatusOngoing, sub.Status)
}

func TestGenreNormalizationIdempotent(t *testing.T) {
	imp, gdb, _ := testImporter(t)

	sub := sampleSubmission()
	sub.Genres = []string{"Fantasy", "fantasy", " Fantasy ", ""}

	resp, err := imp.Import(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Stats.GenresCreated)
	assert.Equal(t, 1, resp.Stats.GenresAssociated)

	var genres []models.Genre
	require.NoError(t, gdb.Find(&genres).Error)
	require.Len(t, genres, 1)
	assert.Equal(t, "fantasy", genres[0].Name)

	// Re-association against the existing genre creates nothing new.
	created, associated, err := imp.AssociateGenres(context.Background(), resp.NovelID, []string{"FANTASY"})
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Zero(t, associated)
}

func TestImportCoverMissingFile(t *testing.T) {
	imp, gdb, _ := testImporter(t)

	sub := sampleSubmission()
	missing := filepath.Join(t.TempDir(), "no-such-cover.jpg")
	sub.ImagePath = &missing

	resp, err := imp.Import(context.Background(), sub)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.False(t, resp.Stats.CoverUploaded)

	var novel models.Novel
	require.NoError(t, gdb.First(&novel, resp.NovelID).Error)
	assert.Nil(t, novel.CoverPath)
}

func TestImportCoverTranscoded(t *testing.T) {
	imp, gdb, coverDir := testImporter(t)

	coverFile := filepath.Join(t.TempDir(), "cover.png")
	f, err := os.Create(coverFile)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	require.NoError(t, f.Close())

	sub := sampleSubmission()
	sub.ImagePath = &coverFile

	resp, err := imp.Import(context.Background(), sub)
	require.NoError(t, err)
	assert.True(t, resp.Stats.CoverUploaded)

	var novel models.Novel
	require.NoError(t, gdb.First(&novel, resp.NovelID).Error)
	require.NotNil(t, novel.CoverPath)
	assert.Contains(t, *novel.CoverPath, "/static/novels/")

	stored := filepath.Join(coverDir, filepath.Base(*novel.CoverPath))
	_, err = os.Stat(stored)
	assert.NoError(t, err)
}

func TestUpsertChaptersRerun(t *testing.T) {
	imp, gdb, _ := testImporter(t)
	ctx := context.Background()

	resp, err := imp.Import(ctx, sampleSubmission())
	require.NoError(t, err)

	revised := sampleSubmission().Chapters
	revised[0].Content = "contenido uno revisado"

	created, updated, err := imp.UpsertChapters(ctx, resp.NovelID, revised)
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Equal(t, 2, updated)

	var chapters []models.Chapter
	require.NoError(t, gdb.Where("novel_id = ?", resp.NovelID).Order("order_number").Find(&chapters).Error)
	require.Len(t, chapters, 2)
	assert.Equal(t, "contenido uno revisado", chapters[0].Content)
	assert.Equal(t, "contenido dos", chapters[1].Content)
}

func TestImportMessageVariants(t *testing.T) {
	assert.Contains(t, importMessage("X", Stats{ChaptersCreated: 2}), "imported successfully")
	assert.Contains(t, importMessage("X", Stats{ChaptersUpdated: 2}), "contents updated")
	assert.Contains(t, importMessage("X", Stats{ChaptersCreated: 1, ChaptersUpdated: 1}), "partially updated")
}
