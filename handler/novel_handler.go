package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Kogaraashi-py/Foreign-Library/importer"
	"github.com/Kogaraashi-py/Foreign-Library/models"
)

type NovelHandler struct {
	DB       *gorm.DB
	Importer *importer.Importer
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ImportNovel handles POST /admin/import-novel: a full reconciliation of a
// scrape submission against the catalog.
func (h *NovelHandler) ImportNovel(c echo.Context) error {
	var sub importer.Submission
	if err := c.Bind(&sub); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Code: "validation_error", Message: "malformed JSON body"})
	}

	resp, err := h.Importer.Import(c.Request().Context(), &sub)
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrConflict):
			return c.JSON(http.StatusConflict, errorResponse{Code: "conflict", Message: err.Error()})
		case errors.Is(err, importer.ErrValidation):
			return c.JSON(http.StatusBadRequest, errorResponse{Code: "validation_error", Message: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusCreated, resp)
}

// DeleteNovel removes a novel and its dependent rows. The cascade is
// explicit: alternate names, genre associations and chapters go first, then
// the novel, all in one transaction.
func (h *NovelHandler) DeleteNovel(c echo.Context) error {
	id := c.Param("id")

	var novel models.Novel
	if err := h.DB.First(&novel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Novel not found")
		}
		return err
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("novel_id = ?", novel.ID).Delete(&models.NovelName{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("novel_id = ?", novel.ID).Delete(&models.NovelGenre{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("novel_id = ?", novel.ID).Delete(&models.Chapter{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&novel).Error
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error deleting novel")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Novel and associated records deleted permanently"})
}
