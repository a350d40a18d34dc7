package importer

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/Kogaraashi-py/Foreign-Library/models"
)

// ErrValidation marks a malformed submission; nothing was written.
var ErrValidation = errors.New("invalid submission")

// ErrConflict marks a novel-name collision; nothing was written.
var ErrConflict = errors.New("novel already exists")

var validate = validator.New()

// SubmittedChapter is one full chapter body inside a submission.
type SubmittedChapter struct {
	Title       string  `json:"title" validate:"required,max=300"`
	Content     string  `json:"content"`
	OrderNumber int     `json:"order_number" validate:"required,gte=1"`
	SourceURL   *string `json:"source_url"`
}

// Submission is the wire-level input of the import endpoint: a scrape
// result, or anything shaped like one.
type Submission struct {
	Name             string             `json:"name" validate:"required,max=200"`
	Author           string             `json:"author" validate:"required,max=200"`
	Description      string             `json:"description" validate:"max=5000"`
	Rating           *float64           `json:"rating" validate:"omitempty,gte=0,lte=10"`
	Status           models.NovelStatus `json:"status"`
	SourceURL        string             `json:"source_url" validate:"required"`
	ImagePath        *string            `json:"image_path"`
	AlternativeNames []string           `json:"alternative_names"`
	Genres           []string           `json:"genres"`
	Chapters         []SubmittedChapter `json:"chapters" validate:"dive"`
}

// Validate checks field constraints and applies the status default. It
// returns an error wrapping ErrValidation so callers can map it to a
// machine-readable code.
func (s *Submission) Validate() error {
	if s.Status == "" {
		s.Status = models.StatusOngoing
	}
	if !models.ValidStatus(s.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, s.Status)
	}
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// Stats is the fixed-shape outcome record of one import.
type Stats struct {
	AlternativeNamesCreated int  `json:"alternative_names_created"`
	GenresCreated           int  `json:"genres_created"`
	GenresAssociated        int  `json:"genres_associated"`
	ChaptersCreated         int  `json:"chapters_created"`
	ChaptersUpdated         int  `json:"chapters_updated"`
	CoverUploaded           bool `json:"cover_uploaded"`
}

// Response is the import endpoint's reply.
type Response struct {
	Success bool   `json:"success"`
	NovelID uint   `json:"novel_id"`
	Message string `json:"message"`
	Stats   Stats  `json:"stats"`
}
