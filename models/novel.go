package models

import "gorm.io/gorm"

type NovelStatus string

const (
	StatusOngoing   NovelStatus = "ongoing"
	StatusCompleted NovelStatus = "completed"
	StatusHiatus    NovelStatus = "hiatus"
	StatusDropped   NovelStatus = "dropped"
)

// ValidStatus reports whether s is one of the four catalog states.
func ValidStatus(s NovelStatus) bool {
	switch s {
	case StatusOngoing, StatusCompleted, StatusHiatus, StatusDropped:
		return true
	}
	return false
}

type Novel struct {
	gorm.Model
	Name        string      `gorm:"size:200;uniqueIndex" json:"name"`
	Author      string      `gorm:"size:200" json:"author"`
	Description string      `gorm:"size:5000" json:"description"`
	Rating      *float64    `json:"rating"`
	Status      NovelStatus `gorm:"size:20;default:ongoing" json:"status"`
	SourceURL   string      `gorm:"size:500" json:"source_url"`
	CoverPath   *string     `gorm:"size:500" json:"cover_path"`

	Names    []NovelName `json:"names,omitempty"`
	Chapters []Chapter   `json:"chapters,omitempty"`
}

// NovelName is an alternate title for a novel.
type NovelName struct {
	ID      uint   `gorm:"primarykey" json:"id"`
	NovelID uint   `gorm:"index" json:"novel_id"`
	Name    string `gorm:"size:200" json:"name"`
}

type Genre struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex" json:"name"`
}

// NovelGenre is the novel/genre association row. The composite primary key
// doubles as the uniqueness constraint on the pair.
type NovelGenre struct {
	NovelID uint `gorm:"primarykey" json:"novel_id"`
	GenreID uint `gorm:"primarykey" json:"genre_id"`
}

type Chapter struct {
	gorm.Model
	NovelID     uint    `gorm:"index:idx_novel_order,unique" json:"novel_id"`
	OrderNumber int     `gorm:"index:idx_novel_order,unique" json:"order_number"`
	Title       string  `gorm:"size:300" json:"title"`
	Content     string  `gorm:"type:text" json:"content"`
	SourceURL   *string `gorm:"size:500" json:"source_url"`
}
