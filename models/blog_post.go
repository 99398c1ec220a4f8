package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

const (
	ContentFormatHTML     = "html"
	ContentFormatMarkdown = "markdown"
)

// BlogPost egy nyelvi változat, az azonosító a nyelv és a slug összetétele
// ("hu_szekhelyszolgaltatas-araink"). Nem kétnyelvű modell: nyelvenként külön
// dokumentum.
type BlogPost struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"CreatedAt"`
	UpdatedAt time.Time      `json:"UpdatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"DeletedAt"`

	Language string `gorm:"column:language;index" json:"language"`
	Slug     string `gorm:"column:slug;index"     json:"slug"`
	Status   string `gorm:"column:status;index"   json:"status"`

	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`

	// Content a kiszolgált HTML. Markdown formátumnál mentéskor renderelünk,
	// a forrást a ContentSource őrzi.
	Content       string `json:"content"`
	ContentFormat string `json:"contentFormat"`
	ContentSource string `json:"contentSource"`

	CoverImageURL string     `json:"coverImageUrl"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty"`
}

func (BlogPost) TableName() string { return "posts" }

// PostID a származtatott összetett kulcs.
func PostID(language, slug string) string { return language + "_" + slug }
