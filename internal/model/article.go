package model

import (
	"time"
)

// Article represents a published informational article
type Article struct {
	ID          int
	Slug        string
	Title       string
	Author      string
	PublishDate time.Time
	Image       string
	Summary     string
	Body        string
	BodyHTML    string
	WordCount   int
	Checksum    string
	UpdatedAt   time.Time
}

// ArticleSnapshot records an article version each time an import changed it
type ArticleSnapshot struct {
	ID           int
	Slug         string
	Title        string
	WordCount    int
	Checksum     string
	SnapshotDate time.Time
	CreatedAt    time.Time
}
