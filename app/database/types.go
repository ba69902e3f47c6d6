package database

import (
	"database/sql"
	"time"
)

// Content is a catalog row: a titled link with a free-text description and
// an optional category.
type Content struct {
	ID        int64
	Title     string
	Content   string
	URL       string
	Category  sql.NullString
	CreatedAt time.Time
}

// DuplicateEntry is one member of a duplicate group.
type DuplicateEntry struct {
	ID      int64
	Content string
}

// DuplicateGroup is a set of rows sharing the same (title, url) pair.
type DuplicateGroup struct {
	Title   string
	URL     string
	Count   int
	Entries []DuplicateEntry
}

// CategoryCount is a distinct stored category and its row count.
type CategoryCount struct {
	Name  string
	Count int
}
