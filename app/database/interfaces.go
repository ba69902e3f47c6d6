package database

import (
	"github.com/Aadityav1/EasyToGet-Website/app/catalog"
)

type ContentRepository interface {
	GetByID(id int64) (*Content, error)
	GetByTitle(title string) (*Content, error)
	GetByTitleAndURL(title, url string) (*Content, error)

	Insert(c *Content) (int64, error)
	UpdateURL(id int64, url string) error

	Count() (int, error)
	List(limit, offset int) ([]Content, error)
	ListAll() ([]Content, error)

	CountByCategory(category string) (int, error)
	ListByCategory(category string, limit, offset int) ([]Content, error)
	CategoryCounts() ([]CategoryCount, error)

	Search(query string) ([]Content, error)

	DuplicateGroups() ([]DuplicateGroup, error)
	RemoveDuplicateURLs() (int, error)

	ReconcileSeeds(seeds []catalog.Seed) (inserted, updated int, err error)
}
