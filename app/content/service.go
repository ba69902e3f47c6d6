package content

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Aadityav1/EasyToGet-Website/app/database"
)

// ErrNotFound is returned when an update targets a row that does not exist.
var ErrNotFound = errors.New("content not found")

// Listing is one page of content rows plus the pagination envelope fields.
type Listing struct {
	Page     int
	PerPage  int
	Total    int
	Pages    int
	NextPage string // empty when this is the last page
	Items    []database.Content
}

// Category is a distinct stored category with its URL slug and row count.
type Category struct {
	Name  string
	Slug  string
	Count int
}

type Service struct {
	repo database.ContentRepository
}

func NewService(repo database.ContentRepository) *Service {
	return &Service{repo: repo}
}

// List returns one page of the catalog in insertion (id) order.
func (s *Service) List(page, perPage int) (*Listing, error) {
	page = clampPage(page)
	perPage = clampPerPage(perPage)

	total, err := s.repo.Count()
	if err != nil {
		return nil, err
	}

	items, err := s.repo.List(perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}

	listing := &Listing{
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pageCount(total, perPage),
		Items:   items,
	}
	if page < listing.Pages {
		listing.NextPage = fmt.Sprintf("/content?page=%d&per_page=%d", page+1, perPage)
	}
	return listing, nil
}

// ListAll returns the full catalog without pagination.
func (s *Service) ListAll() ([]database.Content, error) {
	return s.repo.ListAll()
}

// ListByCategory returns one page of rows in the named category. The name
// is matched case-insensitively with hyphens treated as spaces; an unknown
// category yields an empty (not error) listing.
func (s *Service) ListByCategory(name string, page, perPage int) (*Listing, error) {
	page = clampPage(page)
	perPage = clampPerPage(perPage)
	folded := FoldCategory(name)

	total, err := s.repo.CountByCategory(folded)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListByCategory(folded, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}

	listing := &Listing{
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pageCount(total, perPage),
		Items:   items,
	}
	if page < listing.Pages {
		listing.NextPage = fmt.Sprintf("/content/category/%s?page=%d&per_page=%d", name, page+1, perPage)
	}
	return listing, nil
}

// Search returns one page of rows whose title, content or url contains the
// query, case-insensitively. Matches are de-duplicated by id before the
// page is sliced, so a row matching several fields appears once. Pages past
// the end yield an empty slice.
func (s *Service) Search(query string, page, perPage int) (*Listing, error) {
	page = clampPage(page)
	perPage = clampPerPage(perPage)

	matches, err := s.repo.Search(Fold(query))
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool, len(matches))
	unique := matches[:0]
	for _, m := range matches {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		unique = append(unique, m)
	}

	total := len(unique)
	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &Listing{
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pageCount(total, perPage),
		Items:   unique[start:end],
	}, nil
}

// UpdateURL changes a single row's url, resolving the target by id when
// given (id takes precedence), else by exact title.
func (s *Service) UpdateURL(id int64, title, url string) (*database.Content, error) {
	var (
		row *database.Content
		err error
	)
	if id > 0 {
		row, err = s.repo.GetByID(id)
	} else {
		row, err = s.repo.GetByTitle(title)
	}
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}

	if err := s.repo.UpdateURL(row.ID, url); err != nil {
		return nil, err
	}
	row.URL = url
	return row, nil
}

// Add stores a new user-created row in the given category.
func (s *Service) Add(title, text, url, category string) (*database.Content, error) {
	row := &database.Content{
		Title:     title,
		Content:   text,
		URL:       url,
		Category:  sql.NullString{String: category, Valid: category != ""},
		CreatedAt: time.Now().UTC(),
	}

	id, err := s.repo.Insert(row)
	if err != nil {
		return nil, err
	}
	row.ID = id
	return row, nil
}

// Duplicates reports (title, url) groups held by more than one row.
func (s *Service) Duplicates() ([]database.DuplicateGroup, error) {
	return s.repo.DuplicateGroups()
}

// RemoveDuplicates collapses rows sharing a url down to the earliest row
// and returns how many were removed. Safe to run repeatedly.
func (s *Service) RemoveDuplicates() (int, error) {
	return s.repo.RemoveDuplicateURLs()
}

// Categories lists the distinct stored categories with their slugs.
func (s *Service) Categories() ([]Category, error) {
	counts, err := s.repo.CategoryCounts()
	if err != nil {
		return nil, err
	}

	categories := make([]Category, 0, len(counts))
	for _, cc := range counts {
		categories = append(categories, Category{
			Name:  cc.Name,
			Slug:  Slug(cc.Name),
			Count: cc.Count,
		})
	}
	return categories, nil
}
