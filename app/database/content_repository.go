package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Aadityav1/EasyToGet-Website/app/catalog"
)

type contentRepository struct {
	db *DB
}

// NewContentRepository creates a repository for the content table.
func NewContentRepository(db *DB) ContentRepository {
	return &contentRepository{db: db}
}

const contentColumns = "id, title, content, url, category, created_at"

func scanContent(row interface{ Scan(dest ...any) error }) (*Content, error) {
	var c Content
	err := row.Scan(&c.ID, &c.Title, &c.Content, &c.URL, &c.Category, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *contentRepository) GetByID(id int64) (*Content, error) {
	row := r.db.QueryRow(`SELECT `+contentColumns+` FROM content WHERE id = ?`, id)
	c, err := scanContent(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get content by id: %w", err)
	}
	return c, nil
}

func (r *contentRepository) GetByTitle(title string) (*Content, error) {
	row := r.db.QueryRow(`SELECT `+contentColumns+` FROM content WHERE title = ? ORDER BY id LIMIT 1`, title)
	c, err := scanContent(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get content by title: %w", err)
	}
	return c, nil
}

func (r *contentRepository) GetByTitleAndURL(title, url string) (*Content, error) {
	row := r.db.QueryRow(`SELECT `+contentColumns+` FROM content WHERE title = ? AND url = ? ORDER BY id LIMIT 1`, title, url)
	c, err := scanContent(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get content by title and url: %w", err)
	}
	return c, nil
}

// Insert stores a new row. When c.ID is positive the id is honored (seed
// rows own their ids); otherwise SQLite assigns the next id.
func (r *contentRepository) Insert(c *Content) (int64, error) {
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	if c.ID > 0 {
		_, err := r.db.Exec(`
			INSERT INTO content (id, title, content, url, category, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, c.ID, c.Title, c.Content, c.URL, c.Category, createdAt)
		if err != nil {
			return 0, fmt.Errorf("failed to insert content: %w", err)
		}
		return c.ID, nil
	}

	result, err := r.db.Exec(`
		INSERT INTO content (title, content, url, category, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, c.Title, c.Content, c.URL, c.Category, createdAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert content: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted id: %w", err)
	}
	return id, nil
}

func (r *contentRepository) UpdateURL(id int64, url string) error {
	result, err := r.db.Exec(`UPDATE content SET url = ? WHERE id = ?`, url, id)
	if err != nil {
		return fmt.Errorf("failed to update url: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no content row with id %d", id)
	}
	return nil
}

func (r *contentRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM content`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count content: %w", err)
	}
	return count, nil
}

func (r *contentRepository) List(limit, offset int) ([]Content, error) {
	rows, err := r.db.Query(`
		SELECT `+contentColumns+`
		FROM content
		ORDER BY id
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}
	defer rows.Close()

	return collectContent(rows)
}

func (r *contentRepository) ListAll() ([]Content, error) {
	rows, err := r.db.Query(`SELECT ` + contentColumns + ` FROM content ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list all content: %w", err)
	}
	defer rows.Close()

	return collectContent(rows)
}

// CountByCategory counts rows whose category equals the given name,
// case-insensitively. The name must already be folded by the caller.
func (r *contentRepository) CountByCategory(category string) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM content
		WHERE category IS NOT NULL AND lower(category) = ?
	`, category).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count content by category: %w", err)
	}
	return count, nil
}

func (r *contentRepository) ListByCategory(category string, limit, offset int) ([]Content, error) {
	rows, err := r.db.Query(`
		SELECT `+contentColumns+`
		FROM content
		WHERE category IS NOT NULL AND lower(category) = ?
		ORDER BY id
		LIMIT ? OFFSET ?
	`, category, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list content by category: %w", err)
	}
	defer rows.Close()

	return collectContent(rows)
}

func (r *contentRepository) CategoryCounts() ([]CategoryCount, error) {
	rows, err := r.db.Query(`
		SELECT category, COUNT(*)
		FROM content
		WHERE category IS NOT NULL
		GROUP BY category
		ORDER BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	defer rows.Close()

	var counts []CategoryCount
	for rows.Next() {
		var cc CategoryCount
		if err := rows.Scan(&cc.Name, &cc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts = append(counts, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category counts: %w", err)
	}
	return counts, nil
}

// Search returns rows whose title, content or url contains the query as a
// substring. The query must already be case-folded by the caller; LIKE
// wildcards in it are escaped so they match literally.
func (r *contentRepository) Search(query string) ([]Content, error) {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(query)
	pattern := "%" + escaped + "%"

	rows, err := r.db.Query(`
		SELECT `+contentColumns+`
		FROM content
		WHERE lower(title) LIKE ? ESCAPE '\'
		   OR lower(content) LIKE ? ESCAPE '\'
		   OR lower(url) LIKE ? ESCAPE '\'
		ORDER BY id
	`, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search content: %w", err)
	}
	defer rows.Close()

	return collectContent(rows)
}

// DuplicateGroups reports (title, url) pairs held by more than one row,
// with each group's members ordered by id.
func (r *contentRepository) DuplicateGroups() ([]DuplicateGroup, error) {
	rows, err := r.db.Query(`
		SELECT title, url, COUNT(*)
		FROM content
		GROUP BY title, url
		HAVING COUNT(*) > 1
		ORDER BY MIN(id)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to find duplicate groups: %w", err)
	}

	var groups []DuplicateGroup
	for rows.Next() {
		var g DuplicateGroup
		if err := rows.Scan(&g.Title, &g.URL, &g.Count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan duplicate group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating duplicate groups: %w", err)
	}
	// Close before the member queries below: the pool holds one connection.
	rows.Close()

	for i := range groups {
		entries, err := r.duplicateEntries(groups[i].Title, groups[i].URL)
		if err != nil {
			return nil, err
		}
		groups[i].Entries = entries
	}

	return groups, nil
}

func (r *contentRepository) duplicateEntries(title, url string) ([]DuplicateEntry, error) {
	rows, err := r.db.Query(`
		SELECT id, content FROM content
		WHERE title = ? AND url = ?
		ORDER BY id
	`, title, url)
	if err != nil {
		return nil, fmt.Errorf("failed to load duplicate entries: %w", err)
	}
	defer rows.Close()

	var entries []DuplicateEntry
	for rows.Next() {
		var e DuplicateEntry
		if err := rows.Scan(&e.ID, &e.Content); err != nil {
			return nil, fmt.Errorf("failed to scan duplicate entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating duplicate entries: %w", err)
	}
	return entries, nil
}

// RemoveDuplicateURLs deletes every row that shares a url with an earlier
// row, keeping the smallest id per url. Returns the number of rows removed.
func (r *contentRepository) RemoveDuplicateURLs() (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	result, err := tx.Exec(`
		DELETE FROM content
		WHERE id NOT IN (SELECT MIN(id) FROM content GROUP BY url)
	`)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to remove duplicates: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to count removed rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit duplicate removal: %w", err)
	}

	return int(removed), nil
}

// ReconcileSeeds upserts the seed catalog in one transaction. Per seed, in
// catalog order: a row matching (title, url) is overwritten in place; else a
// row holding the seed's id is overwritten only if its title still matches
// the seed (a drifted url is restored); else the seed is inserted with its
// catalog id. An id held by an unrelated row aborts the whole batch.
func (r *contentRepository) ReconcileSeeds(seeds []catalog.Seed) (int, int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	var inserted, updated int
	now := time.Now().UTC()

	for _, seed := range seeds {
		var id int64
		err := tx.QueryRow(`
			SELECT id FROM content
			WHERE title = ? AND url = ?
			ORDER BY id LIMIT 1
		`, seed.Title, seed.URL).Scan(&id)

		switch {
		case err == nil:
			if err := overwriteSeed(tx, id, seed, now); err != nil {
				tx.Rollback()
				return 0, 0, err
			}
			updated++

		case errors.Is(err, sql.ErrNoRows):
			var title string
			err := tx.QueryRow(`SELECT title FROM content WHERE id = ?`, seed.ID).Scan(&title)
			switch {
			case err == nil:
				if title != seed.Title {
					tx.Rollback()
					return 0, 0, fmt.Errorf("seed %d (%q) conflicts with existing row titled %q", seed.ID, seed.Title, title)
				}
				if err := overwriteSeed(tx, seed.ID, seed, now); err != nil {
					tx.Rollback()
					return 0, 0, err
				}
				updated++
			case errors.Is(err, sql.ErrNoRows):
				_, err := tx.Exec(`
					INSERT INTO content (id, title, content, url, category, created_at)
					VALUES (?, ?, ?, ?, ?, ?)
				`, seed.ID, seed.Title, seed.Content, seed.URL, seed.Category, now)
				if err != nil {
					tx.Rollback()
					return 0, 0, fmt.Errorf("failed to insert seed %d: %w", seed.ID, err)
				}
				inserted++
			default:
				tx.Rollback()
				return 0, 0, fmt.Errorf("failed to look up seed %d by id: %w", seed.ID, err)
			}

		default:
			tx.Rollback()
			return 0, 0, fmt.Errorf("failed to look up seed %d by title and url: %w", seed.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit seed reconciliation: %w", err)
	}

	return inserted, updated, nil
}

func overwriteSeed(tx *sql.Tx, id int64, seed catalog.Seed, now time.Time) error {
	_, err := tx.Exec(`
		UPDATE content
		SET title = ?, content = ?, url = ?, category = ?, created_at = ?
		WHERE id = ?
	`, seed.Title, seed.Content, seed.URL, seed.Category, now, id)
	if err != nil {
		return fmt.Errorf("failed to overwrite seed %d: %w", seed.ID, err)
	}
	return nil
}

func collectContent(rows *sql.Rows) ([]Content, error) {
	var items []Content
	for rows.Next() {
		var c Content
		err := rows.Scan(&c.ID, &c.Title, &c.Content, &c.URL, &c.Category, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content row: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating content rows: %w", err)
	}
	return items, nil
}
