package api

// ContentItem is the row shape used by the paginated list and search
// responses, matching the fields the SPA consumes there.
type ContentItem struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// CategorizedItem adds the category, used by the full unpaginated list.
type CategorizedItem struct {
	ContentItem
	Category *string `json:"category"`
}

// CategoryItem adds the creation timestamp, used by the category listing.
type CategoryItem struct {
	CategorizedItem
	Timestamp string `json:"timestamp"`
}

type ListResponse struct {
	Success  bool          `json:"success"`
	Page     int           `json:"page"`
	PerPage  int           `json:"per_page"`
	Total    int           `json:"total"`
	Pages    int           `json:"pages"`
	NextPage *string       `json:"next_page"`
	Data     []ContentItem `json:"data"`
}

type AllResponse struct {
	Success bool              `json:"success"`
	Total   int               `json:"total"`
	Data    []CategorizedItem `json:"data"`
}

type CategoryListResponse struct {
	Success  bool           `json:"success"`
	Category string         `json:"category"`
	Page     int            `json:"page"`
	PerPage  int            `json:"per_page"`
	Total    int            `json:"total"`
	Pages    int            `json:"pages"`
	NextPage *string        `json:"next_page"`
	Data     []CategoryItem `json:"data"`
}

type SearchResponse struct {
	Success bool          `json:"success"`
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
	Total   int           `json:"total"`
	Pages   int           `json:"pages"`
	Data    []ContentItem `json:"data"`
}

// MutationResponse is the envelope for add and update operations; Content
// echoes the affected row.
type MutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Content any    `json:"content"`
}

type DuplicateEntryJSON struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}

type DuplicateGroupJSON struct {
	Title   string               `json:"title"`
	URL     string               `json:"url"`
	Count   int                  `json:"count"`
	Entries []DuplicateEntryJSON `json:"entries"`
}

type DuplicatesResponse struct {
	Success         bool                 `json:"success"`
	TotalDuplicates int                  `json:"total_duplicates"`
	Duplicates      []DuplicateGroupJSON `json:"duplicates"`
}

type CategoryInfo struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

type CategoriesResponse struct {
	Success bool           `json:"success"`
	Total   int            `json:"total"`
	Data    []CategoryInfo `json:"data"`
}

// MessageResponse is the generic `{success, message}` envelope, used for
// health, maintenance results, and every error response.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
