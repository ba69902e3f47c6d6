package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aadityav1/EasyToGet-Website/app/content"
	"github.com/Aadityav1/EasyToGet-Website/app/database"
)

type Handler struct {
	service *content.Service
}

func NewHandler(service *content.Service) *Handler {
	return &Handler{service: service}
}

// paginationParams reads page/per_page query values. Unparseable values
// fall back to the defaults; range clamping happens in the content service.
func paginationParams(c *gin.Context) (int, int) {
	page := 1
	if v, err := strconv.Atoi(c.Query("page")); err == nil {
		page = v
	}
	perPage := content.DefaultPerPage
	if v, err := strconv.Atoi(c.Query("per_page")); err == nil {
		perPage = v
	}
	return page, perPage
}

func nullableCategory(c database.Content) *string {
	if !c.Category.Valid {
		return nil
	}
	category := c.Category.String
	return &category
}

func nextPageLink(link string) *string {
	if link == "" {
		return nil
	}
	return &link
}

func contentItems(rows []database.Content) []ContentItem {
	items := make([]ContentItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, ContentItem{
			ID:      row.ID,
			Title:   row.Title,
			Content: row.Content,
			URL:     row.URL,
		})
	}
	return items
}

func (h *Handler) GetContent(c *gin.Context) {
	page, perPage := paginationParams(c)

	listing, err := h.service.List(page, perPage)
	if err != nil {
		slog.Error("Database error", "operation", "list_content", "error", err)
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		Success:  true,
		Page:     listing.Page,
		PerPage:  listing.PerPage,
		Total:    listing.Total,
		Pages:    listing.Pages,
		NextPage: nextPageLink(listing.NextPage),
		Data:     contentItems(listing.Items),
	})
}

func (h *Handler) GetAllContent(c *gin.Context) {
	rows, err := h.service.ListAll()
	if err != nil {
		slog.Error("Database error", "operation", "list_all_content", "error", err)
		internalError(c)
		return
	}

	items := make([]CategorizedItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, CategorizedItem{
			ContentItem: ContentItem{ID: row.ID, Title: row.Title, Content: row.Content, URL: row.URL},
			Category:    nullableCategory(row),
		})
	}

	c.JSON(http.StatusOK, AllResponse{
		Success: true,
		Total:   len(items),
		Data:    items,
	})
}

func (h *Handler) GetContentByCategory(c *gin.Context) {
	name := c.Param("name")
	page, perPage := paginationParams(c)

	listing, err := h.service.ListByCategory(name, page, perPage)
	if err != nil {
		slog.Error("Database error", "operation", "list_by_category", "category", name, "error", err)
		internalError(c)
		return
	}

	items := make([]CategoryItem, 0, len(listing.Items))
	for _, row := range listing.Items {
		items = append(items, CategoryItem{
			CategorizedItem: CategorizedItem{
				ContentItem: ContentItem{ID: row.ID, Title: row.Title, Content: row.Content, URL: row.URL},
				Category:    nullableCategory(row),
			},
			Timestamp: row.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, CategoryListResponse{
		Success:  true,
		Category: name,
		Page:     listing.Page,
		PerPage:  listing.PerPage,
		Total:    listing.Total,
		Pages:    listing.Pages,
		NextPage: nextPageLink(listing.NextPage),
		Data:     items,
	})
}

type addContentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

func (h *Handler) AddContentToCategory(c *gin.Context) {
	name := c.Param("name")

	var req addContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		clientError(c, "JSON body required")
		return
	}
	if req.Title == "" || req.Content == "" || req.URL == "" {
		clientError(c, "title, content, and url are required")
		return
	}

	row, err := h.service.Add(req.Title, req.Content, req.URL, name)
	if err != nil {
		slog.Error("Database error", "operation", "add_content", "category", name, "error", err)
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, MutationResponse{
		Success: true,
		Message: fmt.Sprintf("Content added to category %s", name),
		Content: CategorizedItem{
			ContentItem: ContentItem{ID: row.ID, Title: row.Title, Content: row.Content, URL: row.URL},
			Category:    nullableCategory(*row),
		},
	})
}

func (h *Handler) SearchContent(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		clientError(c, `Query parameter "q" is required`)
		return
	}
	page, perPage := paginationParams(c)

	listing, err := h.service.Search(query, page, perPage)
	if err != nil {
		slog.Error("Database error", "operation", "search", "query", query, "error", err)
		internalError(c)
		return
	}

	slog.Info("Search completed", "query", query, "total", listing.Total)

	c.JSON(http.StatusOK, SearchResponse{
		Success: true,
		Page:    listing.Page,
		PerPage: listing.PerPage,
		Total:   listing.Total,
		Pages:   listing.Pages,
		Data:    contentItems(listing.Items),
	})
}

type updateURLRequest struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

func (h *Handler) UpdateContentURL(c *gin.Context) {
	var req updateURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		clientError(c, "JSON body required")
		return
	}
	if req.URL == "" {
		clientError(c, "New URL is required")
		return
	}
	if req.ID <= 0 && req.Title == "" {
		clientError(c, "Either id or title must be provided")
		return
	}

	row, err := h.service.UpdateURL(req.ID, req.Title, req.URL)
	if errors.Is(err, content.ErrNotFound) {
		slog.Warn("Content not found for url update", "id", req.ID, "title", req.Title)
		c.JSON(http.StatusNotFound, MessageResponse{Success: false, Message: "Content not found"})
		return
	}
	if err != nil {
		slog.Error("Database error", "operation", "update_url", "id", req.ID, "error", err)
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, MutationResponse{
		Success: true,
		Message: "URL updated successfully",
		Content: map[string]any{
			"id":    row.ID,
			"title": row.Title,
			"url":   row.URL,
		},
	})
}

func (h *Handler) GetDuplicates(c *gin.Context) {
	groups, err := h.service.Duplicates()
	if err != nil {
		slog.Error("Database error", "operation", "list_duplicates", "error", err)
		internalError(c)
		return
	}

	duplicates := make([]DuplicateGroupJSON, 0, len(groups))
	for _, g := range groups {
		entries := make([]DuplicateEntryJSON, 0, len(g.Entries))
		for _, e := range g.Entries {
			entries = append(entries, DuplicateEntryJSON{ID: e.ID, Content: e.Content})
		}
		duplicates = append(duplicates, DuplicateGroupJSON{
			Title:   g.Title,
			URL:     g.URL,
			Count:   g.Count,
			Entries: entries,
		})
	}

	c.JSON(http.StatusOK, DuplicatesResponse{
		Success:         true,
		TotalDuplicates: len(duplicates),
		Duplicates:      duplicates,
	})
}

func (h *Handler) RemoveDuplicates(c *gin.Context) {
	removed, err := h.service.RemoveDuplicates()
	if err != nil {
		slog.Error("Database error", "operation", "remove_duplicates", "error", err)
		internalError(c)
		return
	}

	slog.Info("Duplicate removal completed", "removed", removed)

	c.JSON(http.StatusOK, MessageResponse{
		Success: true,
		Message: fmt.Sprintf("Removed %d duplicate entries.", removed),
	})
}

func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.service.Categories()
	if err != nil {
		slog.Error("Database error", "operation", "list_categories", "error", err)
		internalError(c)
		return
	}

	data := make([]CategoryInfo, 0, len(categories))
	for _, cat := range categories {
		data = append(data, CategoryInfo{Name: cat.Name, Slug: cat.Slug, Count: cat.Count})
	}

	c.JSON(http.StatusOK, CategoriesResponse{
		Success: true,
		Total:   len(data),
		Data:    data,
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "API is healthy"})
}

func clientError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, MessageResponse{Success: false, Message: message})
}

func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, MessageResponse{Success: false, Message: "Internal server error"})
}
