package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Aadityav1/EasyToGet-Website/app/catalog"
	"github.com/Aadityav1/EasyToGet-Website/app/content"
	"github.com/Aadityav1/EasyToGet-Website/app/database"
)

const testIndexHTML = "<html><body>easytoget spa</body></html>"

func newTestServer(t *testing.T) (*gin.Engine, database.ContentRepository) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := database.NewConnection(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := database.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	staticDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(staticDir, "index.html"), []byte(testIndexHTML), 0o644); err != nil {
		t.Fatalf("failed to write index.html: %v", err)
	}

	repo := database.NewContentRepository(db)
	handler := NewHandler(content.NewService(repo))
	return NewServer(handler, staticDir), repo
}

// seedCatalog reconciles the real embedded catalog, as startup does.
func seedCatalog(t *testing.T, repo database.ContentRepository) int {
	t.Helper()

	seeds, err := catalog.Load()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	if _, _, err := repo.ReconcileSeeds(seeds); err != nil {
		t.Fatalf("failed to reconcile seeds: %v", err)
	}
	return len(seeds)
}

func doRequest(t *testing.T, r *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode JSON response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestHealth(t *testing.T) {
	r, _ := newTestServer(t)

	w := doRequest(t, r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	resp := decodeJSON(t, w)
	if resp["success"] != true {
		t.Error("expected success true")
	}
	if resp["message"] != "API is healthy" {
		t.Errorf("unexpected message: %v", resp["message"])
	}
}

func TestGetContent_Pagination(t *testing.T) {
	r, repo := newTestServer(t)
	total := seedCatalog(t, repo)

	w := doRequest(t, r, http.MethodGet, "/content?page=1&per_page=10", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	resp := decodeJSON(t, w)
	if int(resp["total"].(float64)) != total {
		t.Errorf("expected total %d, got %v", total, resp["total"])
	}
	wantPages := (total + 9) / 10
	if int(resp["pages"].(float64)) != wantPages {
		t.Errorf("expected pages %d, got %v", wantPages, resp["pages"])
	}
	if resp["next_page"] != "/content?page=2&per_page=10" {
		t.Errorf("unexpected next_page: %v", resp["next_page"])
	}
	data := resp["data"].([]any)
	if len(data) != 10 {
		t.Errorf("expected 10 rows, got %d", len(data))
	}

	// Last page has no next link
	w = doRequest(t, r, http.MethodGet, "/content?page=7&per_page=10", nil)
	resp = decodeJSON(t, w)
	if resp["next_page"] != nil {
		t.Errorf("expected null next_page on last page, got %v", resp["next_page"])
	}
}

func TestGetContent_DefaultsAndBadParams(t *testing.T) {
	r, repo := newTestServer(t)
	seedCatalog(t, repo)

	w := doRequest(t, r, http.MethodGet, "/content?page=abc&per_page=-5", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	resp := decodeJSON(t, w)
	if int(resp["page"].(float64)) != 1 {
		t.Errorf("expected page 1, got %v", resp["page"])
	}
	if int(resp["per_page"].(float64)) != 10 {
		t.Errorf("expected per_page 10, got %v", resp["per_page"])
	}
}

func TestGetAllContent(t *testing.T) {
	r, repo := newTestServer(t)
	total := seedCatalog(t, repo)

	w := doRequest(t, r, http.MethodGet, "/content/all", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	resp := decodeJSON(t, w)
	data := resp["data"].([]any)
	if len(data) != total {
		t.Errorf("expected %d rows, got %d", total, len(data))
	}

	first := data[0].(map[string]any)
	for _, key := range []string{"id", "title", "content", "url", "category"} {
		if _, ok := first[key]; !ok {
			t.Errorf("expected key %q in /content/all rows", key)
		}
	}
}

func TestSearch_MissingQuery(t *testing.T) {
	r, _ := newTestServer(t)

	w := doRequest(t, r, http.MethodGet, "/search", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	resp := decodeJSON(t, w)
	if resp["success"] != false {
		t.Error("expected success false")
	}
	if resp["message"] != `Query parameter "q" is required` {
		t.Errorf("unexpected message: %v", resp["message"])
	}
}

func TestSearch_WhatsApp(t *testing.T) {
	r, repo := newTestServer(t)
	seedCatalog(t, repo)

	w := doRequest(t, r, http.MethodGet, "/search?q=whatsapp", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	resp := decodeJSON(t, w)
	data := resp["data"].([]any)
	if len(data) != 1 {
		t.Fatalf("expected exactly one result, got %d", len(data))
	}
	row := data[0].(map[string]any)
	if int(row["id"].(float64)) != 6 {
		t.Errorf("expected seed id 6, got %v", row["id"])
	}
}

func TestGetContentByCategory(t *testing.T) {
	r, repo := newTestServer(t)
	seedCatalog(t, repo)

	w := doRequest(t, r, http.MethodGet, "/content/category/operating-systems?per_page=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	resp := decodeJSON(t, w)
	if resp["category"] != "operating-systems" {
		t.Errorf("expected echoed category, got %v", resp["category"])
	}
	data := resp["data"].([]any)
	if len(data) != 2 {
		t.Errorf("expected 2 rows, got %d", len(data))
	}
	if total := int(resp["total"].(float64)); total < 5 {
		t.Errorf("expected at least 5 seeded OS rows, got %d", total)
	}
	if pages := int(resp["pages"].(float64)); pages < 3 {
		t.Errorf("expected at least 3 pages at per_page=2, got %d", pages)
	}

	row := data[0].(map[string]any)
	if row["category"] != "Operating Systems" {
		t.Errorf("expected stored category name in rows, got %v", row["category"])
	}
	if _, ok := row["timestamp"]; !ok {
		t.Error("expected timestamp in category rows")
	}
}

func TestGetContentByCategory_SpellingsAgree(t *testing.T) {
	r, repo := newTestServer(t)
	seedCatalog(t, repo)

	slugResp := decodeJSON(t, doRequest(t, r, http.MethodGet, "/content/category/operating-systems", nil))
	nameResp := decodeJSON(t, doRequest(t, r, http.MethodGet, "/content/category/Operating%20Systems", nil))

	if slugResp["total"] != nameResp["total"] {
		t.Errorf("expected identical totals, got %v and %v", slugResp["total"], nameResp["total"])
	}

	slugData := slugResp["data"].([]any)
	nameData := nameResp["data"].([]any)
	if len(slugData) != len(nameData) {
		t.Fatalf("expected identical result sets, got %d and %d rows", len(slugData), len(nameData))
	}
	for i := range slugData {
		a := slugData[i].(map[string]any)
		b := nameData[i].(map[string]any)
		if a["id"] != b["id"] {
			t.Errorf("result sets differ at %d: %v vs %v", i, a["id"], b["id"])
		}
	}
}

func TestGetContentByCategory_UnknownIsEmptySuccess(t *testing.T) {
	r, repo := newTestServer(t)
	seedCatalog(t, repo)

	w := doRequest(t, r, http.MethodGet, "/content/category/no-such-category", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	resp := decodeJSON(t, w)
	if resp["success"] != true {
		t.Error("expected success true")
	}
	if int(resp["total"].(float64)) != 0 {
		t.Errorf("expected empty result, got total %v", resp["total"])
	}
}

func TestAddContentToCategory(t *testing.T) {
	r, _ := newTestServer(t)

	body := map[string]string{
		"title":   "New Tool",
		"content": "A useful tool",
		"url":     "https://tool.example/",
	}
	w := doRequest(t, r, http.MethodPost, "/content/category/utilities", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeJSON(t, w)
	if resp["message"] != "Content added to category utilities" {
		t.Errorf("unexpected message: %v", resp["message"])
	}
	added := resp["content"].(map[string]any)
	if added["category"] != "utilities" {
		t.Errorf("expected category from the path, got %v", added["category"])
	}

	// The row is now visible through the category listing
	listResp := decodeJSON(t, doRequest(t, r, http.MethodGet, "/content/category/utilities", nil))
	if int(listResp["total"].(float64)) != 1 {
		t.Errorf("expected the new row to be listed, got total %v", listResp["total"])
	}
}

func TestAddContentToCategory_Validation(t *testing.T) {
	r, _ := newTestServer(t)

	w := doRequest(t, r, http.MethodPost, "/content/category/utilities", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing body, got %d", w.Code)
	}

	w = doRequest(t, r, http.MethodPost, "/content/category/utilities", map[string]string{"title": "only title"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", w.Code)
	}
	resp := decodeJSON(t, w)
	if resp["message"] != "title, content, and url are required" {
		t.Errorf("unexpected message: %v", resp["message"])
	}
}

func TestUpdateContentURL(t *testing.T) {
	r, repo := newTestServer(t)
	total := seedCatalog(t, repo)

	body := map[string]any{"id": 6, "url": "https://new.example/"}
	w := doRequest(t, r, http.MethodPut, "/content/update-url", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeJSON(t, w)
	if resp["message"] != "URL updated successfully" {
		t.Errorf("unexpected message: %v", resp["message"])
	}

	// Only row 6's url changed, nothing else
	all := decodeJSON(t, doRequest(t, r, http.MethodGet, "/content/all", nil))
	data := all["data"].([]any)
	if len(data) != total {
		t.Fatalf("row count changed: %d", len(data))
	}
	for _, item := range data {
		row := item.(map[string]any)
		if int(row["id"].(float64)) == 6 {
			if row["url"] != "https://new.example/" {
				t.Errorf("expected row 6 url updated, got %v", row["url"])
			}
			if row["title"] != "WhatsApp" {
				t.Errorf("expected row 6 title untouched, got %v", row["title"])
			}
		}
	}
}

func TestUpdateContentURL_Precedence(t *testing.T) {
	r, repo := newTestServer(t)
	seedCatalog(t, repo)

	// id 1 is Kali Linux, title names WhatsApp (id 6); id must win
	body := map[string]any{"id": 1, "title": "WhatsApp", "url": "https://precedence.example/"}
	w := doRequest(t, r, http.MethodPut, "/content/update-url", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	resp := decodeJSON(t, w)
	updated := resp["content"].(map[string]any)
	if int(updated["id"].(float64)) != 1 {
		t.Errorf("expected id precedence (row 1), got %v", updated["id"])
	}
}

func TestUpdateContentURL_Errors(t *testing.T) {
	r, repo := newTestServer(t)
	seedCatalog(t, repo)

	w := doRequest(t, r, http.MethodPut, "/content/update-url", map[string]any{"id": 6})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing url, got %d", w.Code)
	}
	if msg := decodeJSON(t, w)["message"]; msg != "New URL is required" {
		t.Errorf("unexpected message: %v", msg)
	}

	w = doRequest(t, r, http.MethodPut, "/content/update-url", map[string]any{"url": "https://x.example/"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing identifiers, got %d", w.Code)
	}
	if msg := decodeJSON(t, w)["message"]; msg != "Either id or title must be provided" {
		t.Errorf("unexpected message: %v", msg)
	}

	w = doRequest(t, r, http.MethodPut, "/content/update-url", map[string]any{"id": 9999, "url": "https://x.example/"})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown row, got %d", w.Code)
	}
	if msg := decodeJSON(t, w)["message"]; msg != "Content not found" {
		t.Errorf("unexpected message: %v", msg)
	}
}

func TestDuplicatesFlow(t *testing.T) {
	r, _ := newTestServer(t)

	add := map[string]string{"title": "Git", "content": "desc", "url": "https://git-scm.com"}
	doRequest(t, r, http.MethodPost, "/content/category/dev", add)
	doRequest(t, r, http.MethodPost, "/content/category/dev", add)

	w := doRequest(t, r, http.MethodGet, "/content/duplicates", nil)
	resp := decodeJSON(t, w)
	if int(resp["total_duplicates"].(float64)) != 1 {
		t.Fatalf("expected 1 duplicate group, got %v", resp["total_duplicates"])
	}
	group := resp["duplicates"].([]any)[0].(map[string]any)
	if int(group["count"].(float64)) != 2 {
		t.Errorf("expected group count 2, got %v", group["count"])
	}

	w = doRequest(t, r, http.MethodDelete, "/content/remove-duplicates", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if msg := decodeJSON(t, w)["message"]; msg != "Removed 1 duplicate entries." {
		t.Errorf("unexpected message: %v", msg)
	}

	resp = decodeJSON(t, doRequest(t, r, http.MethodGet, "/content/duplicates", nil))
	if int(resp["total_duplicates"].(float64)) != 0 {
		t.Errorf("expected no duplicates after removal, got %v", resp["total_duplicates"])
	}
}

func TestGetCategories(t *testing.T) {
	r, repo := newTestServer(t)
	seedCatalog(t, repo)

	w := doRequest(t, r, http.MethodGet, "/content/categories", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	resp := decodeJSON(t, w)
	data := resp["data"].([]any)
	if len(data) == 0 {
		t.Fatal("expected seeded categories")
	}

	var foundOS bool
	for _, item := range data {
		cat := item.(map[string]any)
		if cat["name"] == "Operating Systems" {
			foundOS = true
			if cat["slug"] != "operating-systems" {
				t.Errorf("unexpected slug: %v", cat["slug"])
			}
			if int(cat["count"].(float64)) < 5 {
				t.Errorf("expected at least 5 OS rows, got %v", cat["count"])
			}
		}
	}
	if !foundOS {
		t.Error("expected Operating Systems category")
	}
}

func TestSPAFallback(t *testing.T) {
	r, _ := newTestServer(t)

	// Unknown client-side route falls back to index.html
	w := doRequest(t, r, http.MethodGet, "/some/client/route", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != testIndexHTML {
		t.Errorf("expected index.html body, got %q", w.Body.String())
	}

	// Non-GET methods on unknown paths get the JSON envelope
	w = doRequest(t, r, http.MethodPost, "/some/client/route", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	resp := decodeJSON(t, w)
	if resp["message"] != "Endpoint not found" {
		t.Errorf("unexpected message: %v", resp["message"])
	}
}

func TestDocs(t *testing.T) {
	r, _ := newTestServer(t)

	w := doRequest(t, r, http.MethodGet, "/api-docs", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("EasyToGet API Documentation")) {
		t.Error("expected docs title in HTML")
	}

	w = doRequest(t, r, http.MethodGet, "/api-docs/json", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := decodeJSON(t, w)
	if _, ok := resp["endpoints"]; !ok {
		t.Error("expected endpoints key in JSON docs")
	}
}

func TestFavicon(t *testing.T) {
	r, _ := newTestServer(t)

	w := doRequest(t, r, http.MethodGet, "/favicon.ico", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
}
