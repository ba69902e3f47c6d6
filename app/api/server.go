package api

import (
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates the HTTP engine with all routes configured. staticDir
// holds the prebuilt SPA bundle served for non-API paths.
func NewServer(handler *Handler, staticDir string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(requestLogger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.Error("Panic recovered", "method", c.Request.Method, "path", c.Request.URL.Path, "error", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			MessageResponse{Success: false, Message: "Internal server error"})
	}))

	// CORS is wide open: the SPA may be served from a dev server on
	// another origin.
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, staticDir)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler, staticDir string) {
	r.GET("/content", handler.GetContent)
	r.GET("/content/all", handler.GetAllContent)
	r.GET("/content/categories", handler.GetCategories)
	r.GET("/content/category/:name", handler.GetContentByCategory)
	r.POST("/content/category/:name", handler.AddContentToCategory)
	r.GET("/search", handler.SearchContent)
	r.PUT("/content/update-url", handler.UpdateContentURL)
	r.GET("/content/duplicates", handler.GetDuplicates)
	r.DELETE("/content/remove-duplicates", handler.RemoveDuplicates)

	r.GET("/health", handler.GetHealth)
	r.GET("/api-docs", handler.GetDocs)
	r.GET("/api-docs/json", handler.GetDocsJSON)

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	// Everything else is the SPA bundle, falling back to index.html so
	// client-side routes survive a page reload.
	r.NoRoute(spaFallback(staticDir))
}

// requestLogger logs every request before dispatch, then the outcome.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		slog.Info("Request", "method", c.Request.Method, "path", c.Request.URL.Path, "query", c.Request.URL.RawQuery)

		c.Next()

		status := c.Writer.Status()
		switch {
		case status >= http.StatusInternalServerError:
			slog.Error("Request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "status", status)
		case status == http.StatusNotFound:
			slog.Warn("Not found", "method", c.Request.Method, "path", c.Request.URL.Path)
		default:
			slog.Debug("Request completed", "method", c.Request.Method, "path", c.Request.URL.Path,
				"status", status, "duration", time.Since(start))
		}
	}
}

func spaFallback(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, MessageResponse{Success: false, Message: "Endpoint not found"})
			return
		}

		// Clean the request path before joining so "../" cannot escape
		// the bundle directory.
		cleaned := path.Clean("/" + c.Request.URL.Path)
		file := filepath.Join(staticDir, filepath.FromSlash(strings.TrimPrefix(cleaned, "/")))

		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}

		index := filepath.Join(staticDir, "index.html")
		if _, err := os.Stat(index); err != nil {
			slog.Warn("SPA bundle missing", "dir", staticDir)
			c.JSON(http.StatusNotFound, MessageResponse{Success: false, Message: "Endpoint not found"})
			return
		}
		c.File(index)
	}
}
