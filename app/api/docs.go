package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const docsHTML = `<html>
  <head>
    <title>EasyToGet API Documentation</title>
    <style>
      body {
        font-family: Arial, sans-serif;
        background: #f0f4ff;
        color: #003bb5;
        padding: 2rem;
      }
      h1 {
        color: #0056bff2;
      }
      ul {
        list-style-type: none;
        padding-left: 0;
      }
      li {
        margin: 1rem 0;
        font-size: 1.1rem;
      }
      code {
        background: #e0e7ff;
        padding: 0.2rem 0.4rem;
        border-radius: 4px;
        font-family: monospace;
      }
    </style>
  </head>
  <body>
    <h1>EasyToGet API Documentation</h1>
    <p>This page provides information about the available API endpoints.</p>
    <ul>
      <li><code>GET /content</code> - Returns all website content</li>
      <li><code>GET /content/all</code> - Returns all content without pagination</li>
      <li><code>GET /content/categories</code> - Returns the list of categories</li>
      <li><code>GET /search?q=your_query</code> - Returns search results matching the query</li>
      <li><code>GET /content/category/category_name</code> - Returns content for a specific category</li>
      <li><code>GET /api-docs/json</code> - Returns API documentation in JSON format</li>
      <li><code>GET /health</code> - Returns API health status</li>
    </ul>
  </body>
</html>
`

func (h *Handler) GetDocs(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(docsHTML))
}

func (h *Handler) GetDocsJSON(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"endpoints": gin.H{
			"/content":                          "GET - Returns all website content",
			"/content/all":                      "GET - Returns all content without pagination",
			"/content/categories":               "GET - Returns the list of categories",
			"/content/category/{category_name}": "GET - Returns content for a specific category",
			"/search?q=your_query":              "GET - Returns search results matching the query",
			"/content/update-url":               "PUT - Updates a content row's url by id or title",
			"/content/duplicates":               "GET - Reports duplicate (title, url) groups",
			"/content/remove-duplicates":        "DELETE - Removes rows sharing a url, keeping the earliest",
			"/health":                           "GET - Returns API health status",
		},
		"description": "EasyToGet backend API for website content retrieval and search",
	})
}
