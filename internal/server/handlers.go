package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/notion"
)

// ContentService is the read side of the site, implemented by
// *content.Adapter.
type ContentService interface {
	ListProjects(ctx context.Context) []content.Project
	ListBlogPosts(ctx context.Context) []content.BlogPost
	ListCertificates(ctx context.Context) []content.Certificate
	About(ctx context.Context) *notion.Page
	BlogPost(ctx context.Context, id string) *content.BlogPost
}

type contentHandler struct {
	content ContentService
}

func (h *contentHandler) projects(c *gin.Context) {
	c.JSON(http.StatusOK, h.content.ListProjects(c.Request.Context()))
}

func (h *contentHandler) blogPosts(c *gin.Context) {
	c.JSON(http.StatusOK, h.content.ListBlogPosts(c.Request.Context()))
}

func (h *contentHandler) blogPost(c *gin.Context) {
	post := h.content.BlogPost(c.Request.Context(), c.Param("id"))
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *contentHandler) certificates(c *gin.Context) {
	c.JSON(http.StatusOK, h.content.ListCertificates(c.Request.Context()))
}

func (h *contentHandler) about(c *gin.Context) {
	page := h.content.About(c.Request.Context())
	if page == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "About page not found"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
