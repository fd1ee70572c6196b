package handler

import (
	"github.com/blagajna/pos-api/internal/application/service"
	"github.com/blagajna/pos-api/internal/presentation/http/dto/request"
	"github.com/blagajna/pos-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ArticleHandler handles article-related HTTP requests
type ArticleHandler struct {
	articleService *service.ArticleService
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(articleService *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// List handles listing articles. Non-admins only see active articles in
// active categories.
func (h *ArticleHandler) List(c *gin.Context) {
	articles, err := h.articleService.List(c.Request.Context(), IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Articles retrieved successfully", articles)
}

// Get handles retrieving a single article
func (h *ArticleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid article ID")
		return
	}

	article, err := h.articleService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Article retrieved successfully", article)
}

// Create handles creating an article
func (h *ArticleHandler) Create(c *gin.Context) {
	var req request.ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	article, err := h.articleService.Create(c.Request.Context(), articleInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Article created successfully", article)
}

// Update handles updating an article
func (h *ArticleHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid article ID")
		return
	}

	var req request.ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	article, err := h.articleService.Update(c.Request.Context(), id, articleInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Article updated successfully", article)
}

// Delete handles deleting an article
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid article ID")
		return
	}

	if err := h.articleService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func articleInput(req *request.ArticleRequest) *service.ArticleInput {
	return &service.ArticleInput{
		Name:        req.Name,
		ProductCode: req.ProductCode,
		KpdCode:     req.KpdCode,
		Price:       req.Price,
		TaxRate:     req.TaxRate,
		Description: req.Description,
		Unit:        req.Unit,
		Active:      req.Active,
		CategoryID:  req.CategoryID,
	}
}
