package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jamolstroy/admin-api/internal/http/response"
	"github.com/jamolstroy/admin-api/internal/models"
	"github.com/jamolstroy/admin-api/internal/repository"
	"github.com/jamolstroy/admin-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ListCategories returns categories ordered for display.
func (h *Handler) ListCategories(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "100"))
	page, pageSize = normalizePagination(page, pageSize)

	categories, total, err := h.CategoryService.List(repository.CategoryListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, categories, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// CategoryPayload is the write shape of a category.
type CategoryPayload struct {
	NameUz    string `json:"name_uz" binding:"required"`
	NameRu    string `json:"name_ru"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sort_order"`
}

// CreateCategory adds a category.
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	category := &models.Category{
		NameUz:    strings.TrimSpace(req.NameUz),
		NameRu:    strings.TrimSpace(req.NameRu),
		Icon:      strings.TrimSpace(req.Icon),
		SortOrder: req.SortOrder,
	}
	if err := h.CategoryService.Create(category); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, category)
}

// UpdateCategory replaces the writable fields of a category.
func (h *Handler) UpdateCategory(c *gin.Context) {
	var req CategoryPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	category, err := h.CategoryService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.category_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	category.NameUz = strings.TrimSpace(req.NameUz)
	category.NameRu = strings.TrimSpace(req.NameRu)
	category.Icon = strings.TrimSpace(req.Icon)
	category.SortOrder = req.SortOrder

	if err := h.CategoryService.Update(category); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, category)
}

// DeleteCategory removes a category.
func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.CategoryService.Delete(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.category_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
