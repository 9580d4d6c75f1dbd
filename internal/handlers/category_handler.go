package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "homebook/internal/errors"
	"homebook/internal/models"
	"homebook/internal/services"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
	auditService    services.AuditServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer, auditService services.AuditServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, auditService: auditService}
}

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100" example:"Food"`
	Type string `json:"type" binding:"required,transaction_label" example:"Expense"`
}

// CategoryResponse represents a category in the response
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// CategoryListResponse wraps the category list.
type CategoryListResponse struct {
	Data []CategoryResponse `json:"data"`
}

func categoryResponse(cat *models.Category) CategoryResponse {
	return CategoryResponse{ID: cat.ID, Name: cat.Name, Type: cat.Type.String()}
}

// ListCategories returns all categories
// @Summary     List categories
// @Description List every transaction category, ordered by name
// @Tags        categories
// @Produce     json
// @Success     200 {object} CategoryListResponse
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	data := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		data = append(data, categoryResponse(&categories[i]))
	}
	c.JSON(http.StatusOK, CategoryListResponse{Data: data})
}

// CreateCategory handles the creation of a new category
// @Summary     Create a category
// @Description Create a new transaction category. Names are unique and case-sensitive.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    AdminKey
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} CategoryResponse "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid admin key"
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Router      /admin/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	categoryType, ok := models.ParseTransactionType(req.Type)
	if !ok {
		respondWithError(c, apperrors.ErrInvalidTransactionType)
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req.Name, categoryType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("", services.AuditCreateCategory, "category", category.ID, c.ClientIP(),
		map[string]interface{}{"name": category.Name, "type": category.Type.String()})

	c.JSON(http.StatusCreated, categoryResponse(category))
}

// DeleteCategory handles deleting a category
// @Summary     Delete a category
// @Description Delete a category. Its transactions and planned transactions move to the default category.
// @Tags        admin
// @Produce     json
// @Security    AdminKey
// @Param       id path string true "Category ID"
// @Success     200 {object} MessageResponse
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Invalid admin key"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Default category"
// @Router      /admin/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("", services.AuditDeleteCategory, "category", categoryID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Category deleted successfully"})
}
