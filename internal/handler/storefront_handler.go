package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/velora/storefront_api/internal/middleware"
	"github.com/velora/storefront_api/internal/service"
	"github.com/velora/storefront_api/internal/utils"
	"github.com/velora/storefront_api/internal/view"
)

// StorefrontHandler handles the product-browsing endpoints.
type StorefrontHandler struct {
	storefront *service.StorefrontService
}

// NewStorefrontHandler constructs a StorefrontHandler.
func NewStorefrontHandler(storefront *service.StorefrontService) *StorefrontHandler {
	return &StorefrontHandler{storefront: storefront}
}

func sessionOrFail(c *gin.Context) *view.Session {
	sess := middleware.SessionFromContext(c)
	if sess == nil {
		utils.Error(c, 500, "SESSION_NOT_FOUND", utils.ErrSessionNotFound.Error())
	}
	return sess
}

// GetProducts returns the browse view for the session's current query.
func (h *StorefrontHandler) GetProducts(c *gin.Context) {
	sess := sessionOrFail(c)
	if sess == nil {
		return
	}

	browseView := h.storefront.Browse(c.Request.Context(), sess, service.BrowseQuery{
		Search:   c.Query("search"),
		Filter:   c.Query("filter"),
		Sort:     c.Query("sort"),
		Category: c.Query("category"),
	})

	utils.Success(c, 200, "Products retrieved successfully", browseView)
}

// SelectCategoryRequest is the body for category selection.
type SelectCategoryRequest struct {
	CategoryID string `json:"categoryId" binding:"required"`
}

// SelectCategory switches the session's selected category.
func (h *StorefrontHandler) SelectCategory(c *gin.Context) {
	sess := sessionOrFail(c)
	if sess == nil {
		return
	}

	var req SelectCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "categoryId is required")
		return
	}

	h.storefront.SelectCategory(sess, req.CategoryID)
	utils.Success(c, 200, "Category selected", gin.H{
		"selectedCategory": req.CategoryID,
		"loading":          true,
	})
}

// ResetSelection returns the session to the unfiltered view. Invoked by the
// "no results" affordance.
func (h *StorefrontHandler) ResetSelection(c *gin.Context) {
	sess := sessionOrFail(c)
	if sess == nil {
		return
	}

	h.storefront.ResetSelection(sess)
	utils.Success(c, 200, "Selection reset", gin.H{
		"selectedCategory": view.CategoryAll,
	})
}

// AddToCartRequest is the body for cart adds.
type AddToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// AddToCart forwards an add-to-cart request for a product in the session's
// current list. Unknown or out-of-stock products are dropped without error;
// the response is an acknowledgement either way.
func (h *StorefrontHandler) AddToCart(c *gin.Context) {
	sess := sessionOrFail(c)
	if sess == nil {
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "productId is required")
		return
	}

	h.storefront.AddToCart(c.Request.Context(), sess, req.ProductID)
	utils.Success(c, 202, "Cart request accepted", gin.H{
		"productId": req.ProductID,
	})
}

// GetGroupedView returns the shop-by-category overview for the session.
func (h *StorefrontHandler) GetGroupedView(c *gin.Context) {
	sess := sessionOrFail(c)
	if sess == nil {
		return
	}

	sections, err := h.storefront.GroupedView(sess)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get categories")
		return
	}

	utils.Success(c, 200, "Categories retrieved successfully", gin.H{
		"categories": sections,
	})
}
