package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/velora/storefront_api/internal/service"
	"github.com/velora/storefront_api/internal/utils"
)

// SectionHandler serves the cached marketing sections.
type SectionHandler struct {
	sections *service.SectionService
}

// NewSectionHandler constructs a SectionHandler.
func NewSectionHandler(sections *service.SectionService) *SectionHandler {
	return &SectionHandler{sections: sections}
}

// GetSection returns a marketing section by name.
func (h *SectionHandler) GetSection(c *gin.Context) {
	name := c.Param("name")

	payload, err := h.sections.GetSection(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, utils.ErrUnknownSection) {
			utils.Error(c, 404, "UNKNOWN_SECTION", "No such section: "+name)
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get section")
		return
	}

	utils.Success(c, 200, "Section retrieved successfully", payload)
}
