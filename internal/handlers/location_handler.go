package handlers

import (
	"net/http"

	"gocab/internal/services"
	"gocab/internal/utils"

	"github.com/gin-gonic/gin"
)

type LocationHandler struct {
	suggestions *services.SuggestionService
}

func NewLocationHandler(suggestions *services.SuggestionService) *LocationHandler {
	return &LocationHandler{
		suggestions: suggestions,
	}
}

// SearchLocation returns place autosuggestions for a partial query. An empty
// result set is a normal answer, not an error.
func (h *LocationHandler) SearchLocation(c *gin.Context) {
	query := c.Query("input")
	if query == "" {
		utils.BadRequestResponse(c, "input parameter is required")
		return
	}

	suggestions, err := h.suggestions.Search(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadGateway, "SUGGESTION_FAILED", "Location suggestion service failure")
		return
	}

	utils.SuccessResponse(c, "Locations retrieved", gin.H{
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}

// GetPlaceDetails resolves one suggestion into coordinates and a formatted
// address.
func (h *LocationHandler) GetPlaceDetails(c *gin.Context) {
	placeID := c.Param("place_id")
	if placeID == "" {
		utils.BadRequestResponse(c, "place_id is required")
		return
	}

	details, err := h.suggestions.PlaceDetails(c.Request.Context(), placeID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadGateway, "PLACE_DETAILS_FAILED", "Failed to resolve place")
		return
	}

	utils.SuccessResponse(c, "Place retrieved", details)
}
