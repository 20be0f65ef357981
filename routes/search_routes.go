package routes

import (
	"gocab/internal/handlers"
	"gocab/internal/middleware"
	"gocab/internal/services"

	"github.com/gin-gonic/gin"
)

// SetupSearchRoutes wires the trip search and location suggestion endpoints.
func SetupSearchRoutes(r *gin.RouterGroup, searchHandler *handlers.SearchHandler, locationHandler *handlers.LocationHandler, sessions services.SessionService) {
	maps := r.Group("/maps")
	{
		maps.GET("/search-location", locationHandler.SearchLocation)
		maps.GET("/places/:place_id", locationHandler.GetPlaceDetails)
	}

	search := r.Group("")
	search.Use(middleware.AuthRequired(sessions))
	{
		search.POST("/transfers/search", searchHandler.SearchTransfers)
		search.POST("/hourly/search", searchHandler.SearchHourly)
		search.POST("/multiday/search", searchHandler.SearchMultiday)
	}
}
