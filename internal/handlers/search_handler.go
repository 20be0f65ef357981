package handlers

import (
	"errors"
	"net/http"

	"gocab/internal/models"
	"gocab/internal/services"
	"gocab/internal/utils"
	"gocab/internal/validators"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchService services.SearchService
}

func NewSearchHandler(searchService services.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

// transferSearchResponse is the city/terminal results payload. The field
// names match what booking screens bind to.
type transferSearchResponse struct {
	PickupLocation   string           `json:"pickup_location"`
	DropLocation     string           `json:"drop_location"`
	ActualTravelInfo models.RouteInfo `json:"actual_travel_info"`
	AvailableOptions []models.Offer   `json:"available_options"`
}

// SearchTransfers prices city and terminal point-to-point trips.
func (h *SearchHandler) SearchTransfers(c *gin.Context) {
	var request validators.TransferSearchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateTransferSearch(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	trip := &models.TripRequest{
		ServiceType:    models.ServiceType(request.ServiceType),
		PickupLocation: request.PickupLocation,
		DropLocation:   request.DropLocation,
		PaxCount:       request.PaxCount,
		IsACPreference: request.IsACPreference,
		PickupTimeType: models.PickupTimeType(request.PickupTimeType),
		PickupDate:     request.PickupDate,
		PickupTime:     request.PickupTime,
	}

	result, err := h.search(c, trip)
	if err != nil {
		return
	}

	utils.SuccessResponse(c, "Search completed", &transferSearchResponse{
		PickupLocation:   trip.PickupLocation,
		DropLocation:     trip.DropLocation,
		ActualTravelInfo: result.RouteInfo,
		AvailableOptions: result.Offers,
	})
}

// SearchHourly prices hourly rental packages.
func (h *SearchHandler) SearchHourly(c *gin.Context) {
	var request validators.HourlySearchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateHourlySearch(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	trip := &models.TripRequest{
		ServiceType:    models.ServiceTypeHourly,
		PickupLocation: request.PickupLocation,
		DropLocation:   request.DropLocation,
		PaxCount:       request.PaxCount,
		IsACPreference: request.IsACPreference,
		PickupTimeType: models.PickupTimeType(request.PickupTimeType),
		PickupDate:     request.PickupDate,
		PickupTime:     request.PickupTime,
		Hours:          request.Hours,
	}

	result, err := h.search(c, trip)
	if err != nil {
		return
	}

	utils.SuccessResponse(c, "Search completed", result)
}

// SearchMultiday prices outstation multi-day trips.
func (h *SearchHandler) SearchMultiday(c *gin.Context) {
	var request validators.MultidaySearchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateMultidaySearch(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	trip := &models.TripRequest{
		ServiceType:    models.ServiceTypeMultiday,
		PickupLocation: request.PickupLocation,
		DropLocation:   request.DropLocation,
		PaxCount:       request.PaxCount,
		IsACPreference: request.IsACPreference,
		PickupTimeType: models.PickupTimeType(request.PickupTimeType),
		PickupDate:     request.PickupDate,
		PickupTime:     request.PickupTime,
		StartDate:      request.StartDate,
		EndDate:        request.EndDate,
		IsRoundTrip:    request.IsRoundTrip,
	}

	result, err := h.search(c, trip)
	if err != nil {
		return
	}

	utils.SuccessResponse(c, "Search completed", result)
}

// search runs the priced search and writes the error response itself when
// the search fails, so callers only render on success.
func (h *SearchHandler) search(c *gin.Context, trip *models.TripRequest) (*models.SearchResult, error) {
	result, err := h.searchService.Search(c.Request.Context(), trip)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoRoute):
			utils.ErrorResponse(c, http.StatusUnprocessableEntity, "NO_ROUTE", "No route found between the selected locations")
		case errors.Is(err, models.ErrInvalidServiceType),
			errors.Is(err, models.ErrMissingPickupLocation),
			errors.Is(err, models.ErrMissingDropLocation),
			errors.Is(err, models.ErrMissingSchedule),
			errors.Is(err, models.ErrInvalidPaxCount),
			errors.Is(err, models.ErrInvalidHours),
			errors.Is(err, models.ErrInvalidDateRange):
			utils.BadRequestResponse(c, err.Error())
		default:
			utils.InternalServerErrorResponse(c)
		}
		return nil, err
	}

	return result, nil
}
