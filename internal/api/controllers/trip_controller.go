package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/models/request_models"
	"tripplanner/internal/models/response_models"
	"tripplanner/internal/services"
	"tripplanner/pkg/utils"
)

type TripController struct {
	tripService         services.TripServiceInterface
	regenerationService services.RegenerationServiceInterface
}

func NewTripController(
	tripService services.TripServiceInterface,
	regenerationService services.RegenerationServiceInterface,
) *TripController {
	return &TripController{
		tripService:         tripService,
		regenerationService: regenerationService,
	}
}

// CreateTrip godoc
// @Summary Create a trip
// @Description Build a place, zone or road trip from a questionnaire and cache it
// @Tags Trip
// @Accept json
// @Produce json
// @Param request body request_models.CreateTripRequest true "Trip request"
// @Success 201 {object} response_models.TripResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips [post]
func (t *TripController) CreateTrip(c *gin.Context) {
	var req request_models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid trip request: "+err.Error())
		return
	}

	plan, err := req.ToTripPlan()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	trip, err := t.tripService.CreateTrip(c.Request.Context(), plan)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, response_models.NewTripResponse(trip), "Trip created successfully")
}

// GetTrip godoc
// @Summary Get a trip
// @Description Fetch a trip by id
// @Tags Trip
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} response_models.TripResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId} [get]
func (t *TripController) GetTrip(c *gin.Context) {
	tripID := c.Param("tripId")
	if tripID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID is required")
		return
	}

	trip, err := t.tripService.GetTrip(c.Request.Context(), tripID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.NewTripResponse(trip), "Trip fetched successfully")
}

// RegenerateActivity godoc
// @Summary Regenerate an activity
// @Description Replace the place of one activity with the next best unused place
// @Tags Trip
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body request_models.RegenerateActivityRequest true "Activity ID"
// @Success 200 {object} response_models.TripResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/regenerate-activity [post]
func (t *TripController) RegenerateActivity(c *gin.Context) {
	var req request_models.RegenerateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "activity_id is required")
		return
	}

	trip, err := t.regenerationService.RegenerateActivity(c.Request.Context(), c.Param("tripId"), req.ActivityID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.NewTripResponse(trip), "Activity regenerated successfully")
}

// DeleteActivity godoc
// @Summary Delete an activity
// @Description Remove one activity from a trip and recompute the day's routes
// @Tags Trip
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param activityId path string true "Activity ID"
// @Success 200 {object} response_models.TripResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/activities/{activityId} [delete]
func (t *TripController) DeleteActivity(c *gin.Context) {
	trip, err := t.regenerationService.DeleteActivity(c.Request.Context(), c.Param("tripId"), c.Param("activityId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.NewTripResponse(trip), "Activity deleted successfully")
}

// RegisterRoutes mounts the trip endpoints on group.
func (t *TripController) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("", t.CreateTrip)
	group.GET("/:tripId", t.GetTrip)
	group.POST("/:tripId/regenerate-activity", t.RegenerateActivity)
	group.DELETE("/:tripId/activities/:activityId", t.DeleteActivity)
}
