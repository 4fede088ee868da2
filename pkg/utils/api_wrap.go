package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

type errorMapping struct {
	err     error
	code    int
	message string
}

var serviceErrors = []errorMapping{
	{ErrInvalidInput, http.StatusBadRequest, "Invalid request"},
	{ErrEmptyCategoryScores, http.StatusBadRequest, "Questionnaire does not express any preference"},
	{ErrNonPositiveSlotBudget, http.StatusBadRequest, "Template does not schedule any activity"},
	{ErrInvalidRankingWeights, http.StatusBadRequest, "Ranking weights must sum to 1"},
	{ErrRouteTooLarge, http.StatusBadRequest, "Too many stops to order"},
	{ErrVenueSearchFailed, http.StatusBadGateway, "Venue search service failed"},
	{ErrRoutingFailed, http.StatusBadGateway, "Routing service failed"},
	{ErrNarrativeFailed, http.StatusBadGateway, "Narrative service failed"},
	{ErrTripNotFound, http.StatusNotFound, "Trip not found"},
	{ErrPreRankedPoolNotFound, http.StatusNotFound, "Pre-ranked places not found for trip"},
	{ErrActivityNotFound, http.StatusNotFound, "Activity not found"},
	{ErrTripBusy, http.StatusConflict, "Trip is being modified, retry later"},
	{ErrNoAlternativeVenue, http.StatusUnprocessableEntity, "No alternative place available"},
}

func HandleServiceError(c *gin.Context, err error) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			if m.code >= http.StatusInternalServerError {
				zap.L().Warn("upstream failure", zap.String("trace_id", c.GetString("trace_id")), zap.Error(err))
			}
			RespondError(c, m.code, m.message)
			return
		}
	}

	zap.L().Error("unhandled service error", zap.String("trace_id", c.GetString("trace_id")), zap.Error(err))
	RespondError(c, http.StatusInternalServerError, "Internal server error")
}
