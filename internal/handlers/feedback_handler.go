package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/api/internal/metric"
	"github.com/campushub/api/internal/models"
	"github.com/campushub/api/internal/services"
)

func AddFeedback(fs *services.FeedbackService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Rating  int    `json:"rating"`
			Comment string `json:"comment"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		feedback, err := fs.AddFeedback(c.Request.Context(), c.Param("id"), actorFromContext(c), body.Rating, body.Comment)
		if err != nil {
			respondError(c, err)
			return
		}
		metric.FeedbackSubmitted.Inc()
		c.JSON(http.StatusCreated, models.SuccessResponse(feedback, "Feedback submitted"))
	}
}

func ListFeedback(fs *services.FeedbackService) gin.HandlerFunc {
	return func(c *gin.Context) {
		feedback, err := fs.GetFeedbackForEvent(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(feedback, ""))
	}
}

func GetMyFeedback(fs *services.FeedbackService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := actorFromContext(c)
		userID := ""
		if actor != nil {
			userID = actor.UID
		}

		feedback, err := fs.GetUserFeedbackForEvent(c.Request.Context(), c.Param("id"), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		if feedback == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("no feedback for this event"))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(feedback, ""))
	}
}
