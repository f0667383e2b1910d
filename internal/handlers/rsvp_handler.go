package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/api/internal/metric"
	"github.com/campushub/api/internal/models"
	"github.com/campushub/api/internal/services"
)

func AddRsvp(rs *services.RsvpService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := actorFromContext(c)
		userID := ""
		if actor != nil {
			userID = actor.UID
		}

		if err := rs.AddRsvp(c.Request.Context(), c.Param("id"), userID); err != nil {
			respondError(c, err)
			return
		}
		metric.RsvpOps.WithLabelValues("add").Inc()
		c.JSON(http.StatusCreated, models.SuccessResponse(nil, "RSVP recorded"))
	}
}

func RemoveRsvp(rs *services.RsvpService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := actorFromContext(c)
		userID := ""
		if actor != nil {
			userID = actor.UID
		}

		if err := rs.RemoveRsvp(c.Request.Context(), c.Param("id"), userID); err != nil {
			respondError(c, err)
			return
		}
		metric.RsvpOps.WithLabelValues("remove").Inc()
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "RSVP withdrawn"))
	}
}

// GetMyRsvp returns the caller's record for the event; absence is a 404
// with no error payload beyond the message.
func GetMyRsvp(rs *services.RsvpService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := actorFromContext(c)
		userID := ""
		if actor != nil {
			userID = actor.UID
		}

		rsvp, err := rs.GetRsvp(c.Request.Context(), c.Param("id"), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		if rsvp == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("no RSVP for this event"))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(rsvp, ""))
	}
}

// ListEventRsvps is restricted to the event's creator or an admin, since
// the records carry check-in tokens.
func ListEventRsvps(rs *services.RsvpService, es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := actorFromContext(c)
		if actor == nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		event, err := es.GetEventByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		if !actor.CanManageEvent(event.CreatorID) {
			c.JSON(http.StatusForbidden, models.ErrorResponse("only the creator or an admin can list RSVPs"))
			return
		}

		rsvps, err := rs.ListRsvpsForEvent(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(rsvps, ""))
	}
}

// CountEventRsvps exposes the authoritative server-side ledger count.
func CountEventRsvps(rs *services.RsvpService) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := rs.CountRsvpsForEvent(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"count": count}, ""))
	}
}

// MyRsvps lists the caller's RSVPs across all events, newest first, with
// the matching events resolved in batches alongside.
func MyRsvps(rs *services.RsvpService, es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := actorFromContext(c)
		userID := ""
		if actor != nil {
			userID = actor.UID
		}

		rsvps, err := rs.ListRsvpsForUser(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		if c.Query("include") != "events" {
			c.JSON(http.StatusOK, models.SuccessResponse(rsvps, ""))
			return
		}

		ids := make([]string, 0, len(rsvps))
		for _, r := range rsvps {
			ids = append(ids, r.EventID.Hex())
		}
		events, err := es.GetEventsByIDs(c.Request.Context(), ids)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"rsvps":  rsvps,
			"events": events,
		}, ""))
	}
}

// CheckIn redeems an attendee's token at the door. Restricted to the
// event's creator or an admin.
func CheckIn(rs *services.RsvpService, es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := actorFromContext(c)
		if actor == nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		event, err := es.GetEventByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		if !actor.CanManageEvent(event.CreatorID) {
			c.JSON(http.StatusForbidden, models.ErrorResponse("only the creator or an admin can check in attendees"))
			return
		}

		var body struct {
			Token string `json:"token"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		result, err := rs.CheckIn(c.Request.Context(), c.Param("id"), body.Token, actor)
		if err != nil {
			respondError(c, err)
			return
		}
		if result.Success {
			metric.CheckinAttempts.WithLabelValues("success").Inc()
		} else {
			metric.CheckinAttempts.WithLabelValues("failure").Inc()
		}
		// Failure results are part of the contract, not errors.
		c.JSON(http.StatusOK, models.SuccessResponse(result, ""))
	}
}
