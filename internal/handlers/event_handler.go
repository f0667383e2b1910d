package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campushub/api/internal/models"
	"github.com/campushub/api/internal/services"
)

func CreateEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.CreateEventInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := es.CreateEvent(c.Request.Context(), &input, actorFromContext(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Event created successfully"))
	}
}

// ListEvents translates the query string into the filter bundle: category,
// creator, free-text q (any-token match), tags (any-tag match), explicit
// ids, order_by/order and limit.
func ListEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts := models.EventQueryOptions{
			Category:       c.Query("category"),
			CreatorID:      c.Query("creator"),
			SearchTerms:    models.NormalizeSearchTerms(c.Query("q")),
			Tags:           models.ProcessTags(c.Query("tags")),
			OrderBy:        c.Query("order_by"),
			OrderDirection: c.Query("order"),
		}

		if ids := c.Query("ids"); ids != "" {
			for _, id := range strings.Split(ids, ",") {
				oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
				if err != nil {
					c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid event id in ids parameter"))
					return
				}
				opts.EventIDs = append(opts.EventIDs, oid)
			}
		}

		if limit := c.Query("limit"); limit != "" {
			limitInt, err := strconv.ParseInt(limit, 10, 64)
			if err != nil || limitInt <= 0 {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid limit parameter"))
				return
			}
			opts.Limit = limitInt
		}

		events, err := es.QueryEvents(c.Request.Context(), opts)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(events, ""))
	}
}

func GetEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, err := es.GetEventByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(event, ""))
	}
}

func UpdateEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.UpdateEventInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		updated, err := es.UpdateEvent(c.Request.Context(), c.Param("id"), &input, actorFromContext(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(updated, "Event updated successfully"))
	}
}

func DeleteEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := es.DeleteEvent(c.Request.Context(), c.Param("id"), actorFromContext(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Event deleted successfully"))
	}
}

func MyEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := actorFromContext(c)
		if actor == nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}
		events, err := es.GetEventsByCreator(c.Request.Context(), actor.UID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(events, ""))
	}
}

func GetStats(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := es.Stats(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(stats, ""))
	}
}
