package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/api/internal/helpers"
	"github.com/campushub/api/internal/models"
)

func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
}

// actorFromContext rebuilds the acting user's profile view from the claims
// the auth middleware stored. Nil means no signed-in user.
func actorFromContext(c *gin.Context) *models.UserProfile {
	v, exists := c.Get("user")
	if !exists {
		return nil
	}
	claims, ok := v.(*helpers.EnhancedClaims)
	if !ok {
		return nil
	}
	return &models.UserProfile{
		UID:         claims.UserID,
		Email:       claims.Email,
		DisplayName: claims.DisplayName,
		PhotoURL:    claims.PhotoURL,
		Role:        claims.GetSafeRole(),
	}
}
