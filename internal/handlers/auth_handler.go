package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/campushub/api/internal/models"
)

// Logout clears the auth cookies. The Supabase session itself expires on
// its own schedule.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		isProduction := os.Getenv("GIN_MODE") == "production"

		c.SetCookie("access_token", "", -1, "/", "", isProduction, true)
		c.SetCookie("refresh_token", "", -1, "/", "", isProduction, true)

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Logged out successfully"))
	}
}
