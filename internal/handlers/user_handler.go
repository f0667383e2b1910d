package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/supabase-community/gotrue-go/types"

	"github.com/campushub/api/internal/models"
	"github.com/campushub/api/internal/services"
)

func SignUp(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := us.SignUp(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Account created successfully"))
	}
}

// SignIn authenticates against the identity provider and moves the tokens
// into httpOnly cookies so the browser never handles them directly.
func SignIn(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		authResponse, err := us.SignIn(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("invalid email or password"))
			return
		}

		isProduction := os.Getenv("GIN_MODE") == "production"

		if tokenRes, ok := authResponse.(*types.TokenResponse); ok && tokenRes.AccessToken != "" {
			c.SetCookie(
				"access_token",
				tokenRes.AccessToken,
				tokenRes.ExpiresIn,
				"/",
				"", // let Gin pick current domain
				isProduction,
				true,
			)

			// Refresh token - expires in 30 days
			c.SetCookie(
				"refresh_token",
				tokenRes.RefreshToken,
				3600*24*30,
				"/",
				"",
				isProduction,
				true,
			)

			c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
				"user": tokenRes.User,
			}, "Signed in successfully"))
			return
		}

		c.JSON(http.StatusInternalServerError, models.ErrorResponse("invalid token response"))
	}
}

func RefreshToken(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		refreshToken, err := c.Cookie("refresh_token")
		if err != nil || refreshToken == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("refresh token not found"))
			return
		}

		authResponse, err := us.RefreshToken(c.Request.Context(), refreshToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("failed to refresh session"))
			return
		}

		isProduction := os.Getenv("GIN_MODE") == "production"

		if tokenRes, ok := authResponse.(*types.TokenResponse); ok && tokenRes.AccessToken != "" {
			c.SetCookie("access_token", tokenRes.AccessToken, tokenRes.ExpiresIn, "/", "", isProduction, true)
			c.SetCookie("refresh_token", tokenRes.RefreshToken, 3600*24*30, "/", "", isProduction, true)
			c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"user": tokenRes.User}, "Session refreshed"))
			return
		}

		c.JSON(http.StatusInternalServerError, models.ErrorResponse("invalid token response"))
	}
}

func GetProfile(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := actorFromContext(c)
		if actor == nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		profile, err := us.GetProfile(c.Request.Context(), actor.UID)
		if err != nil {
			respondError(c, err)
			return
		}
		if profile == nil {
			// No stored profile yet: answer with the claims-derived view.
			c.JSON(http.StatusOK, models.SuccessResponse(actor, ""))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(profile, ""))
	}
}

func SaveProfile(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.UserProfile
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		saved, err := us.SaveProfile(c.Request.Context(), actorFromContext(c), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(saved, "Profile saved"))
	}
}
