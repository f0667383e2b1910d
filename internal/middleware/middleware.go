package middleware

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go/types"

	"github.com/campushub/api/internal/helpers"
	"github.com/campushub/api/internal/metric"
	"github.com/campushub/api/internal/services"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", method,
			"path", path,
			"status", statusCode,
			"latency", latency,
			"client_ip", clientIP,
		)
	}
}

// Metrics records request counts and latency per route. c.FullPath() keeps
// the label set bounded (route templates, not raw URLs).
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		metric.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metric.HTTPDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// ErrorHandler provides centralized error handling
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			requestID, _ := c.Get("request_id")

			logger.Error("Request error",
				"request_id", requestID,
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)

			// Don't return error details in production
			c.JSON(500, gin.H{
				"error":      "Internal server error",
				"request_id": requestID,
			})
		}
	}
}

func AuthMiddleware(userService *services.UserService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get JWT token from cookie
		token, err := c.Cookie("access_token")
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthorized access",
				"error":   "JWT token not found in cookie",
			})
			c.Abort()
			return
		}

		// Validate token using Supabase JWKS
		claims, err := helpers.ValidateToken(token)
		if err != nil {
			// Token validation failed, try to refresh
			refreshToken, refreshErr := c.Cookie("refresh_token")
			if refreshErr != nil {
				c.JSON(http.StatusUnauthorized, gin.H{
					"message": "Unauthorized access",
					"error":   err.Error(),
				})
				c.Abort()
				return
			}

			refreshResponse, refreshErr := userService.RefreshToken(c.Request.Context(), refreshToken)
			if refreshErr != nil {
				logger.Error("Token refresh failed", "error", refreshErr)
				c.JSON(http.StatusUnauthorized, gin.H{
					"message": "Unauthorized access",
					"error":   "Token expired and refresh failed",
				})
				c.Abort()
				return
			}

			// Refresh succeeded, set new cookies
			isProduction := os.Getenv("GIN_MODE") == "production"
			if tokenRes, ok := refreshResponse.(*types.TokenResponse); ok && tokenRes.AccessToken != "" {
				logger.Info("Token refreshed successfully",
					"user_id", tokenRes.User.ID,
					"expires_in", tokenRes.ExpiresIn,
				)
				c.SetCookie(
					"access_token",
					tokenRes.AccessToken,
					tokenRes.ExpiresIn,
					"/",
					"", // let Gin pick current domain
					isProduction,
					true,
				)
				c.SetCookie(
					"refresh_token",
					tokenRes.RefreshToken,
					3600*24*30, // 30 days
					"/",
					"",
					isProduction,
					true,
				)
				token = tokenRes.AccessToken
				claims, err = helpers.ValidateToken(token)
				if err != nil {
					c.JSON(http.StatusUnauthorized, gin.H{
						"message": "Unauthorized access",
						"error":   "Refreshed token validation failed",
					})
					c.Abort()
					return
				}
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{
					"message": "Unauthorized access",
					"error":   "Invalid refresh response",
				})
				c.Abort()
				return
			}
		}

		// Fetch the stored profile for role and display data. A missing
		// profile is not an error: new accounts act as attendees until
		// they save one.
		var role, displayName, photoURL, createdAt string
		profile, profileErr := userService.GetProfile(c.Request.Context(), claims.Subject)
		if profileErr != nil || profile == nil {
			if profileErr != nil {
				logger.Info("Profile lookup failed, using default role",
					"user_id", claims.Subject,
					"error", profileErr,
				)
			}
			role = "attendee"
		} else {
			role = profile.Role
			if role == "" {
				role = "attendee"
			}
			displayName = profile.DisplayName
			photoURL = profile.PhotoURL
			if !profile.CreatedAt.IsZero() {
				createdAt = profile.CreatedAt.Format(time.RFC3339)
			}
		}

		enhancedClaims := &helpers.EnhancedClaims{
			CustomClaims: claims,
			Role:         role,
			UserID:       claims.Subject,
			Email:        claims.Email,
			DisplayName:  displayName,
			PhotoURL:     photoURL,
			CreatedAt:    createdAt,
		}

		c.Set("user", enhancedClaims)
		c.Next()
	}
}

// OptionalAuth resolves claims when an access token is present but lets
// anonymous requests through. Read-only routes use it so signed-in users
// still get personalized responses.
func OptionalAuth(userService *services.UserService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := helpers.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}

		role := "attendee"
		var displayName, photoURL string
		if profile, profileErr := userService.GetProfile(c.Request.Context(), claims.Subject); profileErr == nil && profile != nil {
			if profile.Role != "" {
				role = profile.Role
			}
			displayName = profile.DisplayName
			photoURL = profile.PhotoURL
		}

		c.Set("user", &helpers.EnhancedClaims{
			CustomClaims: claims,
			Role:         role,
			UserID:       claims.Subject,
			Email:        claims.Email,
			DisplayName:  displayName,
			PhotoURL:     photoURL,
		})
		c.Next()
	}
}
