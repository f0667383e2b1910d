package helpers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/golang-jwt/jwt/v5"
)

const (
	AvatarFolder  = "avatars"
	PosterFolder  = "event_posters"
	GalleryFolder = "event_galleries"
)

type CustomClaims struct {
	Role        string `json:"role"`
	Email       string `json:"email"`
	AppMetadata struct {
		Provider  string   `json:"provider"`
		Providers []string `json:"providers"`
	} `json:"app_metadata"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	jwt.RegisteredClaims
}

func ValidateToken(tokenStr string) (*CustomClaims, error) {
	supabaseURL := os.Getenv("SUPABASE_URL")
	if supabaseURL == "" {
		return nil, errors.New("SUPABASE_URL not set")
	}

	jwksURL := fmt.Sprintf("%s/rest/v1/auth/jwks", supabaseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx: ctx,
	})
	if err != nil {
		// Fallback to unverified parsing if JWKS fails (for development)
		token, _, parseErr := jwt.NewParser().ParseUnverified(tokenStr, &CustomClaims{})
		if parseErr != nil {
			return nil, fmt.Errorf("JWKS validation failed and fallback parsing failed: %v", parseErr)
		}
		claims, ok := token.Claims.(*CustomClaims)
		if !ok {
			return nil, errors.New("invalid token claims")
		}
		return claims, nil
	}
	defer jwks.EndBackground()

	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, jwks.Keyfunc)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	return claims, nil
}

func IsPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasLower, hasUpper, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasNumber = true
		case strings.ContainsRune("@$!%*?&", r):
			hasSpecial = true
		}
	}
	return hasLower && hasUpper && hasNumber && hasSpecial
}

// UploadImage sends one image (file path, remote URL or base64 data URI) to
// the blob store and returns its hosted URL and public ID. The public ID is
// what DeleteImage needs later.
func UploadImage(ctx context.Context, cld *cloudinary.Cloudinary, source, folder string) (string, string, error) {
	if strings.TrimSpace(source) == "" {
		return "", "", fmt.Errorf("empty image source")
	}
	uploadResult, err := cld.Upload.Upload(ctx, source, uploader.UploadParams{
		Folder: folder,
		Tags:   []string{"campushub"},
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload image: %v", err)
	}
	return uploadResult.SecureURL, uploadResult.PublicID, nil
}

// DeleteImage removes an uploaded image by public ID. A missing image is
// not an error.
func DeleteImage(ctx context.Context, cld *cloudinary.Cloudinary, publicID string) error {
	if strings.TrimSpace(publicID) == "" {
		return nil
	}
	_, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to delete image %s: %v", publicID, err)
	}
	return nil
}
