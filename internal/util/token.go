package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// readTokenOfScheme pulls the credentials out of the Authorization header and
// checks that the scheme matches. Both the access and refresh flows use the
// same header, only the scheme word differs.
func readTokenOfScheme(ctx *gin.Context, scheme string) (string, error) {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		return "", errors.New("no authorization header specified")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", errors.New("wrong authorization header format")
	}
	if !strings.EqualFold(parts[0], scheme) {
		return "", fmt.Errorf("invalid token type; expected '%s'", scheme)
	}
	if parts[1] == "" {
		return "", errors.New("token is empty")
	}

	return parts[1], nil
}

// ReadBearerToken returns the access token carried by "Authorization: Bearer".
func ReadBearerToken(ctx *gin.Context) (string, error) {
	return readTokenOfScheme(ctx, "Bearer")
}

// ReadRefreshToken returns the refresh token carried by "Authorization: Refresh".
func ReadRefreshToken(ctx *gin.Context) (string, error) {
	return readTokenOfScheme(ctx, "Refresh")
}
