package middleware

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const UserIDKey = "userID"

// Auth resolves the authenticated user id from a bearer token, when one is
// presented. Anonymous requests pass through; messaging works without a
// user, lead creation does not.
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if after, ok := strings.CutPrefix(header, "Bearer "); ok {
			if sub, err := subjectFromToken(after, jwtSecret); err == nil {
				c.Set(UserIDKey, sub)
			} else {
				slog.Debug("rejecting bearer token", "error", err)
			}
		}
		c.Next()
	}
}

func subjectFromToken(tokenString, jwtSecret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token has no subject")
	}
	return sub, nil
}

// UserID extracts the authenticated user id, "" for anonymous visitors.
func UserID(c *gin.Context) string {
	id, ok := c.Get(UserIDKey)
	if !ok {
		return ""
	}
	return id.(string)
}
