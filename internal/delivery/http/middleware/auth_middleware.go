package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"talent-onboarding-backend/internal/delivery/http/response"
	"talent-onboarding-backend/internal/domain"
	"talent-onboarding-backend/pkg/auth"
	"talent-onboarding-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// BearerAuth verifies the session token presented to identity endpoints.
// HS256 tokens are checked against jwtSecret, RS256 tokens against the JWKS
// provider. The verified token, subject and email are stored on the context.
func BearerAuth(jwksProvider *auth.Provider, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		// 1. Try to get token from Header
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			// 2. Try to get token from Cookie
			cookie, err := c.Cookie(SessionTokenCookieName)
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
				// HS256 - Use Secret
				if jwtSecret == "" {
					return nil, fmt.Errorf("HS256 token received but SUPABASE_JWT_SECRET is not configured")
				}
				return []byte(jwtSecret), nil
			}

			if _, ok := token.Method.(*jwt.SigningMethodRSA); ok {
				// RS256 - Use JWKS
				if jwksProvider == nil {
					return nil, fmt.Errorf("RS256 token received but no JWKS provider is configured")
				}
				return jwksProvider.KeyFunc(token)
			}

			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		})

		if err != nil || !token.Valid {
			logger.Log.Info("Token validation failed", "error", err)
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)
		if sub == "" {
			response.Error(c, http.StatusUnauthorized, "Token has no subject", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), sub)
		c.Set(string(domain.KeyUserEmail), email)
		c.Set(string(domain.KeyAccessToken), tokenString)

		c.Next()
	}
}
