package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/iremtulu/tekneturum-0/pkg/jwt"
)

// AccountContextKey is the key used to store account information in Gin context
const AccountContextKey = "account"

// AccountContext represents the authenticated account's information
type AccountContext struct {
	AccountID int64  `json:"account_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// AuthMiddleware creates a middleware that validates JWT tokens
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "authorization header is required",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "invalid authorization header format, expected: Bearer <token>",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "token cannot be empty",
			})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			if jwt.IsExpiredError(err) {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error": "access token has expired",
				})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error": "invalid access token",
				})
			}
			c.Abort()
			return
		}

		c.Set(AccountContextKey, AccountContext{
			AccountID: claims.AccountID,
			Email:     claims.Email,
			Role:      claims.Role,
		})

		c.Next()
	}
}

// RequireRole creates a middleware that checks the account's role
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, exists := GetAccountContext(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "account context not found",
			})
			c.Abort()
			return
		}

		if account.Role != role {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "you don't have permission to access this resource",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetAccountContext retrieves the account context from Gin context
func GetAccountContext(c *gin.Context) (AccountContext, bool) {
	value, exists := c.Get(AccountContextKey)
	if !exists {
		return AccountContext{}, false
	}

	account, ok := value.(AccountContext)
	if !ok {
		return AccountContext{}, false
	}

	return account, true
}
