package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/AlexCourivaud/ShareTech2/models"
	"github.com/AlexCourivaud/ShareTech2/permissions"
	"github.com/AlexCourivaud/ShareTech2/utils"
)

// ActorKey is the gin context key holding the resolved permissions.Actor.
const ActorKey = "actor"

// AuthMiddleware validates the bearer token and loads the user row to build
// the actor descriptor. Loading fresh means stored role and superuser flag
// are never stale.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {

		authHeader := c.GetHeader("Authorization")

		// Check header exists
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Check Bearer format
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
			c.Abort()
			return
		}

		tokenString := parts[1]

		// Parse token
		token, err := jwt.Parse(
			tokenString,
			func(token *jwt.Token) (interface{}, error) {
				return utils.JwtSecret(), nil
			},
		)

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		// Extract claims safely
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		rawID, ok := claims["user_id"].(float64)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, uint(rawID)).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
			c.Abort()
			return
		}

		c.Set(ActorKey, permissions.ActorFor(user))
		c.Next()
	}
}

// ActorFrom pulls the authenticated actor out of the gin context.
func ActorFrom(c *gin.Context) (permissions.Actor, bool) {
	v, exists := c.Get(ActorKey)
	if !exists {
		return permissions.Actor{}, false
	}
	actor, ok := v.(permissions.Actor)
	return actor, ok
}
