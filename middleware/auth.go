package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	config "github.com/bloodify/bloodify-server/config"
	models "github.com/bloodify/bloodify-server/models"
	utils "github.com/bloodify/bloodify-server/utils"
)

// CtxEmailKey is where AuthMiddleware stores the verified caller email.
const CtxEmailKey = "email"

// RoleLookup resolves an email to its stored role. Kept as a function
// type so the role guard can be exercised without a database.
type RoleLookup func(ctx context.Context, email string) (string, error)

// AuthMiddleware verifies the bearer credential. A missing header is
// 401; a credential that does not verify is 403. The claim email is
// placed on the context for downstream handlers.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		if tokenStr == header || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
			return
		}

		claims, err := utils.ParseToken(tokenStr, cfg.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(CtxEmailKey, claims.Email)
		c.Next()
	}
}

// RequireRole gates a route on the caller's stored role. The lookup
// runs on every call so a role change takes effect immediately.
func RequireRole(lookup RoleLookup, roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		email := c.GetString(CtxEmailKey)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		role, err := lookup(ctx, email)
		if err != nil || !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}

		c.Next()
	}
}

// MongoRoleLookup is the production RoleLookup, backed by the users
// collection.
func MongoRoleLookup(cfg *config.Config) RoleLookup {
	return func(ctx context.Context, email string) (string, error) {
		var user models.User
		err := cfg.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
		if err != nil {
			return "", err
		}
		return user.Role, nil
	}
}
