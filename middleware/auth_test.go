package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/bloodify/bloodify-server/config"
	models "github.com/bloodify/bloodify-server/models"
	utils "github.com/bloodify/bloodify-server/utils"
)

const testSecret = "test-secret"

func staticRoles(roles map[string]string) (RoleLookup, *int) {
	calls := 0
	return func(ctx context.Context, email string) (string, error) {
		calls++
		role, ok := roles[email]
		if !ok {
			return "", errors.New("user not found")
		}
		return role, nil
	}, &calls
}

func guardedRouter(lookup RoleLookup, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTSecret: testSecret}

	r := gin.New()
	handlers := []gin.HandlerFunc{AuthMiddleware(cfg)}
	if lookup != nil {
		handlers = append(handlers, RequireRole(lookup, roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString(CtxEmailKey)})
	})
	r.GET("/guarded", handlers...)
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/guarded", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	lookup, calls := staticRoles(nil)
	r := guardedRouter(lookup, models.RoleAdmin)

	w := doRequest(r, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, *calls, "store must not be consulted without a credential")
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	r := guardedRouter(nil)

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	r := guardedRouter(nil)

	w := doRequest(r, "not-a-real-token")

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	r := guardedRouter(nil)

	token, err := utils.GenerateToken("donor@example.com", "another-secret")
	require.NoError(t, err)
	w := doRequest(r, token)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthMiddlewarePassesEmailThrough(t *testing.T) {
	r := guardedRouter(nil)

	token, err := utils.GenerateToken("donor@example.com", testSecret)
	require.NoError(t, err)
	w := doRequest(r, token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "donor@example.com")
}

func TestRequireRole(t *testing.T) {
	roles := map[string]string{
		"admin@example.com":     models.RoleAdmin,
		"volunteer@example.com": models.RoleVolunteer,
		"donor@example.com":     models.RoleDonor,
	}

	tests := []struct {
		name     string
		email    string
		allowed  []string
		wantCode int
	}{
		{"admin passes admin gate", "admin@example.com", []string{models.RoleAdmin}, http.StatusOK},
		{"volunteer fails admin gate", "volunteer@example.com", []string{models.RoleAdmin}, http.StatusForbidden},
		{"donor fails admin gate", "donor@example.com", []string{models.RoleAdmin}, http.StatusForbidden},
		{"volunteer passes shared gate", "volunteer@example.com", []string{models.RoleAdmin, models.RoleVolunteer}, http.StatusOK},
		{"admin passes shared gate", "admin@example.com", []string{models.RoleAdmin, models.RoleVolunteer}, http.StatusOK},
		{"donor fails shared gate", "donor@example.com", []string{models.RoleAdmin, models.RoleVolunteer}, http.StatusForbidden},
		{"unknown caller is forbidden", "ghost@example.com", []string{models.RoleAdmin}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup, _ := staticRoles(roles)
			r := guardedRouter(lookup, tt.allowed...)

			token, err := utils.GenerateToken(tt.email, testSecret)
			require.NoError(t, err)
			w := doRequest(r, token)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
