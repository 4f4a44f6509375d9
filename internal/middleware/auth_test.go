package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Predaotor/AI-content-Generator/internal/config"
	"github.com/Predaotor/AI-content-Generator/internal/database"
	"github.com/Predaotor/AI-content-Generator/internal/models"
	"github.com/Predaotor/AI-content-Generator/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthTest(t *testing.T) (*gin.Engine, *gorm.DB, *service.Identity, *models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))

	identity := service.NewIdentity(db, config.JWTConfig{Secret: "test-secret", ExpireMinutes: 30}, nil)

	user, err := identity.Register(context.Background(), "alice@example.com", "alice", "Password123")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/protected", AuthMiddleware(identity), func(c *gin.Context) {
		current, ok := CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"username": current.Username})
	})
	return r, db, identity, user
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	r, _, identity, user := setupAuthTest(t)

	token, err := identity.IssueSessionToken(user)
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r, _, _, _ := setupAuthTest(t)

	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_BadToken(t *testing.T) {
	r, _, _, _ := setupAuthTest(t)

	w := doRequest(r, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_NotBearer(t *testing.T) {
	r, _, identity, user := setupAuthTest(t)

	token, err := identity.IssueSessionToken(user)
	require.NoError(t, err)

	w := doRequest(r, "Basic "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InactiveUser(t *testing.T) {
	r, db, identity, user := setupAuthTest(t)

	token, err := identity.IssueSessionToken(user)
	require.NoError(t, err)

	// deactivate after the token was issued; the middleware must still
	// refuse the request
	require.NoError(t, db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("is_active", false).Error)

	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
