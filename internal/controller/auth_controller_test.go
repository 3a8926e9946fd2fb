package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"learning_platform_backend/internal/config"
	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegisterRouter() (*gin.Engine, *stubUserRepo, *stubEnrollmentRepo, *stubGameRepo) {
	gin.SetMode(gin.TestMode)

	users := newStubUserRepo()
	enrollments := &stubEnrollmentRepo{}
	games := &stubGameRepo{}

	seed := service.NewSeedService(&stubProfileRepo{}, enrollments, games, nil)
	ctrl := NewAuthController(service.NewAuthService(users, seed, &config.Config{}))

	router := gin.New()
	router.POST("/api/register", ctrl.Register)
	return router, users, enrollments, games
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterRoleHandling(t *testing.T) {
	t.Run("unknown role is accepted and seeded with User defaults", func(t *testing.T) {
		router, users, enrollments, games := newRegisterRouter()

		w := postJSON(t, router, "/api/register", gin.H{
			"email":     "admin@example.com",
			"password":  "supersecret",
			"firstName": "Ada",
			"lastName":  "Lovelace",
			"role":      "Admin",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		user := users.users["admin@example.com"]
		require.NotNil(t, user)
		assert.Equal(t, model.UserRole("Admin"), user.Role)

		slugs := make([]string, 0, len(enrollments.items))
		for _, e := range enrollments.items {
			slugs = append(slugs, e.CourseSlug)
		}
		assert.ElementsMatch(t, []string{"intro_python", "basic_math"}, slugs)

		require.Len(t, games.items, 1)
		assert.Equal(t, "math_blaster", games.items[0].GameID)
	})

	t.Run("missing role defaults to User", func(t *testing.T) {
		router, users, _, _ := newRegisterRouter()

		w := postJSON(t, router, "/api/register", gin.H{
			"email":     "plain@example.com",
			"password":  "supersecret",
			"firstName": "Ada",
			"lastName":  "Lovelace",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, model.RoleUser, users.users["plain@example.com"].Role)
	})
}
