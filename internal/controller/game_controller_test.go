package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"learning_platform_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func newGameRouter() (*gin.Engine, *stubGameRepo) {
	gin.SetMode(gin.TestMode)

	games := &stubGameRepo{}
	ctrl := NewGameController(service.NewGameService(games))

	router := gin.New()
	router.POST("/api/users/:userId/games/:gameId/progress", ctrl.UpdateGameProgress)
	return router, games
}

func TestUpdateGameProgressQueryParams(t *testing.T) {
	userID := bson.NewObjectID()

	t.Run("level and xp come from the query string", func(t *testing.T) {
		router, games := newGameRouter()

		req := httptest.NewRequest(http.MethodPost, "/api/users/"+userID.Hex()+"/games/math_blaster/progress?level=3&xp=120", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, games.items, 1)
		assert.Equal(t, "math_blaster", games.items[0].GameID)
		assert.Equal(t, 3, games.items[0].Level)
		assert.Equal(t, 120, games.items[0].XP)
	})

	t.Run("missing level is rejected", func(t *testing.T) {
		router, games := newGameRouter()

		req := httptest.NewRequest(http.MethodPost, "/api/users/"+userID.Hex()+"/games/math_blaster/progress?xp=120", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, games.items)
	})

	t.Run("zero level is rejected", func(t *testing.T) {
		router, _ := newGameRouter()

		req := httptest.NewRequest(http.MethodPost, "/api/users/"+userID.Hex()+"/games/math_blaster/progress?level=0&xp=120", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
