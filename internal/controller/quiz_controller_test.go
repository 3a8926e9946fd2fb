package controller

import (
	"encoding/json"
	"net/http"
	"testing"

	"learning_platform_backend/internal/config"
	"learning_platform_backend/internal/service"
	"learning_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func newAttemptRouter(enrollments *stubEnrollmentRepo) (*gin.Engine, *stubAttemptRepo) {
	gin.SetMode(gin.TestMode)

	attempts := &stubAttemptRepo{}
	quiz := service.NewQuizService(nil, attempts, enrollments, config.QuizConfig{PassScore: 60, ProgressIncrement: 10})
	ctrl := NewQuizController(quiz)

	router := gin.New()
	router.POST("/api/users/:userId/quizzes/attempt", ctrl.SubmitAttempt)
	return router, attempts
}

func TestSubmitAttemptMessage(t *testing.T) {
	userID := bson.NewObjectID()

	t.Run("passed with course slug reports progress even without enrollment", func(t *testing.T) {
		router, attempts := newAttemptRouter(&stubEnrollmentRepo{})

		w := postJSON(t, router, "/api/users/"+userID.Hex()+"/quizzes/attempt", gin.H{
			"quizId":     "python_basics",
			"score":      80,
			"courseSlug": "intro_python",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp util.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Quiz attempt recorded and progress updated", resp.Message)

		// 报名缺失时记录照常落库，但不带增量标注
		require.Len(t, attempts.items, 1)
		assert.Zero(t, attempts.items[0].ProgressIncrement)
	})

	t.Run("failed attempt keeps the plain message", func(t *testing.T) {
		router, _ := newAttemptRouter(&stubEnrollmentRepo{})

		w := postJSON(t, router, "/api/users/"+userID.Hex()+"/quizzes/attempt", gin.H{
			"quizId":     "python_basics",
			"score":      40,
			"courseSlug": "intro_python",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp util.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Quiz attempt recorded", resp.Message)
	})

	t.Run("passed without course slug keeps the plain message", func(t *testing.T) {
		router, _ := newAttemptRouter(&stubEnrollmentRepo{})

		w := postJSON(t, router, "/api/users/"+userID.Hex()+"/quizzes/attempt", gin.H{
			"quizId": "python_basics",
			"score":  80,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp util.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Quiz attempt recorded", resp.Message)
	})
}
