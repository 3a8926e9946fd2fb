package app

import (
	"learning_platform_backend/docs"
	"learning_platform_backend/internal/config"
	"learning_platform_backend/internal/middleware"
	"learning_platform_backend/internal/model"

	"learning_platform_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// 课程目录与题目浏览对游客开放
		public.GET("/courses/catalog", c.catalog.ListCourses)
		public.GET("/courses/catalog/stats", c.catalog.Stats)
		public.GET("/courses/catalog/:slug", c.catalog.GetCourse)
		public.GET("/quizzes/:quizId/questions", c.quiz.GetQuizQuestions)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		users := authGroup.Group("/users")
		{
			users.GET("/:userId", c.user.GetUser)
			users.PUT("/:userId", c.user.UpdateUser)
			users.PATCH("/:userId", c.user.PatchUser)
			users.DELETE("/:userId", c.user.DeleteUser)

			users.POST("/:userId/courses", c.course.Enroll)
			users.GET("/:userId/courses", c.course.GetUserCourses)
			users.GET("/:userId/courses/:courseSlug", c.course.GetCourseProgress)
			users.PATCH("/:userId/courses/:courseSlug/progress", c.course.UpdateCourseProgress)

			users.POST("/:userId/quizzes/attempt", c.quiz.SubmitAttempt)
			users.GET("/:userId/quiz-attempts", c.quiz.GetUserAttempts)

			users.GET("/:userId/games", c.game.GetUserGames)
			users.POST("/:userId/games/:gameId/progress", c.game.UpdateGameProgress)
		}

		// Instructor 专属接口
		instructor := authGroup.Group("")
		instructor.Use(middleware.RoleMiddleware(model.RoleInstructor))
		{
			instructor.GET("/users", c.user.GetAllUsers)

			instructor.POST("/courses/catalog", c.catalog.CreateCourse)
			instructor.PUT("/courses/catalog/:slug", c.catalog.UpdateCourse)
			instructor.DELETE("/courses/catalog/:slug", c.catalog.DeleteCourse)
			instructor.GET("/courses/:slug/enrollments", c.catalog.GetCourseEnrollments)
			instructor.POST("/courses/catalog/:slug/thumbnail", c.catalog.UploadThumbnail)

			instructor.POST("/quizzes/:quizId/questions", c.quiz.CreateQuestion)
			instructor.GET("/quizzes/questions", c.quiz.GetAllQuestions)
		}
	}
}
