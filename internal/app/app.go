package app

import (
	"context"
	"learning_platform_backend/internal/config"
	"learning_platform_backend/internal/controller"
	"learning_platform_backend/internal/repository"
	"learning_platform_backend/internal/service"
	"learning_platform_backend/pkg/configwatcher"
	"learning_platform_backend/pkg/database"
	"learning_platform_backend/pkg/logger"
	"learning_platform_backend/pkg/monitoring"
	"learning_platform_backend/pkg/security"
	"learning_platform_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/v2/mongo"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type App struct {
	Config     *config.Config
	Router     *gin.Engine
	Mongo      *mongo.Client
	DB         *mongo.Database
	Redis      *redis.Client
	services   *services
	tracerProv *sdktrace.TracerProvider
}

type repositories struct {
	user       *repository.UserRepository
	profile    *repository.ProfileRepository
	enrollment *repository.EnrollmentRepository
	catalog    *repository.CatalogRepository
	question   *repository.QuizQuestionRepository
	attempt    *repository.QuizAttemptRepository
	game       *repository.GameProgressRepository
}

type services struct {
	seed    *service.SeedService
	auth    *service.AuthService
	user    *service.UserService
	course  *service.CourseService
	catalog *service.CatalogService
	quiz    *service.QuizService
	game    *service.GameService
	storage *service.StorageService
}

type controllers struct {
	auth    *controller.AuthController
	user    *controller.UserController
	course  *controller.CourseController
	catalog *controller.CatalogController
	quiz    *controller.QuizController
	game    *controller.GameController
	health  *controller.HealthController
}

func (a *App) initRepositories(db *mongo.Database) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		profile:    repository.NewProfileRepository(db),
		enrollment: repository.NewEnrollmentRepository(db),
		catalog:    repository.NewCatalogRepository(db),
		question:   repository.NewQuizQuestionRepository(db),
		attempt:    repository.NewQuizAttemptRepository(db),
		game:       repository.NewGameProgressRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.seed = service.NewSeedService(repos.profile, repos.enrollment, repos.game, repos.catalog)
	s.auth = service.NewAuthService(repos.user, s.seed, cfg)
	s.user = service.NewUserService(repos.user, repos.profile, repos.enrollment, repos.attempt, repos.game)
	s.course = service.NewCourseService(repos.enrollment, repos.profile, repos.catalog)
	s.catalog = service.NewCatalogService(repos.catalog, repos.enrollment, repos.profile, rdb)
	s.quiz = service.NewQuizService(repos.question, repos.attempt, repos.enrollment, cfg.Quiz)
	s.game = service.NewGameService(repos.game)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:    controller.NewAuthController(s.auth),
		user:    controller.NewUserController(s.user),
		course:  controller.NewCourseController(s.course),
		catalog: controller.NewCatalogController(s.catalog, s.storage),
		quiz:    controller.NewQuizController(s.quiz),
		game:    controller.NewGameController(s.game),
		health:  controller.NewHealthController(a.Mongo, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// watchQuizConfig 监听配置文件变更，阈值热更新只影响之后的判定
func (a *App) watchQuizConfig(configPath string) {
	go configwatcher.WatchConfig(configPath, func(cfg *config.Config) {
		a.services.quiz.UpdateConfig(cfg.Quiz)
		logger.Log.Info("Quiz thresholds reloaded",
			zap.Int("passScore", cfg.Quiz.PassScore),
			zap.Int("progressIncrement", cfg.Quiz.ProgressIncrement))
	})
}

func NewApp(cfg *config.Config, configPath string) *App {
	logger.InitLogger(cfg.Server.Mode)

	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	client, db, err := database.InitMongo(&cfg.Mongo)
	if err != nil {
		logger.Log.Fatal("Failed to initialize mongodb", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 缓存不可用时目录查询直接落库
		logger.Log.Warn("Failed to initialize redis, catalog cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		Mongo:  client,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("learning-platform", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProv = tp
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// 角色预置数据与课程目录的一致性检查，只告警不阻断启动
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	services.seed.ValidateDefaults(ctx)

	app.watchQuizConfig(configPath)

	return app
}

func (a *App) Run() {
	defer logger.Log.Sync()

	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerProv != nil {
		if err := a.tracerProv.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	if err := a.Mongo.Disconnect(ctx); err != nil {
		logger.Log.Error("Failed to disconnect mongodb", zap.Error(err))
	}

	log.Println("Server exiting")
}
