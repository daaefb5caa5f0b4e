package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/school-exam-api/internal/middleware"
	"github.com/noah-isme/school-exam-api/internal/models"
	"github.com/noah-isme/school-exam-api/internal/service"
	"github.com/noah-isme/school-exam-api/pkg/config"
	appErrors "github.com/noah-isme/school-exam-api/pkg/errors"
	"github.com/noah-isme/school-exam-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/school-exam-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/school-exam-api/pkg/middleware/requestid"
	"github.com/noah-isme/school-exam-api/pkg/response"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth       *AuthHandler
	Students   *StudentHandler
	Teachers   *TeacherHandler
	Subjects   *SubjectHandler
	Scores     *ScoreHandler
	Users      *UserHandler
	Settings   *SettingHandler
	Attendance *AttendanceHandler
}

// NewRouter assembles the gin engine with all middleware and routes.
func NewRouter(cfg *config.Config, logr *zap.Logger, auth *service.AuthService, metrics *service.MetricsService, h Handlers) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "route not found"))
	})
	r.NoMethod(func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.JSON(http.StatusMethodNotAllowed, response.Envelope{Success: false, Message: "method not allowed"})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/student/login", h.Auth.StudentLogin)
		authGroup.POST("/teacher/login", h.Auth.TeacherLogin)
	}

	protected := api.Group("")
	protected.Use(middleware.JWT(auth))

	students := protected.Group("/students")
	{
		students.GET("", h.Students.List)
		students.POST("", h.Students.Create)
		students.GET("/:id", h.Students.Get)
		students.PUT("/:id", h.Students.Update)
		students.DELETE("/:id", h.Students.Delete)
	}

	teachers := protected.Group("/teachers")
	{
		teachers.GET("", h.Teachers.List)
		teachers.POST("", h.Teachers.Create)
		teachers.GET("/:id", h.Teachers.Get)
		teachers.PUT("/:id", h.Teachers.Update)
		teachers.DELETE("/:id", h.Teachers.Delete)
	}

	subjects := protected.Group("/subjects")
	{
		subjects.GET("", h.Subjects.List)
		subjects.POST("", h.Subjects.Create)
		subjects.GET("/:id", h.Subjects.Get)
		subjects.PUT("/:id", h.Subjects.Update)
		subjects.DELETE("/:id", h.Subjects.Delete)
	}

	scores := protected.Group("/scores")
	{
		scores.GET("", h.Scores.List)
		scores.POST("", h.Scores.Record)
		scores.GET("/export", h.Scores.Export)
		scores.GET("/report/:studentId", h.Scores.ReportCard)
		scores.GET("/student/:studentId", h.Scores.ListByStudent)
		scores.GET("/:id", h.Scores.Get)
		scores.PUT("/:id", h.Scores.Update)
		scores.DELETE("/:id", h.Scores.Delete)
	}

	users := protected.Group("/users")
	{
		users.GET("", h.Users.List)
		users.POST("", h.Users.Create)
		users.POST("/invite/teacher", middleware.RequireRoles(models.RoleAdmin), h.Users.InviteTeacher)
		users.GET("/:id", h.Users.Get)
		users.PUT("/:id", h.Users.Update)
		users.DELETE("/:id", h.Users.Delete)
		users.POST("/:id/change-password", h.Users.ChangePassword)
	}

	settings := protected.Group("/settings")
	{
		settings.GET("/:key", h.Settings.Get)
		settings.PUT("/:key", h.Settings.Set)
	}

	attendance := protected.Group("/attendance")
	{
		attendance.PUT("", h.Attendance.BulkSave)
		attendance.GET("/:studentId", h.Attendance.Get)
		attendance.PUT("/:studentId", h.Attendance.Save)
	}

	return r
}
