package main

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	_ "github.com/noah-isme/school-exam-api/api/swagger"
	"github.com/noah-isme/school-exam-api/internal/grading"
	"github.com/noah-isme/school-exam-api/internal/handler"
	"github.com/noah-isme/school-exam-api/internal/repository"
	"github.com/noah-isme/school-exam-api/internal/service"
	"github.com/noah-isme/school-exam-api/pkg/cache"
	"github.com/noah-isme/school-exam-api/pkg/config"
	"github.com/noah-isme/school-exam-api/pkg/logger"
)

// @title School Exam API
// @version 1.0.0
// @description Examination management service
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	stores, err := repository.NewStores(cfg)
	if err != nil {
		logr.Sugar().Fatalw("failed to open store", "driver", cfg.Store.Driver, "error", err)
	}
	defer stores.Close() //nolint:errcheck

	scale, err := grading.LoadScale(cfg.Grading.File)
	if err != nil {
		logr.Sugar().Warnw("failed to load grading scale, using defaults", "file", cfg.Grading.File, "error", err)
		scale = grading.DefaultScale()
	}

	metrics := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, settings cache disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, true)
		}
	}

	validate := validator.New()

	studentSvc := service.NewStudentService(stores.Students, validate, logr)
	teacherSvc := service.NewTeacherService(stores.Teachers, validate, logr)
	subjectSvc := service.NewSubjectService(stores.Subjects, validate, logr)
	scoreSvc := service.NewScoreService(stores.Scores, scale, logr)
	settingSvc := service.NewSettingService(stores.Settings, cacheSvc, logr)
	attendanceSvc := service.NewAttendanceService(settingSvc, scale, logr)
	userSvc := service.NewUserService(stores.Users, validate, logr, cfg.Auth.DemoMode)
	authSvc := service.NewAuthService(stores.Users, stores.Students, stores.Teachers, cfg.JWT, cfg.Auth, validate, logr)
	reportSvc := service.NewReportService(stores.Scores, stores.Students, stores.Subjects, settingSvc, attendanceSvc, logr)

	handlers := handler.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		Students:   handler.NewStudentHandler(studentSvc),
		Teachers:   handler.NewTeacherHandler(teacherSvc),
		Subjects:   handler.NewSubjectHandler(subjectSvc),
		Scores:     handler.NewScoreHandler(scoreSvc, reportSvc),
		Users:      handler.NewUserHandler(userSvc, authSvc),
		Settings:   handler.NewSettingHandler(settingSvc),
		Attendance: handler.NewAttendanceHandler(attendanceSvc),
	}

	r := handler.NewRouter(cfg, logr, authSvc, metrics, handlers)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", cfg.Store.Driver, "demo_mode", cfg.Auth.DemoMode)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
