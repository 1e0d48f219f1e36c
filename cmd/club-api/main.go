package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/nbdwit/club-api/api/swagger"
	"github.com/nbdwit/club-api/internal/handler"
	"github.com/nbdwit/club-api/internal/middleware"
	"github.com/nbdwit/club-api/internal/models"
	"github.com/nbdwit/club-api/internal/repository"
	"github.com/nbdwit/club-api/internal/service"
	"github.com/nbdwit/club-api/internal/sheet"
	"github.com/nbdwit/club-api/internal/store"
	"github.com/nbdwit/club-api/pkg/cache"
	"github.com/nbdwit/club-api/pkg/config"
	"github.com/nbdwit/club-api/pkg/database"
	"github.com/nbdwit/club-api/pkg/logger"
	corsmiddleware "github.com/nbdwit/club-api/pkg/middleware/cors"
	reqidmiddleware "github.com/nbdwit/club-api/pkg/middleware/requestid"
)

// @title Club Management API
// @version 1.0.0
// @description Spreadsheet-backed club roster, attendance and assignment service
// @BasePath /
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

	if cfg.Sheet.Endpoint == "" {
		logr.Fatal("SHEET_ENDPOINT is required")
	}

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Snapshot.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, snapshot cache disabled", zap.Error(err))
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Snapshot.CacheTTL, logr, true)
		}
	}

	var auditRepo *repository.AuditRepository
	if cfg.Audit.Enabled {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Warn("postgres unavailable, audit log disabled", zap.Error(err))
		} else {
			auditRepo = repository.NewAuditRepository(db)
		}
	}

	sheetClient := sheet.NewClient(sheet.Options{
		Endpoint:      cfg.Sheet.Endpoint,
		Timeout:       cfg.Sheet.Timeout,
		ConfirmWrites: cfg.Sheet.ConfirmWrites,
	}, metricsSvc, logr)

	var snapshotCache store.SnapshotCache
	if cacheSvc != nil {
		snapshotCache = cacheSvc
	}
	snapshotStore := store.New(sheetClient, snapshotCache, logr)

	hydrateCtx, cancel := context.WithTimeout(context.Background(), cfg.Sheet.Timeout+5*time.Second)
	if err := snapshotStore.Hydrate(hydrateCtx); err != nil {
		logr.Warn("initial snapshot unavailable, serving once the sheet responds", zap.Error(err))
	} else {
		metricsSvc.MarkSnapshotRefresh(snapshotStore.RefreshedAt())
	}
	cancel()

	go refreshLoop(snapshotStore, metricsSvc, cfg.Snapshot.RefreshInterval, logr)

	validate := validator.New()
	service.RegisterValidations(validate)

	authSvc := service.NewAuthService(cfg.Teacher, logr)
	rosterSvc := service.NewRosterService(snapshotStore, sheetClient, validate, logr)
	attendanceSvc := service.NewAttendanceService(snapshotStore, sheetClient, validate, logr)
	gradingSvc := service.NewGradingService(snapshotStore, cfg.Grading, logr)
	announcementSvc := service.NewAnnouncementService(snapshotStore, sheetClient, cfg.Uploads.MaxAnnouncementImageBytes, validate, logr)
	assignmentSvc := service.NewAssignmentService(snapshotStore, sheetClient, cfg.Uploads.MaxSubmissionBytes,
		models.LookupPolicy(cfg.Snapshot.SubmissionLookup), validate, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	studentHandler := handler.NewStudentHandler(rosterSvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)
	gradeHandler := handler.NewGradeHandler(gradingSvc)
	reportHandler := handler.NewReportHandler(gradingSvc)
	announcementHandler := handler.NewAnnouncementHandler(announcementSvc)
	assignmentHandler := handler.NewAssignmentHandler(assignmentSvc)
	systemHandler := handler.NewSystemHandler(snapshotStore, metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", systemHandler.Health)
	r.GET("/ready", systemHandler.Ready)
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	teacherOnly := middleware.Teacher(authSvc)
	var auditSink middleware.AuditSink
	if auditRepo != nil {
		auditSink = auditRepo
	}
	audited := func(mode string) gin.HandlerFunc { return middleware.Audit(auditSink, mode) }

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth/teacher", authHandler.Login)

		api.GET("/students", studentHandler.List)
		api.GET("/students/:id", studentHandler.Get)
		api.POST("/students", audited("registration"), studentHandler.Register)
		api.PUT("/students/:id", teacherOnly, audited("registration"), studentHandler.Update)
		api.DELETE("/students/:id", teacherOnly, audited("delete_student"), studentHandler.Delete)

		api.GET("/attendance/day-sheet", teacherOnly, attendanceHandler.DaySheet)
		api.PUT("/attendance/day-sheet", teacherOnly, audited("attendance"), attendanceHandler.SaveDay)

		api.GET("/grades", gradeHandler.Roster)
		api.GET("/grades/:studentId", gradeHandler.Student)
		api.GET("/reports/attendance", teacherOnly, reportHandler.Attendance)

		api.GET("/announcements", announcementHandler.Feed)
		api.GET("/announcements/all", teacherOnly, announcementHandler.All)
		api.POST("/announcements", teacherOnly, audited("announcement"), announcementHandler.Save)

		api.GET("/assignments", assignmentHandler.List)
		api.POST("/assignments", teacherOnly, audited("assignment"), assignmentHandler.Save)

		api.POST("/submissions", audited("submission"), assignmentHandler.Submit)
		api.GET("/submissions/status", assignmentHandler.Status)
		api.GET("/students/:id/submissions", assignmentHandler.StudentStatuses)
		api.POST("/submissions/:id/evaluation", teacherOnly, audited("evaluate"), assignmentHandler.Evaluate)

		api.POST("/snapshot/refresh", teacherOnly, systemHandler.RefreshSnapshot)
		api.GET("/system/stats", teacherOnly, systemHandler.Stats)

		if auditRepo != nil {
			api.GET("/audit", teacherOnly, handler.NewAuditHandler(auditRepo).List)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func refreshLoop(st *store.Store, metrics *service.MetricsService, interval time.Duration, logr *zap.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		if err := st.Refresh(ctx); err != nil {
			logr.Warn("scheduled refresh failed", zap.Error(err))
		} else {
			metrics.MarkSnapshotRefresh(st.RefreshedAt())
		}
		cancel()
	}
}
