package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"opsboard/backend/config"
	"opsboard/backend/internal/api/handler"
	"opsboard/backend/internal/api/router"
	"opsboard/backend/internal/repository"
	"opsboard/backend/internal/service"
	"opsboard/backend/pkg/database"
	"opsboard/backend/pkg/jwt"
	applogger "opsboard/backend/pkg/logger"
	"opsboard/backend/pkg/redis"
	"opsboard/backend/pkg/scheduler"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接数据库并执行迁移
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：连接失败时降级运行，通知仅落库不发布）
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，通知事件发布将不可用", zap.Error(err))
		rdb = nil
	}

	// 5. 初始化 JWT 管理器与考勤时区
	jwtMgr := jwt.NewManager(&cfg.Auth)

	loc, err := time.LoadLocation(cfg.Attendance.Timezone)
	if err != nil {
		logger.Fatal("加载考勤时区失败", zap.Error(err))
	}

	// 6. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	var pub service.EventPublisher
	if rdb != nil {
		pub = rdb
	}
	svc := service.NewService(repo, pub, loc, logger)
	h := handler.NewHandler(svc)

	// 7. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, logger)

	// 8. 注册每日考勤对账任务
	sched := scheduler.New(loc)
	if _, err := sched.ScheduleDaily(cfg.Attendance.ReconcileTime, svc.Attendance.RunScheduledReconcile); err != nil {
		logger.Fatal("注册考勤对账任务失败", zap.Error(err))
	}
	sched.Start()
	logger.Info("考勤对账任务已注册",
		zap.String("time", cfg.Attendance.ReconcileTime),
		zap.String("timezone", cfg.Attendance.Timezone),
	)

	// 9. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 10. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	// 先停调度器，等正在执行的对账任务结束
	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
