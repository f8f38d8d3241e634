package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"dip/backend/internal/app/config"
	"dip/backend/internal/app/consumer"
	"dip/backend/internal/app/domains/modules/mddispatch"
	"dip/backend/internal/app/domains/modules/mdjob"
	"dip/backend/internal/app/domains/modules/mdstorage"
	"dip/backend/internal/app/domains/repo/rpjob"
	"dip/backend/internal/app/domains/services/svjob"
	lmstfyclient "dip/backend/internal/app/infra/mq/lmstfy"
	redisclient "dip/backend/internal/app/infra/persistence/redis"
	minioclient "dip/backend/internal/app/infra/storage/minio"
	"dip/backend/internal/app/pkg/logger"
	"dip/backend/internal/app/server/handlers/job"
	"dip/backend/internal/app/server/handlers/upload"
	"dip/backend/internal/app/server/routers"
)

// App 应用实例，持有 HTTP 引擎和后台补偿扫描器
type App struct {
	Engine     *gin.Engine
	Reconciler *consumer.Reconciler
	Logger     logger.Logger
}

// InitializeApp 手动装配依赖
// 顺序：配置 -> 日志 -> 基础设施（MySQL/Redis/lmstfy/对象存储）-> repo -> module -> service -> handler -> router
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	log, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := gorm.Open(mysql.Open(cfg.MySQL.DSN), &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("connect mysql: %w", err)
	}

	redisCli, err := redisclient.NewPubSubClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}

	mqCli := lmstfyclient.NewClient(
		cfg.Lmstfy.Host,
		cfg.Lmstfy.Namespace,
		cfg.Lmstfy.Token,
		cfg.Lmstfy.TTL,
		cfg.Lmstfy.Tries,
	)

	storageCli, err := minioclient.NewClient(
		cfg.Storage.Endpoint,
		cfg.Storage.AccessKey,
		cfg.Storage.SecretKey,
		cfg.Storage.Bucket,
		cfg.Storage.UseSSL,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("init object storage: %w", err)
	}
	if err := storageCli.EnsureBucket(context.Background()); err != nil {
		return nil, nil, fmt.Errorf("ensure bucket: %w", err)
	}

	// 业务装配
	jobRepo := rpjob.NewJobRepository(db)
	jobModule := mdjob.NewJobModule(jobRepo)
	dispatchModule := mddispatch.NewDispatchModule(mqCli, redisCli, cfg.Lmstfy.Queue)
	storageModule := mdstorage.NewStorageModule(storageCli, cfg.Storage.GrantTTL)

	jobService := svjob.NewJobService(jobModule, dispatchModule, log)

	jobHandler := job.NewJobHandler(jobService, storageModule, log)
	uploadHandler := upload.NewUploadHandler(storageModule, log)

	engine := routers.SetupRoutes(jobHandler, uploadHandler, cfg.Auth.JWTSecret, log)

	reconciler := consumer.NewReconciler(jobModule, dispatchModule, &consumer.Config{
		Interval:       cfg.Reconciler.Interval,
		StaleThreshold: cfg.Reconciler.StaleThreshold,
		BatchSize:      cfg.Reconciler.BatchSize,
	}, log)

	cleanup := func() {
		redisCli.Close()
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		log.Sync()
	}

	return &App{
		Engine:     engine,
		Reconciler: reconciler,
		Logger:     log,
	}, cleanup, nil
}
