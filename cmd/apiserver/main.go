package main

// @title           DIP Backend API
// @version         1.0
// @description     文档智能处理平台后端 API，提供文档上传、提取任务提交与结果下载服务

// @contact.name   API Support
// @contact.email  support@dip.example.com

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dip/backend/internal/app/config"
)

func main() {
	// 1. 加载配置
	cfg, err := config.LoadDefault()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}

	// 2. 初始化应用（包含 HTTP Server 和补偿扫描器）
	app, cleanup, err := InitializeApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}
	defer cleanup()

	// 3. 创建 HTTP Server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: app.Engine,
	}

	// 4. 启动补偿扫描器（后台 goroutine）
	reconcilerCtx, cancelReconciler := context.WithCancel(context.Background())
	reconcilerErrChan := make(chan error, 1)

	go func() {
		log.Printf("Starting reconciler...")
		reconcilerErrChan <- app.Reconciler.Start(reconcilerCtx)
	}()

	// 5. 启动 HTTP Server（后台 goroutine）
	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	// 6. 优雅停机处理
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Println("Received shutdown signal, gracefully shutting down...")
		gracefulShutdown(server, cancelReconciler)
	case err := <-serverErrChan:
		log.Fatalf("HTTP server error: %v", err)
	case err := <-reconcilerErrChan:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Fatalf("Reconciler error: %v", err)
		}
	}

	log.Println("Application stopped")
}

// gracefulShutdown 优雅停机
func gracefulShutdown(server *http.Server, cancelReconciler context.CancelFunc) {
	// 1. 停止补偿扫描器
	log.Println("Stopping reconciler...")
	cancelReconciler()
	time.Sleep(1 * time.Second) // 等待当前扫描轮次结束

	// 2. 停止 HTTP Server
	log.Println("Stopping HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped gracefully")
	}

	log.Println("All services stopped gracefully")
}
