package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	_ "siack/docs"
	"siack/internal/auth"
	"siack/internal/config"
	"siack/internal/handler"
	"siack/internal/logger"
	"siack/internal/middleware"
	"siack/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           SIACK Account API
// @version         1.0
// @description     회원가입, 로그인, 중복 확인, 내 정보 조회/수정, 프로필 이미지 업로드 API
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	configPath := flag.String("config", "", "설정 파일 경로 (yaml/json/toml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("main(): failed to load config: %v", err)
	}

	zl := logger.New(cfg.Logging.Level)
	defer zl.Sync()

	gin.SetMode(cfg.Server.Mode)
	if cfg.UsingDefaultSecret() {
		zl.Warn("JWT secret not configured, using built-in default; set SIACK_JWT_SECRET")
	}

	users, err := storage.Open(cfg.Database.Path, zl)
	if err != nil {
		zl.Fatal("failed to open database", zap.Error(err))
	}
	defer users.Close()

	if err := handler.RegisterValidators(); err != nil {
		zl.Fatal("failed to register validators", zap.Error(err))
	}
	tokens := auth.NewTokenManager(cfg.JWT.SigningKey(), cfg.JWT.ExpiryDuration())

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logger(zl), middleware.Recovery(zl))

	corsConfig := cors.DefaultConfig()
	if slices.Contains(cfg.Security.AllowedOrigins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.Security.AllowedOrigins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", middleware.InviteCodeHeader)
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("", middleware.RateLimit(cfg.Security.RatePerSecond, cfg.Security.RateBurst))
	handler.New(users, tokens, cfg.Security.PasswordCost, zl).
		RequireInviteCode(cfg.Security.InviteCode).
		ServeFiles(storage.NewDisk(cfg.Files.UploadDir, zl), cfg.Files.MaxBytes).
		Routes(api)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		zl.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
