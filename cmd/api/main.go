package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	pgrepo "github.com/personalgpt/backend/internal/adapters/db/postgres"
	redisrepo "github.com/personalgpt/backend/internal/adapters/db/redis"
	transporthttp "github.com/personalgpt/backend/internal/adapters/transport/http"
	httpmw "github.com/personalgpt/backend/internal/adapters/transport/http/middleware"
	appjwt "github.com/personalgpt/backend/internal/app/auth/jwt"
	"github.com/personalgpt/backend/internal/app/auth/password"
	appsvc "github.com/personalgpt/backend/internal/app/auth/service"
	"github.com/personalgpt/backend/internal/infra/config"
	lg "github.com/personalgpt/backend/internal/infra/log"
	"github.com/personalgpt/backend/internal/infra/migrate"
	"github.com/personalgpt/backend/internal/infra/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zapLog := lg.Must(cfg.Environment, os.Getenv("LOG_LEVEL"))
	defer zapLog.Sync()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := migrate.Up(sqlDB); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	redisCli := redisv9.NewClient(&redisv9.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisCli.Close()

	userRepo := pgrepo.NewPostgresUserRepo(db)
	settingsRepo := pgrepo.NewPostgresSettingsRepo(db)
	tokenRepo := redisrepo.NewRedisTokenRepo(redisCli)

	jwtUtil, err := appjwt.NewJWTUtil(cfg)
	if err != nil {
		zapLog.Fatal("failed to init JWT util", zap.Error(err))
	}
	hasher := password.NewHasher(cfg.PasswordPepper)
	svc := appsvc.New(userRepo, settingsRepo, tokenRepo, jwtUtil, hasher, appsvc.NewValidator())

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpmw.RequestLogger(zapLog))
	router.Use(httpmw.RateLimitPerIP(50, 100, 10_000, time.Hour))
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept",
			"Authorization",
			"X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	transporthttp.NewHandler(svc, zapLog).Register(router)
	transporthttp.NewChatHandler(svc).Register(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})

	rootCtx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		return server.StartHTTPServer(ctx, cfg, router, zapLog)
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		zapLog.Info("shutdown signal received")
	case <-ctx.Done():
	}
	cancel()

	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
