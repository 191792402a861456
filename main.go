package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	apirest "github.com/sawara-dev/ashiato/api/rest"
	"github.com/sawara-dev/ashiato/cache"
	"github.com/sawara-dev/ashiato/config"
	dbadapter "github.com/sawara-dev/ashiato/db"
	"github.com/sawara-dev/ashiato/diary"
	"github.com/sawara-dev/ashiato/footprint"
	"github.com/sawara-dev/ashiato/friendship"
	mw "github.com/sawara-dev/ashiato/middleware"
	"github.com/sawara-dev/ashiato/model"
	"github.com/sawara-dev/ashiato/timeline"
	"github.com/sawara-dev/ashiato/user"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	cfgPath := "config/config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// ---- Logger ----
	var logger *zap.Logger
	var logErr error
	if cfg.Server.Debug {
		logger, logErr = zap.NewDevelopment()
	} else {
		logger, logErr = zap.NewProduction()
	}
	if logErr != nil {
		log.Fatalf("logger: %v", logErr)
	}
	defer logger.Sync()

	if cfg.Security.JWTSecret == "" {
		logger.Warn("security.jwt_secret is not set; sessions are signed with an empty key")
	}

	// ---- Database ----
	db, err := dbadapter.Open(cfg.Database)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}
	logger.Info("DB initialized")

	// ---- Cache ----
	c, err := cache.New(cache.Config{
		RedisAddr:       cfg.Cache.RedisAddr,
		RedisPassword:   cfg.Cache.RedisPassword,
		RedisDB:         cfg.Cache.RedisDB,
		LocalGCInterval: cfg.Cache.LocalGCInterval,
	})
	if err != nil {
		log.Fatalf("cache: %v", err)
	}
	logger.Info("Cache initialized")

	// ---- Services ----
	userSvc := user.New(db, logger)
	friendSvc := friendship.New(db, c, logger)
	diarySvc := diary.New(db, friendSvc, logger)
	footprintSvc := footprint.New(db, logger)
	agg := timeline.New(db, friendSvc, cfg.Feed, logger)

	// ---- Handlers ----
	authH := apirest.NewAuthHandler(userSvc, c, cfg.Security, logger)
	homeH := apirest.NewHomeHandler(userSvc, diarySvc, agg, footprintSvc, logger)
	profileH := apirest.NewProfileHandler(userSvc, diarySvc, friendSvc, footprintSvc, logger)
	diaryH := apirest.NewDiaryHandler(userSvc, diarySvc, footprintSvc, logger)
	friendsH := apirest.NewFriendsHandler(db, userSvc, friendSvc, agg, logger)
	footprintsH := apirest.NewFootprintsHandler(userSvc, footprintSvc, logger)
	adminH := apirest.NewAdminHandler(db, friendSvc, logger)

	// ---- Gin HTTP Server ----
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(mw.TraceID(), mw.Logger(logger), mw.Recovery(logger))
	r.Use(mw.RateLimit(rate.Limit(cfg.Security.RateLimitRPS), cfg.Security.RateLimitBurst))

	// Health check
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	r.POST("/login", authH.Login)

	// Dataset reset for load-test runs; must never overlap ordinary traffic.
	r.GET("/initialize", adminH.Initialize)

	auth := r.Group("/", mw.Auth(cfg.Security, c))
	{
		auth.POST("/logout", authH.Logout)
		auth.GET("/", homeH.View)
		auth.GET("/profile/:account_name", profileH.Show)
		auth.POST("/profile/:account_name", profileH.Update)
		auth.GET("/diary/entries/:account_name", diaryH.List)
		auth.GET("/diary/entry/:entry_id", diaryH.Show)
		auth.POST("/diary/entry", diaryH.Create)
		auth.POST("/diary/comment/:entry_id", diaryH.Comment)
		auth.GET("/footprints", footprintsH.List)
		auth.GET("/friends", friendsH.List)
		auth.POST("/friends/:account_name", friendsH.Add)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("Server listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
