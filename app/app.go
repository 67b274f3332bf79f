package app

import (
	"context"
	"time"

	"shareit/config"
	"shareit/db"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// App aggregates the process-wide dependencies.
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Config *config.Config
	Logger *zerolog.Logger
}

func MustNew(cfg *config.Config, logger *zerolog.Logger) *App {
	conn, err := db.Connect(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("database")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(logger))
	useCORS(r, cfg.HTTP.AllowedOrigins)

	return &App{Router: r, DB: conn, RDB: rdb, Config: cfg, Logger: logger}
}

func (a *App) Close() { _ = a.RDB.Close() }
