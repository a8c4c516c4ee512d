package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campuscore/admin-portal/internal/api"
	"github.com/campuscore/admin-portal/internal/core/service"
	"github.com/campuscore/admin-portal/internal/infrastructure/config"
	mongodb "github.com/campuscore/admin-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/campuscore/admin-portal/internal/infrastructure/db/redis"
	"github.com/campuscore/admin-portal/internal/infrastructure/storage"
	"github.com/campuscore/admin-portal/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	blobs, err := storage.NewMinioStore(ctx, storage.Config{
		Endpoint:        cfg.Minio.Endpoint,
		AccessKeyID:     cfg.Minio.AccessKeyID,
		SecretAccessKey: cfg.Minio.SecretAccessKey,
		Bucket:          cfg.Minio.Bucket,
		UseSSL:          cfg.Minio.UseSSL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("minio connection failed")
	}

	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	photoRepo := mongodb.NewPhotoRepository(db)
	refRepo := mongodb.NewReferenceRepository(db)
	tx := mongodb.NewTransactor(client)
	sessions := redisdb.NewSessionStore(rdb, cfg.Session.TTL)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := photoRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("photo index creation failed")
	}

	authService := service.NewAuthService(userRepo, sessions, log)
	accountService := service.NewAccountService(userRepo, roleRepo, photoRepo, blobs, refRepo, tx, cfg.Auth.BcryptCost, log)
	photoService := service.NewPhotoService(photoRepo, userRepo, blobs, log)

	e := api.NewRouter(cfg, api.Services{
		Auth:     authService,
		Accounts: accountService,
		Photos:   photoService,
		Refs:     refRepo,
	}, db, rdb, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}
