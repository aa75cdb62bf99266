package main

import (
	"context"

	"github.com/Goodidea-backend-camp/hpb-blog-files/internal/api"
	"github.com/Goodidea-backend-camp/hpb-blog-files/internal/config"
	"github.com/Goodidea-backend-camp/hpb-blog-files/internal/logging"
	"github.com/Goodidea-backend-camp/hpb-blog-files/internal/middleware"
	"github.com/Goodidea-backend-camp/hpb-blog-files/internal/store"
	"github.com/Goodidea-backend-camp/hpb-blog-files/pkg/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/gops/agent"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithField("err", err).Fatal("Could not load configuration")
	}

	logger := log.StandardLogger()
	if err := logging.Configure(logger, cfg.Log); err != nil {
		log.WithField("err", err).Fatal("Could not configure logging")
	}

	if cfg.Debug.Gops {
		if err := agent.Listen(agent.Options{ShutdownCleanup: true}); err != nil {
			log.WithField("err", err).Warn("Could not start gops agent")
		} else {
			defer agent.Close()
		}
	}

	// 初始化文章目錄
	fsys := afero.NewOsFs()
	if err := storage.Prepare(fsys, cfg.Storage.Dir); err != nil {
		entry := log.WithFields(log.Fields{
			"err": err,
			"dir": cfg.Storage.Dir,
		})
		if cfg.Storage.RequireDir {
			entry.Fatal("Could not prepare post directory")
		}
		entry.Error("Could not prepare post directory, requests will fail until it exists")
	} else {
		log.WithField("dir", cfg.Storage.Dir).Info("Post directory ready")
	}

	// 初始化 Store 和 Handler
	postStore := store.NewFilePostStore(fsys, cfg.Storage.Dir)
	handler := api.NewHandler(postStore, api.WithHealthCheck(func(context.Context) error {
		return storage.Check(fsys, cfg.Storage.Dir)
	}))

	// 初始化 Gin Router
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(logger),
		middleware.SecurityHeaders(),
		middleware.HostHeaderValidation(cfg.Server.ExpectedHost, logger),
	)
	handler.RegisterRoutes(router)

	addr := cfg.Server.Addr()
	log.WithField("addr", addr).Info("Starting server")
	if err := router.Run(addr); err != nil {
		log.WithField("err", err).Fatal("Server stopped")
	}
}
