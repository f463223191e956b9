package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"

	"github.com/contabildrive/drive-server/internal/api/http/handler"
	"github.com/contabildrive/drive-server/internal/api/http/middleware"
	"github.com/contabildrive/drive-server/internal/api/http/router"
	"github.com/contabildrive/drive-server/internal/config"
	"github.com/contabildrive/drive-server/internal/limiter"
	"github.com/contabildrive/drive-server/internal/logger"
	"github.com/contabildrive/drive-server/internal/model"
	"github.com/contabildrive/drive-server/internal/obs"
	"github.com/contabildrive/drive-server/internal/password"
	"github.com/contabildrive/drive-server/internal/repository/postgres"
	"github.com/contabildrive/drive-server/internal/server"
	"github.com/contabildrive/drive-server/internal/service"
	storage "github.com/contabildrive/drive-server/internal/storage/minio"
	"github.com/contabildrive/drive-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	obs.Init()

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	clientRepo := postgres.NewClientRepository(db)
	folderRepo := postgres.NewFolderRepository(db)
	fileRepo := postgres.NewFileRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)
	auditRepo := postgres.NewAuditRepository(db)

	accessTTL := time.Duration(cfg.Auth.AccessTTLSeconds) * time.Second
	refreshTTL := time.Duration(cfg.Auth.RefreshTTLSeconds) * time.Second

	tokenManager := token.NewRS256(cfg.JWT.PrivateKeyPEM, cfg.JWT.PublicKeyPEM, accessTTL)
	hasher := password.NewHasher(cfg.Auth.Pepper)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	loginLimiter := limiter.NewLogin(rdb,
		int64(cfg.Auth.LoginRateMax),
		time.Duration(cfg.Auth.LoginRateWindowSec)*time.Second,
		logger)

	sessionService := service.NewSession(refreshTokenRepo, userRepo, refreshTTL, logger)
	authService := service.NewAuth(userRepo, hasher, tokenManager, sessionService, accessTTL, logger)
	clientService := service.NewClients(clientRepo, sessionService, hasher, auditRepo, logger)
	documentService := service.NewDocuments(clientRepo, folderRepo, fileRepo, storageClient, auditRepo, logger)

	if err := authService.EnsureBootstrapAdmin(ctx, cfg.Bootstrap.Email, cfg.Bootstrap.Password); err != nil {
		logger.Fatal("failed to bootstrap admin account", "error", err)
	}

	handlerTree := router.New(router.Config{
		Auth:         handler.NewAuth(authService, loginLimiter, logger),
		Admin:        handler.NewAdmin(clientService, documentService, cfg.Upload.MaxBytes, logger),
		Client:       handler.NewClient(clientService, documentService, logger),
		Health:       handler.NewHealth(db),
		Authenticate: middleware.NewAuthenticate(tokenManager, logger),
		Logging:      middleware.NewLogging(logger),
		RateLimit:    middleware.NewRateLimit(float64(cfg.HTTP.RatePerSecond), cfg.HTTP.RateBurst),
	})

	httpServer := server.NewHTTPServer(handlerTree, net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
