package connection

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salescrm/controller/auth"
	"salescrm/controller/followup"
	"salescrm/controller/notification"
	"salescrm/controller/sales"
	"salescrm/controller/user"
	"salescrm/logs"
	"salescrm/middleware"
	"salescrm/model"
	"salescrm/repository"
	"salescrm/services"
)

const shutdownTimeout = 30 * time.Second

// NewRouter mounts every controller under /api.
func NewRouter(reg *services.Registry, corsOrigin string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	if corsOrigin == "" || corsOrigin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(corsOrigin, ",")
		corsConfig.AllowCredentials = true
	}
	router.Use(cors.New(corsConfig))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Api is running!"})
	})

	api := router.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": reg.Now()})
	})

	auth.SignInController(api, reg)
	user.UserController(api, reg)
	notification.NotificationController(api, reg)
	sales.SalesController(api, reg)
	followup.FollowUpController(api, reg)

	return router
}

// OpenStore connects the configured backend. The returned close func is
// never nil.
func OpenStore(ctx context.Context, cfg Config) (services.Store, func(), error) {
	switch cfg.StoreBackend {
	case BackendMemory:
		logs.Log.Warn("using in-memory store, data is lost on restart")
		return repository.NewMemoryStore(), func() {}, nil
	case BackendFirestore:
		client, err := FBConnection(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewFirestoreStore(client), func() { client.Close() }, nil
	case BackendPostgres:
		db, err := PGConnection(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPostgresStore(db), func() { db.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
}

// StartServer wires the configured backend and serves until SIGINT or
// SIGTERM. Errors come back to the caller only after every opened
// connection has been closed.
func StartServer() error {
	cfg := LoadConfig()
	logs.Init(cfg.LogLevel, cfg.LogFormat)
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET_KEY is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()

	var locker services.RunLocker
	rdb, err := RedisConnection(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if rdb != nil {
		defer rdb.Close()
		hostname, _ := os.Hostname()
		locker = repository.NewRedisLocker(rdb, hostname+"-"+uuid.New().String())
	}

	if cfg.AdminUsername != "" {
		if err := services.EnsureUser(ctx, store, cfg.AdminUsername, cfg.AdminPassword, "Administrator", model.RoleAdmin); err != nil {
			return fmt.Errorf("seed admin user: %w", err)
		}
	}

	reg := services.NewRegistry(store, cfg.JWTSecret, cfg.JWTExpire)
	go services.StartScheduler(ctx, reg.Notifier, locker, cfg.OverdueInterval)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: NewRouter(reg, cfg.CORSOrigin),
	}

	logs.Log.WithField("port", cfg.Port).Info("server is running")
	if err := serve(ctx, server); err != nil {
		return err
	}
	logs.Log.Info("server stopped")
	return nil
}

// serve runs the server until ctx is cancelled or it fails to listen, then
// shuts it down within shutdownTimeout.
func serve(ctx context.Context, server *http.Server) error {
	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}
	logs.Log.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
