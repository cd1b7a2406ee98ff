package moviecatalog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/andrianprakoso/movie-catalog/internal/cache"
	"github.com/andrianprakoso/movie-catalog/internal/config"
	"github.com/andrianprakoso/movie-catalog/internal/lib/jwt"
	"github.com/andrianprakoso/movie-catalog/internal/lib/smtp"
	"github.com/andrianprakoso/movie-catalog/internal/migrations"
	"github.com/andrianprakoso/movie-catalog/internal/objectstore"
	movieservice "github.com/andrianprakoso/movie-catalog/internal/services/movie"
	senderservice "github.com/andrianprakoso/movie-catalog/internal/services/sender"
	userservice "github.com/andrianprakoso/movie-catalog/internal/services/user"
	"github.com/andrianprakoso/movie-catalog/internal/storage"
)

// App собирает все зависимости сервиса и владеет HTTP-сервером.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
}

// New создает приложение: подключает хранилища, применяет миграции
// и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	posterStore, err := objectstore.New(ctx, cfg.S3)
	if err != nil {
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	sender := senderservice.NewSenderService(transport, cfg.BaseURL, cfg.SMTP.SendTimeout, logger)

	tokens := jwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)

	userService := userservice.New(db, sender, cacheRedis, tokens, cfg.Reset.CodeTTL, logger)
	movieService := movieservice.New(db, posterStore, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, tokens, userService, movieService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.Close()
		return err
	}
}
