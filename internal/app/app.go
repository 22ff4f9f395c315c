package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"velvet_bite/internal/config"
	"velvet_bite/pkg/logger"
	"velvet_bite/pkg/telemetry"
)

const (
	shutdownTimeout = 15 * time.Second

	defaultWriteTimeout = 30 * time.Second
	// spinResponseSlack Запас на запись результата спина после остановки колеса
	spinResponseSlack = 10 * time.Second
)

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

// init .env, логгер и трассировка. Возвращает остановку трассировки
func (s *App) init() func(context.Context) error {
	err := config.Load(".env")
	s.initServiceProvider()

	logCfg := s.ServiceProvider.LogCfg()
	logger.Setup(logCfg.Level(), logCfg.Pretty())
	if err != nil {
		log.Warn().Err(err).Msg("error loading .env file")
	}

	shutdown, err := telemetry.Setup(logCfg.TracingEnabled())
	if err != nil {
		log.Error().Err(err).Msg("tracing disabled")
	}
	return shutdown
}

// Run API сервиса: колесо, тема, каталог, заказы
func (s *App) Run(ctx context.Context) error {
	stopTracing := s.init()
	defer s.close(stopTracing)

	r := s.ServiceProvider.Router(ctx)
	writeTimeout := writeTimeoutFor(s.ServiceProvider.PromoCfg().SpinDuration())
	return serve(ctx, s.ServiceProvider.HTTPCfg().Address(), traced(r, "velvet-bite"), writeTimeout, nil)
}

// RunEdge Offline прокси перед сайтом. Установка и активация кэша идут
// в фоне, до активации запросы проксируются без кэша
func (s *App) RunEdge(ctx context.Context) error {
	stopTracing := s.init()
	defer s.close(stopTracing)

	worker := s.ServiceProvider.OfflineWorker(ctx)
	r := s.ServiceProvider.EdgeRouter(ctx)

	go func() {
		if err := worker.Install(ctx); err != nil {
			log.Error().Err(err).Msg("offline cache install failed, serving without cache")
			return
		}
		if err := worker.Activate(ctx); err != nil {
			log.Error().Err(err).Msg("offline cache activation failed, serving without cache")
		}
	}()

	return serve(ctx, s.ServiceProvider.EdgeCfg().Address(), traced(r, "velvet-edge"), defaultWriteTimeout, worker.Terminate)
}

func (s *App) close(stopTracing func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := stopTracing(ctx); err != nil {
		log.Warn().Err(err).Msg("tracing shutdown")
	}
	if sp := s.ServiceProvider; sp != nil {
		if sp.dbClient != nil {
			sp.dbClient.Close()
		}
		if sp.redisClient != nil {
			_ = sp.redisClient.Close()
		}
	}
}

// writeTimeoutFor Спин отвечает только после остановки колеса,
// поэтому таймаут записи не меньше длительности спина с запасом
func writeTimeoutFor(spin time.Duration) time.Duration {
	if t := spin + spinResponseSlack; t > defaultWriteTimeout {
		return t
	}
	return defaultWriteTimeout
}

// serve Слушает addr до отмены ctx, затем плавно останавливает сервер.
// onShutdown вызывается после остановки сервера
func serve(
	ctx context.Context,
	addr string,
	h http.Handler,
	writeTimeout time.Duration,
	onShutdown func(context.Context) error,
) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
	if onShutdown != nil {
		if err := onShutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown hook")
		}
	}
	log.Info().Str("addr", addr).Msg("server stopped")
	return nil
}
