package offline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"velvet_bite/internal/config"
	"velvet_bite/internal/model"
	"velvet_bite/internal/repository"
	"velvet_bite/internal/service"
)

const (
	tracerName = "velvet_bite/internal/service/offline"

	defaultFetchTimeout = 10 * time.Second
	// cacheWriteTimeout Лимит фоновой записи ответа в бакет
	cacheWriteTimeout = 5 * time.Second
)

type worker struct {
	cfg     config.OfflineConfig
	storage repository.CacheStorage
	origin  *url.URL
	client  *http.Client
	proxy   *httputil.ReverseProxy
	tracer  trace.Tracer
	now     func() time.Time

	mtx   sync.RWMutex
	state model.WorkerState

	// pending фоновые записи в кэш
	pending sync.WaitGroup
}

type Option func(*worker)

// WithHTTPClient Клиент для запросов к origin
func WithHTTPClient(c *http.Client) Option {
	return func(w *worker) { w.client = c }
}

func WithClock(now func() time.Time) Option {
	return func(w *worker) { w.now = now }
}

// NewOfflineWorker Воркер в состоянии installing. Запросы проксируются как есть,
// пока воркер не установлен и не активирован
func NewOfflineWorker(cfg config.OfflineConfig, storage repository.CacheStorage, opts ...Option) (service.OfflineWorker, error) {
	origin, err := url.Parse(cfg.OriginURL())
	if err != nil {
		return nil, fmt.Errorf("parse origin url: %w", err)
	}
	if origin.Scheme == "" || origin.Host == "" {
		return nil, fmt.Errorf("origin url %q must be absolute", cfg.OriginURL())
	}

	w := &worker{
		cfg:     cfg,
		storage: storage,
		origin:  origin,
		client: &http.Client{
			Timeout:   defaultFetchTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tracer: otel.Tracer(tracerName),
		now:    time.Now,
		state:  model.WorkerInstalling,
	}
	for _, opt := range opts {
		opt(w)
	}

	w.proxy = &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(w.origin)
			pr.SetXForwarded()
		},
		Transport: w.client.Transport,
		ErrorHandler: func(rw http.ResponseWriter, r *http.Request, err error) {
			log.Warn().Err(err).Str("method", r.Method).Str("uri", r.RequestURI).Msg("pass-through request failed")
			rw.WriteHeader(http.StatusBadGateway)
		},
	}
	return w, nil
}

func (w *worker) State() model.WorkerState {
	w.mtx.RLock()
	defer w.mtx.RUnlock()
	return w.state
}

func (w *worker) setState(s model.WorkerState) {
	w.mtx.Lock()
	prev := w.state
	w.state = s
	w.mtx.Unlock()

	log.Info().Str("from", prev.String()).Str("to", s.String()).Str("cache", w.cfg.CacheVersion()).Msg("offline worker state changed")
}

// Supersede Воркер заменен новой версией. Ждет незавершенные записи в кэш
func (w *worker) Supersede(ctx context.Context) error {
	w.setState(model.WorkerSuperseded)
	return w.waitPending(ctx)
}

// Terminate Остановка воркера. Ждет незавершенные записи в кэш
func (w *worker) Terminate(ctx context.Context) error {
	w.setState(model.WorkerTerminated)
	return w.waitPending(ctx)
}

func (w *worker) waitPending(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		w.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
