package offline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"velvet_bite/internal/model"
)

// Install Скачивает весь манифест с обходом HTTP кэша и кладет его в бакет версии.
// Все или ничего: если хоть один ресурс не получен, в бакет ничего не пишется
func (w *worker) Install(ctx context.Context) error {
	ctx, span := w.tracer.Start(ctx, "offline.Install")
	defer span.End()

	if st := w.State(); st != model.WorkerInstalling {
		return fmt.Errorf("install in state %s: %w", st, model.ErrWorkerStopped)
	}

	manifest := w.cfg.Manifest()
	span.SetAttributes(attribute.Int("offline.manifest_size", len(manifest)))

	var (
		mtx     sync.Mutex
		entries = make(map[string]*model.CachedResponse, len(manifest))
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, path := range manifest {
		g.Go(func() error {
			resp, err := w.fetchFresh(gctx, path)
			if err != nil {
				return fmt.Errorf("precache %s: %w", path, err)
			}
			mtx.Lock()
			entries[path] = resp
			mtx.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		w.setState(model.WorkerTerminated)
		return err
	}

	bucket, err := w.storage.Open(ctx, w.cfg.CacheVersion())
	if err != nil {
		w.setState(model.WorkerTerminated)
		return fmt.Errorf("open cache %s: %w", w.cfg.CacheVersion(), err)
	}
	if err := bucket.PutAll(ctx, entries); err != nil {
		w.setState(model.WorkerTerminated)
		return fmt.Errorf("store precache: %w", err)
	}

	log.Info().Int("assets", len(entries)).Str("cache", bucket.Name()).Msg("static assets cached")
	w.setState(model.WorkerInstalled)
	return nil
}

// fetchFresh GET ресурса в обход HTTP кэшей. Ответ не 2xx считается ошибкой
func (w *worker) fetchFresh(ctx context.Context, path string) (*model.CachedResponse, error) {
	target := w.origin.ResolveReference(&url.URL{Path: path})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &model.CachedResponse{
		Status:   resp.StatusCode,
		Header:   storableHeader(resp.Header),
		Body:     body,
		StoredAt: w.now(),
	}, nil
}
