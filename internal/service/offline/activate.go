package offline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"velvet_bite/internal/model"
)

// Activate Удаляет все бакеты, кроме текущей версии. Воркер становится
// активным только после того, как чистка завершилась
func (w *worker) Activate(ctx context.Context) error {
	ctx, span := w.tracer.Start(ctx, "offline.Activate")
	defer span.End()

	if st := w.State(); st != model.WorkerInstalled {
		return fmt.Errorf("activate in state %s: %w", st, model.ErrWorkerNotInstalled)
	}

	names, err := w.storage.Keys(ctx)
	if err != nil {
		return fmt.Errorf("list caches: %w", err)
	}

	for _, name := range names {
		if name == w.cfg.CacheVersion() {
			continue
		}
		if _, err := w.storage.Delete(ctx, name); err != nil {
			span.RecordError(err)
			return fmt.Errorf("delete cache %s: %w", name, err)
		}
		log.Info().Str("cache", name).Msg("deleted old cache")
	}

	w.setState(model.WorkerActive)
	return nil
}
