package offline

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"velvet_bite/internal/model"
	"velvet_bite/internal/repository"
)

const networkErrorBody = "Network error"

// rootKey Запись кэша, которую отдаем вместо недоступной страницы
const rootKey = "/"

var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Proxy-Connection",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// ServeHTTP Network first. Не-GET запросы и запросы до активации уходят в origin без кэша
func (w *worker) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet || w.State() != model.WorkerActive {
		w.proxy.ServeHTTP(rw, r)
		return
	}

	ctx, span := w.tracer.Start(r.Context(), "offline.Fetch")
	defer span.End()

	key := r.URL.RequestURI()
	span.SetAttributes(attribute.String("offline.key", key))

	resp, err := w.fetchNetwork(ctx, r)
	if err == nil {
		defer resp.Body.Close()
		w.serveLive(rw, key, resp)
		return
	}

	span.SetStatus(codes.Error, err.Error())
	log.Debug().Err(err).Str("uri", key).Msg("network unavailable, falling back to cache")
	w.serveFallback(ctx, rw, r, key)
}

// fetchNetwork Один запрос к origin с путем и заголовками исходного запроса
func (w *worker) fetchNetwork(ctx context.Context, r *http.Request) (*http.Response, error) {
	target := w.origin.ResolveReference(&url.URL{Path: r.URL.Path, RawQuery: r.URL.RawQuery})

	out, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	out.Header = r.Header.Clone()
	for _, h := range hopHeaders {
		out.Header.Del(h)
	}
	// тело храним распакованным, сжатие решает транспорт
	out.Header.Del("Accept-Encoding")

	return w.client.Do(out)
}

// serveLive Отдает ответ сети. Успешный ответ в пределах лимита размера
// сохраняется в кэш в фоне
func (w *worker) serveLive(rw http.ResponseWriter, key string, resp *http.Response) {
	limit := w.cfg.MaxCacheableBytes()
	head, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		log.Warn().Err(err).Str("uri", key).Msg("failed to read origin response")
		rw.WriteHeader(http.StatusBadGateway)
		return
	}
	cacheable := resp.StatusCode >= 200 && resp.StatusCode <= 299 && int64(len(head)) <= limit

	header := rw.Header()
	for k, vv := range resp.Header {
		header[k] = append([]string(nil), vv...)
	}
	for _, h := range hopHeaders {
		header.Del(h)
	}
	rw.WriteHeader(resp.StatusCode)

	if _, err := rw.Write(head); err != nil {
		log.Debug().Err(err).Str("uri", key).Msg("client went away")
		return
	}
	if !cacheable {
		if _, err := io.Copy(rw, resp.Body); err != nil {
			log.Debug().Err(err).Str("uri", key).Msg("client went away")
		}
		return
	}

	w.storeAsync(key, &model.CachedResponse{
		Status:   resp.StatusCode,
		Header:   storableHeader(resp.Header),
		Body:     head,
		StoredAt: w.now(),
	})
}

// storeAsync Запись в кэш не задерживает ответ. Ошибка записи только логируется
func (w *worker) storeAsync(key string, cached *model.CachedResponse) {
	w.pending.Add(1)
	go func() {
		defer w.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
		defer cancel()

		bucket, err := w.storage.Open(ctx, w.cfg.CacheVersion())
		if err != nil {
			log.Warn().Err(err).Str("uri", key).Msg("failed to open cache")
			return
		}
		if err := bucket.Put(ctx, key, cached); err != nil {
			log.Warn().Err(err).Str("uri", key).Msg("failed to cache response")
		}
	}()
}

// serveFallback Сеть недоступна: запись кэша, затем главная для навигации, затем 408
func (w *worker) serveFallback(ctx context.Context, rw http.ResponseWriter, r *http.Request, key string) {
	bucket, err := w.storage.Open(ctx, w.cfg.CacheVersion())
	if err != nil {
		log.Warn().Err(err).Msg("failed to open cache")
	} else {
		if cached, ok := w.match(ctx, bucket, key); ok {
			writeCached(rw, cached)
			return
		}
		if isNavigation(r) {
			if cached, ok := w.match(ctx, bucket, rootKey); ok {
				writeCached(rw, cached)
				return
			}
		}
	}

	rw.Header().Set("Content-Type", "text/plain")
	rw.WriteHeader(http.StatusRequestTimeout)
	_, _ = io.WriteString(rw, networkErrorBody)
}

func (w *worker) match(ctx context.Context, bucket repository.CacheBucket, key string) (*model.CachedResponse, bool) {
	res := bucket.Match(ctx, key)
	if res.Err != nil {
		log.Warn().Err(res.Err).Str("uri", key).Msg("failed to read cache")
		return nil, false
	}
	return res.Value, res.Found
}

func writeCached(rw http.ResponseWriter, cached *model.CachedResponse) {
	header := rw.Header()
	for k, vv := range cached.Header {
		header[k] = append([]string(nil), vv...)
	}
	rw.WriteHeader(cached.Status)
	_, _ = rw.Write(cached.Body)
}

// isNavigation Запрос страницы браузером. Accept смотрим, только если
// клиент не прислал Sec-Fetch-Mode
func isNavigation(r *http.Request) bool {
	if mode := r.Header.Get("Sec-Fetch-Mode"); mode != "" {
		return mode == "navigate"
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// storableHeader Заголовки ответа без hop-by-hop и cookies
func storableHeader(h http.Header) http.Header {
	out := h.Clone()
	for _, k := range hopHeaders {
		out.Del(k)
	}
	out.Del("Set-Cookie")
	return out
}
