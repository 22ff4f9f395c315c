package offline

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velvet_bite/internal/config/env"
	"velvet_bite/internal/model"
	"velvet_bite/internal/repository"
	"velvet_bite/internal/repository/cache_repo"
	"velvet_bite/internal/service"
)

const version = "velvet-bite-v1"

// flakyTransport имитирует пропадание сети
type flakyTransport struct {
	base http.RoundTripper
	down atomic.Bool
}

func (t *flakyTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if t.down.Load() {
		return nil, errors.New("dial tcp: network is unreachable")
	}
	return t.base.RoundTrip(r)
}

type origin struct {
	srv     *httptest.Server
	mtx     sync.Mutex
	headers map[string]http.Header
	methods []string
}

func newOrigin(t *testing.T) *origin {
	t.Helper()
	o := &origin{headers: make(map[string]http.Header)}
	o.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		o.mtx.Lock()
		o.headers[r.URL.Path] = r.Header.Clone()
		o.methods = append(o.methods, r.Method)
		o.mtx.Unlock()

		switch {
		case r.URL.Path == "/broken":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, "boom")
		case r.URL.Path == "/big":
			_, _ = io.WriteString(w, strings.Repeat("x", 100))
		case r.Method == http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, "created")
		case r.URL.Path == "/":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = io.WriteString(w, "<h1>Velvet Bite</h1>")
		default:
			_, _ = io.WriteString(w, "asset:"+r.URL.Path)
		}
	}))
	t.Cleanup(o.srv.Close)
	return o
}

func (o *origin) header(path string) http.Header {
	o.mtx.Lock()
	defer o.mtx.Unlock()
	return o.headers[path]
}

type fixture struct {
	origin    *origin
	transport *flakyTransport
	storage   repository.CacheStorage
	worker    service.OfflineWorker
}

func newFixture(t *testing.T, maxBytes int64) *fixture {
	t.Helper()
	o := newOrigin(t)
	cfg, err := env.NewOfflineConfig(version, nil, maxBytes, o.srv.URL)
	require.NoError(t, err)

	tr := &flakyTransport{base: http.DefaultTransport}
	storage := cache_repo.NewMemoryCacheStorage()
	w, err := NewOfflineWorker(cfg, storage, WithHTTPClient(&http.Client{Transport: tr}))
	require.NoError(t, err)

	return &fixture{origin: o, transport: tr, storage: storage, worker: w}
}

func (f *fixture) activate(t *testing.T) {
	t.Helper()
	require.NoError(t, f.worker.Install(context.Background()))
	require.NoError(t, f.worker.Activate(context.Background()))
}

func (f *fixture) get(path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.worker.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) cached(t *testing.T, key string) model.StorageResult[*model.CachedResponse] {
	t.Helper()
	bucket, err := f.storage.Open(context.Background(), version)
	require.NoError(t, err)
	return bucket.Match(context.Background(), key)
}

func TestInstallPrecachesManifest(t *testing.T) {
	f := newFixture(t, 0)

	require.NoError(t, f.worker.Install(context.Background()))
	assert.Equal(t, model.WorkerInstalled, f.worker.State())

	for _, path := range []string{"/", "/static/style.css", "/static/script.js", "/static/performance.js", "/static/images/mini.jpg"} {
		res := f.cached(t, path)
		require.True(t, res.Ok(), path)

		h := f.origin.header(path)
		assert.Equal(t, "no-cache", h.Get("Cache-Control"), path)
		assert.Equal(t, "no-cache", h.Get("Pragma"), path)
	}
	assert.Equal(t, "<h1>Velvet Bite</h1>", string(f.cached(t, "/").Value.Body))
}

func TestInstallIsAllOrNothing(t *testing.T) {
	o := newOrigin(t)
	cfg, err := env.NewOfflineConfig(version, []string{"/", "/static/style.css", "/broken"}, 0, o.srv.URL)
	require.NoError(t, err)
	storage := cache_repo.NewMemoryCacheStorage()
	w, err := NewOfflineWorker(cfg, storage)
	require.NoError(t, err)

	assert.Error(t, w.Install(context.Background()))
	assert.Equal(t, model.WorkerTerminated, w.State())

	keys, err := storage.Keys(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestActivateLeavesOnlyCurrentCache(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	for _, name := range []string{"velvet-bite-v0", "legacy-assets"} {
		b, err := f.storage.Open(ctx, name)
		require.NoError(t, err)
		require.NoError(t, b.Put(ctx, "/", &model.CachedResponse{Status: http.StatusOK, Body: []byte("old")}))
	}

	assert.ErrorIs(t, f.worker.Activate(ctx), model.ErrWorkerNotInstalled)

	f.activate(t)
	assert.Equal(t, model.WorkerActive, f.worker.State())

	keys, err := f.storage.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{version}, keys)
}

func TestFetchNetworkFirstCachesSuccess(t *testing.T) {
	f := newFixture(t, 0)
	f.activate(t)

	rec := f.get("/menu?page=2", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "asset:/menu", rec.Body.String())

	rec = f.get("/broken", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	require.NoError(t, f.worker.Supersede(context.Background()))

	res := f.cached(t, "/menu?page=2")
	require.True(t, res.Ok())
	assert.Equal(t, "asset:/menu", string(res.Value.Body))
	assert.False(t, f.cached(t, "/broken").Found)
}

func TestFetchSkipsOversizedBodies(t *testing.T) {
	f := newFixture(t, 10)
	f.activate(t)

	rec := f.get("/big", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 100, rec.Body.Len())

	require.NoError(t, f.worker.Terminate(context.Background()))
	assert.False(t, f.cached(t, "/big").Found)
}

func TestFetchOfflineFallbacks(t *testing.T) {
	f := newFixture(t, 0)
	f.activate(t)
	f.transport.down.Store(true)

	rec := f.get("/static/style.css", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "asset:/static/style.css", rec.Body.String())

	rec = f.get("/dish/42", map[string]string{"Sec-Fetch-Mode": "navigate"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<h1>Velvet Bite</h1>", rec.Body.String())
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	rec = f.get("/order", map[string]string{"Accept": "text/html,application/xhtml+xml"})
	assert.Equal(t, "<h1>Velvet Bite</h1>", rec.Body.String())

	rec = f.get("/api/dishes", map[string]string{"Accept": "application/json"})
	assert.Equal(t, http.StatusRequestTimeout, rec.Code)
	assert.Equal(t, "Network error", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
}

func TestFetchHTMLWithoutNavigationGetsNetworkError(t *testing.T) {
	f := newFixture(t, 0)
	f.activate(t)
	f.transport.down.Store(true)

	// fetch() из скрипта: Accept с text/html, но режим не navigate
	rec := f.get("/dish/42/fragment", map[string]string{
		"Sec-Fetch-Mode": "cors",
		"Accept":         "text/html",
	})
	assert.Equal(t, http.StatusRequestTimeout, rec.Code)
	assert.Equal(t, "Network error", rec.Body.String())
}

func TestNonGetPassesThrough(t *testing.T) {
	f := newFixture(t, 0)
	f.activate(t)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	f.worker.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "created", rec.Body.String())

	require.NoError(t, f.worker.Supersede(context.Background()))
	assert.False(t, f.cached(t, "/api/orders").Found)
}

func TestInactiveWorkerPassesThrough(t *testing.T) {
	f := newFixture(t, 0)

	rec := f.get("/menu", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "asset:/menu", rec.Body.String())

	keys, err := f.storage.Keys(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)

	f.transport.down.Store(true)
	rec = f.get("/menu", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
