package edge

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"text/template"

	"velvet_bite/internal/config"
	"velvet_bite/internal/model"
	"velvet_bite/internal/service"
	"velvet_bite/pkg/resp"
)

//go:embed sw.js.tmpl
var swSource string

var swTemplate = template.Must(template.New("sw.js").Parse(swSource))

type HandlerDeps struct {
	Worker service.OfflineWorker
	Cfg    config.OfflineConfig
}

type Handler struct {
	worker service.OfflineWorker
	script []byte
}

// NewHandler Скрипт воркера для браузера собирается один раз из той же
// версии кэша и манифеста, что использует edge
func NewHandler(deps HandlerDeps) (*Handler, error) {
	name, err := json.Marshal(deps.Cfg.CacheVersion())
	if err != nil {
		return nil, err
	}
	manifest, err := json.Marshal(deps.Cfg.Manifest())
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = swTemplate.Execute(&buf, map[string]string{
		"CacheName": string(name),
		"Manifest":  string(manifest),
	})
	if err != nil {
		return nil, fmt.Errorf("render sw.js: %w", err)
	}

	return &Handler{worker: deps.Worker, script: buf.Bytes()}, nil
}

// ServiceWorker отдает /sw.js со scope на весь сайт
func (h *Handler) ServiceWorker(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Service-Worker-Allowed", "/")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(h.script)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	state := h.worker.State()
	status, text := http.StatusOK, "ok"
	if state == model.WorkerTerminated {
		status, text = http.StatusServiceUnavailable, "unavailable"
	}
	resp.WriteJSONResponse(w, status, map[string]string{
		"status": text,
		"worker": state.String(),
	})
}
